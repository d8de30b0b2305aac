package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat_BrazilianGrouping(t *testing.T) {
	f := NewCurrencyFormatter("pt-BR", "R$")
	assert.Equal(t, "R$ 1.234,56", f.Format(decimal.NewFromFloat(1234.56)))
}

func TestFormat_Zero(t *testing.T) {
	f := NewCurrencyFormatter("pt-BR", "R$")
	assert.Equal(t, "R$ 0,00", f.Format(decimal.Zero))
}

func TestFormat_TwoDecimalPlaces(t *testing.T) {
	f := NewCurrencyFormatter("pt-BR", "R$")
	assert.Equal(t, "R$ 10,00", f.Format(decimal.NewFromInt(10)))
	assert.Equal(t, "R$ 10,50", f.Format(decimal.NewFromFloat(10.5)))
}

func TestFormat_InvalidLocaleFallsBack(t *testing.T) {
	f := NewCurrencyFormatter("???", "R$")
	assert.Equal(t, "R$ 1.234,56", f.Format(decimal.NewFromFloat(1234.56)))
}
