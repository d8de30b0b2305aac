package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyFormatter renders monetary totals as localized display strings.
// It is explicit configuration passed to the presentation layer; the core
// always exposes raw numeric totals alongside it.
type CurrencyFormatter struct {
	printer *message.Printer
	symbol  string
}

// NewCurrencyFormatter creates a formatter for the given BCP 47 locale tag
// and currency symbol. An unparseable tag falls back to pt-BR, the locale
// of the source exports.
func NewCurrencyFormatter(locale, symbol string) *CurrencyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	return &CurrencyFormatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}
}

// Format renders a total with locale-specific grouping and two decimal
// places, e.g. "R$ 1.234,56" under pt-BR.
func (f *CurrencyFormatter) Format(d decimal.Decimal) string {
	return f.symbol + " " + f.printer.Sprintf("%v",
		number.Decimal(d.InexactFloat64(), number.Scale(2)))
}
