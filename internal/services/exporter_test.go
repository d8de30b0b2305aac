package services

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoqueChristian/analise-conexao/internal/models"
)

func TestExporter_FileName(t *testing.T) {
	e := NewExporter()

	first := e.FileName()
	second := e.FileName()

	assert.True(t, strings.HasPrefix(first, "analise-conexao-"))
	assert.True(t, strings.HasSuffix(first, ".xlsx"))
	assert.NotEqual(t, first, second, "export names must be unique")
}

func TestExporter_BuildWorkbook(t *testing.T) {
	rec := &models.Reconciliation{
		Customers: []models.CustomerSummary{
			{
				Key: "111", Name: "ACME Ltda",
				Ordered: decimal.NewFromInt(200), Billed: decimal.NewFromInt(150),
				Returned: decimal.NewFromInt(10), NetBilled: decimal.NewFromInt(140),
				FlowDelta: decimal.NewFromInt(50),
			},
		},
		Suppliers: []models.SupplierSummary{
			{Key: "22", Name: "DISTRIBUIDORA ALFA", Billed: decimal.NewFromInt(150)},
		},
		Branches: []models.BranchSummary{
			{Branch: "01", Billed: decimal.NewFromInt(150), NetBilled: decimal.NewFromInt(140)},
		},
		Regions: []models.RegionSummary{},
	}

	e := NewExporter()
	wb, err := e.BuildWorkbook(rec)
	require.NoError(t, err)
	defer wb.Close()

	assert.ElementsMatch(t, []string{"Clientes", "Fornecedores", "Filiais", "Regioes"}, wb.GetSheetList())

	rows, err := wb.GetRows("Clientes")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "CLIENTE", rows[0][0])
	assert.Equal(t, "ACME Ltda", rows[1][0])
	assert.Equal(t, "111", rows[1][1])

	// an empty view still gets its sheet with headers
	regionRows, err := wb.GetRows("Regioes")
	require.NoError(t, err)
	require.Len(t, regionRows, 1)
	assert.Equal(t, "REGIAO", regionRows[0][0])
}
