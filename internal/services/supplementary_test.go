package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeSupplementaryFixture(t *testing.T, dir, name string) {
	t.Helper()

	f := excelize.NewFile()
	sheet := "Sheet1"

	headers := []string{"COD", "RAZÃO", "TOTAL_GASTO", "TOTAL FATURADO"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, f.SetCellValue(sheet, cell, h))
	}

	data := [][]interface{}{
		{"1001", "FARMA ACME LTDA", "12.500,00", "10.000,00"},
		{"1002", "DROGARIA BETA", "8.300,50", "7.900,00"},
	}
	for rowIdx, row := range data {
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}

	require.NoError(t, f.SaveAs(filepath.Join(dir, name)))
	require.NoError(t, f.Close())
}

func TestSupplementary_Load(t *testing.T) {
	dir := t.TempDir()
	writeSupplementaryFixture(t, dir, "resumo_gastos.xlsx")

	s := NewSupplementary(NewLocalSource(dir), NewFeedValidator(0), "resumo_gastos.xlsx")
	rows, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "1001", rows[0].Cod)
	assert.Equal(t, "FARMA ACME LTDA", rows[0].Razao)
	assert.Equal(t, "12.500,00", rows[0].TotalGasto)
	assert.Equal(t, "10.000,00", rows[0].TotalFaturado)
}

func TestSupplementary_MissingFile(t *testing.T) {
	s := NewSupplementary(NewLocalSource(t.TempDir()), NewFeedValidator(0), "resumo_gastos.xlsx")

	_, err := s.Load(context.Background())
	assert.Error(t, err)
}

func TestSupplementary_NotAWorkbook(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "falso.xlsx"), []byte("apenas texto"), 0o644))

	s := NewSupplementary(NewLocalSource(dir), NewFeedValidator(0), "falso.xlsx")
	_, err := s.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "XLSX")
}
