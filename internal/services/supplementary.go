package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/RoqueChristian/analise-conexao/internal/models"
)

// Supplementary loads the optional spend spreadsheet (COD, RAZÃO,
// TOTAL_GASTO, TOTAL FATURADO). Its rows are displayed as-is and never
// joined into the reconciliation.
type Supplementary struct {
	source    FileSource
	validator *FeedValidator
	name      string
}

// NewSupplementary creates a reader for the named spreadsheet.
func NewSupplementary(source FileSource, validator *FeedValidator, name string) *Supplementary {
	return &Supplementary{source: source, validator: validator, name: name}
}

// Load reads the first sheet of the workbook. The spreadsheet is optional:
// a missing file is reported so the caller can answer with an empty view
// instead of failing the dashboard.
func (s *Supplementary) Load(ctx context.Context) ([]models.SupplementaryRow, error) {
	file, err := s.source.Open(ctx, s.name)
	if err != nil {
		return nil, fmt.Errorf("supplementary spreadsheet unavailable: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read supplementary spreadsheet: %w", err)
	}
	if err := s.validator.ValidateWorkbook(data); err != nil {
		return nil, fmt.Errorf("invalid supplementary spreadsheet: %w", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open supplementary spreadsheet: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("supplementary spreadsheet has no sheets")
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read supplementary sheet: %w", err)
	}
	if len(rows) == 0 {
		return []models.SupplementaryRow{}, nil
	}

	colIdx := make(map[string]int)
	for i, h := range rows[0] {
		colIdx[strings.ToUpper(strings.TrimSpace(h))] = i
	}

	cell := func(row []string, header string) string {
		idx, ok := colIdx[header]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	out := make([]models.SupplementaryRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		r := models.SupplementaryRow{
			Cod:           cell(row, "COD"),
			Razao:         cell(row, "RAZÃO"),
			TotalGasto:    cell(row, "TOTAL_GASTO"),
			TotalFaturado: cell(row, "TOTAL FATURADO"),
		}
		if r.Cod == "" && r.Razao == "" && r.TotalGasto == "" && r.TotalFaturado == "" {
			continue
		}
		out = append(out, r)
	}

	return out, nil
}
