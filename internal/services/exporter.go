package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/RoqueChristian/analise-conexao/internal/models"
)

// Exporter renders a reconciliation result as an XLSX workbook with one
// sheet per analytical view.
type Exporter struct{}

// NewExporter creates an exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// FileName generates a unique download name for one export.
// Format: analise-conexao-{timestamp}-{uniqueID}.xlsx
func (e *Exporter) FileName() string {
	timestamp := time.Now().UTC().Unix()
	uniqueID := uuid.New().String()[:8]
	return fmt.Sprintf("analise-conexao-%d-%s.xlsx", timestamp, uniqueID)
}

// BuildWorkbook writes the four views into a new workbook.
func (e *Exporter) BuildWorkbook(rec *models.Reconciliation) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := e.writeCustomers(f, rec.Customers); err != nil {
		return nil, err
	}
	if err := e.writeSuppliers(f, rec.Suppliers); err != nil {
		return nil, err
	}
	if err := e.writeBranches(f, rec.Branches); err != nil {
		return nil, err
	}
	if err := e.writeRegions(f, rec.Regions); err != nil {
		return nil, err
	}

	// the default sheet is replaced by the customer view
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	return f, nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write %s headers: %w", sheet, err)
		}
	}

	for rowIdx, row := range rows {
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", sheet, rowIdx+2, err)
			}
		}
	}

	return nil
}

func (e *Exporter) writeCustomers(f *excelize.File, customers []models.CustomerSummary) error {
	headers := []string{"CLIENTE", "CNPJ", "VALOR_PEDIDO", "VALOR_FATURADO", "VALOR_DEVOLVIDO", "DIFERENCA_FLUXO", "VALOR_LIQUIDO_FATURADO"}
	rows := make([][]interface{}, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []interface{}{
			c.Name, c.Key,
			c.Ordered.InexactFloat64(), c.Billed.InexactFloat64(), c.Returned.InexactFloat64(),
			c.FlowDelta.InexactFloat64(), c.NetBilled.InexactFloat64(),
		})
	}
	return writeSheet(f, "Clientes", headers, rows)
}

func (e *Exporter) writeSuppliers(f *excelize.File, suppliers []models.SupplierSummary) error {
	headers := []string{"FORNECEDOR", "VALOR_PEDIDO", "VALOR_FATURADO", "VALOR_DEVOLVIDO", "DIFERENCA_FLUXO"}
	rows := make([][]interface{}, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, []interface{}{
			s.Name,
			s.Ordered.InexactFloat64(), s.Billed.InexactFloat64(), s.Returned.InexactFloat64(),
			s.FlowDelta.InexactFloat64(),
		})
	}
	return writeSheet(f, "Fornecedores", headers, rows)
}

func (e *Exporter) writeBranches(f *excelize.File, branches []models.BranchSummary) error {
	headers := []string{"FILIAL", "VALOR_FATURADO", "VALOR_DEVOLVIDO", "VALOR_LIQUIDO_FATURADO"}
	rows := make([][]interface{}, 0, len(branches))
	for _, b := range branches {
		rows = append(rows, []interface{}{
			b.Branch,
			b.Billed.InexactFloat64(), b.Returned.InexactFloat64(), b.NetBilled.InexactFloat64(),
		})
	}
	return writeSheet(f, "Filiais", headers, rows)
}

func (e *Exporter) writeRegions(f *excelize.File, regions []models.RegionSummary) error {
	headers := []string{"REGIAO", "VALOR_FATURADO", "VALOR_DEVOLVIDO", "VALOR_LIQUIDO_FATURADO"}
	rows := make([][]interface{}, 0, len(regions))
	for _, r := range regions {
		rows = append(rows, []interface{}{
			r.Region,
			r.Billed.InexactFloat64(), r.Returned.InexactFloat64(), r.NetBilled.InexactFloat64(),
		})
	}
	return writeSheet(f, "Regioes", headers, rows)
}
