package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Regenerates testdata/resumo_gastos.xlsx, the optional spend summary the
// API serves as a pass-through view.
func main() {
	generateSpendSummaryFixture()
	fmt.Println("\n✅ XLSX fixture generated successfully!")
}

func generateSpendSummaryFixture() {
	f := excelize.NewFile()
	sheet := "Sheet1"

	headers := []string{"COD", "RAZÃO", "TOTAL_GASTO", "TOTAL FATURADO"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	data := [][]interface{}{
		{"1001", "FARMA ACME LTDA", "12.500,00", "10.230,45"},
		{"1002", "DROGARIA BETA ME", "8.340,10", "7.990,00"},
		{"1003", "DISTRIBUIDORA GAMA SA", "22.180,75", "21.004,60"},
		{"1004", "COMERCIAL DELTA EIRELI", "3.075,00", "2.800,00"},
		{"1005", "FARMACIA OMEGA LTDA", "15.620,30", "14.115,90"},
	}

	for rowIdx, row := range data {
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, val)
		}
	}

	path := filepath.Join("testdata", "resumo_gastos.xlsx")
	if err := f.SaveAs(path); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✓ Generated", path)
}
