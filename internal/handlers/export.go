package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/xuri/excelize/v2"

	"github.com/RoqueChristian/analise-conexao/internal/models"
	"github.com/RoqueChristian/analise-conexao/internal/services"
	"github.com/RoqueChristian/analise-conexao/internal/utils"
)

// Exporter renders a reconciliation result as a downloadable workbook.
type Exporter interface {
	FileName() string
	BuildWorkbook(rec *models.Reconciliation) (*excelize.File, error)
}

// ExportHandler streams the four views as an XLSX download.
type ExportHandler struct {
	analysis AnalysisService
	exporter Exporter
}

// NewExportHandler creates an export handler instance.
func NewExportHandler(analysis AnalysisService, exporter Exporter) *ExportHandler {
	return &ExportHandler{analysis: analysis, exporter: exporter}
}

// GetExport handles GET /v1/export
// Query params: region (optional, sentinel "all")
func (h *ExportHandler) GetExport(c fiber.Ctx) error {
	region := c.Query("region", services.RegionAll)

	rec, err := h.analysis.Reconcile(c.Context(), region)
	if err != nil {
		return dataError(err)
	}

	wb, err := h.exporter.BuildWorkbook(rec)
	if err != nil {
		return utils.NewInternalError(fmt.Errorf("build workbook: %w", err))
	}
	defer wb.Close()

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return utils.NewInternalError(fmt.Errorf("serialize workbook: %w", err))
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", h.exporter.FileName()))
	return c.Send(buf.Bytes())
}
