package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/RoqueChristian/analise-conexao/internal/models"
)

// SupplementaryService loads the optional spend spreadsheet.
type SupplementaryService interface {
	Load(ctx context.Context) ([]models.SupplementaryRow, error)
}

// SupplementaryHandler serves the optional spreadsheet pass-through view.
type SupplementaryHandler struct {
	supplementary SupplementaryService
}

// NewSupplementaryHandler creates a supplementary handler instance.
func NewSupplementaryHandler(supplementary SupplementaryService) *SupplementaryHandler {
	return &SupplementaryHandler{supplementary: supplementary}
}

// GetSupplementary handles GET /v1/supplementary
// The spreadsheet is optional; when it is missing the response carries
// available=false and no rows rather than an error.
func (h *SupplementaryHandler) GetSupplementary(c fiber.Ctx) error {
	rows, err := h.supplementary.Load(c.Context())
	if err != nil {
		return c.JSON(fiber.Map{
			"available": false,
			"rows":      []models.SupplementaryRow{},
		})
	}

	return c.JSON(fiber.Map{
		"available": true,
		"rows":      rows,
	})
}
