package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/shopspring/decimal"

	"github.com/RoqueChristian/analise-conexao/internal/format"
	"github.com/RoqueChristian/analise-conexao/internal/models"
	"github.com/RoqueChristian/analise-conexao/internal/services"
	"github.com/RoqueChristian/analise-conexao/internal/utils"
)

// AnalysisService runs one reconciliation pass over the (optionally
// region-filtered) feeds.
type AnalysisService interface {
	Reconcile(ctx context.Context, region string) (*models.Reconciliation, error)
}

// dataError maps pipeline failures onto the API error taxonomy:
// unreadable inputs are a distinct, recoverable condition.
func dataError(err error) error {
	if errors.Is(err, services.ErrInsufficientData) {
		return utils.NewInsufficientDataError(err.Error())
	}
	return utils.NewInternalError(err)
}

// OverviewHandler serves the dashboard's KPI block.
type OverviewHandler struct {
	analysis  AnalysisService
	formatter *format.CurrencyFormatter
}

// NewOverviewHandler creates an overview handler instance.
func NewOverviewHandler(analysis AnalysisService, formatter *format.CurrencyFormatter) *OverviewHandler {
	return &OverviewHandler{analysis: analysis, formatter: formatter}
}

// GetOverview handles GET /v1/overview
// Query params: region (optional, sentinel "all")
func (h *OverviewHandler) GetOverview(c fiber.Ctx) error {
	region := c.Query("region", services.RegionAll)

	rec, err := h.analysis.Reconcile(c.Context(), region)
	if err != nil {
		return dataError(err)
	}

	// KPIs are totals over the customer view, matching the dashboard's
	// "Visão Geral" block.
	var ordered, billed, returned, delta, net decimal.Decimal
	for _, cust := range rec.Customers {
		ordered = ordered.Add(cust.Ordered)
		billed = billed.Add(cust.Billed)
		returned = returned.Add(cust.Returned)
		delta = delta.Add(cust.FlowDelta)
		net = net.Add(cust.NetBilled)
	}

	return c.JSON(fiber.Map{
		"region": region,
		"totals": fiber.Map{
			"valor_pedido":           ordered,
			"valor_faturado":         billed,
			"valor_devolvido":        returned,
			"diferenca_fluxo":        delta,
			"valor_liquido_faturado": net,
		},
		"formatted": fiber.Map{
			"valor_pedido":           h.formatter.Format(ordered),
			"valor_faturado":         h.formatter.Format(billed),
			"valor_devolvido":        h.formatter.Format(returned),
			"diferenca_fluxo":        h.formatter.Format(delta),
			"valor_liquido_faturado": h.formatter.Format(net),
		},
		"counts": fiber.Map{
			"clientes":     len(rec.Customers),
			"fornecedores": len(rec.Suppliers),
			"filiais":      len(rec.Branches),
			"regioes":      len(rec.Regions),
		},
	})
}
