package handlers

import (
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/shopspring/decimal"

	"github.com/RoqueChristian/analise-conexao/internal/models"
	"github.com/RoqueChristian/analise-conexao/internal/services"
	"github.com/RoqueChristian/analise-conexao/internal/utils"
)

// AnalysisHandler serves the four detailed views.
type AnalysisHandler struct {
	analysis AnalysisService
}

// NewAnalysisHandler creates an analysis handler instance.
func NewAnalysisHandler(analysis AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis}
}

// parseLimit reads the optional limit query param; 0 means no limit.
func parseLimit(c fiber.Ctx) (int, error) {
	raw := c.Query("limit", "0")
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, utils.NewBadRequestError("limit must be a non-negative integer", nil)
	}
	return limit, nil
}

// GetCustomers handles GET /v1/customers
// Query params: region, sort (diferenca_fluxo | valor_liquido_faturado |
// valor_faturado | valor_pedido), limit
func (h *AnalysisHandler) GetCustomers(c fiber.Ctx) error {
	region := c.Query("region", services.RegionAll)
	sortBy := c.Query("sort", "diferenca_fluxo")

	sortKeys := map[string]func(models.CustomerSummary) decimal.Decimal{
		"diferenca_fluxo":        func(r models.CustomerSummary) decimal.Decimal { return r.FlowDelta },
		"valor_liquido_faturado": func(r models.CustomerSummary) decimal.Decimal { return r.NetBilled },
		"valor_faturado":         func(r models.CustomerSummary) decimal.Decimal { return r.Billed },
		"valor_pedido":           func(r models.CustomerSummary) decimal.Decimal { return r.Ordered },
	}
	keyFn, ok := sortKeys[sortBy]
	if !ok {
		return utils.NewBadRequestError("Invalid sort parameter. Must be one of: diferenca_fluxo, valor_liquido_faturado, valor_faturado, valor_pedido", nil)
	}

	limit, err := parseLimit(c)
	if err != nil {
		return err
	}

	rec, err := h.analysis.Reconcile(c.Context(), region)
	if err != nil {
		return dataError(err)
	}

	rows := append([]models.CustomerSummary(nil), rec.Customers...)
	sort.SliceStable(rows, func(i, j int) bool {
		return keyFn(rows[i]).GreaterThan(keyFn(rows[j]))
	})
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	return c.JSON(fiber.Map{
		"region": region,
		"sort":   sortBy,
		"total":  len(rec.Customers),
		"rows":   rows,
	})
}

// GetSuppliers handles GET /v1/suppliers
// Query params: region, sort (diferenca_fluxo | valor_faturado |
// valor_pedido), limit
func (h *AnalysisHandler) GetSuppliers(c fiber.Ctx) error {
	region := c.Query("region", services.RegionAll)
	sortBy := c.Query("sort", "diferenca_fluxo")

	sortKeys := map[string]func(models.SupplierSummary) decimal.Decimal{
		"diferenca_fluxo": func(r models.SupplierSummary) decimal.Decimal { return r.FlowDelta },
		"valor_faturado":  func(r models.SupplierSummary) decimal.Decimal { return r.Billed },
		"valor_pedido":    func(r models.SupplierSummary) decimal.Decimal { return r.Ordered },
	}
	keyFn, ok := sortKeys[sortBy]
	if !ok {
		return utils.NewBadRequestError("Invalid sort parameter. Must be one of: diferenca_fluxo, valor_faturado, valor_pedido", nil)
	}

	limit, err := parseLimit(c)
	if err != nil {
		return err
	}

	rec, err := h.analysis.Reconcile(c.Context(), region)
	if err != nil {
		return dataError(err)
	}

	rows := append([]models.SupplierSummary(nil), rec.Suppliers...)
	sort.SliceStable(rows, func(i, j int) bool {
		return keyFn(rows[i]).GreaterThan(keyFn(rows[j]))
	})
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	return c.JSON(fiber.Map{
		"region": region,
		"sort":   sortBy,
		"total":  len(rec.Suppliers),
		"rows":   rows,
	})
}

// GetBranches handles GET /v1/branches
// Query params: region, limit
func (h *AnalysisHandler) GetBranches(c fiber.Ctx) error {
	region := c.Query("region", services.RegionAll)

	limit, err := parseLimit(c)
	if err != nil {
		return err
	}

	rec, err := h.analysis.Reconcile(c.Context(), region)
	if err != nil {
		return dataError(err)
	}

	rows := append([]models.BranchSummary(nil), rec.Branches...)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].NetBilled.GreaterThan(rows[j].NetBilled)
	})
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	return c.JSON(fiber.Map{
		"region": region,
		"total":  len(rec.Branches),
		"rows":   rows,
	})
}

// GetRegions handles GET /v1/regions
// Query params: limit
func (h *AnalysisHandler) GetRegions(c fiber.Ctx) error {
	limit, err := parseLimit(c)
	if err != nil {
		return err
	}

	rec, err := h.analysis.Reconcile(c.Context(), services.RegionAll)
	if err != nil {
		return dataError(err)
	}

	rows := append([]models.RegionSummary(nil), rec.Regions...)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].NetBilled.GreaterThan(rows[j].NetBilled)
	})
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	return c.JSON(fiber.Map{
		"total": len(rec.Regions),
		"rows":  rows,
	})
}
