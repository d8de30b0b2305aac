package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v3"

	"github.com/RoqueChristian/analise-conexao/internal/format"
	"github.com/RoqueChristian/analise-conexao/internal/models"
	"github.com/RoqueChristian/analise-conexao/internal/services"
)

// DefaultLeaderboardSize matches the dashboard's top-10 tables.
const DefaultLeaderboardSize = 10

// LeaderboardHandler serves the top-N performance tables.
type LeaderboardHandler struct {
	analysis  AnalysisService
	formatter *format.CurrencyFormatter
}

// NewLeaderboardHandler creates a leaderboard handler instance.
func NewLeaderboardHandler(analysis AnalysisService, formatter *format.CurrencyFormatter) *LeaderboardHandler {
	return &LeaderboardHandler{analysis: analysis, formatter: formatter}
}

func leaderboardLimit(c fiber.Ctx) (int, error) {
	limit, err := parseLimit(c)
	if err != nil {
		return 0, err
	}
	if limit == 0 {
		limit = DefaultLeaderboardSize
	}
	return limit, nil
}

// GetTopCustomers handles GET /v1/leaderboards/customers
// Ranks customers by net billed revenue, positive values only.
// Query params: region, limit (default 10)
func (h *LeaderboardHandler) GetTopCustomers(c fiber.Ctx) error {
	region := c.Query("region", services.RegionAll)

	limit, err := leaderboardLimit(c)
	if err != nil {
		return err
	}

	rec, err := h.analysis.Reconcile(c.Context(), region)
	if err != nil {
		return dataError(err)
	}

	rows := make([]models.CustomerSummary, 0, len(rec.Customers))
	for _, cust := range rec.Customers {
		if cust.NetBilled.IsPositive() {
			rows = append(rows, cust)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].NetBilled.GreaterThan(rows[j].NetBilled)
	})
	if limit < len(rows) {
		rows = rows[:limit]
	}

	entries := make([]fiber.Map, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, fiber.Map{
			"cliente":                r.Name,
			"cnpj":                   r.Key,
			"valor_liquido_faturado": r.NetBilled,
			"formatted":              h.formatter.Format(r.NetBilled),
		})
	}

	return c.JSON(fiber.Map{
		"region":  region,
		"ranked":  "valor_liquido_faturado",
		"entries": entries,
	})
}

// GetTopSuppliers handles GET /v1/leaderboards/suppliers
// Ranks suppliers by billed total, positive values only.
// Query params: region, limit (default 10)
func (h *LeaderboardHandler) GetTopSuppliers(c fiber.Ctx) error {
	region := c.Query("region", services.RegionAll)

	limit, err := leaderboardLimit(c)
	if err != nil {
		return err
	}

	rec, err := h.analysis.Reconcile(c.Context(), region)
	if err != nil {
		return dataError(err)
	}

	rows := make([]models.SupplierSummary, 0, len(rec.Suppliers))
	for _, sup := range rec.Suppliers {
		if sup.Billed.IsPositive() {
			rows = append(rows, sup)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Billed.GreaterThan(rows[j].Billed)
	})
	if limit < len(rows) {
		rows = rows[:limit]
	}

	entries := make([]fiber.Map, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, fiber.Map{
			"fornecedor":     r.Name,
			"valor_faturado": r.Billed,
			"formatted":      h.formatter.Format(r.Billed),
		})
	}

	return c.JSON(fiber.Map{
		"region":  region,
		"ranked":  "valor_faturado",
		"entries": entries,
	})
}
