package models

import "github.com/shopspring/decimal"

// CustomerSummary is one row of the customer view, keyed by the normalized
// customer tax ID. An empty key collapses every row whose tax ID had no
// digits; that mirrors the source exports and is surfaced, not corrected.
type CustomerSummary struct {
	Key       string          `json:"cnpj"`
	Name      string          `json:"cliente"`
	Ordered   decimal.Decimal `json:"valor_pedido"`
	Billed    decimal.Decimal `json:"valor_faturado"`
	Returned  decimal.Decimal `json:"valor_devolvido"`
	NetBilled decimal.Decimal `json:"valor_liquido_faturado"`
	FlowDelta decimal.Decimal `json:"diferenca_fluxo"`
}

// SupplierSummary is one row of the supplier view.
type SupplierSummary struct {
	Key       string          `json:"chave"`
	Name      string          `json:"fornecedor"`
	Ordered   decimal.Decimal `json:"valor_pedido"`
	Billed    decimal.Decimal `json:"valor_faturado"`
	Returned  decimal.Decimal `json:"valor_devolvido"`
	FlowDelta decimal.Decimal `json:"diferenca_fluxo"`
}

// BranchSummary is one row of the branch view. Orders carry no branch
// dimension, so Ordered is always zero and FlowDelta the negation of Billed.
type BranchSummary struct {
	Branch    string          `json:"filial"`
	Ordered   decimal.Decimal `json:"valor_pedido"`
	Billed    decimal.Decimal `json:"valor_faturado"`
	Returned  decimal.Decimal `json:"valor_devolvido"`
	NetBilled decimal.Decimal `json:"valor_liquido_faturado"`
	FlowDelta decimal.Decimal `json:"diferenca_fluxo"`
}

// RegionSummary mirrors BranchSummary, grouped by the configurable region
// column of the billing feed.
type RegionSummary struct {
	Region    string          `json:"regiao"`
	Ordered   decimal.Decimal `json:"valor_pedido"`
	Billed    decimal.Decimal `json:"valor_faturado"`
	Returned  decimal.Decimal `json:"valor_devolvido"`
	NetBilled decimal.Decimal `json:"valor_liquido_faturado"`
	FlowDelta decimal.Decimal `json:"diferenca_fluxo"`
}

// Reconciliation bundles the four analytical views produced by one pass of
// the engine over the (optionally region-filtered) feeds.
type Reconciliation struct {
	Customers []CustomerSummary `json:"clientes"`
	Suppliers []SupplierSummary `json:"fornecedores"`
	Branches  []BranchSummary   `json:"filiais"`
	Regions   []RegionSummary   `json:"regioes"`
}

// SupplementaryRow is one row of the optional spend spreadsheet, passed
// through as-is without joining into the reconciliation.
type SupplementaryRow struct {
	Cod           string `json:"cod"`
	Razao         string `json:"razao"`
	TotalGasto    string `json:"total_gasto"`
	TotalFaturado string `json:"total_faturado"`
}
