package models

// Canonical column names shared by the loader and the reconciliation engine.
// Billing columns carry the FATURAMENTO/FATURADO suffixes, order columns the
// PEDIDO suffix, so both feeds can coexist in one namespace.
const (
	ColBillingCustomerName = "CLIENTE_NOME_FATURADO"
	ColCustomerTaxID       = "CLIENTE_CNPJ_BASE"
	ColBilled              = "VALOR_FATURADO"
	ColReturned            = "VALOR_DEVOLVIDO"
	ColBillingSupplierName = "FORNECEDOR_NOME_FATURADO"
	ColBillingSupplierCNPJ = "FORNECEDOR_CNPJ_FATURADO"
	ColBillingBranch       = "CODFILIAL_FATURAMENTO"

	ColOrderCustomerName = "CLIENTE_NOME"
	ColOrdered           = "VALOR_PEDIDO"
	ColOrderCount        = "PEDIDOS_QTD"
	ColOrderSupplierName = "FORNECEDOR_NOME_PEDIDO"
	ColOrderSupplierCNPJ = "FORNECEDOR_CNPJ_PEDIDO"
	ColOrderBranch       = "CODFILIAL_PEDIDO"
)

// DefaultBranch is synthesized when a feed carries no branch column at all,
// so branch aggregation never fails on its absence.
const DefaultBranch = "FILIAL_UNICA"

// Row is a single record of a normalized feed, keyed by canonical column name.
type Row map[string]string

// Dataset is a normalized tabular feed: upper-cased, renamed columns and
// string-valued rows in original file order.
type Dataset struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// HasColumn reports whether the dataset carries the named column.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can filter rows without mutating the
// shared (cached) dataset.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Columns: append([]string(nil), d.Columns...),
		Rows:    make([]Row, 0, len(d.Rows)),
	}
	for _, r := range d.Rows {
		row := make(Row, len(r))
		for k, v := range r {
			row[k] = v
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// Empty reports whether the dataset has no rows.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Rows) == 0
}
