package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/RoqueChristian/analise-conexao/internal/models"
)

// ErrInsufficientData signals that a required export could not be read at
// all. Callers must surface it distinctly from an empty-after-filter result.
var ErrInsufficientData = errors.New("insufficient data: source files unavailable")

// billingRenames maps the billing export's column names onto the canonical
// schema. Renaming is best-effort: absent source columns are simply skipped.
var billingRenames = map[string]string{
	"CLIENTE":         models.ColBillingCustomerName,
	"CNPJ_CLIENTE":    models.ColCustomerTaxID,
	"TOTAL_FATURADO":  models.ColBilled,
	"VALOR_DEVOLVIDO": models.ColReturned,
	"FORNECEDOR":      models.ColBillingSupplierName,
	"CNPJ_FORNECEDOR": models.ColBillingSupplierCNPJ,
	"CODFILIAL":       models.ColBillingBranch,
}

// orderRenames maps the order export's column names onto the canonical schema.
var orderRenames = map[string]string{
	"CLIENTE_NOME":       models.ColOrderCustomerName,
	"CLIENTE_CNPJ":       models.ColCustomerTaxID,
	"TOTAL_VALOR_PEDIDO": models.ColOrdered,
	"TOTAL_PEDIDOS_QTD":  models.ColOrderCount,
	"FORNECEDOR_NOME":    models.ColOrderSupplierName,
	"FORNECEDOR_CNPJ":    models.ColOrderSupplierCNPJ,
	"CODFILIAL":          models.ColOrderBranch,
}

// Loader parses the two semicolon-separated exports into normalized datasets.
// The billing feed uses comma decimals, the order feed dot decimals.
type Loader struct {
	source    FileSource
	validator *FeedValidator
}

// NewLoader creates a loader reading from the given file source.
func NewLoader(source FileSource, validator *FeedValidator) *Loader {
	return &Loader{source: source, validator: validator}
}

// LoadBilling loads and normalizes the billing/connection export.
// A missing or unreadable file is reported as ErrInsufficientData.
func (l *Loader) LoadBilling(ctx context.Context, name string) (*models.Dataset, error) {
	ds, err := l.loadCSV(ctx, name, billingRenames)
	if err != nil {
		return nil, err
	}

	ensureBranchColumn(ds, models.ColBillingBranch)

	normalizeAmountColumn(ds, models.ColBilled, true)
	normalizeAmountColumn(ds, models.ColReturned, true)
	return ds, nil
}

// LoadOrders loads and normalizes the order export.
func (l *Loader) LoadOrders(ctx context.Context, name string) (*models.Dataset, error) {
	ds, err := l.loadCSV(ctx, name, orderRenames)
	if err != nil {
		return nil, err
	}

	ensureBranchColumn(ds, models.ColOrderBranch)

	normalizeAmountColumn(ds, models.ColOrdered, false)
	normalizeAmountColumn(ds, models.ColOrderCount, false)
	return ds, nil
}

// loadCSV parses a semicolon-separated export, upper-cases its headers and
// applies the canonical rename map. Columns outside the map pass through
// unchanged.
func (l *Loader) loadCSV(ctx context.Context, name string, renames map[string]string) (*models.Dataset, error) {
	file, err := l.source.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInsufficientData, name)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrInsufficientData, name, err)
	}
	if err := l.validator.ValidateCSV(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInsufficientData, name, err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: %s is empty", ErrInsufficientData, name)
		}
		return nil, fmt.Errorf("%w: failed to read %s headers: %v", ErrInsufficientData, name, err)
	}

	columns := make([]string, len(headers))
	for i, h := range headers {
		h = strings.ToUpper(strings.TrimSpace(stripBOM(h)))
		if canonical, ok := renames[h]; ok {
			h = canonical
		}
		columns[i] = h
	}

	ds := &models.Dataset{Columns: columns}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read %s: %v", ErrInsufficientData, name, err)
		}

		row := make(models.Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			} else {
				row[col] = ""
			}
		}
		ds.Rows = append(ds.Rows, row)
	}

	return ds, nil
}

// ensureBranchColumn guarantees the canonical branch column exists. CODFILIAL
// is adopted through the rename maps; feeds without it get the constant
// fallback label on every row.
func ensureBranchColumn(ds *models.Dataset, canonical string) {
	if ds.HasColumn(canonical) {
		return
	}

	for _, row := range ds.Rows {
		row[canonical] = models.DefaultBranch
	}
	ds.Columns = append(ds.Columns, canonical)
}

// normalizeAmountColumn rewrites a monetary column to plain dot-decimal form
// according to the feed's decimal convention, so downstream arithmetic never
// cares which export a value came from.
func normalizeAmountColumn(ds *models.Dataset, col string, commaDecimal bool) {
	if !ds.HasColumn(col) {
		return
	}
	for _, row := range ds.Rows {
		row[col] = normalizeAmount(row[col], commaDecimal)
	}
}

// normalizeAmount converts "1.234,56" (comma decimal) or "1,234.56" (dot
// decimal) to "1234.56". Empty values become "0".
func normalizeAmount(val string, commaDecimal bool) string {
	s := strings.TrimSpace(val)
	if s == "" {
		return "0"
	}
	if commaDecimal {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	return s
}

// stripBOM removes the UTF-8 byte order mark the billing export carries on
// its first header cell.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
