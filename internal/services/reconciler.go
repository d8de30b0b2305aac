package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/RoqueChristian/analise-conexao/internal/models"
)

// RegionAll is the sentinel filter value that leaves both feeds unrestricted.
const RegionAll = "all"

// Reconciler joins the billing and order feeds into the four analytical
// views. It never mutates its inputs; filtering works on defensive copies.
type Reconciler struct {
	regionColumn string
}

// NewReconciler creates an engine grouping the region view by regionColumn.
func NewReconciler(regionColumn string) *Reconciler {
	return &Reconciler{regionColumn: strings.ToUpper(strings.TrimSpace(regionColumn))}
}

// Reconcile computes the customer, supplier, branch and region views over
// the given (optionally pre-filtered) feeds. Row order of each view is
// deterministic: join keys appear in first-seen file order, order-side keys
// before billing-only keys.
func (r *Reconciler) Reconcile(billing, orders *models.Dataset) *models.Reconciliation {
	return &models.Reconciliation{
		Customers: r.customerView(billing, orders),
		Suppliers: r.supplierView(billing, orders),
		Branches:  r.branchView(billing),
		Regions:   r.regionView(billing),
	}
}

// FilterByRegion restricts billing to rows of the selected region, then
// restricts orders to customers that appear in the filtered billing rows.
// Orders carry no region column, so the order-side restriction is always
// this two-hop filter through the customer-key intersection. The sentinel
// "all" (or an absent region column) passes both feeds through unchanged.
func (r *Reconciler) FilterByRegion(billing, orders *models.Dataset, region string) (*models.Dataset, *models.Dataset) {
	billing = billing.Clone()
	orders = orders.Clone()

	region = strings.TrimSpace(region)
	if region == "" || strings.EqualFold(region, RegionAll) || !billing.HasColumn(r.regionColumn) {
		return billing, orders
	}

	kept := billing.Rows[:0]
	customerKeys := make(map[string]bool)
	for _, row := range billing.Rows {
		if strings.TrimSpace(row[r.regionColumn]) != region {
			continue
		}
		kept = append(kept, row)
		customerKeys[NormalizeID(row[models.ColCustomerTaxID])] = true
	}
	billing.Rows = kept

	keptOrders := orders.Rows[:0]
	for _, row := range orders.Rows {
		if customerKeys[NormalizeID(row[models.ColCustomerTaxID])] {
			keptOrders = append(keptOrders, row)
		}
	}
	orders.Rows = keptOrders

	return billing, orders
}

// group accumulates first-seen display names and per-column sums for one key.
type group struct {
	name string
	sums map[string]decimal.Decimal
}

// groupBy sums the given columns per key, keeping the first-seen name in
// file order. The returned key slice preserves first-seen order so results
// stay deterministic across runs.
func groupBy(ds *models.Dataset, keyFn func(models.Row) string, nameCol string, sumCols ...string) (map[string]*group, []string) {
	groups := make(map[string]*group)
	var order []string

	for _, row := range ds.Rows {
		key := keyFn(row)
		g, ok := groups[key]
		if !ok {
			g = &group{name: row[nameCol], sums: make(map[string]decimal.Decimal, len(sumCols))}
			groups[key] = g
			order = append(order, key)
		}
		for _, col := range sumCols {
			g.sums[col] = g.sums[col].Add(amount(row[col]))
		}
	}

	return groups, order
}

// amount parses a load-normalized monetary string; anything unparseable
// counts as zero rather than failing the whole aggregation.
func amount(val string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(val))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func customerKey(row models.Row) string {
	return NormalizeID(row[models.ColCustomerTaxID])
}

func (r *Reconciler) customerView(billing, orders *models.Dataset) []models.CustomerSummary {
	billed, billedOrder := groupBy(billing, customerKey, models.ColBillingCustomerName, models.ColBilled, models.ColReturned)
	ordered, orderedOrder := groupBy(orders, customerKey, models.ColOrderCustomerName, models.ColOrdered)

	out := make([]models.CustomerSummary, 0, len(billedOrder)+len(orderedOrder))

	appendRow := func(key string) {
		o := ordered[key]
		b := billed[key]

		var row models.CustomerSummary
		row.Key = key
		if o != nil {
			row.Ordered = o.sums[models.ColOrdered]
			row.Name = o.name
		}
		if b != nil {
			row.Billed = b.sums[models.ColBilled]
			row.Returned = b.sums[models.ColReturned]
			// order-side name wins when present and non-empty
			if strings.TrimSpace(row.Name) == "" {
				row.Name = b.name
			}
		}
		row.NetBilled = row.Billed.Sub(row.Returned)
		row.FlowDelta = row.Ordered.Sub(row.Billed)
		out = append(out, row)
	}

	for _, key := range orderedOrder {
		appendRow(key)
	}
	for _, key := range billedOrder {
		if _, seen := ordered[key]; !seen {
			appendRow(key)
		}
	}

	return out
}

// supplierKeyFn picks the join key for one supplier row: the normalized tax
// ID when both feeds carry a supplier tax-ID column and this row's ID has
// digits, otherwise the cleaned supplier name.
func supplierKeyFn(cnpjCol, nameCol string, useCNPJ bool) func(models.Row) string {
	return func(row models.Row) string {
		if useCNPJ {
			if key := NormalizeID(row[cnpjCol]); key != "" {
				return key
			}
		}
		return CleanName(row[nameCol])
	}
}

func (r *Reconciler) supplierView(billing, orders *models.Dataset) []models.SupplierSummary {
	useCNPJ := billing.HasColumn(models.ColBillingSupplierCNPJ) && orders.HasColumn(models.ColOrderSupplierCNPJ)

	billed, billedOrder := groupBy(billing,
		supplierKeyFn(models.ColBillingSupplierCNPJ, models.ColBillingSupplierName, useCNPJ),
		models.ColBillingSupplierName, models.ColBilled, models.ColReturned)
	ordered, orderedOrder := groupBy(orders,
		supplierKeyFn(models.ColOrderSupplierCNPJ, models.ColOrderSupplierName, useCNPJ),
		models.ColOrderSupplierName, models.ColOrdered)

	out := make([]models.SupplierSummary, 0, len(billedOrder)+len(orderedOrder))

	appendRow := func(key string) {
		o := ordered[key]
		b := billed[key]

		var row models.SupplierSummary
		row.Key = key
		if o != nil {
			row.Ordered = o.sums[models.ColOrdered]
			row.Name = o.name
		}
		if b != nil {
			row.Billed = b.sums[models.ColBilled]
			row.Returned = b.sums[models.ColReturned]
			if strings.TrimSpace(row.Name) == "" {
				row.Name = b.name
			}
		}
		row.Name = CleanName(row.Name)
		row.FlowDelta = row.Ordered.Sub(row.Billed)
		out = append(out, row)
	}

	for _, key := range orderedOrder {
		appendRow(key)
	}
	for _, key := range billedOrder {
		if _, seen := ordered[key]; !seen {
			appendRow(key)
		}
	}

	return out
}

// branchView aggregates the billing feed only; orders carry no branch
// dimension, so Ordered is zero and FlowDelta the negation of Billed.
func (r *Reconciler) branchView(billing *models.Dataset) []models.BranchSummary {
	keyFn := func(row models.Row) string { return row[models.ColBillingBranch] }
	groups, order := groupBy(billing, keyFn, models.ColBillingBranch, models.ColBilled, models.ColReturned)

	out := make([]models.BranchSummary, 0, len(order))
	for _, key := range order {
		g := groups[key]
		billedTotal := g.sums[models.ColBilled]
		out = append(out, models.BranchSummary{
			Branch:    key,
			Billed:    billedTotal,
			Returned:  g.sums[models.ColReturned],
			NetBilled: billedTotal.Sub(g.sums[models.ColReturned]),
			FlowDelta: decimal.Zero.Sub(billedTotal),
		})
	}
	return out
}

// regionView mirrors branchView over the configurable region column. An
// absent column yields an empty view with the full schema rather than an
// error.
func (r *Reconciler) regionView(billing *models.Dataset) []models.RegionSummary {
	out := []models.RegionSummary{}
	if r.regionColumn == "" || !billing.HasColumn(r.regionColumn) {
		return out
	}

	keyFn := func(row models.Row) string { return row[r.regionColumn] }
	groups, order := groupBy(billing, keyFn, r.regionColumn, models.ColBilled, models.ColReturned)

	for _, key := range order {
		g := groups[key]
		billedTotal := g.sums[models.ColBilled]
		out = append(out, models.RegionSummary{
			Region:    key,
			Billed:    billedTotal,
			Returned:  g.sums[models.ColReturned],
			NetBilled: billedTotal.Sub(g.sums[models.ColReturned]),
			FlowDelta: decimal.Zero.Sub(billedTotal),
		})
	}
	return out
}
