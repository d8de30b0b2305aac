package services

import (
	"context"
	"fmt"

	"github.com/RoqueChristian/analise-conexao/internal/models"
)

// Analysis is the request-facing facade over loader, cache and engine: one
// call per UI interaction, full recomputation over in-memory feeds.
type Analysis struct {
	loader      *Loader
	cache       *DatasetCache
	reconciler  *Reconciler
	billingFile string
	ordersFile  string
}

// NewAnalysis wires the reconciliation pipeline for the two named exports.
func NewAnalysis(loader *Loader, cache *DatasetCache, reconciler *Reconciler, billingFile, ordersFile string) *Analysis {
	return &Analysis{
		loader:      loader,
		cache:       cache,
		reconciler:  reconciler,
		billingFile: billingFile,
		ordersFile:  ordersFile,
	}
}

// Datasets returns the normalized feeds, served from the fingerprint-keyed
// cache when the files are unchanged. Missing inputs surface as
// ErrInsufficientData before any parsing happens.
func (a *Analysis) Datasets(ctx context.Context) (billing, orders *models.Dataset, err error) {
	billingFP, err := a.loader.source.Fingerprint(ctx, a.billingFile)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrInsufficientData, a.billingFile)
	}
	ordersFP, err := a.loader.source.Fingerprint(ctx, a.ordersFile)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrInsufficientData, a.ordersFile)
	}

	key := billingFP + "|" + ordersFP
	if billing, orders, ok := a.cache.Get(key); ok {
		return billing, orders, nil
	}

	billing, err = a.loader.LoadBilling(ctx, a.billingFile)
	if err != nil {
		return nil, nil, err
	}
	orders, err = a.loader.LoadOrders(ctx, a.ordersFile)
	if err != nil {
		return nil, nil, err
	}

	a.cache.Set(key, billing, orders)
	return billing, orders, nil
}

// Reconcile loads (or reuses) the feeds, applies the optional region filter
// and runs the engine. The cached datasets are never mutated; the filter
// works on copies.
func (a *Analysis) Reconcile(ctx context.Context, region string) (*models.Reconciliation, error) {
	billing, orders, err := a.Datasets(ctx)
	if err != nil {
		return nil, err
	}

	billing, orders = a.reconciler.FilterByRegion(billing, orders, region)
	return a.reconciler.Reconcile(billing, orders), nil
}
