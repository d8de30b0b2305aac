package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const analysisBillingCSV = "CLIENTE;CNPJ_CLIENTE;TOTAL_FATURADO;VALOR_DEVOLVIDO;FORNECEDOR;CNPJ_FORNECEDOR;CODFILIAL;REGIAO\n" +
	"ACME;111;100,00;10,00;Alfa;11;01;SUL\n" +
	"BETA;222;200,00;0,00;Alfa;11;02;NORTE\n"

const analysisOrdersCSV = "CLIENTE_NOME;CLIENTE_CNPJ;TOTAL_VALOR_PEDIDO;TOTAL_PEDIDOS_QTD;FORNECEDOR_NOME;FORNECEDOR_CNPJ;CODFILIAL\n" +
	"ACME Ltda;111;300.00;2;Alfa;11;01\n" +
	"GAMA;333;50.00;1;Alfa;11;01\n"

func newTestAnalysis(t *testing.T, dir string) (*Analysis, *DatasetCache) {
	t.Helper()
	cache := NewDatasetCache()
	loader := NewLoader(NewLocalSource(dir), NewFeedValidator(0))
	analysis := NewAnalysis(loader, cache, NewReconciler("REGIAO"), "faturamento.csv", "pedidos.csv")
	return analysis, cache
}

func writeAnalysisFixtures(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "faturamento.csv"), []byte(analysisBillingCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pedidos.csv"), []byte(analysisOrdersCSV), 0o644))
}

func TestAnalysis_ReconcileEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeAnalysisFixtures(t, dir)
	analysis, _ := newTestAnalysis(t, dir)

	rec, err := analysis.Reconcile(context.Background(), RegionAll)
	require.NoError(t, err)

	require.Len(t, rec.Customers, 3)
	acme := findCustomer(t, rec.Customers, "111")
	assert.Equal(t, "ACME Ltda", acme.Name)
	assert.True(t, acme.Ordered.Equal(decimal.NewFromInt(300)))
	assert.True(t, acme.Billed.Equal(decimal.NewFromInt(100)))
	assert.True(t, acme.FlowDelta.Equal(decimal.NewFromInt(200)))

	require.Len(t, rec.Regions, 2)
}

func TestAnalysis_RegionFilterNeverLeaksForeignOrders(t *testing.T) {
	dir := t.TempDir()
	writeAnalysisFixtures(t, dir)
	analysis, _ := newTestAnalysis(t, dir)

	rec, err := analysis.Reconcile(context.Background(), "SUL")
	require.NoError(t, err)

	// only ACME is billed in SUL; GAMA's order must not leak through
	require.Len(t, rec.Customers, 1)
	assert.Equal(t, "111", rec.Customers[0].Key)
}

func TestAnalysis_EmptyAfterFilterIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	writeAnalysisFixtures(t, dir)
	analysis, _ := newTestAnalysis(t, dir)

	rec, err := analysis.Reconcile(context.Background(), "OESTE")
	require.NoError(t, err, "no matching rows is a valid, empty result")
	assert.Empty(t, rec.Customers)
}

func TestAnalysis_MissingInputIsInsufficientData(t *testing.T) {
	analysis, _ := newTestAnalysis(t, t.TempDir())

	_, err := analysis.Reconcile(context.Background(), RegionAll)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestAnalysis_DatasetsAreCached(t *testing.T) {
	dir := t.TempDir()
	writeAnalysisFixtures(t, dir)
	analysis, cache := newTestAnalysis(t, dir)

	billing1, _, err := analysis.Datasets(context.Background())
	require.NoError(t, err)
	billing2, _, err := analysis.Datasets(context.Background())
	require.NoError(t, err)

	assert.Same(t, billing1, billing2, "unchanged fingerprints must hit the cache")
	assert.Equal(t, 1, cache.Len())
}

func TestAnalysis_ChangedFileMissesCache(t *testing.T) {
	dir := t.TempDir()
	writeAnalysisFixtures(t, dir)
	analysis, cache := newTestAnalysis(t, dir)

	billing1, _, err := analysis.Datasets(context.Background())
	require.NoError(t, err)

	// replace the billing export and bump its mtime so the fingerprint moves
	updated := analysisBillingCSV + "DELTA;444;50,00;0,00;Alfa;11;01;SUL\n"
	path := filepath.Join(dir, "faturamento.csv")
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))
	require.NoError(t, os.Chtimes(path, time.Now(), time.Now().Add(2*time.Second)))

	billing2, _, err := analysis.Datasets(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, billing1, billing2)
	assert.Len(t, billing2.Rows, 3)
	assert.Equal(t, 2, cache.Len())
}
