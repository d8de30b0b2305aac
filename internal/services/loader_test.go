package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoqueChristian/analise-conexao/internal/models"
)

func newTestLoader(dir string) *Loader {
	return NewLoader(NewLocalSource(dir), NewFeedValidator(10*1024*1024))
}

func TestLoadBilling_CanonicalColumns(t *testing.T) {
	loader := newTestLoader("../../testdata")

	ds, err := loader.LoadBilling(context.Background(), "dados_conexao_unificada.csv")
	require.NoError(t, err)
	require.Len(t, ds.Rows, 4)

	// BOM stripped, headers upper-cased, source names renamed
	assert.True(t, ds.HasColumn(models.ColBillingCustomerName))
	assert.True(t, ds.HasColumn(models.ColCustomerTaxID))
	assert.True(t, ds.HasColumn(models.ColBilled))
	assert.True(t, ds.HasColumn(models.ColReturned))
	assert.True(t, ds.HasColumn(models.ColBillingSupplierName))
	assert.True(t, ds.HasColumn(models.ColBillingSupplierCNPJ))
	assert.True(t, ds.HasColumn(models.ColBillingBranch))

	// pass-through column survives the rename
	assert.True(t, ds.HasColumn("REGIAO"))
	assert.Equal(t, "SUL", ds.Rows[0]["REGIAO"])
}

func TestLoadBilling_CommaDecimalNormalized(t *testing.T) {
	loader := newTestLoader("../../testdata")

	ds, err := loader.LoadBilling(context.Background(), "dados_conexao_unificada.csv")
	require.NoError(t, err)

	// "1.500,50" becomes plain dot-decimal
	assert.Equal(t, "1500.50", ds.Rows[0][models.ColBilled])
	assert.Equal(t, "100.00", ds.Rows[0][models.ColReturned])
}

func TestLoadOrders_DotDecimalNormalized(t *testing.T) {
	loader := newTestLoader("../../testdata")

	ds, err := loader.LoadOrders(context.Background(), "dados_pedidos.csv")
	require.NoError(t, err)
	require.Len(t, ds.Rows, 2)

	assert.Equal(t, "3000.75", ds.Rows[0][models.ColOrdered])
	assert.Equal(t, "3", ds.Rows[0][models.ColOrderCount])
	assert.True(t, ds.HasColumn(models.ColOrderSupplierCNPJ))
}

func TestLoadBilling_MissingFile(t *testing.T) {
	loader := newTestLoader(t.TempDir())

	_, err := loader.LoadBilling(context.Background(), "nao_existe.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestLoadBilling_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dados.csv"), []byte{0x00, 0x01, 0x02, 0x03}, 0o644))

	loader := newTestLoader(dir)
	_, err := loader.LoadBilling(context.Background(), "dados.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestLoadBilling_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vazio.csv"), nil, 0o644))

	loader := newTestLoader(dir)
	_, err := loader.LoadBilling(context.Background(), "vazio.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestLoadBilling_AdoptsPlainCodfilial(t *testing.T) {
	// A feed variant that never had its branch column renamed upstream still
	// must end up with the canonical branch column.
	dir := t.TempDir()
	csv := "CLIENTE;CNPJ_CLIENTE;TOTAL_FATURADO;VALOR_DEVOLVIDO\nACME;111;100,00;0,00\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sem_filial.csv"), []byte(csv), 0o644))

	loader := newTestLoader(dir)
	ds, err := loader.LoadBilling(context.Background(), "sem_filial.csv")
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)

	assert.True(t, ds.HasColumn(models.ColBillingBranch))
	assert.Equal(t, models.DefaultBranch, ds.Rows[0][models.ColBillingBranch])
}

func TestLoadBilling_MissingOptionalColumnsDoNotFail(t *testing.T) {
	dir := t.TempDir()
	csv := "CLIENTE;CNPJ_CLIENTE;TOTAL_FATURADO;VALOR_DEVOLVIDO;CODFILIAL\nACME;111;100,00;0,00;03\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "minimo.csv"), []byte(csv), 0o644))

	loader := newTestLoader(dir)
	ds, err := loader.LoadBilling(context.Background(), "minimo.csv")
	require.NoError(t, err)

	// no supplier CNPJ column, no region column; loading still succeeds and
	// the CODFILIAL rename applies
	assert.False(t, ds.HasColumn(models.ColBillingSupplierCNPJ))
	assert.Equal(t, "03", ds.Rows[0][models.ColBillingBranch])
}

func TestNormalizeAmount(t *testing.T) {
	assert.Equal(t, "1500.50", normalizeAmount("1.500,50", true))
	assert.Equal(t, "2000.00", normalizeAmount("2.000,00", true))
	assert.Equal(t, "3000.75", normalizeAmount("3,000.75", false))
	assert.Equal(t, "0", normalizeAmount("", true))
	assert.Equal(t, "0", normalizeAmount("   ", false))
}
