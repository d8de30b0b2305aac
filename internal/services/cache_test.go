package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RoqueChristian/analise-conexao/internal/models"
)

func TestDatasetCache_MissThenHit(t *testing.T) {
	cache := NewDatasetCache()

	_, _, ok := cache.Get("fp1")
	assert.False(t, ok)

	billing := &models.Dataset{Columns: []string{"A"}}
	orders := &models.Dataset{Columns: []string{"B"}}
	cache.Set("fp1", billing, orders)

	gotBilling, gotOrders, ok := cache.Get("fp1")
	assert.True(t, ok)
	assert.Same(t, billing, gotBilling)
	assert.Same(t, orders, gotOrders)
	assert.Equal(t, 1, cache.Len())
}

func TestDatasetCache_DistinctFingerprints(t *testing.T) {
	cache := NewDatasetCache()

	cache.Set("fp1", &models.Dataset{}, &models.Dataset{})
	cache.Set("fp2", &models.Dataset{}, &models.Dataset{})

	_, _, ok := cache.Get("fp1")
	assert.True(t, ok)
	_, _, ok = cache.Get("fp2")
	assert.True(t, ok)
	assert.Equal(t, 2, cache.Len())
}
