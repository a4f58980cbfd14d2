package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()

	product, err := NewProduct(tenantID, userID, "Basmati Rice 5kg", "RICE-5KG", decimal.RequireFromString("25.50"), decimal.RequireFromString("18"))
	require.NoError(t, err)
	assert.True(t, product.IsActive)
	assert.True(t, product.ReorderLevel.IsZero())

	_, err = NewProduct(tenantID, userID, "", "SKU", decimal.Zero, decimal.Zero)
	assert.Error(t, err)

	_, err = NewProduct(tenantID, userID, "Name", "SKU", decimal.NewFromInt(-1), decimal.Zero)
	assert.Error(t, err)
}

func TestProduct_SetReorderLevel(t *testing.T) {
	product, err := NewProduct(uuid.New(), uuid.New(), "Item", "SKU-1", decimal.NewFromInt(10), decimal.NewFromInt(5))
	require.NoError(t, err)

	require.NoError(t, product.SetReorderLevel(decimal.NewFromInt(20)))
	assert.True(t, product.ReorderLevel.Equal(decimal.NewFromInt(20)))

	assert.Error(t, product.SetReorderLevel(decimal.NewFromInt(-1)))
}
