package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gulfbooks/backend/internal/domain/inventory"
	"github.com/gulfbooks/backend/internal/domain/shared"
)

func TestGormStockRepository_ApplyMovement(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	userID := uuid.New()
	productID := uuid.New()
	warehouseID := uuid.New()

	t.Run("first movement creates the stock row", func(t *testing.T) {
		movement, err := inventory.NewStockMovement(tenantID, userID, productID, warehouseID, inventory.MovementTypeIn, decimal.NewFromInt(50), "PO-2024-000001", "")
		require.NoError(t, err)

		stock, err := repo.ApplyMovement(ctx, movement)
		require.NoError(t, err)
		assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(50)))
	})

	t.Run("out movement reduces quantity and is audited", func(t *testing.T) {
		movement, err := inventory.NewStockMovement(tenantID, userID, productID, warehouseID, inventory.MovementTypeOut, decimal.NewFromInt(-20), "SI-2024-000001", "")
		require.NoError(t, err)

		stock, err := repo.ApplyMovement(ctx, movement)
		require.NoError(t, err)
		assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(30)))

		history, err := repo.Movements(ctx, tenantID, &productID, nil, nil, shared.Pagination{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), history.TotalCount)
	})

	t.Run("overdraw is rejected and nothing is recorded", func(t *testing.T) {
		movement, err := inventory.NewStockMovement(tenantID, userID, productID, warehouseID, inventory.MovementTypeOut, decimal.NewFromInt(-100), "SI-2024-000002", "")
		require.NoError(t, err)

		_, err = repo.ApplyMovement(ctx, movement)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		stock, err := repo.Find(ctx, tenantID, productID, warehouseID)
		require.NoError(t, err)
		assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(30)))

		history, err := repo.Movements(ctx, tenantID, &productID, nil, nil, shared.Pagination{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), history.TotalCount)
	})

	t.Run("adjustment movement", func(t *testing.T) {
		movement, err := inventory.NewStockMovement(tenantID, userID, productID, warehouseID, inventory.MovementTypeAdjustment, decimal.NewFromInt(-5), "", "stocktake correction")
		require.NoError(t, err)

		stock, err := repo.ApplyMovement(ctx, movement)
		require.NoError(t, err)
		assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(25)))
	})

	t.Run("stock is scoped per warehouse", func(t *testing.T) {
		otherWarehouse := uuid.New()
		movement, err := inventory.NewStockMovement(tenantID, userID, productID, otherWarehouse, inventory.MovementTypeIn, decimal.NewFromInt(7), "PO-2024-000002", "")
		require.NoError(t, err)

		stock, err := repo.ApplyMovement(ctx, movement)
		require.NoError(t, err)
		assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(7)))

		stocks, err := repo.List(ctx, tenantID, nil)
		require.NoError(t, err)
		assert.Len(t, stocks, 2)
	})
}
