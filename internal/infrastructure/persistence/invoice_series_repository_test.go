package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gulfbooks/backend/internal/domain/accounting"
	"github.com/gulfbooks/backend/internal/domain/shared"
)

func TestGormInvoiceSeriesRepository_ReserveNext(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceSeriesRepository(db)
	txManager := NewGormTxManager(db)
	ctx := context.Background()
	tenantID := uuid.New()

	series, err := accounting.NewInvoiceSeries(tenantID, "SI")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, series))

	t.Run("numbers are sequential", func(t *testing.T) {
		var first, second int64
		err := txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
			var err error
			first, err = repo.ReserveNext(txCtx, tenantID, "SI")
			return err
		})
		require.NoError(t, err)

		err = txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
			var err error
			second, err = repo.ReserveNext(txCtx, tenantID, "SI")
			return err
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1), first)
		assert.Equal(t, int64(2), second)
	})

	t.Run("rolled back reservation is reissued", func(t *testing.T) {
		boom := assert.AnError
		err := txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
			if _, err := repo.ReserveNext(txCtx, tenantID, "SI"); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		var next int64
		err = txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
			var err error
			next, err = repo.ReserveNext(txCtx, tenantID, "SI")
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), next)
	})

	t.Run("unknown series", func(t *testing.T) {
		err := txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
			_, err := repo.ReserveNext(txCtx, tenantID, "CN")
			return err
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("series are isolated per tenant", func(t *testing.T) {
		otherTenant := uuid.New()
		otherSeries, err := accounting.NewInvoiceSeries(otherTenant, "SI")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, otherSeries))

		var reserved int64
		err = txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
			reserved, err = repo.ReserveNext(txCtx, otherTenant, "SI")
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), reserved)
	})
}
