package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gulfbooks/backend/internal/domain/accounting"
	"github.com/gulfbooks/backend/internal/domain/shared"
)

// GormInvoiceSeriesRepository implements accounting.InvoiceSeriesRepository using GORM
type GormInvoiceSeriesRepository struct {
	db *gorm.DB
}

// NewGormInvoiceSeriesRepository creates a new invoice series repository
func NewGormInvoiceSeriesRepository(db *gorm.DB) *GormInvoiceSeriesRepository {
	return &GormInvoiceSeriesRepository{db: db}
}

// Save persists an invoice series
func (r *GormInvoiceSeriesRepository) Save(ctx context.Context, series *accounting.InvoiceSeries) error {
	return dbFromContext(ctx, r.db).Save(series).Error
}

// Find retrieves a series by tenant and prefix
func (r *GormInvoiceSeriesRepository) Find(ctx context.Context, tenantID uuid.UUID, prefix string) (*accounting.InvoiceSeries, error) {
	var series accounting.InvoiceSeries
	err := dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND prefix = ?", tenantID, prefix).
		First(&series).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &series, nil
}

// ReserveNext atomically claims the next sequence value. The UPDATE
// takes a row lock, so two concurrent documents on the same series
// serialize here and never receive the same number. Must run inside a
// transaction; the lock is held until it ends.
func (r *GormInvoiceSeriesRepository) ReserveNext(ctx context.Context, tenantID uuid.UUID, prefix string) (int64, error) {
	db := dbFromContext(ctx, r.db)

	result := db.Model(&accounting.InvoiceSeries{}).
		Where("tenant_id = ? AND prefix = ?", tenantID, prefix).
		Update("next_number", gorm.Expr("next_number + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, shared.ErrNotFound
	}

	var series accounting.InvoiceSeries
	if err := db.Where("tenant_id = ? AND prefix = ?", tenantID, prefix).First(&series).Error; err != nil {
		return 0, err
	}
	return series.NextNumber - 1, nil
}
