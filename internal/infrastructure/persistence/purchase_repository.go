package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gulfbooks/backend/internal/domain/shared"
	"github.com/gulfbooks/backend/internal/domain/trade"
)

// GormPurchaseRepository implements trade.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new purchase repository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// Save persists a purchase together with its items
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	return dbFromContext(ctx, r.db).Save(purchase).Error
}

// FindByID retrieves a purchase with its items
func (r *GormPurchaseRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	err := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByNumber retrieves a purchase by order number
func (r *GormPurchaseRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*trade.Purchase, error) {
	var purchase trade.Purchase
	err := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND order_number = ?", tenantID, orderNumber).
		First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// List retrieves a filtered page of purchases, newest first
func (r *GormPurchaseRepository) List(ctx context.Context, tenantID uuid.UUID, filter trade.DocumentFilter, page shared.Pagination) (shared.Paginated[*trade.Purchase], error) {
	query := dbFromContext(ctx, r.db).Model(&trade.Purchase{}).Where("tenant_id = ?", tenantID)
	if filter.From != nil {
		query = query.Where("order_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("order_date <= ?", *filter.To)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*trade.Purchase]{}, err
	}

	var purchases []*trade.Purchase
	err := query.
		Preload("Items").
		Order("order_date DESC, order_number DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&purchases).Error
	if err != nil {
		return shared.Paginated[*trade.Purchase]{}, err
	}
	return shared.Paginated[*trade.Purchase]{
		Items:      purchases,
		TotalCount: total,
		Page:       page.Page,
		PageSize:   page.Limit(),
	}, nil
}

// SumInputVAT totals input VAT over non-cancelled orders in a range
func (r *GormPurchaseRepository) SumInputVAT(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	return sumDocumentColumn(dbFromContext(ctx, r.db), &trade.Purchase{}, "input_vat", "order_date", tenantID, from, to)
}
