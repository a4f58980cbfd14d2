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

// GormSaleRepository implements trade.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new sale repository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Save persists a sale together with its items
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	return dbFromContext(ctx, r.db).Save(sale).Error
}

// FindByID retrieves a sale with its items
func (r *GormSaleRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*trade.Sale, error) {
	var sale trade.Sale
	err := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByNumber retrieves a sale by invoice number
func (r *GormSaleRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (*trade.Sale, error) {
	var sale trade.Sale
	err := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND invoice_number = ?", tenantID, invoiceNumber).
		First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// List retrieves a filtered page of sales, newest first
func (r *GormSaleRepository) List(ctx context.Context, tenantID uuid.UUID, filter trade.DocumentFilter, page shared.Pagination) (shared.Paginated[*trade.Sale], error) {
	query := dbFromContext(ctx, r.db).Model(&trade.Sale{}).Where("tenant_id = ?", tenantID)
	if filter.From != nil {
		query = query.Where("invoice_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("invoice_date <= ?", *filter.To)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*trade.Sale]{}, err
	}

	var sales []*trade.Sale
	err := query.
		Preload("Items").
		Order("invoice_date DESC, invoice_number DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&sales).Error
	if err != nil {
		return shared.Paginated[*trade.Sale]{}, err
	}
	return shared.Paginated[*trade.Sale]{
		Items:      sales,
		TotalCount: total,
		Page:       page.Page,
		PageSize:   page.Limit(),
	}, nil
}

// SumOutputVAT totals output VAT over non-cancelled invoices in a range
func (r *GormSaleRepository) SumOutputVAT(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	return sumDocumentColumn(dbFromContext(ctx, r.db), &trade.Sale{}, "output_vat", "invoice_date", tenantID, from, to)
}

// sumDocumentColumn aggregates one decimal column over non-cancelled
// documents of a model in an inclusive date range.
func sumDocumentColumn(db *gorm.DB, model interface{}, column, dateColumn string, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := db.Model(model).
		Select("COALESCE(SUM("+column+"), 0) AS total").
		Where("tenant_id = ?", tenantID).
		Where("status <> ?", trade.DocumentStatusCancelled).
		Where(dateColumn+" >= ? AND "+dateColumn+" <= ?", from, to).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}
