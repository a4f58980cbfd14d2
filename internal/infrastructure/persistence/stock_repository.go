package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gulfbooks/backend/internal/domain/inventory"
	"github.com/gulfbooks/backend/internal/domain/shared"
)

// GormStockRepository implements inventory.StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new stock repository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// Find retrieves one stock row
func (r *GormStockRepository) Find(ctx context.Context, tenantID, productID, warehouseID uuid.UUID) (*inventory.Stock, error) {
	var stock inventory.Stock
	err := dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND product_id = ? AND warehouse_id = ?", tenantID, productID, warehouseID).
		First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// List retrieves stock rows, optionally for one warehouse
func (r *GormStockRepository) List(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID) ([]*inventory.Stock, error) {
	query := dbFromContext(ctx, r.db).Where("tenant_id = ?", tenantID)
	if warehouseID != nil {
		query = query.Where("warehouse_id = ?", *warehouseID)
	}
	var stocks []*inventory.Stock
	if err := query.Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// ApplyMovement changes a stock quantity and appends the movement audit
// record in the same operation. The stock row is created on first use.
func (r *GormStockRepository) ApplyMovement(ctx context.Context, movement *inventory.StockMovement) (*inventory.Stock, error) {
	db := dbFromContext(ctx, r.db)

	var stock inventory.Stock
	err := db.
		Where("tenant_id = ? AND product_id = ? AND warehouse_id = ?", movement.TenantID, movement.ProductID, movement.WarehouseID).
		First(&stock).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		stock = *inventory.NewStock(movement.TenantID, movement.CreatedBy, movement.ProductID, movement.WarehouseID)
	case err != nil:
		return nil, err
	}

	if err := stock.Apply(movement.Quantity); err != nil {
		return nil, err
	}
	if err := db.Save(&stock).Error; err != nil {
		return nil, err
	}
	if err := db.Create(movement).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

// Movements retrieves a page of movement history, newest first
func (r *GormStockRepository) Movements(ctx context.Context, tenantID uuid.UUID, productID *uuid.UUID, from, to *time.Time, page shared.Pagination) (shared.Paginated[*inventory.StockMovement], error) {
	query := dbFromContext(ctx, r.db).Model(&inventory.StockMovement{}).Where("tenant_id = ?", tenantID)
	if productID != nil {
		query = query.Where("product_id = ?", *productID)
	}
	if from != nil {
		query = query.Where("moved_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("moved_at <= ?", *to)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*inventory.StockMovement]{}, err
	}

	var movements []*inventory.StockMovement
	err := query.
		Order("moved_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&movements).Error
	if err != nil {
		return shared.Paginated[*inventory.StockMovement]{}, err
	}
	return shared.Paginated[*inventory.StockMovement]{
		Items:      movements,
		TotalCount: total,
		Page:       page.Page,
		PageSize:   page.Limit(),
	}, nil
}
