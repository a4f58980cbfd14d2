package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gulfbooks/backend/internal/domain/catalog"
	"github.com/gulfbooks/backend/internal/domain/shared"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Save persists a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return dbFromContext(ctx, r.db).Save(product).Error
}

// FindByID retrieves a product by ID within a tenant
func (r *GormProductRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	err := dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySKU retrieves a product by SKU within a tenant
func (r *GormProductRepository) FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*catalog.Product, error) {
	var product catalog.Product
	err := dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND sku = ?", tenantID, sku).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// List retrieves products ordered by name
func (r *GormProductRepository) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]*catalog.Product, error) {
	query := dbFromContext(ctx, r.db).Where("tenant_id = ?", tenantID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var products []*catalog.Product
	if err := query.Order("name").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
