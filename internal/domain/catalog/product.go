package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gulfbooks/backend/internal/domain/shared"
)

// Product is a sellable item in the tenant's catalog. SellingPrice feeds
// sale lines, CostPrice feeds purchase lines, ReorderLevel drives the
// low-stock report.
type Product struct {
	shared.TenantAggregateRoot
	Name         string          `gorm:"size:255;not null" json:"name"`
	SKU          string          `gorm:"size:100;not null;uniqueIndex:,composite:tenant,priority:2" json:"sku"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"selling_price"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"cost_price"`
	ReorderLevel decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"reorder_level"`
	IsActive     bool            `gorm:"not null;default:true" json:"is_active"`
}

// TableName specifies the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates an active catalog product
func NewProduct(tenantID, createdBy uuid.UUID, name, sku string, sellingPrice, costPrice decimal.Decimal) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	if strings.TrimSpace(sku) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product SKU is required")
	}
	if sellingPrice.IsNegative() || costPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product prices cannot be negative")
	}

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID, createdBy),
		Name:                strings.TrimSpace(name),
		SKU:                 strings.TrimSpace(sku),
		SellingPrice:        sellingPrice,
		CostPrice:           costPrice,
		ReorderLevel:        decimal.Zero,
		IsActive:            true,
	}, nil
}

// SetReorderLevel updates the low-stock threshold
func (p *Product) SetReorderLevel(level decimal.Decimal) error {
	if level.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Reorder level cannot be negative")
	}
	p.ReorderLevel = level
	p.IncrementVersion()
	return nil
}

// UpdatePrices changes the selling and cost prices
func (p *Product) UpdatePrices(sellingPrice, costPrice decimal.Decimal) error {
	if sellingPrice.IsNegative() || costPrice.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Product prices cannot be negative")
	}
	p.SellingPrice = sellingPrice
	p.CostPrice = costPrice
	p.IncrementVersion()
	return nil
}

// Deactivate removes the product from sale without deleting history
func (p *Product) Deactivate() {
	p.IsActive = false
	p.IncrementVersion()
}

// ProductRepository persists catalog products
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*Product, error)
	List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]*Product, error)
}
