package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gulfbooks/backend/internal/domain/shared"
)

// Stock is the on-hand quantity of one product in one warehouse.
// Quantity never changes without a matching StockMovement row; the
// repository enforces that pairing.
type Stock struct {
	shared.TenantAggregateRoot
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:,composite:tenant,priority:2" json:"product_id"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:,composite:tenant,priority:3" json:"warehouse_id"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"quantity"`
}

// TableName specifies the table name for GORM
func (Stock) TableName() string {
	return "stocks"
}

// NewStock creates an empty stock row
func NewStock(tenantID, createdBy, productID, warehouseID uuid.UUID) *Stock {
	return &Stock{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID, createdBy),
		ProductID:           productID,
		WarehouseID:         warehouseID,
		Quantity:            decimal.Zero,
	}
}

// Apply adjusts the quantity by a signed delta. Negative resulting
// quantities are rejected.
func (s *Stock) Apply(delta decimal.Decimal) error {
	next := s.Quantity.Add(delta)
	if next.IsNegative() {
		return shared.ErrInsufficientStock
	}
	s.Quantity = next
	s.IncrementVersion()
	return nil
}
