package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gulfbooks/backend/internal/domain/shared"
)

// MovementType classifies a stock movement
type MovementType string

const (
	MovementTypeIn         MovementType = "IN"
	MovementTypeOut        MovementType = "OUT"
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
)

// IsValid checks if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment:
		return true
	}
	return false
}

// StockMovement is the audit record for every stock quantity change.
// Quantity is signed: positive for IN, negative for OUT, either sign
// for ADJUSTMENT.
type StockMovement struct {
	shared.BaseEntity
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null" json:"warehouse_id"`
	Type        MovementType    `gorm:"size:20;not null" json:"type"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"quantity"`
	Reference   string          `gorm:"size:100;index" json:"reference"`
	Notes       string          `gorm:"size:500" json:"notes"`
	MovedAt     time.Time       `gorm:"not null;index" json:"moved_at"`
	CreatedBy   uuid.UUID       `gorm:"type:uuid" json:"created_by"`
}

// TableName specifies the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement records one quantity change
func NewStockMovement(tenantID, createdBy, productID, warehouseID uuid.UUID, movementType MovementType, quantity decimal.Decimal, reference, notes string) (*StockMovement, error) {
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid stock movement type")
	}
	switch movementType {
	case MovementTypeIn:
		if !quantity.IsPositive() {
			return nil, shared.NewDomainError("INVALID_INPUT", "IN movement quantity must be positive")
		}
	case MovementTypeOut:
		if !quantity.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "OUT movement quantity must be negative")
		}
	case MovementTypeAdjustment:
		if quantity.IsZero() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Adjustment quantity cannot be zero")
		}
	}

	return &StockMovement{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    tenantID,
		ProductID:   productID,
		WarehouseID: warehouseID,
		Type:        movementType,
		Quantity:    quantity,
		Reference:   reference,
		Notes:       notes,
		MovedAt:     time.Now(),
		CreatedBy:   createdBy,
	}, nil
}
