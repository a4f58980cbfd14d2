package shared

import "github.com/google/uuid"

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"default:1"`
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// IncrementVersion increments the aggregate version for optimistic locking
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// TenantAggregateRoot is an aggregate root scoped to a tenant
type TenantAggregateRoot struct {
	BaseAggregateRoot
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:,composite:tenant,priority:1"`
	CreatedBy uuid.UUID `gorm:"type:uuid"`
}

// NewTenantAggregateRoot creates a new tenant-scoped aggregate root
func NewTenantAggregateRoot(tenantID, createdBy uuid.UUID) TenantAggregateRoot {
	return TenantAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		TenantID:          tenantID,
		CreatedBy:         createdBy,
	}
}
