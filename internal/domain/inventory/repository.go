package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gulfbooks/backend/internal/domain/shared"
)

// StockRepository persists stock rows and their movement audit trail.
// ApplyMovement is the only way quantities change: it upserts the stock
// row, applies the movement's signed quantity and appends the movement
// record in the same operation.
type StockRepository interface {
	Find(ctx context.Context, tenantID, productID, warehouseID uuid.UUID) (*Stock, error)
	List(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID) ([]*Stock, error)
	ApplyMovement(ctx context.Context, movement *StockMovement) (*Stock, error)
	Movements(ctx context.Context, tenantID uuid.UUID, productID *uuid.UUID, from, to *time.Time, page shared.Pagination) (shared.Paginated[*StockMovement], error)
}
