package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gulfbooks/backend/internal/domain/shared"
)

// DocumentFilter narrows list queries over trade documents
type DocumentFilter struct {
	From   *time.Time
	To     *time.Time
	Status *DocumentStatus
}

// SaleRepository persists sales invoices
type SaleRepository interface {
	Save(ctx context.Context, sale *Sale) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)
	FindByNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (*Sale, error)
	List(ctx context.Context, tenantID uuid.UUID, filter DocumentFilter, page shared.Pagination) (shared.Paginated[*Sale], error)
	// SumOutputVAT totals output VAT over non-cancelled invoices dated in
	// the inclusive [from, to] range.
	SumOutputVAT(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
}

// PurchaseRepository persists purchase orders
type PurchaseRepository interface {
	Save(ctx context.Context, purchase *Purchase) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Purchase, error)
	FindByNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*Purchase, error)
	List(ctx context.Context, tenantID uuid.UUID, filter DocumentFilter, page shared.Pagination) (shared.Paginated[*Purchase], error)
	// SumInputVAT totals input VAT over non-cancelled orders dated in the
	// inclusive [from, to] range.
	SumInputVAT(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
}
