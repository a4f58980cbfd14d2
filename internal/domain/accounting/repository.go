package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepository persists ledger accounts
type AccountRepository interface {
	Save(ctx context.Context, account *Account) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Account, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Account, error)
	FindByCodes(ctx context.Context, tenantID uuid.UUID, codes []string) (map[string]*Account, error)
	List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]*Account, error)
	// AdjustBalance applies a signed delta to the cached balance in place
	AdjustBalance(ctx context.Context, tenantID, accountID uuid.UUID, delta decimal.Decimal) error
}

// AccountActivity aggregates journal lines for one account
type AccountActivity struct {
	AccountID   uuid.UUID
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// JournalEntryRepository persists journal entries and derives report
// aggregations from their lines.
type JournalEntryRepository interface {
	Save(ctx context.Context, entry *JournalEntry) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*JournalEntry, error)
	FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*JournalEntry, error)
	List(ctx context.Context, tenantID uuid.UUID, from, to *time.Time) ([]*JournalEntry, error)
	// ActivityByAccount sums debit and credit lines per account for all
	// entries dated on or before asOf.
	ActivityByAccount(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]AccountActivity, error)
	// ActivityByAccountBetween sums lines for entries dated within the
	// inclusive [from, to] range, restricted to accounts of the given type.
	ActivityByAccountBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time, accountType AccountType) ([]AccountActivity, error)
}

// InvoiceSeriesRepository persists invoice series and hands out numbers
type InvoiceSeriesRepository interface {
	Save(ctx context.Context, series *InvoiceSeries) error
	Find(ctx context.Context, tenantID uuid.UUID, prefix string) (*InvoiceSeries, error)
	// ReserveNext atomically claims and returns the next sequence value for
	// the series. Must be called inside a transaction; the claimed row stays
	// locked until the transaction ends.
	ReserveNext(ctx context.Context, tenantID uuid.UUID, prefix string) (int64, error)
}
