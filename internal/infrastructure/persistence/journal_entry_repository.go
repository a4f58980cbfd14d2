package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gulfbooks/backend/internal/domain/accounting"
	"github.com/gulfbooks/backend/internal/domain/shared"
)

// GormJournalEntryRepository implements accounting.JournalEntryRepository using GORM
type GormJournalEntryRepository struct {
	db *gorm.DB
}

// NewGormJournalEntryRepository creates a new journal entry repository
func NewGormJournalEntryRepository(db *gorm.DB) *GormJournalEntryRepository {
	return &GormJournalEntryRepository{db: db}
}

// Save persists a journal entry together with its lines
func (r *GormJournalEntryRepository) Save(ctx context.Context, entry *accounting.JournalEntry) error {
	return dbFromContext(ctx, r.db).Create(entry).Error
}

// FindByID retrieves a journal entry with its lines
func (r *GormJournalEntryRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*accounting.JournalEntry, error) {
	var entry accounting.JournalEntry
	err := dbFromContext(ctx, r.db).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("line_number") }).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByReference retrieves a journal entry by its document reference
func (r *GormJournalEntryRepository) FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*accounting.JournalEntry, error) {
	var entry accounting.JournalEntry
	err := dbFromContext(ctx, r.db).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("line_number") }).
		Where("tenant_id = ? AND reference = ?", tenantID, reference).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// List retrieves journal entries, optionally bounded by entry date
func (r *GormJournalEntryRepository) List(ctx context.Context, tenantID uuid.UUID, from, to *time.Time) ([]*accounting.JournalEntry, error) {
	query := dbFromContext(ctx, r.db).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("line_number") }).
		Where("tenant_id = ?", tenantID)
	if from != nil {
		query = query.Where("entry_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("entry_date <= ?", *to)
	}
	var entries []*accounting.JournalEntry
	if err := query.Order("entry_date, reference").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

type activityRow struct {
	AccountID   uuid.UUID
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// ActivityByAccount sums debit and credit lines per account up to asOf
func (r *GormJournalEntryRepository) ActivityByAccount(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]accounting.AccountActivity, error) {
	db := dbFromContext(ctx, r.db)

	debits, err := sumLines(db, "debit_account_id", "debit_amount", tenantID, nil, &asOf, "")
	if err != nil {
		return nil, err
	}
	credits, err := sumLines(db, "credit_account_id", "credit_amount", tenantID, nil, &asOf, "")
	if err != nil {
		return nil, err
	}
	return mergeActivity(debits, credits), nil
}

// ActivityByAccountBetween sums lines for one account type in a date range
func (r *GormJournalEntryRepository) ActivityByAccountBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time, accountType accounting.AccountType) ([]accounting.AccountActivity, error) {
	db := dbFromContext(ctx, r.db)

	debits, err := sumLines(db, "debit_account_id", "debit_amount", tenantID, &from, &to, accountType)
	if err != nil {
		return nil, err
	}
	credits, err := sumLines(db, "credit_account_id", "credit_amount", tenantID, &from, &to, accountType)
	if err != nil {
		return nil, err
	}
	return mergeActivity(debits, credits), nil
}

// sumLines groups one side of the journal lines by account. The column
// pair decides which side; accountType narrows to accounts of that type.
func sumLines(db *gorm.DB, accountCol, amountCol string, tenantID uuid.UUID, from, to *time.Time, accountType accounting.AccountType) (map[uuid.UUID]decimal.Decimal, error) {
	query := db.Table("journal_entry_lines").
		Select(accountCol+" AS account_id, SUM("+amountCol+") AS total_debit").
		Joins("JOIN journal_entries ON journal_entries.id = journal_entry_lines.journal_entry_id").
		Where("journal_entries.tenant_id = ?", tenantID).
		Where(accountCol + " IS NOT NULL")
	if from != nil {
		query = query.Where("journal_entries.entry_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("journal_entries.entry_date <= ?", *to)
	}
	if accountType != "" {
		query = query.
			Joins("JOIN accounts ON accounts.id = journal_entry_lines."+accountCol).
			Where("accounts.type = ?", accountType)
	}

	var rows []activityRow
	if err := query.Group(accountCol).Scan(&rows).Error; err != nil {
		return nil, err
	}
	result := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		result[row.AccountID] = row.TotalDebit
	}
	return result, nil
}

func mergeActivity(debits, credits map[uuid.UUID]decimal.Decimal) []accounting.AccountActivity {
	byAccount := make(map[uuid.UUID]*accounting.AccountActivity, len(debits)+len(credits))
	for id, amount := range debits {
		byAccount[id] = &accounting.AccountActivity{AccountID: id, TotalDebit: amount, TotalCredit: decimal.Zero}
	}
	for id, amount := range credits {
		if activity, ok := byAccount[id]; ok {
			activity.TotalCredit = amount
		} else {
			byAccount[id] = &accounting.AccountActivity{AccountID: id, TotalDebit: decimal.Zero, TotalCredit: amount}
		}
	}
	result := make([]accounting.AccountActivity, 0, len(byAccount))
	for _, activity := range byAccount {
		result = append(result, *activity)
	}
	return result
}
