package accounting

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gulfbooks/backend/internal/domain/shared"
)

// EntryType classifies how a journal entry originated
type EntryType string

const (
	EntryTypeSale       EntryType = "SALE"
	EntryTypePurchase   EntryType = "PURCHASE"
	EntryTypeManual     EntryType = "MANUAL"
	EntryTypeAdjustment EntryType = "ADJUSTMENT"
)

// IsValid checks if the entry type is valid
func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeSale, EntryTypePurchase, EntryTypeManual, EntryTypeAdjustment:
		return true
	}
	return false
}

// JournalEntryLine is a single debit or credit leg of a journal entry.
// Exactly one of the account references is set; the matching amount is
// positive and the other amount is zero.
type JournalEntryLine struct {
	shared.BaseEntity
	JournalEntryID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"journal_entry_id"`
	LineNumber      int             `gorm:"not null" json:"line_number"`
	DebitAccountID  *uuid.UUID      `gorm:"type:uuid;index" json:"debit_account_id,omitempty"`
	DebitAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"debit_amount"`
	CreditAccountID *uuid.UUID      `gorm:"type:uuid;index" json:"credit_account_id,omitempty"`
	CreditAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"credit_amount"`
	Description     string          `gorm:"size:255" json:"description"`
}

// TableName specifies the table name for GORM
func (JournalEntryLine) TableName() string {
	return "journal_entry_lines"
}

// SignedDelta returns the balance effect of the line on its account,
// debit minus credit.
func (l JournalEntryLine) SignedDelta() decimal.Decimal {
	return l.DebitAmount.Sub(l.CreditAmount)
}

// AccountID returns whichever account the line touches
func (l JournalEntryLine) AccountID() uuid.UUID {
	if l.DebitAccountID != nil {
		return *l.DebitAccountID
	}
	if l.CreditAccountID != nil {
		return *l.CreditAccountID
	}
	return uuid.Nil
}

// DebitLine builds a debit leg
func DebitLine(accountID uuid.UUID, amount decimal.Decimal, description string) (JournalEntryLine, error) {
	if accountID == uuid.Nil {
		return JournalEntryLine{}, shared.NewDomainError("INVALID_INPUT", "Debit line requires an account")
	}
	if amount.IsNegative() {
		return JournalEntryLine{}, shared.NewDomainError("INVALID_INPUT", "Debit amount cannot be negative")
	}
	return JournalEntryLine{
		BaseEntity:     shared.NewBaseEntity(),
		DebitAccountID: &accountID,
		DebitAmount:    amount,
		CreditAmount:   decimal.Zero,
		Description:    description,
	}, nil
}

// CreditLine builds a credit leg
func CreditLine(accountID uuid.UUID, amount decimal.Decimal, description string) (JournalEntryLine, error) {
	if accountID == uuid.Nil {
		return JournalEntryLine{}, shared.NewDomainError("INVALID_INPUT", "Credit line requires an account")
	}
	if amount.IsNegative() {
		return JournalEntryLine{}, shared.NewDomainError("INVALID_INPUT", "Credit amount cannot be negative")
	}
	return JournalEntryLine{
		BaseEntity:      shared.NewBaseEntity(),
		CreditAccountID: &accountID,
		CreditAmount:    amount,
		DebitAmount:     decimal.Zero,
		Description:     description,
	}, nil
}

// JournalEntry is a balanced set of debit and credit lines recorded
// against a tenant's ledger. Entries are immutable once created.
type JournalEntry struct {
	shared.TenantAggregateRoot
	Reference   string             `gorm:"size:100;not null;uniqueIndex:,composite:tenant,priority:2" json:"reference"`
	EntryDate   time.Time          `gorm:"not null;index" json:"entry_date"`
	Description string             `gorm:"size:500" json:"description"`
	Type        EntryType          `gorm:"size:20;not null" json:"type"`
	Lines       []JournalEntryLine `gorm:"foreignKey:JournalEntryID" json:"lines"`
}

// TableName specifies the table name for GORM
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// NewJournalEntry assembles a journal entry and enforces the balance
// invariant: the entry is rejected unless the sum of debit amounts
// exactly equals the sum of credit amounts.
func NewJournalEntry(tenantID, createdBy uuid.UUID, reference string, entryDate time.Time, entryType EntryType, description string, lines []JournalEntryLine) (*JournalEntry, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Journal entry reference is required")
	}
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid journal entry type")
	}
	if len(lines) < 2 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Journal entry requires at least two lines")
	}
	if err := ValidateBalance(lines); err != nil {
		return nil, err
	}

	entry := &JournalEntry{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID, createdBy),
		Reference:           strings.TrimSpace(reference),
		EntryDate:           entryDate,
		Description:         description,
		Type:                entryType,
		Lines:               make([]JournalEntryLine, 0, len(lines)),
	}
	for i, line := range lines {
		line.JournalEntryID = entry.ID
		line.LineNumber = i + 1
		entry.Lines = append(entry.Lines, line)
	}
	return entry, nil
}

// TotalDebits sums the debit side of the entry
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.DebitAmount)
	}
	return total
}

// TotalCredits sums the credit side of the entry
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.CreditAmount)
	}
	return total
}

// ValidateBalance checks the double-entry invariant over a set of lines
func ValidateBalance(lines []JournalEntryLine) error {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		hasDebit := line.DebitAccountID != nil
		hasCredit := line.CreditAccountID != nil
		if hasDebit == hasCredit {
			return shared.NewDomainError("INVALID_INPUT", "Journal line must have exactly one of debit or credit account")
		}
		debits = debits.Add(line.DebitAmount)
		credits = credits.Add(line.CreditAmount)
	}
	if !debits.Equal(credits) {
		return shared.ErrImbalance
	}
	return nil
}
