package accounting

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gulfbooks/backend/internal/domain/shared"
)

// AccountType classifies a ledger account
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// IsValid checks if the account type is valid
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// String returns the string representation
func (t AccountType) String() string {
	return string(t)
}

// Fixed chart-of-accounts codes the posting engine resolves against.
const (
	AccountCodeCash           = "1010"
	AccountCodeInventory      = "1020"
	AccountCodeVATPayable     = "2100"
	AccountCodeVATRecoverable = "2200"
	AccountCodeSalesRevenue   = "4100"
	AccountCodePurchases      = "5100"
)

// Account is a ledger account in a tenant's chart of accounts.
// CurrentBalance is a cached signed balance where debits are positive;
// the journal is the source of truth and the cache is updated on posting.
type Account struct {
	shared.TenantAggregateRoot
	Code           string          `gorm:"size:20;not null;uniqueIndex:,composite:tenant,priority:2" json:"code"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Type           AccountType     `gorm:"size:20;not null" json:"type"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"current_balance"`
	IsActive       bool            `gorm:"not null;default:true" json:"is_active"`
}

// TableName specifies the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates a ledger account with a zero balance
func NewAccount(tenantID, createdBy uuid.UUID, code, name string, accountType AccountType) (*Account, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Account code is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Account name is required")
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid account type: "+accountType.String())
	}

	return &Account{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID, createdBy),
		Code:                code,
		Name:                strings.TrimSpace(name),
		Type:                accountType,
		CurrentBalance:      decimal.Zero,
		IsActive:            true,
	}, nil
}

// ApplyPosting adjusts the cached balance by a signed delta (debit - credit)
func (a *Account) ApplyPosting(delta decimal.Decimal) {
	a.CurrentBalance = a.CurrentBalance.Add(delta)
	a.IncrementVersion()
}

// Deactivate marks the account inactive. Inactive accounts are excluded
// from posting resolution but keep their history.
func (a *Account) Deactivate() {
	a.IsActive = false
	a.IncrementVersion()
}

// BalanceSide indicates whether a reported balance sits on the debit
// or credit side of the trial balance.
type BalanceSide string

const (
	BalanceSideDebit  BalanceSide = "DR"
	BalanceSideCredit BalanceSide = "CR"
)

// ReportedBalance converts a signed balance into the non-negative
// amount plus side form used on reports.
func ReportedBalance(signed decimal.Decimal) (decimal.Decimal, BalanceSide) {
	if signed.IsNegative() {
		return signed.Neg(), BalanceSideCredit
	}
	return signed, BalanceSideDebit
}
