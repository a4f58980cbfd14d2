package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gulfbooks/backend/internal/domain/shared"
)

// DefaultVATRate is the standard UAE VAT rate in percent
var DefaultVATRate = decimal.NewFromInt(5)

// Company is the tenant root. Every document, account and stock row in
// the system belongs to exactly one company. VAT configuration lives
// here and drives both the calculator and the posting engine.
type Company struct {
	shared.BaseAggregateRoot
	Name       string          `gorm:"size:255;not null" json:"name"`
	TRN        string          `gorm:"size:20" json:"trn"`
	Currency   string          `gorm:"size:3;not null;default:AED" json:"currency"`
	VATRate    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:5" json:"vat_rate"`
	VATEnabled bool            `gorm:"not null;default:true" json:"vat_enabled"`
	IsActive   bool            `gorm:"not null;default:true" json:"is_active"`
}

// TableName specifies the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a company with UAE defaults
func NewCompany(name, trn string) (*Company, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Company name is required")
	}
	return &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		TRN:               strings.TrimSpace(trn),
		Currency:          "AED",
		VATRate:           DefaultVATRate,
		VATEnabled:        true,
		IsActive:          true,
	}, nil
}

// UpdateVATSettings changes the VAT configuration
func (c *Company) UpdateVATSettings(rate decimal.Decimal, enabled bool) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_INPUT", "VAT rate must be between 0 and 100")
	}
	c.VATRate = rate
	c.VATEnabled = enabled
	c.IncrementVersion()
	return nil
}

// EffectiveVATRate returns the rate used for new documents, zero when
// VAT is disabled.
func (c *Company) EffectiveVATRate() decimal.Decimal {
	if !c.VATEnabled {
		return decimal.Zero
	}
	return c.VATRate
}

// CompanyRepository persists companies
type CompanyRepository interface {
	Save(ctx context.Context, company *Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
}
