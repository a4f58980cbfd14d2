package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appaccounting "github.com/gulfbooks/backend/internal/application/accounting"
	"github.com/gulfbooks/backend/internal/domain/identity"
	"github.com/gulfbooks/backend/internal/domain/shared"
)

// CompanyService manages tenant companies and their VAT settings
type CompanyService struct {
	txManager   shared.TxManager
	companyRepo identity.CompanyRepository
	chart       *appaccounting.ChartService
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(txManager shared.TxManager, companyRepo identity.CompanyRepository, chart *appaccounting.ChartService) *CompanyService {
	return &CompanyService{
		txManager:   txManager,
		companyRepo: companyRepo,
		chart:       chart,
	}
}

// CreateCompanyRequest registers a new tenant company
type CreateCompanyRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
	TRN  string `json:"trn" binding:"max=20"`
}

// UpdateVATSettingsRequest changes the company VAT configuration
type UpdateVATSettingsRequest struct {
	VATRate    decimal.Decimal `json:"vat_rate"`
	VATEnabled bool            `json:"vat_enabled"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	TRN        string          `json:"trn,omitempty"`
	Currency   string          `json:"currency"`
	VATRate    decimal.Decimal `json:"vat_rate"`
	VATEnabled bool            `json:"vat_enabled"`
	IsActive   bool            `json:"is_active"`
}

func toCompanyResponse(company *identity.Company) CompanyResponse {
	return CompanyResponse{
		ID:         company.ID,
		Name:       company.Name,
		TRN:        company.TRN,
		Currency:   company.Currency,
		VATRate:    company.VATRate,
		VATEnabled: company.VATEnabled,
		IsActive:   company.IsActive,
	}
}

// Create registers a company and seeds its default chart of accounts
// in the same transaction, so the posting engine works from the first
// document.
func (s *CompanyService) Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	company, err := identity.NewCompany(req.Name, req.TRN)
	if err != nil {
		return nil, err
	}
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.companyRepo.Save(ctx, company); err != nil {
			return err
		}
		return s.chart.EnsureDefaultChart(ctx, company.ID, company.ID)
	})
	if err != nil {
		return nil, err
	}
	response := toCompanyResponse(company)
	return &response, nil
}

// Get retrieves a company by ID
func (s *CompanyService) Get(ctx context.Context, companyID uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	response := toCompanyResponse(company)
	return &response, nil
}

// UpdateVATSettings changes the VAT rate and enablement. Existing
// documents keep the rate they were created with.
func (s *CompanyService) UpdateVATSettings(ctx context.Context, companyID uuid.UUID, req UpdateVATSettingsRequest) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := company.UpdateVATSettings(req.VATRate, req.VATEnabled); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}
	response := toCompanyResponse(company)
	return &response, nil
}
