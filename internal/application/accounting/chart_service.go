package accounting

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gulfbooks/backend/internal/domain/accounting"
	"github.com/gulfbooks/backend/internal/domain/shared"
)

// defaultChart is seeded into every new tenant so the posting engine
// always finds its fixed codes.
var defaultChart = []struct {
	Code string
	Name string
	Type accounting.AccountType
}{
	{accounting.AccountCodeCash, "Cash / Receivable", accounting.AccountTypeAsset},
	{accounting.AccountCodeInventory, "Inventory", accounting.AccountTypeAsset},
	{accounting.AccountCodeVATPayable, "VAT Payable", accounting.AccountTypeLiability},
	{accounting.AccountCodeVATRecoverable, "VAT Recoverable", accounting.AccountTypeAsset},
	{accounting.AccountCodeSalesRevenue, "Sales Revenue", accounting.AccountTypeRevenue},
	{accounting.AccountCodePurchases, "Purchases", accounting.AccountTypeExpense},
}

// ChartService manages a tenant's chart of accounts
type ChartService struct {
	accountRepo accounting.AccountRepository
}

// NewChartService creates a new ChartService
func NewChartService(accountRepo accounting.AccountRepository) *ChartService {
	return &ChartService{accountRepo: accountRepo}
}

// CreateAccountRequest adds one account to the chart
type CreateAccountRequest struct {
	Code string `json:"code" binding:"required,min=1,max=20"`
	Name string `json:"name" binding:"required,min=1,max=255"`
	Type string `json:"type" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID             uuid.UUID       `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	Balance        decimal.Decimal `json:"balance"`
	Side           string          `json:"side"`
	IsActive       bool            `json:"is_active"`
}

func toAccountResponse(account *accounting.Account) AccountResponse {
	balance, side := accounting.ReportedBalance(account.CurrentBalance)
	return AccountResponse{
		ID:             account.ID,
		Code:           account.Code,
		Name:           account.Name,
		Type:           account.Type.String(),
		CurrentBalance: account.CurrentBalance,
		Balance:        balance,
		Side:           string(side),
		IsActive:       account.IsActive,
	}
}

// Create adds an account to the tenant's chart. Codes are unique per
// tenant.
func (s *ChartService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreateAccountRequest) (*AccountResponse, error) {
	existing, err := s.accountRepo.FindByCode(ctx, tenantID, req.Code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Account code "+req.Code+" already exists")
	}

	account, err := accounting.NewAccount(tenantID, userID, req.Code, req.Name, accounting.AccountType(req.Type))
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	response := toAccountResponse(account)
	return &response, nil
}

// EnsureDefaultChart seeds the fixed posting accounts for a tenant,
// skipping any code that already exists. Safe to call repeatedly.
func (s *ChartService) EnsureDefaultChart(ctx context.Context, tenantID, userID uuid.UUID) error {
	codes := make([]string, 0, len(defaultChart))
	for _, def := range defaultChart {
		codes = append(codes, def.Code)
	}
	existing, err := s.accountRepo.FindByCodes(ctx, tenantID, codes)
	if err != nil {
		return err
	}
	for _, def := range defaultChart {
		if _, ok := existing[def.Code]; ok {
			continue
		}
		account, err := accounting.NewAccount(tenantID, userID, def.Code, def.Name, def.Type)
		if err != nil {
			return err
		}
		if err := s.accountRepo.Save(ctx, account); err != nil {
			return err
		}
	}
	return nil
}

// GetByCode retrieves one account by its chart code
func (s *ChartService) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}
	response := toAccountResponse(account)
	return &response, nil
}

// List returns the tenant's chart of accounts
func (s *ChartService) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]AccountResponse, error) {
	accounts, err := s.accountRepo.List(ctx, tenantID, activeOnly)
	if err != nil {
		return nil, err
	}
	responses := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, toAccountResponse(account))
	}
	return responses, nil
}

// Deactivate marks an account inactive
func (s *ChartService) Deactivate(ctx context.Context, tenantID, accountID uuid.UUID) error {
	account, err := s.accountRepo.FindByID(ctx, tenantID, accountID)
	if err != nil {
		return err
	}
	account.Deactivate()
	return s.accountRepo.Save(ctx, account)
}
