package accounting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gulfbooks/backend/internal/domain/accounting"
	"github.com/gulfbooks/backend/internal/domain/shared"
	"github.com/gulfbooks/backend/internal/domain/trade"
)

// MockAccountRepository is a mock implementation of accounting.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Save(ctx context.Context, account *accounting.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*accounting.Account, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*accounting.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByCodes(ctx context.Context, tenantID uuid.UUID, codes []string) (map[string]*accounting.Account, error) {
	args := m.Called(ctx, tenantID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]*accounting.Account, error) {
	args := m.Called(ctx, tenantID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) AdjustBalance(ctx context.Context, tenantID, accountID uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, tenantID, accountID, delta)
	return args.Error(0)
}

// MockJournalEntryRepository is a mock implementation of accounting.JournalEntryRepository
type MockJournalEntryRepository struct {
	mock.Mock
}

func (m *MockJournalEntryRepository) Save(ctx context.Context, entry *accounting.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*accounting.JournalEntry, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*accounting.JournalEntry, error) {
	args := m.Called(ctx, tenantID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) List(ctx context.Context, tenantID uuid.UUID, from, to *time.Time) ([]*accounting.JournalEntry, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*accounting.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) ActivityByAccount(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]accounting.AccountActivity, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.AccountActivity), args.Error(1)
}

func (m *MockJournalEntryRepository) ActivityByAccountBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time, accountType accounting.AccountType) ([]accounting.AccountActivity, error) {
	args := m.Called(ctx, tenantID, from, to, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.AccountActivity), args.Error(1)
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func deltaEquals(expected string) interface{} {
	return mock.MatchedBy(func(delta decimal.Decimal) bool {
		return delta.Equal(d(expected))
	})
}

func postingAccounts(t *testing.T, tenantID uuid.UUID, codes ...string) map[string]*accounting.Account {
	t.Helper()
	types := map[string]accounting.AccountType{
		accounting.AccountCodeCash:           accounting.AccountTypeAsset,
		accounting.AccountCodeInventory:      accounting.AccountTypeAsset,
		accounting.AccountCodeVATPayable:     accounting.AccountTypeLiability,
		accounting.AccountCodeVATRecoverable: accounting.AccountTypeAsset,
		accounting.AccountCodeSalesRevenue:   accounting.AccountTypeRevenue,
		accounting.AccountCodePurchases:      accounting.AccountTypeExpense,
	}
	accounts := make(map[string]*accounting.Account, len(codes))
	for _, code := range codes {
		account, err := accounting.NewAccount(tenantID, uuid.New(), code, "Account "+code, types[code])
		require.NoError(t, err)
		accounts[code] = account
	}
	return accounts
}

func testSale(t *testing.T, tenantID uuid.UUID, vatRate decimal.Decimal) *trade.Sale {
	t.Helper()
	item, err := trade.NewSaleItem(uuid.New(), "Widget", d("2"), d("100"), vatRate)
	require.NoError(t, err)
	sale, err := trade.NewSale(tenantID, uuid.New(), "SI-2024-000001", time.Now(), nil, uuid.New(), []trade.SaleItem{item}, decimal.Zero, vatRate, false, "AED")
	require.NoError(t, err)
	return sale
}

func TestPostingService_PostSaleEntry(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("posts balanced three line entry", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockJournalEntryRepository)
		service := NewPostingService(accountRepo, entryRepo)

		accounts := postingAccounts(t, tenantID,
			accounting.AccountCodeCash,
			accounting.AccountCodeSalesRevenue,
			accounting.AccountCodeVATPayable,
		)
		accountRepo.On("FindByCodes", ctx, tenantID, mock.Anything).Return(accounts, nil)
		entryRepo.On("Save", ctx, mock.Anything).Return(nil)
		accountRepo.On("AdjustBalance", ctx, tenantID, accounts[accounting.AccountCodeCash].ID, deltaEquals("210")).Return(nil)
		accountRepo.On("AdjustBalance", ctx, tenantID, accounts[accounting.AccountCodeSalesRevenue].ID, deltaEquals("-200")).Return(nil)
		accountRepo.On("AdjustBalance", ctx, tenantID, accounts[accounting.AccountCodeVATPayable].ID, deltaEquals("-10")).Return(nil)

		sale := testSale(t, tenantID, d("5"))
		entry, err := service.PostSaleEntry(ctx, sale)

		require.NoError(t, err)
		assert.Equal(t, "JE-SALE-SI-2024-000001", entry.Reference)
		assert.Equal(t, accounting.EntryTypeSale, entry.Type)
		assert.Len(t, entry.Lines, 3)
		assert.True(t, entry.TotalDebits().Equal(entry.TotalCredits()))
		assert.True(t, entry.TotalDebits().Equal(d("210")))
		accountRepo.AssertExpectations(t)
		entryRepo.AssertExpectations(t)
	})

	t.Run("skips VAT line when output VAT is zero", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockJournalEntryRepository)
		service := NewPostingService(accountRepo, entryRepo)

		accounts := postingAccounts(t, tenantID,
			accounting.AccountCodeCash,
			accounting.AccountCodeSalesRevenue,
			accounting.AccountCodeVATPayable,
		)
		accountRepo.On("FindByCodes", ctx, tenantID, mock.Anything).Return(accounts, nil)
		entryRepo.On("Save", ctx, mock.Anything).Return(nil)
		accountRepo.On("AdjustBalance", ctx, tenantID, accounts[accounting.AccountCodeCash].ID, deltaEquals("200")).Return(nil)
		accountRepo.On("AdjustBalance", ctx, tenantID, accounts[accounting.AccountCodeSalesRevenue].ID, deltaEquals("-200")).Return(nil)

		sale := testSale(t, tenantID, decimal.Zero)
		entry, err := service.PostSaleEntry(ctx, sale)

		require.NoError(t, err)
		assert.Len(t, entry.Lines, 2)
		accountRepo.AssertNotCalled(t, "AdjustBalance", ctx, tenantID, accounts[accounting.AccountCodeVATPayable].ID, mock.Anything)
	})

	t.Run("aborts when a posting account is missing", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockJournalEntryRepository)
		service := NewPostingService(accountRepo, entryRepo)

		accounts := postingAccounts(t, tenantID,
			accounting.AccountCodeCash,
			accounting.AccountCodeSalesRevenue,
		)
		accountRepo.On("FindByCodes", ctx, tenantID, mock.Anything).Return(accounts, nil)

		sale := testSale(t, tenantID, d("5"))
		_, err := service.PostSaleEntry(ctx, sale)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "MISSING_ACCOUNT", domainErr.Code)
		assert.Contains(t, domainErr.Message, accounting.AccountCodeVATPayable)
		entryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("aborts when a posting account is inactive", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockJournalEntryRepository)
		service := NewPostingService(accountRepo, entryRepo)

		accounts := postingAccounts(t, tenantID,
			accounting.AccountCodeCash,
			accounting.AccountCodeSalesRevenue,
			accounting.AccountCodeVATPayable,
		)
		accounts[accounting.AccountCodeSalesRevenue].Deactivate()
		accountRepo.On("FindByCodes", ctx, tenantID, mock.Anything).Return(accounts, nil)

		sale := testSale(t, tenantID, d("5"))
		_, err := service.PostSaleEntry(ctx, sale)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "MISSING_ACCOUNT", domainErr.Code)
	})
}

func TestPostingService_PostPurchaseEntry(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("posts balanced purchase entry", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockJournalEntryRepository)
		service := NewPostingService(accountRepo, entryRepo)

		accounts := postingAccounts(t, tenantID,
			accounting.AccountCodeInventory,
			accounting.AccountCodeVATRecoverable,
			accounting.AccountCodePurchases,
		)
		accountRepo.On("FindByCodes", ctx, tenantID, mock.Anything).Return(accounts, nil)
		entryRepo.On("Save", ctx, mock.Anything).Return(nil)
		accountRepo.On("AdjustBalance", ctx, tenantID, accounts[accounting.AccountCodeInventory].ID, deltaEquals("100")).Return(nil)
		accountRepo.On("AdjustBalance", ctx, tenantID, accounts[accounting.AccountCodeVATRecoverable].ID, deltaEquals("5")).Return(nil)
		accountRepo.On("AdjustBalance", ctx, tenantID, accounts[accounting.AccountCodePurchases].ID, deltaEquals("-105")).Return(nil)

		item, err := trade.NewPurchaseItem(uuid.New(), "Widget", d("4"), d("25"), d("5"))
		require.NoError(t, err)
		purchase, err := trade.NewPurchase(tenantID, uuid.New(), "PO-2024-000001", time.Now(), nil, uuid.New(), []trade.PurchaseItem{item}, decimal.Zero, d("5"), false, "AED")
		require.NoError(t, err)

		entry, err := service.PostPurchaseEntry(ctx, purchase)

		require.NoError(t, err)
		assert.Equal(t, "JE-PURCHASE-PO-2024-000001", entry.Reference)
		assert.Equal(t, accounting.EntryTypePurchase, entry.Type)
		assert.Len(t, entry.Lines, 3)
		assert.True(t, entry.TotalDebits().Equal(entry.TotalCredits()))
		assert.True(t, entry.TotalCredits().Equal(d("105")))
		accountRepo.AssertExpectations(t)
		entryRepo.AssertExpectations(t)
	})

	t.Run("propagates save failures", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockJournalEntryRepository)
		service := NewPostingService(accountRepo, entryRepo)

		accounts := postingAccounts(t, tenantID,
			accounting.AccountCodeInventory,
			accounting.AccountCodeVATRecoverable,
			accounting.AccountCodePurchases,
		)
		accountRepo.On("FindByCodes", ctx, tenantID, mock.Anything).Return(accounts, nil)
		entryRepo.On("Save", ctx, mock.Anything).Return(errors.New("db down"))

		item, err := trade.NewPurchaseItem(uuid.New(), "Widget", d("1"), d("50"), d("5"))
		require.NoError(t, err)
		purchase, err := trade.NewPurchase(tenantID, uuid.New(), "PO-2024-000002", time.Now(), nil, uuid.New(), []trade.PurchaseItem{item}, decimal.Zero, d("5"), false, "AED")
		require.NoError(t, err)

		_, err = service.PostPurchaseEntry(ctx, purchase)
		require.Error(t, err)
		accountRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
