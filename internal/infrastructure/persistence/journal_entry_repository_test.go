package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gulfbooks/backend/internal/domain/accounting"
)

func mustDebit(t *testing.T, accountID uuid.UUID, amount int64) accounting.JournalEntryLine {
	t.Helper()
	line, err := accounting.DebitLine(accountID, decimal.NewFromInt(amount), "")
	require.NoError(t, err)
	return line
}

func mustCredit(t *testing.T, accountID uuid.UUID, amount int64) accounting.JournalEntryLine {
	t.Helper()
	line, err := accounting.CreditLine(accountID, decimal.NewFromInt(amount), "")
	require.NoError(t, err)
	return line
}

func TestGormJournalEntryRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormJournalEntryRepository(db)
	accountRepo := NewGormAccountRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	userID := uuid.New()

	cash, err := accounting.NewAccount(tenantID, userID, accounting.AccountCodeCash, "Cash", accounting.AccountTypeAsset)
	require.NoError(t, err)
	revenue, err := accounting.NewAccount(tenantID, userID, accounting.AccountCodeSalesRevenue, "Sales Revenue", accounting.AccountTypeRevenue)
	require.NoError(t, err)
	vat, err := accounting.NewAccount(tenantID, userID, accounting.AccountCodeVATPayable, "VAT Payable", accounting.AccountTypeLiability)
	require.NoError(t, err)
	for _, acc := range []*accounting.Account{cash, revenue, vat} {
		require.NoError(t, accountRepo.Save(ctx, acc))
	}

	day1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	entry1, err := accounting.NewJournalEntry(tenantID, userID, "JE-SALE-SI-2024-000001", day1, accounting.EntryTypeSale, "Sale",
		[]accounting.JournalEntryLine{
			mustDebit(t, cash.ID, 105),
			mustCredit(t, revenue.ID, 100),
			mustCredit(t, vat.ID, 5),
		})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, entry1))

	entry2, err := accounting.NewJournalEntry(tenantID, userID, "JE-SALE-SI-2024-000002", day2, accounting.EntryTypeSale, "Sale",
		[]accounting.JournalEntryLine{
			mustDebit(t, cash.ID, 210),
			mustCredit(t, revenue.ID, 200),
			mustCredit(t, vat.ID, 10),
		})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, entry2))

	t.Run("find by reference loads ordered lines", func(t *testing.T) {
		entry, err := repo.FindByReference(ctx, tenantID, "JE-SALE-SI-2024-000001")
		require.NoError(t, err)
		require.Len(t, entry.Lines, 3)
		assert.Equal(t, 1, entry.Lines[0].LineNumber)
		assert.True(t, entry.TotalDebits().Equal(entry.TotalCredits()))
	})

	t.Run("activity up to a date excludes later entries", func(t *testing.T) {
		activity, err := repo.ActivityByAccount(ctx, tenantID, day1)
		require.NoError(t, err)

		byAccount := make(map[uuid.UUID]accounting.AccountActivity)
		for _, a := range activity {
			byAccount[a.AccountID] = a
		}
		assert.True(t, byAccount[cash.ID].TotalDebit.Equal(decimal.NewFromInt(105)))
		assert.True(t, byAccount[revenue.ID].TotalCredit.Equal(decimal.NewFromInt(100)))
		assert.True(t, byAccount[vat.ID].TotalCredit.Equal(decimal.NewFromInt(5)))
	})

	t.Run("activity across all entries", func(t *testing.T) {
		activity, err := repo.ActivityByAccount(ctx, tenantID, day2)
		require.NoError(t, err)

		byAccount := make(map[uuid.UUID]accounting.AccountActivity)
		for _, a := range activity {
			byAccount[a.AccountID] = a
		}
		assert.True(t, byAccount[cash.ID].TotalDebit.Equal(decimal.NewFromInt(315)))
		assert.True(t, byAccount[revenue.ID].TotalCredit.Equal(decimal.NewFromInt(300)))
	})

	t.Run("activity filtered by account type", func(t *testing.T) {
		activity, err := repo.ActivityByAccountBetween(ctx, tenantID, day1, day2, accounting.AccountTypeRevenue)
		require.NoError(t, err)

		require.Len(t, activity, 1)
		assert.Equal(t, revenue.ID, activity[0].AccountID)
		assert.True(t, activity[0].TotalCredit.Equal(decimal.NewFromInt(300)))
	})

	t.Run("other tenants see nothing", func(t *testing.T) {
		activity, err := repo.ActivityByAccount(ctx, uuid.New(), day2)
		require.NoError(t, err)
		assert.Empty(t, activity)
	})
}
