package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gulfbooks/backend/internal/domain/accounting"
	"github.com/gulfbooks/backend/internal/domain/shared"
)

// newMockAccountRepository creates a GormAccountRepository with a mocked SQL connection
func newMockAccountRepository(t *testing.T) (*GormAccountRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormAccountRepository(gormDB), mock, mockDB
}

func TestGormAccountRepository_FindByCode(t *testing.T) {
	t.Run("finds existing account", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		accountID := uuid.New()
		tenantID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "tenant_id", "code", "name", "type", "current_balance", "is_active", "version",
		}).AddRow(
			accountID, tenantID, "1010", "Cash", "ASSET", decimal.NewFromInt(500), true, 1,
		)

		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE tenant_id = \$1 AND code = \$2`).
			WithArgs(tenantID, "1010", 1).
			WillReturnRows(rows)

		account, err := repo.FindByCode(context.Background(), tenantID, "1010")

		require.NoError(t, err)
		assert.Equal(t, accountID, account.ID)
		assert.Equal(t, accounting.AccountTypeAsset, account.Type)
		assert.True(t, account.CurrentBalance.Equal(decimal.NewFromInt(500)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to domain not found", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "accounts"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByCode(context.Background(), uuid.New(), "9999")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormAccountRepository_AdjustBalance(t *testing.T) {
	t.Run("applies signed delta in place", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		accountID := uuid.New()

		mock.ExpectExec(`UPDATE "accounts" SET "current_balance"=current_balance \+ \$1`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AdjustBalance(context.Background(), tenantID, accountID, decimal.RequireFromString("-12.5"))
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing account reports not found", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "accounts"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.AdjustBalance(context.Background(), uuid.New(), uuid.New(), decimal.NewFromInt(1))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
