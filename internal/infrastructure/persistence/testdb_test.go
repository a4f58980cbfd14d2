package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gulfbooks/backend/internal/domain/accounting"
	"github.com/gulfbooks/backend/internal/domain/catalog"
	"github.com/gulfbooks/backend/internal/domain/identity"
	"github.com/gulfbooks/backend/internal/domain/inventory"
	"github.com/gulfbooks/backend/internal/domain/trade"
)

// setupTestDB opens an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&identity.Company{},
		&accounting.Account{},
		&accounting.JournalEntry{},
		&accounting.JournalEntryLine{},
		&accounting.InvoiceSeries{},
		&catalog.Product{},
		&inventory.Stock{},
		&inventory.StockMovement{},
		&trade.Sale{},
		&trade.SaleItem{},
		&trade.Purchase{},
		&trade.PurchaseItem{},
	)
	require.NoError(t, err)

	return db
}
