// Package integration wires real repositories and services against an
// in-memory SQLite database and exercises full business flows.
package integration

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	accountingapp "github.com/gulfbooks/backend/internal/application/accounting"
	catalogapp "github.com/gulfbooks/backend/internal/application/catalog"
	identityapp "github.com/gulfbooks/backend/internal/application/identity"
	inventoryapp "github.com/gulfbooks/backend/internal/application/inventory"
	tradeapp "github.com/gulfbooks/backend/internal/application/trade"
	"github.com/gulfbooks/backend/internal/domain/accounting"
	"github.com/gulfbooks/backend/internal/domain/catalog"
	"github.com/gulfbooks/backend/internal/domain/identity"
	"github.com/gulfbooks/backend/internal/domain/inventory"
	"github.com/gulfbooks/backend/internal/domain/trade"
	"github.com/gulfbooks/backend/internal/infrastructure/persistence"
)

// TestEnv holds the full service stack over one test database
type TestEnv struct {
	DB *gorm.DB

	AccountRepo accounting.AccountRepository
	EntryRepo   accounting.JournalEntryRepository
	SaleRepo    trade.SaleRepository
	StockRepo   inventory.StockRepository

	CompanyService  *identityapp.CompanyService
	ChartService    *accountingapp.ChartService
	ReportService   *accountingapp.ReportService
	ProductService  *catalogapp.ProductService
	StockService    *inventoryapp.StockService
	SalesService    *tradeapp.SalesService
	PurchaseService *tradeapp.PurchaseService
}

// NewTestEnv opens an in-memory SQLite database, migrates the schema
// and wires the complete application service stack against it.
func NewTestEnv(t *testing.T) *TestEnv {
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

	companyRepo := persistence.NewGormCompanyRepository(db)
	accountRepo := persistence.NewGormAccountRepository(db)
	entryRepo := persistence.NewGormJournalEntryRepository(db)
	seriesRepo := persistence.NewGormInvoiceSeriesRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	stockRepo := persistence.NewGormStockRepository(db)
	saleRepo := persistence.NewGormSaleRepository(db)
	purchaseRepo := persistence.NewGormPurchaseRepository(db)
	txManager := persistence.NewGormTxManager(db)

	chartService := accountingapp.NewChartService(accountRepo)
	postingService := accountingapp.NewPostingService(accountRepo, entryRepo)
	reportService := accountingapp.NewReportService(accountRepo, entryRepo, saleRepo, purchaseRepo)
	productService := catalogapp.NewProductService(productRepo)
	stockService := inventoryapp.NewStockService(stockRepo, productRepo)
	companyService := identityapp.NewCompanyService(txManager, companyRepo, chartService)
	salesService := tradeapp.NewSalesService(txManager, companyRepo, productRepo, saleRepo, seriesRepo, postingService, stockService)
	purchaseService := tradeapp.NewPurchaseService(txManager, companyRepo, productRepo, purchaseRepo, seriesRepo, postingService, stockService)

	return &TestEnv{
		DB:              db,
		AccountRepo:     accountRepo,
		EntryRepo:       entryRepo,
		SaleRepo:        saleRepo,
		StockRepo:       stockRepo,
		CompanyService:  companyService,
		ChartService:    chartService,
		ReportService:   reportService,
		ProductService:  productService,
		StockService:    stockService,
		SalesService:    salesService,
		PurchaseService: purchaseService,
	}
}

// NewCompany provisions a company with its default chart and returns
// the tenant ID.
func (env *TestEnv) NewCompany(t *testing.T, name string) uuid.UUID {
	t.Helper()

	company, err := env.CompanyService.Create(t.Context(), identityapp.CreateCompanyRequest{
		Name: name,
		TRN:  "100000000000003",
	})
	require.NoError(t, err)
	return company.ID
}
