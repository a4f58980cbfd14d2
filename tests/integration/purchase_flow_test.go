package integration

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tradeapp "github.com/gulfbooks/backend/internal/application/trade"
	"github.com/gulfbooks/backend/internal/domain/accounting"
)

func TestPurchaseFlow_CreateOrder(t *testing.T) {
	env := NewTestEnv(t)
	ctx := t.Context()

	tenantID := env.NewCompany(t, "Gulf Trading LLC")
	userID := uuid.New()
	warehouseID := uuid.New()
	productID := seedProduct(t, env, tenantID, userID, warehouseID, "SKU-001", "")

	purchase, err := env.PurchaseService.Create(ctx, tenantID, userID, tradeapp.CreatePurchaseRequest{
		WarehouseID: warehouseID,
		Items: []tradeapp.PurchaseItemRequest{
			{ProductID: productID, Quantity: d("5")},
		},
	})
	require.NoError(t, err)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("PO-%d-000001", year), purchase.OrderNumber)
	assert.True(t, purchase.Subtotal.Equal(d("300")), "subtotal %s", purchase.Subtotal)
	assert.True(t, purchase.InputVAT.Equal(d("15")), "input VAT %s", purchase.InputVAT)
	assert.True(t, purchase.TotalAmount.Equal(d("315")), "total %s", purchase.TotalAmount)

	t.Run("stock is increased", func(t *testing.T) {
		stock, err := env.StockRepo.Find(ctx, tenantID, productID, warehouseID)
		require.NoError(t, err)
		assert.True(t, stock.Quantity.Equal(d("5")), "stock %s", stock.Quantity)
	})

	t.Run("journal entry balances", func(t *testing.T) {
		entry, err := env.EntryRepo.FindByReference(ctx, tenantID, "JE-PURCHASE-"+purchase.OrderNumber)
		require.NoError(t, err)
		require.Len(t, entry.Lines, 3)
		assert.True(t, entry.TotalDebits().Equal(entry.TotalCredits()))
		assert.True(t, entry.TotalDebits().Equal(d("315")))
	})

	t.Run("account balances move", func(t *testing.T) {
		inventoryAcc, err := env.AccountRepo.FindByCode(ctx, tenantID, accounting.AccountCodeInventory)
		require.NoError(t, err)
		assert.True(t, inventoryAcc.CurrentBalance.Equal(d("300")))

		recoverable, err := env.AccountRepo.FindByCode(ctx, tenantID, accounting.AccountCodeVATRecoverable)
		require.NoError(t, err)
		assert.True(t, recoverable.CurrentBalance.Equal(d("15")))

		purchases, err := env.AccountRepo.FindByCode(ctx, tenantID, accounting.AccountCodePurchases)
		require.NoError(t, err)
		assert.True(t, purchases.CurrentBalance.Equal(d("-315")))
	})
}

func TestPurchaseFlow_TaxInclusivePricing(t *testing.T) {
	env := NewTestEnv(t)
	ctx := t.Context()

	tenantID := env.NewCompany(t, "Gulf Trading LLC")
	userID := uuid.New()
	warehouseID := uuid.New()
	productID := seedProduct(t, env, tenantID, userID, warehouseID, "SKU-001", "")

	cost := d("105")
	purchase, err := env.PurchaseService.Create(ctx, tenantID, userID, tradeapp.CreatePurchaseRequest{
		WarehouseID:  warehouseID,
		TaxInclusive: true,
		Items: []tradeapp.PurchaseItemRequest{
			{ProductID: productID, Quantity: d("1"), UnitCost: &cost},
		},
	})
	require.NoError(t, err)

	// Inclusive pricing keeps the 105 gross while VAT is still rate-on-net
	assert.True(t, purchase.TotalAmount.Equal(d("105")), "total %s", purchase.TotalAmount)
	assert.True(t, purchase.InputVAT.Equal(d("5.25")), "input VAT %s", purchase.InputVAT)
}

func TestReports_AfterTrading(t *testing.T) {
	env := NewTestEnv(t)
	ctx := t.Context()

	tenantID := env.NewCompany(t, "Gulf Trading LLC")
	userID := uuid.New()
	warehouseID := uuid.New()
	productID := seedProduct(t, env, tenantID, userID, warehouseID, "SKU-001", "")

	_, err := env.PurchaseService.Create(ctx, tenantID, userID, tradeapp.CreatePurchaseRequest{
		WarehouseID: warehouseID,
		Items: []tradeapp.PurchaseItemRequest{
			{ProductID: productID, Quantity: d("5")},
		},
	})
	require.NoError(t, err)

	_, err = env.SalesService.Create(ctx, tenantID, userID, tradeapp.CreateSaleRequest{
		WarehouseID: warehouseID,
		Items: []tradeapp.SaleItemRequest{
			{ProductID: productID, Quantity: d("4")},
		},
	})
	require.NoError(t, err)

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)

	t.Run("vat summary", func(t *testing.T) {
		summary, err := env.ReportService.VATSummary(ctx, tenantID, from, to)
		require.NoError(t, err)
		// Output 5% of 400, input 5% of 300
		assert.True(t, summary.OutputVAT.Equal(d("20")), "output %s", summary.OutputVAT)
		assert.True(t, summary.InputVAT.Equal(d("15")), "input %s", summary.InputVAT)
		assert.True(t, summary.NetVATPayable.Equal(d("5")), "net %s", summary.NetVATPayable)
	})

	t.Run("vat refund position clamps to zero", func(t *testing.T) {
		refundTenant := env.NewCompany(t, "Import Heavy LLC")
		refundProduct := seedProduct(t, env, refundTenant, userID, warehouseID, "SKU-001", "")

		_, err := env.PurchaseService.Create(ctx, refundTenant, userID, tradeapp.CreatePurchaseRequest{
			WarehouseID: warehouseID,
			Items: []tradeapp.PurchaseItemRequest{
				{ProductID: refundProduct, Quantity: d("10")},
			},
		})
		require.NoError(t, err)

		summary, err := env.ReportService.VATSummary(ctx, refundTenant, from, to)
		require.NoError(t, err)
		assert.True(t, summary.InputVAT.Equal(d("30")))
		assert.True(t, summary.NetVATPayable.IsZero(), "net %s", summary.NetVATPayable)
	})

	t.Run("trial balance", func(t *testing.T) {
		report, err := env.ReportService.TrialBalance(ctx, tenantID, to)
		require.NoError(t, err)
		assert.True(t, report.Balanced)
		assert.True(t, report.TotalDebits.Equal(report.TotalCredits))
		// Every account of the default chart gets a row
		assert.Len(t, report.Rows, 6)
	})

	t.Run("income statement", func(t *testing.T) {
		report, err := env.ReportService.IncomeStatement(ctx, tenantID, from, to)
		require.NoError(t, err)
		// The purchase entry credits the purchases account, so no
		// debit-side expense activity exists for the period.
		assert.True(t, report.TotalRevenue.Equal(d("400")), "revenue %s", report.TotalRevenue)
		assert.True(t, report.TotalExpenses.IsZero(), "expenses %s", report.TotalExpenses)
		assert.True(t, report.NetProfit.Equal(d("400")), "profit %s", report.NetProfit)
	})
}

func TestTenantIsolation(t *testing.T) {
	env := NewTestEnv(t)
	ctx := t.Context()

	tenantA := env.NewCompany(t, "Tenant A")
	tenantB := env.NewCompany(t, "Tenant B")
	userID := uuid.New()
	warehouseID := uuid.New()
	productID := seedProduct(t, env, tenantA, userID, warehouseID, "SKU-001", "10")

	sale, err := env.SalesService.Create(ctx, tenantA, userID, tradeapp.CreateSaleRequest{
		WarehouseID: warehouseID,
		Items: []tradeapp.SaleItemRequest{
			{ProductID: productID, Quantity: d("1")},
		},
	})
	require.NoError(t, err)

	// Tenant B cannot see tenant A's invoice or products
	_, err = env.SalesService.GetByID(ctx, tenantB, sale.ID)
	assert.Error(t, err)

	_, err = env.ProductService.GetByID(ctx, tenantB, productID)
	assert.Error(t, err)

	// Tenant B numbering starts from its own series
	productB := seedProduct(t, env, tenantB, userID, warehouseID, "SKU-001", "10")
	saleB, err := env.SalesService.Create(ctx, tenantB, userID, tradeapp.CreateSaleRequest{
		WarehouseID: warehouseID,
		Items: []tradeapp.SaleItemRequest{
			{ProductID: productB, Quantity: d("1")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("SI-%d-000001", time.Now().Year()), saleB.InvoiceNumber)
}
