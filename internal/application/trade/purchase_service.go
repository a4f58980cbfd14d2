package trade

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	appaccounting "github.com/gulfbooks/backend/internal/application/accounting"
	appinventory "github.com/gulfbooks/backend/internal/application/inventory"
	"github.com/gulfbooks/backend/internal/domain/accounting"
	"github.com/gulfbooks/backend/internal/domain/catalog"
	"github.com/gulfbooks/backend/internal/domain/identity"
	"github.com/gulfbooks/backend/internal/domain/shared"
	"github.com/gulfbooks/backend/internal/domain/trade"
)

// PurchaseService creates and queries purchase orders. Creation mirrors
// the sales pipeline: number reservation, document persistence, stock
// increase and journal posting run in one transaction.
type PurchaseService struct {
	txManager    shared.TxManager
	companyRepo  identity.CompanyRepository
	productRepo  catalog.ProductRepository
	purchaseRepo trade.PurchaseRepository
	seriesRepo   accounting.InvoiceSeriesRepository
	posting      *appaccounting.PostingService
	stock        *appinventory.StockService
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	txManager shared.TxManager,
	companyRepo identity.CompanyRepository,
	productRepo catalog.ProductRepository,
	purchaseRepo trade.PurchaseRepository,
	seriesRepo accounting.InvoiceSeriesRepository,
	posting *appaccounting.PostingService,
	stock *appinventory.StockService,
) *PurchaseService {
	return &PurchaseService{
		txManager:    txManager,
		companyRepo:  companyRepo,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		seriesRepo:   seriesRepo,
		posting:      posting,
		stock:        stock,
	}
}

// Create finalizes a purchase order. Unit costs come from the catalog
// unless the request overrides them; the VAT rate comes from the
// company settings. Request lines with a quantity at or below zero are
// dropped.
func (s *PurchaseService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	vatRate := company.EffectiveVATRate()

	orderDate := time.Now()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	var response *PurchaseResponse
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		items := make([]trade.PurchaseItem, 0, len(req.Items))
		for _, line := range req.Items {
			if !line.Quantity.IsPositive() {
				continue
			}
			product, err := s.productRepo.FindByID(ctx, tenantID, line.ProductID)
			if err != nil {
				return err
			}
			unitCost := product.CostPrice
			if line.UnitCost != nil {
				unitCost = *line.UnitCost
			}
			item, err := trade.NewPurchaseItem(product.ID, product.Name, line.Quantity, unitCost, vatRate)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		if len(items) == 0 {
			return shared.NewDomainError("INVALID_INPUT", "Purchase requires at least one item with a positive quantity")
		}

		sequence, err := s.reserveNumber(ctx, tenantID)
		if err != nil {
			return err
		}
		orderNumber := accounting.FormatDocumentNumber(accounting.PrefixPurchaseOrder, orderDate, sequence)

		purchase, err := trade.NewPurchase(tenantID, userID, orderNumber, orderDate, req.SupplierID, req.WarehouseID, items, req.DiscountPercent, vatRate, req.TaxInclusive, company.Currency)
		if err != nil {
			return err
		}
		purchase.Notes = req.Notes
		if req.PaidAmount.IsPositive() {
			if err := purchase.RecordPayment(req.PaidAmount); err != nil {
				return err
			}
		}

		if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
			return err
		}
		if err := s.stock.IncreaseOnPurchase(ctx, purchase); err != nil {
			return err
		}
		if company.VATEnabled {
			if _, err := s.posting.PostPurchaseEntry(ctx, purchase); err != nil {
				return err
			}
		}

		r := ToPurchaseResponse(purchase)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (s *PurchaseService) reserveNumber(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	sequence, err := s.seriesRepo.ReserveNext(ctx, tenantID, accounting.PrefixPurchaseOrder)
	if err == nil {
		return sequence, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return 0, err
	}
	series, err := accounting.NewInvoiceSeries(tenantID, accounting.PrefixPurchaseOrder)
	if err != nil {
		return 0, err
	}
	if err := s.seriesRepo.Save(ctx, series); err != nil {
		return 0, err
	}
	return s.seriesRepo.ReserveNext(ctx, tenantID, accounting.PrefixPurchaseOrder)
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseService) GetByID(ctx context.Context, tenantID, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, tenantID, purchaseID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// GetByNumber retrieves a purchase order by order number
func (s *PurchaseService) GetByNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByNumber(ctx, tenantID, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// List retrieves purchase orders with date and status filtering
func (s *PurchaseService) List(ctx context.Context, tenantID uuid.UUID, filter DocumentListFilter) (*PagedResponse[PurchaseResponse], error) {
	page := shared.Pagination{Page: filter.Page, PageSize: filter.PageSize}
	result, err := s.purchaseRepo.List(ctx, tenantID, filter.toDomainFilter(), page)
	if err != nil {
		return nil, err
	}
	items := make([]PurchaseResponse, 0, len(result.Items))
	for _, purchase := range result.Items {
		items = append(items, ToPurchaseResponse(purchase))
	}
	return &PagedResponse[PurchaseResponse]{
		Items:      items,
		TotalCount: result.TotalCount,
		Page:       result.Page,
		PageSize:   result.PageSize,
	}, nil
}

// RecordPayment registers a payment against a purchase order
func (s *PurchaseService) RecordPayment(ctx context.Context, tenantID, purchaseID uuid.UUID, req RecordPaymentRequest) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, tenantID, purchaseID)
	if err != nil {
		return nil, err
	}
	if err := purchase.RecordPayment(req.Amount); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// Cancel excludes a purchase order from VAT reporting
func (s *PurchaseService) Cancel(ctx context.Context, tenantID, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, tenantID, purchaseID)
	if err != nil {
		return nil, err
	}
	if err := purchase.Cancel(); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}
