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

// SalesService creates and queries sales invoices. Creation runs the
// whole pipeline in one transaction: number reservation, document
// persistence, stock reduction and journal posting commit together or
// not at all.
type SalesService struct {
	txManager   shared.TxManager
	companyRepo identity.CompanyRepository
	productRepo catalog.ProductRepository
	saleRepo    trade.SaleRepository
	seriesRepo  accounting.InvoiceSeriesRepository
	posting     *appaccounting.PostingService
	stock       *appinventory.StockService
}

// NewSalesService creates a new SalesService
func NewSalesService(
	txManager shared.TxManager,
	companyRepo identity.CompanyRepository,
	productRepo catalog.ProductRepository,
	saleRepo trade.SaleRepository,
	seriesRepo accounting.InvoiceSeriesRepository,
	posting *appaccounting.PostingService,
	stock *appinventory.StockService,
) *SalesService {
	return &SalesService{
		txManager:   txManager,
		companyRepo: companyRepo,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		seriesRepo:  seriesRepo,
		posting:     posting,
		stock:       stock,
	}
}

// Create finalizes a sales invoice. All money is derived server side:
// unit prices come from the catalog unless the request overrides them,
// the VAT rate comes from the company settings. Request lines with a
// quantity at or below zero are dropped.
func (s *SalesService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	vatRate := company.EffectiveVATRate()

	invoiceDate := time.Now()
	if req.InvoiceDate != nil {
		invoiceDate = *req.InvoiceDate
	}

	var response *SaleResponse
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		items := make([]trade.SaleItem, 0, len(req.Items))
		for _, line := range req.Items {
			if !line.Quantity.IsPositive() {
				continue
			}
			product, err := s.productRepo.FindByID(ctx, tenantID, line.ProductID)
			if err != nil {
				return err
			}
			if !product.IsActive {
				return shared.NewDomainError("INVALID_INPUT", "Product "+product.SKU+" is inactive")
			}
			unitPrice := product.SellingPrice
			if line.UnitPrice != nil {
				unitPrice = *line.UnitPrice
			}
			item, err := trade.NewSaleItem(product.ID, product.Name, line.Quantity, unitPrice, vatRate)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		if len(items) == 0 {
			return shared.NewDomainError("INVALID_INPUT", "Sale requires at least one item with a positive quantity")
		}

		sequence, err := s.reserveNumber(ctx, tenantID, userID)
		if err != nil {
			return err
		}
		invoiceNumber := accounting.FormatDocumentNumber(accounting.PrefixSalesInvoice, invoiceDate, sequence)

		sale, err := trade.NewSale(tenantID, userID, invoiceNumber, invoiceDate, req.CustomerID, req.WarehouseID, items, req.DiscountPercent, vatRate, req.TaxInclusive, company.Currency)
		if err != nil {
			return err
		}
		sale.Notes = req.Notes
		if req.PaidAmount.IsPositive() {
			if err := sale.RecordPayment(req.PaidAmount); err != nil {
				return err
			}
		}

		if err := s.saleRepo.Save(ctx, sale); err != nil {
			return err
		}
		if err := s.stock.ReduceOnSale(ctx, sale); err != nil {
			return err
		}
		if company.VATEnabled {
			if _, err := s.posting.PostSaleEntry(ctx, sale); err != nil {
				return err
			}
		}

		r := ToSaleResponse(sale)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// reserveNumber claims the next invoice sequence value, creating the
// series on first use.
func (s *SalesService) reserveNumber(ctx context.Context, tenantID, userID uuid.UUID) (int64, error) {
	sequence, err := s.seriesRepo.ReserveNext(ctx, tenantID, accounting.PrefixSalesInvoice)
	if err == nil {
		return sequence, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return 0, err
	}
	series, err := accounting.NewInvoiceSeries(tenantID, accounting.PrefixSalesInvoice)
	if err != nil {
		return 0, err
	}
	if err := s.seriesRepo.Save(ctx, series); err != nil {
		return 0, err
	}
	return s.seriesRepo.ReserveNext(ctx, tenantID, accounting.PrefixSalesInvoice)
}

// GetByID retrieves a sales invoice by ID
func (s *SalesService) GetByID(ctx context.Context, tenantID, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByNumber retrieves a sales invoice by invoice number
func (s *SalesService) GetByNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByNumber(ctx, tenantID, invoiceNumber)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales invoices with date and status filtering
func (s *SalesService) List(ctx context.Context, tenantID uuid.UUID, filter DocumentListFilter) (*PagedResponse[SaleResponse], error) {
	page := shared.Pagination{Page: filter.Page, PageSize: filter.PageSize}
	result, err := s.saleRepo.List(ctx, tenantID, filter.toDomainFilter(), page)
	if err != nil {
		return nil, err
	}
	items := make([]SaleResponse, 0, len(result.Items))
	for _, sale := range result.Items {
		items = append(items, ToSaleResponse(sale))
	}
	return &PagedResponse[SaleResponse]{
		Items:      items,
		TotalCount: result.TotalCount,
		Page:       result.Page,
		PageSize:   result.PageSize,
	}, nil
}

// RecordPayment registers a payment against an invoice
func (s *SalesService) RecordPayment(ctx context.Context, tenantID, saleID uuid.UUID, req RecordPaymentRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	if err := sale.RecordPayment(req.Amount); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// Cancel excludes an invoice from VAT reporting. Stock and ledger
// effects are not reversed automatically.
func (s *SalesService) Cancel(ctx context.Context, tenantID, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	if err := sale.Cancel(); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}
