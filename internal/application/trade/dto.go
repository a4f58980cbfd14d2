package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gulfbooks/backend/internal/domain/trade"
)

// ===================== Request DTOs =====================

// SaleItemRequest is one requested invoice line. Quantity at or below
// zero drops the line instead of failing the request. UnitPrice
// overrides the catalog selling price when set.
type SaleItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateSaleRequest creates a finalized sales invoice
type CreateSaleRequest struct {
	InvoiceDate     *time.Time        `json:"invoice_date,omitempty"`
	CustomerID      *uuid.UUID        `json:"customer_id,omitempty"`
	WarehouseID     uuid.UUID         `json:"warehouse_id" binding:"required"`
	Items           []SaleItemRequest `json:"items" binding:"required,min=1,max=200,dive"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	TaxInclusive    bool              `json:"tax_inclusive"`
	PaidAmount      decimal.Decimal   `json:"paid_amount"`
	Notes           string            `json:"notes" binding:"max=500"`
}

// PurchaseItemRequest is one requested purchase line. UnitCost
// overrides the catalog cost price when set.
type PurchaseItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
}

// CreatePurchaseRequest creates a finalized purchase order
type CreatePurchaseRequest struct {
	OrderDate       *time.Time            `json:"order_date,omitempty"`
	SupplierID      *uuid.UUID            `json:"supplier_id,omitempty"`
	WarehouseID     uuid.UUID             `json:"warehouse_id" binding:"required"`
	Items           []PurchaseItemRequest `json:"items" binding:"required,min=1,max=200,dive"`
	DiscountPercent decimal.Decimal       `json:"discount_percent"`
	TaxInclusive    bool                  `json:"tax_inclusive"`
	PaidAmount      decimal.Decimal       `json:"paid_amount"`
	Notes           string                `json:"notes" binding:"max=500"`
}

// RecordPaymentRequest registers a payment against a document
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// DocumentListFilter narrows document list queries
type DocumentListFilter struct {
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Status   *string    `form:"status" binding:"omitempty,oneof=FINALIZED CANCELLED"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// ===================== Response DTOs =====================

// SaleItemResponse represents an invoice line in API responses
type SaleItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// SaleResponse represents a sales invoice in API responses
type SaleResponse struct {
	ID              uuid.UUID          `json:"id"`
	InvoiceNumber   string             `json:"invoice_number"`
	InvoiceDate     time.Time          `json:"invoice_date"`
	CustomerID      *uuid.UUID         `json:"customer_id,omitempty"`
	WarehouseID     uuid.UUID          `json:"warehouse_id"`
	Items           []SaleItemResponse `json:"items"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	DiscountPercent decimal.Decimal    `json:"discount_percent"`
	DiscountAmount  decimal.Decimal    `json:"discount_amount"`
	OutputVAT       decimal.Decimal    `json:"output_vat"`
	TaxInclusive    bool               `json:"tax_inclusive"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	Currency        string             `json:"currency"`
	Status          string             `json:"status"`
	PaymentStatus   string             `json:"payment_status"`
	PaidAmount      decimal.Decimal    `json:"paid_amount"`
	Notes           string             `json:"notes,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

// PurchaseItemResponse represents a purchase line in API responses
type PurchaseItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// PurchaseResponse represents a purchase order in API responses
type PurchaseResponse struct {
	ID              uuid.UUID              `json:"id"`
	OrderNumber     string                 `json:"order_number"`
	OrderDate       time.Time              `json:"order_date"`
	SupplierID      *uuid.UUID             `json:"supplier_id,omitempty"`
	WarehouseID     uuid.UUID              `json:"warehouse_id"`
	Items           []PurchaseItemResponse `json:"items"`
	Subtotal        decimal.Decimal        `json:"subtotal"`
	DiscountPercent decimal.Decimal        `json:"discount_percent"`
	DiscountAmount  decimal.Decimal        `json:"discount_amount"`
	InputVAT        decimal.Decimal        `json:"input_vat"`
	TaxInclusive    bool                   `json:"tax_inclusive"`
	TotalAmount     decimal.Decimal        `json:"total_amount"`
	Currency        string                 `json:"currency"`
	Status          string                 `json:"status"`
	PaymentStatus   string                 `json:"payment_status"`
	PaidAmount      decimal.Decimal        `json:"paid_amount"`
	Notes           string                 `json:"notes,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

// PagedResponse wraps a page of list results
type PagedResponse[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
}

// ===================== Converters =====================

// ToSaleResponse converts a domain sale to its response DTO
func ToSaleResponse(sale *trade.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TaxRate:     item.TaxRate,
			TaxAmount:   item.TaxAmount,
			LineTotal:   item.LineTotal,
		})
	}
	total := sale.Total()
	return SaleResponse{
		ID:              sale.ID,
		InvoiceNumber:   sale.InvoiceNumber,
		InvoiceDate:     sale.InvoiceDate,
		CustomerID:      sale.CustomerID,
		WarehouseID:     sale.WarehouseID,
		Items:           items,
		Subtotal:        sale.Subtotal,
		DiscountPercent: sale.DiscountPercent,
		DiscountAmount:  sale.DiscountAmount,
		OutputVAT:       sale.OutputVAT,
		TaxInclusive:    sale.TaxInclusive,
		TotalAmount:     total.Amount(),
		Currency:        total.Currency(),
		Status:          string(sale.Status),
		PaymentStatus:   string(sale.PaymentStatus),
		PaidAmount:      sale.PaidAmount,
		Notes:           sale.Notes,
		CreatedAt:       sale.CreatedAt,
	}
}

// ToPurchaseResponse converts a domain purchase to its response DTO
func ToPurchaseResponse(purchase *trade.Purchase) PurchaseResponse {
	items := make([]PurchaseItemResponse, 0, len(purchase.Items))
	for _, item := range purchase.Items {
		items = append(items, PurchaseItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			TaxRate:     item.TaxRate,
			TaxAmount:   item.TaxAmount,
			LineTotal:   item.LineTotal,
		})
	}
	total := purchase.Total()
	return PurchaseResponse{
		ID:              purchase.ID,
		OrderNumber:     purchase.OrderNumber,
		OrderDate:       purchase.OrderDate,
		SupplierID:      purchase.SupplierID,
		WarehouseID:     purchase.WarehouseID,
		Items:           items,
		Subtotal:        purchase.Subtotal,
		DiscountPercent: purchase.DiscountPercent,
		DiscountAmount:  purchase.DiscountAmount,
		InputVAT:        purchase.InputVAT,
		TaxInclusive:    purchase.TaxInclusive,
		TotalAmount:     total.Amount(),
		Currency:        total.Currency(),
		Status:          string(purchase.Status),
		PaymentStatus:   string(purchase.PaymentStatus),
		PaidAmount:      purchase.PaidAmount,
		Notes:           purchase.Notes,
		CreatedAt:       purchase.CreatedAt,
	}
}

// toDomainFilter maps the list filter onto the repository filter
func (f DocumentListFilter) toDomainFilter() trade.DocumentFilter {
	filter := trade.DocumentFilter{From: f.From, To: f.To}
	if f.Status != nil {
		status := trade.DocumentStatus(*f.Status)
		filter.Status = &status
	}
	return filter
}
