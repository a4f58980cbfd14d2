package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gulfbooks/backend/internal/domain/accounting"
	"github.com/gulfbooks/backend/internal/domain/shared"
	"github.com/gulfbooks/backend/internal/domain/shared/valueobject"
)

// SaleItem is one invoice line. Pricing is resolved from the catalog at
// creation time and frozen on the line.
type SaleItem struct {
	shared.BaseEntity
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_price"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"tax_rate"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"tax_amount"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"line_total"`
}

// TableName specifies the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// NewSaleItem builds an invoice line and derives its totals
func NewSaleItem(productID uuid.UUID, productName string, quantity, unitPrice, taxRate decimal.Decimal) (SaleItem, error) {
	if productID == uuid.Nil {
		return SaleItem{}, shared.NewDomainError("INVALID_INPUT", "Sale item requires a product")
	}
	if !quantity.IsPositive() {
		return SaleItem{}, shared.NewDomainError("INVALID_INPUT", "Sale item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return SaleItem{}, shared.NewDomainError("INVALID_INPUT", "Sale item unit price cannot be negative")
	}

	lineTotal := accounting.LineTotal(quantity, unitPrice)
	taxAmount := accounting.VATAmount(lineTotal, taxRate)

	return SaleItem{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TaxRate:     taxRate,
		TaxAmount:   taxAmount,
		LineTotal:   lineTotal,
	}, nil
}

// Sale is a finalized sales invoice. All money fields are derived from
// the items and the document discount at construction and never
// recomputed afterwards.
type Sale struct {
	shared.TenantAggregateRoot
	InvoiceNumber   string          `gorm:"size:50;not null;uniqueIndex:,composite:tenant,priority:2" json:"invoice_number"`
	InvoiceDate     time.Time       `gorm:"not null;index" json:"invoice_date"`
	CustomerID      *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	WarehouseID     uuid.UUID       `gorm:"type:uuid;not null" json:"warehouse_id"`
	Items           []SaleItem      `gorm:"foreignKey:SaleID" json:"items"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"subtotal"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percent"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"discount_amount"`
	OutputVAT       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"output_vat"`
	TaxInclusive    bool            `gorm:"not null;default:false" json:"tax_inclusive"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_amount"`
	Currency        string          `gorm:"size:3;not null;default:AED" json:"currency"`
	Status          DocumentStatus  `gorm:"size:20;not null" json:"status"`
	PaymentStatus   PaymentStatus   `gorm:"size:20;not null" json:"payment_status"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"paid_amount"`
	Notes           string          `gorm:"size:500" json:"notes"`
}

// TableName specifies the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale finalizes a sales invoice from priced items. The discount is
// clamped to [0, 100] and applied to the item subtotal; VAT is computed
// on the discounted net at the given rate.
func NewSale(tenantID, createdBy uuid.UUID, invoiceNumber string, invoiceDate time.Time, customerID *uuid.UUID, warehouseID uuid.UUID, items []SaleItem, discountPercent, vatRate decimal.Decimal, taxInclusive bool, currency string) (*Sale, error) {
	if strings.TrimSpace(invoiceNumber) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice number is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sale requires at least one item")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal)
	}

	discountPercent = accounting.ClampDiscountPercent(discountPercent)
	discountAmount, net := accounting.ApplyDiscount(subtotal, discountPercent)

	// VAT is always rate-on-net; tax-inclusive pricing only changes
	// whether the VAT is added on top of the total.
	outputVAT := accounting.VATAmount(net, vatRate)
	total := accounting.TotalAmount(net, outputVAT, taxInclusive)

	sale := &Sale{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID, createdBy),
		InvoiceNumber:       strings.TrimSpace(invoiceNumber),
		InvoiceDate:         invoiceDate,
		CustomerID:          customerID,
		WarehouseID:         warehouseID,
		Items:               make([]SaleItem, 0, len(items)),
		Subtotal:            subtotal,
		DiscountPercent:     discountPercent,
		DiscountAmount:      discountAmount,
		OutputVAT:           outputVAT,
		TaxInclusive:        taxInclusive,
		TotalAmount:         total,
		Currency:            currency,
		Status:              DocumentStatusFinalized,
		PaymentStatus:       PaymentStatusUnpaid,
		PaidAmount:          decimal.Zero,
	}
	for _, item := range items {
		item.SaleID = sale.ID
		sale.Items = append(sale.Items, item)
	}
	return sale, nil
}

// NetAmount is the invoice total excluding VAT
func (s *Sale) NetAmount() decimal.Decimal {
	return s.TotalAmount.Sub(s.OutputVAT)
}

// Total returns the invoice total as a money value
func (s *Sale) Total() valueobject.Money {
	return valueobject.NewMoney(s.TotalAmount, s.Currency)
}

// RecordPayment registers an amount received against the invoice
func (s *Sale) RecordPayment(amount decimal.Decimal) error {
	if s.Status == DocumentStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot record payment on a cancelled sale")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	next := s.PaidAmount.Add(amount)
	if next.GreaterThan(s.TotalAmount) {
		return shared.NewDomainError("INVALID_INPUT", "Payment exceeds invoice total")
	}
	s.PaidAmount = next
	switch {
	case next.Equal(s.TotalAmount):
		s.PaymentStatus = PaymentStatusPaid
	default:
		s.PaymentStatus = PaymentStatusPartial
	}
	s.IncrementVersion()
	return nil
}

// Cancel excludes the invoice from VAT reporting
func (s *Sale) Cancel() error {
	if s.Status == DocumentStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Sale is already cancelled")
	}
	s.Status = DocumentStatusCancelled
	s.IncrementVersion()
	return nil
}
