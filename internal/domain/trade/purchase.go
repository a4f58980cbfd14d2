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

// PurchaseItem is one purchase order line priced at the supplier cost
type PurchaseItem struct {
	shared.BaseEntity
	PurchaseID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"quantity"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_cost"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"tax_rate"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"tax_amount"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"line_total"`
}

// TableName specifies the table name for GORM
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// NewPurchaseItem builds a purchase line and derives its totals
func NewPurchaseItem(productID uuid.UUID, productName string, quantity, unitCost, taxRate decimal.Decimal) (PurchaseItem, error) {
	if productID == uuid.Nil {
		return PurchaseItem{}, shared.NewDomainError("INVALID_INPUT", "Purchase item requires a product")
	}
	if !quantity.IsPositive() {
		return PurchaseItem{}, shared.NewDomainError("INVALID_INPUT", "Purchase item quantity must be positive")
	}
	if unitCost.IsNegative() {
		return PurchaseItem{}, shared.NewDomainError("INVALID_INPUT", "Purchase item unit cost cannot be negative")
	}

	lineTotal := accounting.LineTotal(quantity, unitCost)
	taxAmount := accounting.VATAmount(lineTotal, taxRate)

	return PurchaseItem{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitCost:    unitCost,
		TaxRate:     taxRate,
		TaxAmount:   taxAmount,
		LineTotal:   lineTotal,
	}, nil
}

// Purchase is a finalized purchase order
type Purchase struct {
	shared.TenantAggregateRoot
	OrderNumber     string          `gorm:"size:50;not null;uniqueIndex:,composite:tenant,priority:2" json:"order_number"`
	OrderDate       time.Time       `gorm:"not null;index" json:"order_date"`
	SupplierID      *uuid.UUID      `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	WarehouseID     uuid.UUID       `gorm:"type:uuid;not null" json:"warehouse_id"`
	Items           []PurchaseItem  `gorm:"foreignKey:PurchaseID" json:"items"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"subtotal"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percent"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"discount_amount"`
	InputVAT        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"input_vat"`
	TaxInclusive    bool            `gorm:"not null;default:false" json:"tax_inclusive"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_amount"`
	Currency        string          `gorm:"size:3;not null;default:AED" json:"currency"`
	Status          DocumentStatus  `gorm:"size:20;not null" json:"status"`
	PaymentStatus   PaymentStatus   `gorm:"size:20;not null" json:"payment_status"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"paid_amount"`
	Notes           string          `gorm:"size:500" json:"notes"`
}

// TableName specifies the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase finalizes a purchase order from priced items, mirroring
// the sale-side totals derivation.
func NewPurchase(tenantID, createdBy uuid.UUID, orderNumber string, orderDate time.Time, supplierID *uuid.UUID, warehouseID uuid.UUID, items []PurchaseItem, discountPercent, vatRate decimal.Decimal, taxInclusive bool, currency string) (*Purchase, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order number is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase requires at least one item")
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
	inputVAT := accounting.VATAmount(net, vatRate)
	total := accounting.TotalAmount(net, inputVAT, taxInclusive)

	purchase := &Purchase{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID, createdBy),
		OrderNumber:         strings.TrimSpace(orderNumber),
		OrderDate:           orderDate,
		SupplierID:          supplierID,
		WarehouseID:         warehouseID,
		Items:               make([]PurchaseItem, 0, len(items)),
		Subtotal:            subtotal,
		DiscountPercent:     discountPercent,
		DiscountAmount:      discountAmount,
		InputVAT:            inputVAT,
		TaxInclusive:        taxInclusive,
		TotalAmount:         total,
		Currency:            currency,
		Status:              DocumentStatusFinalized,
		PaymentStatus:       PaymentStatusUnpaid,
		PaidAmount:          decimal.Zero,
	}
	for _, item := range items {
		item.PurchaseID = purchase.ID
		purchase.Items = append(purchase.Items, item)
	}
	return purchase, nil
}

// NetAmount is the order total excluding VAT
func (p *Purchase) NetAmount() decimal.Decimal {
	return p.TotalAmount.Sub(p.InputVAT)
}

// Total returns the order total as a money value
func (p *Purchase) Total() valueobject.Money {
	return valueobject.NewMoney(p.TotalAmount, p.Currency)
}

// RecordPayment registers an amount paid against the order
func (p *Purchase) RecordPayment(amount decimal.Decimal) error {
	if p.Status == DocumentStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot record payment on a cancelled purchase")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	next := p.PaidAmount.Add(amount)
	if next.GreaterThan(p.TotalAmount) {
		return shared.NewDomainError("INVALID_INPUT", "Payment exceeds order total")
	}
	p.PaidAmount = next
	if next.Equal(p.TotalAmount) {
		p.PaymentStatus = PaymentStatusPaid
	} else {
		p.PaymentStatus = PaymentStatusPartial
	}
	p.IncrementVersion()
	return nil
}

// Cancel excludes the order from VAT reporting
func (p *Purchase) Cancel() error {
	if p.Status == DocumentStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Purchase is already cancelled")
	}
	p.Status = DocumentStatusCancelled
	p.IncrementVersion()
	return nil
}
