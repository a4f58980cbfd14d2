package accounting

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gulfbooks/backend/internal/domain/shared"
)

// Document number prefixes
const (
	PrefixSalesInvoice  = "SI"
	PrefixPurchaseOrder = "PO"
)

// InvoiceSeries issues sequential document numbers per tenant and prefix.
// NextNumber is the next unissued sequence value; reservation happens
// under a row lock so concurrent documents never share a number.
type InvoiceSeries struct {
	shared.BaseEntity
	TenantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_invoice_series_tenant_prefix,priority:1" json:"tenant_id"`
	Prefix     string    `gorm:"size:10;not null;uniqueIndex:idx_invoice_series_tenant_prefix,priority:2" json:"prefix"`
	NextNumber int64     `gorm:"not null;default:1" json:"next_number"`
}

// TableName specifies the table name for GORM
func (InvoiceSeries) TableName() string {
	return "invoice_series"
}

// NewInvoiceSeries creates a series starting at 1
func NewInvoiceSeries(tenantID uuid.UUID, prefix string) (*InvoiceSeries, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Series prefix is required")
	}
	return &InvoiceSeries{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		Prefix:     prefix,
		NextNumber: 1,
	}, nil
}

// FormatDocumentNumber renders a reserved sequence value as a document
// number, e.g. SI-2024-000001.
func FormatDocumentNumber(prefix string, issuedAt time.Time, sequence int64) string {
	return fmt.Sprintf("%s-%d-%06d", strings.ToUpper(prefix), issuedAt.Year(), sequence)
}

// SaleEntryReference derives the journal reference for a sales invoice
func SaleEntryReference(invoiceNumber string) string {
	return "JE-SALE-" + invoiceNumber
}

// PurchaseEntryReference derives the journal reference for a purchase order
func PurchaseEntryReference(orderNumber string) string {
	return "JE-PURCHASE-" + orderNumber
}
