package trade

// DocumentStatus is the lifecycle state of a trade document.
// Documents are finalized on creation; cancellation keeps the row for
// reporting but excludes it from VAT summaries.
type DocumentStatus string

const (
	DocumentStatusFinalized DocumentStatus = "FINALIZED"
	DocumentStatusCancelled DocumentStatus = "CANCELLED"
)

// IsValid checks if the document status is valid
func (s DocumentStatus) IsValid() bool {
	return s == DocumentStatusFinalized || s == DocumentStatusCancelled
}

// PaymentStatus tracks how much of a document has been settled
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}
