package inventory

import "github.com/shopspring/decimal"

// ReorderState classifies how close a stock level is to its reorder point
type ReorderState string

const (
	ReorderStateOK       ReorderState = "OK"
	ReorderStateWarning  ReorderState = "WARNING"
	ReorderStateCritical ReorderState = "CRITICAL"
)

var half = decimal.RequireFromString("0.5")

// ReorderStatus evaluates a quantity against a reorder level.
// CRITICAL at or below half the level, WARNING at or below the level,
// OK above it. A zero reorder level means the product is not tracked
// and always reports OK.
func ReorderStatus(quantity, reorderLevel decimal.Decimal) ReorderState {
	if !reorderLevel.IsPositive() {
		return ReorderStateOK
	}
	if quantity.LessThanOrEqual(reorderLevel.Mul(half)) {
		return ReorderStateCritical
	}
	if quantity.LessThanOrEqual(reorderLevel) {
		return ReorderStateWarning
	}
	return ReorderStateOK
}
