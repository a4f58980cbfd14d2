package accounting

import "github.com/shopspring/decimal"

// Calculator holds the pure arithmetic used for document totals and VAT.
// All math is exact decimal arithmetic; callers decide where to round.

var hundred = decimal.NewFromInt(100)

// LineTotal returns quantity times unit price
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// VATAmount returns the VAT portion for a net amount at a percent rate
func VATAmount(amount, ratePercent decimal.Decimal) decimal.Decimal {
	return amount.Mul(ratePercent).Div(hundred)
}

// ClampDiscountPercent limits a discount percentage to the [0, 100] range
func ClampDiscountPercent(percent decimal.Decimal) decimal.Decimal {
	if percent.IsNegative() {
		return decimal.Zero
	}
	if percent.GreaterThan(hundred) {
		return hundred
	}
	return percent
}

// ApplyDiscount applies a clamped percentage discount to a subtotal and
// returns the discount amount and the discounted net.
func ApplyDiscount(subtotal, percent decimal.Decimal) (discount, net decimal.Decimal) {
	percent = ClampDiscountPercent(percent)
	discount = subtotal.Mul(percent).Div(hundred)
	return discount, subtotal.Sub(discount)
}

// TotalAmount combines a net amount and its VAT into the document total.
// Tax-inclusive pricing keeps the total at the net; the VAT is disclosed
// within it rather than added on top.
func TotalAmount(net, vat decimal.Decimal, taxInclusive bool) decimal.Decimal {
	if taxInclusive {
		return net
	}
	return net.Add(vat)
}

// TotalWithoutVAT extracts the net amount from a tax-inclusive total
func TotalWithoutVAT(total, ratePercent decimal.Decimal) decimal.Decimal {
	divisor := decimal.NewFromInt(1).Add(ratePercent.Div(hundred))
	return total.Div(divisor)
}

// NetVATPayable returns output VAT minus input VAT, clamped at zero.
// Refund positions are reported as zero payable.
func NetVATPayable(outputVAT, inputVAT decimal.Decimal) decimal.Decimal {
	net := outputVAT.Sub(inputVAT)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}
