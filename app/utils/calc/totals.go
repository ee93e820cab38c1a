package calc

import "github.com/shopspring/decimal"

type Line interface {
	LineTotal() decimal.Decimal
}

func Subtotal[T Line](lines []T) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// CalculateGrandTotal never goes below zero.
func CalculateGrandTotal(baseTotal, shippingCost, discountAmount decimal.Decimal) decimal.Decimal {
	total := baseTotal.Add(shippingCost).Sub(discountAmount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
