package calc

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

func CalculateDiscount(baseTotal, discountPercent decimal.Decimal) decimal.Decimal {
	return baseTotal.Mul(discountPercent).Div(hundred)
}

// PercentageDiscount rounds half-up to whole currency units.
func PercentageDiscount(subtotal, percent decimal.Decimal) decimal.Decimal {
	return CalculateDiscount(subtotal, percent).Round(0)
}

// CapDiscount keeps a discount within [0, subtotal].
func CapDiscount(discount, subtotal decimal.Decimal) decimal.Decimal {
	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}
