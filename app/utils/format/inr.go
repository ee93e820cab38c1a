package format

import (
	"strings"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

const (
	rupeeSymbol = "₹"
	precision   = 2
)

// INR formats amount in rupees with Indian digit grouping, e.g.
// ₹1,00,000.00 and ₹12,34,567.50.
func INR(amount decimal.Decimal) string {
	rounded := amount.Round(precision)
	plain := accounting.FormatNumberDecimal(rounded.Abs(), precision, "", ".")
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return sign + rupeeSymbol + groupLakh(plain)
}

// groupLakh groups the integer part of an unsigned number as 3 then 2s.
func groupLakh(n string) string {
	intPart, frac := n, ""
	if i := strings.IndexByte(n, '.'); i >= 0 {
		intPart, frac = n[:i], n[i:]
	}
	if len(intPart) <= 3 {
		return intPart + frac
	}
	head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(groups, ",") + "," + tail + frac
}
