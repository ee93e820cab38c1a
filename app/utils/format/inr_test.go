package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestINR(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"950", "₹950.00"},
		{"1999", "₹1,999.00"},
		{"12345.5", "₹12,345.50"},
		{"100000", "₹1,00,000.00"},
		{"1234567.5", "₹12,34,567.50"},
		{"123456789", "₹12,34,56,789.00"},
		{"-100", "-₹100.00"},
		{"-250000", "-₹2,50,000.00"},
		{"-0.001", "₹0.00"},
		{"99.999", "₹100.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, INR(decimal.RequireFromString(tt.in)))
		})
	}
}
