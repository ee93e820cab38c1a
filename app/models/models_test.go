package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestCartItemID(t *testing.T) {
	tests := []struct {
		productID, size, want string
	}{
		{"p1", "M", "p1_M"},
		{"p1", "  XL ", "p1_XL"},
		{"p1", "28 x  32", "p1_28-x-32"},
		{"p1", "", "p1_default"},
		{"p1", "   ", "p1_default"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CartItemID(tt.productID, tt.size), "size %q", tt.size)
	}
}

func TestProduct_AvailableStock(t *testing.T) {
	untracked := &Product{}
	assert.Nil(t, untracked.AvailableStock("M"))

	aggregate := &Product{Stock: intPtr(4)}
	require.NotNil(t, aggregate.AvailableStock("M"))
	assert.Equal(t, 4, *aggregate.AvailableStock("M"))

	variants := &Product{
		Stock:    intPtr(100),
		Variants: []ProductVariant{{Size: "M", Stock: 3}, {Size: "L", Stock: 0}},
	}
	assert.Equal(t, 3, *variants.AvailableStock(" m "))
	assert.Equal(t, 0, *variants.AvailableStock("L"))
	assert.Equal(t, 0, *variants.AvailableStock("XXL"))
	assert.Equal(t, 3, *variants.TotalStock())
}

func TestProduct_Validate(t *testing.T) {
	p := &Product{Price: decimal.NewFromInt(499)}
	assert.NoError(t, p.Validate())

	p.Price = decimal.Zero
	assert.ErrorIs(t, p.Validate(), ErrInvalidPrice)

	p.Price = decimal.NewFromInt(10)
	p.Stock = intPtr(-1)
	assert.ErrorIs(t, p.Validate(), ErrNegativeStock)

	p.Stock = nil
	p.Variants = []ProductVariant{{Size: "M", Stock: -2}}
	assert.ErrorIs(t, p.Validate(), ErrNegativeStock)
}

func TestProduct_AddReview(t *testing.T) {
	p := &Product{}
	require.NoError(t, p.AddReview(Review{Rating: 5}))
	require.NoError(t, p.AddReview(Review{Rating: 4}))
	require.NoError(t, p.AddReview(Review{Rating: 4}))

	assert.Equal(t, 3, p.ReviewCount)
	assert.Equal(t, 4.3, p.AverageRating)
	assert.ErrorIs(t, p.AddReview(Review{Rating: 6}), ErrInvalidRating)
	assert.Equal(t, 3, p.ReviewCount)
}

func TestCoupon_IsApplicable(t *testing.T) {
	expiry := time.Date(2025, 1, 31, 23, 59, 0, 0, time.UTC)
	min := decimal.NewFromInt(500)
	c := &Coupon{IsActive: true, ExpiryDate: &expiry, MinPurchaseAmount: &min}

	assert.True(t, c.IsApplicable(decimal.NewFromInt(500), expiry.Add(-time.Second)))
	assert.False(t, c.IsApplicable(decimal.NewFromInt(500), expiry))
	assert.False(t, c.IsApplicable(decimal.NewFromInt(499), expiry.Add(-time.Hour)))

	c.IsActive = false
	assert.False(t, c.IsApplicable(decimal.NewFromInt(1000), expiry.Add(-time.Hour)))

	open := &Coupon{IsActive: true}
	assert.True(t, open.IsApplicable(decimal.NewFromInt(1), expiry.AddDate(10, 0, 0)))
}

func TestCoupon_IsDisplayable(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	assert.True(t, (&Coupon{IsActive: true, DisplayOnSite: true}).IsDisplayable(now))
	assert.False(t, (&Coupon{IsActive: true}).IsDisplayable(now))
	assert.False(t, (&Coupon{DisplayOnSite: true}).IsDisplayable(now))
	assert.False(t, (&Coupon{IsActive: true, DisplayOnSite: true, ExpiryDate: &past}).IsDisplayable(now))
}

func TestOrderStatus(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())

	assert.True(t, OrderStatusPending.CustomerCancellable())
	assert.True(t, OrderStatusProcessing.CustomerCancellable())
	assert.False(t, OrderStatusShipped.CustomerCancellable())

	assert.False(t, OrderStatus("Lost").Valid())
}

func TestStoreSettings_ShippingFor(t *testing.T) {
	s := DefaultStoreSettings()
	assert.True(t, s.ShippingFor(decimal.NewFromInt(5000)).Equal(decimal.NewFromInt(50)))

	threshold := decimal.NewFromInt(999)
	s.FreeShippingThreshold = &threshold
	assert.True(t, s.ShippingFor(decimal.NewFromInt(999)).IsZero())
	assert.True(t, s.ShippingFor(decimal.NewFromInt(998)).Equal(decimal.NewFromInt(50)))
}
