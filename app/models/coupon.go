package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

func (t DiscountType) Valid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

type Coupon struct {
	ID                string           `json:"id"`
	Code              string           `json:"code"`
	DiscountType      DiscountType     `json:"discountType"`
	DiscountValue     decimal.Decimal  `json:"discountValue"`
	ExpiryDate        *time.Time       `json:"expiryDate,omitempty"`
	MinPurchaseAmount *decimal.Decimal `json:"minPurchaseAmount,omitempty"`
	IsActive          bool             `json:"isActive"`
	DisplayOnSite     bool             `json:"displayOnSite"`
	CreatedAt         time.Time        `json:"createdAt"`
}

func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsExpired treats the expiry instant itself as expired.
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpiryDate != nil && !now.Before(*c.ExpiryDate)
}

func (c *Coupon) MeetsMinimum(subtotal decimal.Decimal) bool {
	return c.MinPurchaseAmount == nil || subtotal.GreaterThanOrEqual(*c.MinPurchaseAmount)
}

func (c *Coupon) IsApplicable(subtotal decimal.Decimal, now time.Time) bool {
	return c.IsActive && !c.IsExpired(now) && c.MeetsMinimum(subtotal)
}

// IsDisplayable reports whether the coupon belongs in the public list.
func (c *Coupon) IsDisplayable(now time.Time) bool {
	return c.IsActive && c.DisplayOnSite && !c.IsExpired(now)
}
