package services

import (
	"errors"
	"fmt"

	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
)

var (
	ErrNotAuthenticated       = errors.New("sign in required")
	ErrOutOfStock             = errors.New("product is out of stock")
	ErrProductNotFound        = errors.New("product not found")
	ErrInvalidCartItem        = errors.New("invalid cart item")
	ErrCouponNotFound         = errors.New("coupon not found")
	ErrCouponExpired          = errors.New("coupon has expired")
	ErrCouponInactive         = errors.New("coupon is not active")
	ErrMinimumPurchaseNotMet  = errors.New("minimum purchase amount not met")
	ErrCouponCodeTaken        = errors.New("coupon code already exists")
	ErrInvalidCoupon          = errors.New("invalid coupon")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrInvalidShippingAddress = errors.New("invalid shipping address")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrOrderNotFound          = errors.New("order not found")
	ErrAccessDenied           = errors.New("access denied")
	ErrInvalidStatus          = errors.New("invalid order status")
	ErrPersistence            = errors.New("store unavailable")

	ErrCancellationReasonRequired  = errors.New("a cancellation reason is required")
	ErrCancellationNotAllowed      = errors.New("order can no longer be cancelled")
	ErrCancellationRequiresSupport = errors.New("order has been dispatched; contact the store to cancel")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidInput       = errors.New("invalid input")
)

// persistence wraps a store failure so callers can match ErrPersistence
// while the cause stays reachable through errors.Is / errors.As.
func persistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}

// SupportContactError is returned when a customer asks to cancel an order
// that has already left the store.
type SupportContactError struct {
	Status         models.OrderStatus
	ContactPhone   string
	WhatsappNumber string
}

func (e *SupportContactError) Error() string {
	return fmt.Sprintf("order is %s; contact the store to cancel (phone %s, WhatsApp %s)",
		e.Status, e.ContactPhone, e.WhatsappNumber)
}

func (e *SupportContactError) Unwrap() error {
	return ErrCancellationRequiresSupport
}
