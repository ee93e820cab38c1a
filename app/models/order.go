package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, st := range OrderStatuses {
		if s == st {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CustomerCancellable lists the states a customer may cancel from.
func (s OrderStatus) CustomerCancellable() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}

type ActorKind string

const (
	ActorUser  ActorKind = "user"
	ActorStore ActorKind = "store"
)

type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "cod"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCard PaymentMethod = "card"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentCOD || p == PaymentUPI || p == PaymentCard
}

type ShippingAddress struct {
	FullName     string `json:"fullName" validate:"required,min=2,max=100"`
	Phone        string `json:"phone" validate:"required,numeric,min=10,max=13"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	AddressLine1 string `json:"addressLine1" validate:"required,max=200"`
	AddressLine2 string `json:"addressLine2,omitempty" validate:"max=200"`
	City         string `json:"city" validate:"required,max=100"`
	State        string `json:"state" validate:"required,max=100"`
	PostalCode   string `json:"postalCode" validate:"required,numeric,len=6"`
	Country      string `json:"country,omitempty"`
}

// Order items and shipping address are frozen at creation. Only the status
// and cancellation fields change afterwards.
type Order struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"userId"`
	CustomerEmail      string          `json:"customerEmail"`
	Items              []OrderItem     `json:"items"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	ShippingCost       decimal.Decimal `json:"shippingCost"`
	Discount           decimal.Decimal `json:"discount"`
	AppliedCouponCode  string          `json:"appliedCouponCode,omitempty"`
	GrandTotal         decimal.Decimal `json:"grandTotal"`
	ShippingAddress    ShippingAddress `json:"shippingAddress"`
	PaymentMethod      PaymentMethod   `json:"paymentMethod"`
	Status             OrderStatus     `json:"status"`
	CancellationReason string          `json:"cancellationReason,omitempty"`
	CancelledBy        ActorKind       `json:"cancelledBy,omitempty"`
	IdempotencyKey     string          `json:"idempotencyKey,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}
