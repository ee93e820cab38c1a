package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SumanthCsy/Mens-Club-sub000/app/docstore"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartLine(productID string, price int64, qty int) models.CartItem {
	return models.CartItem{
		ID:        models.CartItemID(productID, "M"),
		ProductID: productID,
		Name:      "Item " + productID,
		Price:     decimal.NewFromInt(price),
		Quantity:  qty,
	}
}

func (e *testEnv) placePending(t *testing.T, uid string) *models.Order {
	t.Helper()
	order, err := e.orders.PlaceOrder(context.Background(), customer(uid), PlaceOrderRequest{
		Items:           []models.CartItem{cartLine("p1", 400, 1)},
		ShippingAddress: validAddress(),
		PaymentMethod:   models.PaymentCOD,
	})
	require.NoError(t, err)
	return order
}

func TestOrderService_PlaceOrderEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.orders.PlaceOrder(ctx, customer("u1"), PlaceOrderRequest{
		ShippingAddress: validAddress(),
		PaymentMethod:   models.PaymentCOD,
	})
	assert.ErrorIs(t, err, ErrEmptyCart)

	orders, err := env.orderRepo.GetAllOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_PlaceOrderValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	items := []models.CartItem{cartLine("p1", 100, 1)}

	_, err := env.orders.PlaceOrder(ctx, nil, PlaceOrderRequest{Items: items})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	bad := validAddress()
	bad.PostalCode = "12"
	_, err = env.orders.PlaceOrder(ctx, customer("u1"), PlaceOrderRequest{Items: items, ShippingAddress: bad, PaymentMethod: models.PaymentUPI})
	assert.ErrorIs(t, err, ErrInvalidShippingAddress)

	_, err = env.orders.PlaceOrder(ctx, customer("u1"), PlaceOrderRequest{Items: items, ShippingAddress: validAddress(), PaymentMethod: "cheque"})
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	_, err = env.orders.PlaceOrder(ctx, customer("u1"), PlaceOrderRequest{Items: items, ShippingAddress: validAddress(), PaymentMethod: models.PaymentCard, CouponCode: "NOPE"})
	assert.ErrorIs(t, err, ErrCouponNotFound)

	orders, err := env.orderRepo.GetAllOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_CheckoutEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.settingsRepo.Save(ctx, &models.StoreSettings{StoreName: "Mens Club", ShippingCost: dec("50")}))
	env.addCoupon(t, models.Coupon{Code: "SAVE10", DiscountType: models.DiscountPercentage, DiscountValue: dec("10"), MinPurchaseAmount: decPtr("500"), IsActive: true})

	var (
		mu     sync.Mutex
		placed []models.Order
	)
	require.NoError(t, env.bus.Subscribe(TopicOrderPlaced, func(o models.Order) {
		mu.Lock()
		placed = append(placed, o)
		mu.Unlock()
	}))

	user := customer("u1")
	s := env.session(t, user)
	p := env.addProduct(t, "shirt", 500, intPtr(10))
	_, err := s.Cart.AddToCart(ctx, p, "M", "", 2)
	require.NoError(t, err)
	eventually(t, func() bool { return s.Cart.CartCount() == 2 })

	res, err := env.orders.Checkout(ctx, s, PlaceOrderRequest{
		ShippingAddress: validAddress(),
		PaymentMethod:   models.PaymentCOD,
		CouponCode:      "save10",
	})
	require.NoError(t, err)
	order := res.Order

	assert.True(t, res.CartCleared)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, order.Subtotal.Equal(dec("1000")))
	assert.True(t, order.Discount.Equal(dec("100")))
	assert.True(t, order.ShippingCost.Equal(dec("50")))
	assert.True(t, order.GrandTotal.Equal(dec("950")))
	assert.Equal(t, "SAVE10", order.AppliedCouponCode)
	assert.Equal(t, testNow, order.CreatedAt)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Product shirt", order.Items[0].Name)
	assert.Equal(t, "/img/shirt.jpg", order.Items[0].ImageURL)

	stored, err := env.orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.GrandTotal.Equal(dec("950")))

	eventually(t, func() bool { return s.Cart.CartCount() == 0 })
	mu.Lock()
	assert.Len(t, placed, 1)
	mu.Unlock()
}

func TestOrderService_FreeShippingThreshold(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.settingsRepo.Save(ctx, &models.StoreSettings{ShippingCost: dec("50"), FreeShippingThreshold: decPtr("999")}))

	order, err := env.orders.PlaceOrder(ctx, customer("u1"), PlaceOrderRequest{
		Items:           []models.CartItem{cartLine("p1", 500, 2)},
		ShippingAddress: validAddress(),
		PaymentMethod:   models.PaymentUPI,
	})
	require.NoError(t, err)
	assert.True(t, order.ShippingCost.IsZero())
	assert.True(t, order.GrandTotal.Equal(dec("1000")))
}

func TestOrderService_IdempotentRetry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	req := PlaceOrderRequest{
		Items:           []models.CartItem{cartLine("p1", 300, 1)},
		ShippingAddress: validAddress(),
		PaymentMethod:   models.PaymentCOD,
		IdempotencyKey:  "checkout-42",
	}

	first, err := env.orders.PlaceOrder(ctx, customer("u1"), req)
	require.NoError(t, err)
	second, err := env.orders.PlaceOrder(ctx, customer("u1"), req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	other, err := env.orders.PlaceOrder(ctx, customer("u2"), req)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	orders, err := env.orderRepo.GetAllOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrderService_CheckoutReplayKeepsNewItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	s := env.session(t, customer("u1"))
	shirt := env.addProduct(t, "shirt", 500, nil)
	jeans := env.addProduct(t, "jeans", 1200, nil)
	req := PlaceOrderRequest{ShippingAddress: validAddress(), PaymentMethod: models.PaymentCOD, IdempotencyKey: "k1"}

	_, err := s.Cart.AddToCart(ctx, shirt, "M", "", 1)
	require.NoError(t, err)
	eventually(t, func() bool { return s.Cart.CartCount() == 1 })

	first, err := env.orders.Checkout(ctx, s, req)
	require.NoError(t, err)
	assert.True(t, first.CartCleared)
	assert.False(t, first.Replayed)
	eventually(t, func() bool { return s.Cart.CartCount() == 0 })

	retry, err := env.orders.Checkout(ctx, s, req)
	require.NoError(t, err)
	assert.True(t, retry.Replayed)
	assert.Equal(t, first.Order.ID, retry.Order.ID)

	_, err = s.Cart.AddToCart(ctx, jeans, "32", "", 1)
	require.NoError(t, err)
	eventually(t, func() bool { return s.Cart.CartCount() == 1 })

	retry, err = env.orders.Checkout(ctx, s, req)
	require.NoError(t, err)
	assert.True(t, retry.Replayed)
	assert.False(t, retry.CartCleared)
	require.Len(t, retry.Order.Items, 1)
	assert.Equal(t, "shirt", retry.Order.Items[0].ProductID)

	lines, err := env.cartRepo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "jeans_32", lines[0].ID)

	orders, err := env.orderRepo.GetAllOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestOrderService_CheckoutRequiresAttachedSession(t *testing.T) {
	env := newTestEnv(t)
	s := NewSession(env.cartRepo, env.wishlistRepo)
	_, err := env.orders.Checkout(context.Background(), s, PlaceOrderRequest{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = env.orders.Checkout(context.Background(), nil, PlaceOrderRequest{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestOrderService_CustomerCancellation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.placePending(t, "u1")

	cancelled, err := env.orders.RequestCancellation(ctx, CustomerActor("u1"), order.ID, "Ordered by mistake", "")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, models.ActorUser, cancelled.CancelledBy)
	assert.Equal(t, "Ordered by mistake", cancelled.CancellationReason)

	stored, err := env.orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, stored.Status)
	assert.Equal(t, models.ActorUser, stored.CancelledBy)

	_, err = env.orders.RequestCancellation(ctx, CustomerActor("u1"), order.ID, "again", "")
	assert.ErrorIs(t, err, ErrCancellationNotAllowed)
}

func TestOrderService_RemarksOverrideReason(t *testing.T) {
	env := newTestEnv(t)
	order := env.placePending(t, "u1")

	cancelled, err := env.orders.RequestCancellation(context.Background(), CustomerActor("u1"), order.ID, "Other", "  Found it cheaper  ")
	require.NoError(t, err)
	assert.Equal(t, "Found it cheaper", cancelled.CancellationReason)
}

func TestOrderService_ShippedCancellationGoesToSupport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.settingsRepo.Save(ctx, &models.StoreSettings{ShippingCost: dec("50"), ContactPhone: "08720000000", WhatsappNumber: "919900000000"}))
	order := env.placePending(t, "u1")

	_, err := env.orders.ChangeStatus(ctx, StoreActor("admin"), order.ID, models.OrderStatusShipped, "")
	require.NoError(t, err)

	_, err = env.orders.RequestCancellation(ctx, CustomerActor("u1"), order.ID, "Changed my mind", "")
	require.ErrorIs(t, err, ErrCancellationRequiresSupport)
	var support *SupportContactError
	require.True(t, errors.As(err, &support))
	assert.Equal(t, "08720000000", support.ContactPhone)
	assert.Equal(t, "919900000000", support.WhatsappNumber)

	stored, err := env.orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, stored.Status)
	assert.Empty(t, stored.CancelledBy)

	cancelled, err := env.orders.RequestCancellation(ctx, StoreActor("admin"), order.ID, "Courier lost parcel", "")
	require.NoError(t, err)
	assert.Equal(t, models.ActorStore, cancelled.CancelledBy)
}

func TestOrderService_CancellationOwnershipAndReason(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.placePending(t, "u1")

	_, err := env.orders.RequestCancellation(ctx, CustomerActor("u2"), order.ID, "not mine", "")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = env.orders.RequestCancellation(ctx, CustomerActor("u1"), order.ID, " ", "")
	assert.ErrorIs(t, err, ErrCancellationReasonRequired)

	_, err = env.orders.RequestCancellation(ctx, CustomerActor("u1"), "missing", "x", "")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = env.orders.ChangeStatus(ctx, StoreActor("admin"), order.ID, models.OrderStatusDelivered, "")
	require.NoError(t, err)
	_, err = env.orders.RequestCancellation(ctx, StoreActor("admin"), order.ID, "late", "")
	assert.ErrorIs(t, err, ErrCancellationNotAllowed)
}

func TestOrderService_ChangeStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.placePending(t, "u1")
	admin := StoreActor("admin")

	_, err := env.orders.ChangeStatus(ctx, CustomerActor("u1"), order.ID, models.OrderStatusShipped, "")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = env.orders.ChangeStatus(ctx, admin, order.ID, "Lost", "")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	got, err := env.orders.ChangeStatus(ctx, admin, order.ID, models.OrderStatusShipped, "")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, got.Status)

	got, err = env.orders.ChangeStatus(ctx, admin, order.ID, models.OrderStatusPending, "")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, got.Status)

	_, err = env.orders.ChangeStatus(ctx, admin, order.ID, models.OrderStatusCancelled, "")
	assert.ErrorIs(t, err, ErrCancellationReasonRequired)

	got, err = env.orders.ChangeStatus(ctx, admin, order.ID, models.OrderStatusCancelled, "Out of stock")
	require.NoError(t, err)
	assert.Equal(t, models.ActorStore, got.CancelledBy)

	got, err = env.orders.ChangeStatus(ctx, admin, order.ID, models.OrderStatusProcessing, "")
	require.NoError(t, err)
	assert.Empty(t, got.CancellationReason)

	doc, err := env.store.Get(ctx, docstore.Orders, order.ID)
	require.NoError(t, err)
	fields, err := doc.Data()
	require.NoError(t, err)
	assert.NotContains(t, fields, "cancellationReason")
	assert.NotContains(t, fields, "cancelledBy")
	assert.Equal(t, "Processing", fields["status"])
}

func TestOrderService_ChangeStatusCannotCancelDelivered(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.placePending(t, "u1")
	admin := StoreActor("admin")

	_, err := env.orders.ChangeStatus(ctx, admin, order.ID, models.OrderStatusDelivered, "")
	require.NoError(t, err)

	_, err = env.orders.ChangeStatus(ctx, admin, order.ID, models.OrderStatusCancelled, "late")
	assert.ErrorIs(t, err, ErrCancellationNotAllowed)
	_, err = env.orders.RequestCancellation(ctx, admin, order.ID, "late", "")
	assert.ErrorIs(t, err, ErrCancellationNotAllowed)

	stored, err := env.orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, stored.Status)

	got, err := env.orders.ChangeStatus(ctx, admin, order.ID, models.OrderStatusShipped, "")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, got.Status)
}

func TestOrderService_GetAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.placePending(t, "u1")
	env.orders.now = func() time.Time { return testNow.Add(time.Hour) }
	second := env.placePending(t, "u1")
	env.placePending(t, "u2")

	mine, err := env.orders.ListOrdersForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	_, err = env.orders.GetOrder(ctx, CustomerActor("u2"), first.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
	got, err := env.orders.GetOrder(ctx, StoreActor("admin"), first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = env.orders.ChangeStatus(ctx, StoreActor("admin"), first.ID, models.OrderStatusShipped, "")
	require.NoError(t, err)
	shipped, err := env.orders.ListAllOrders(ctx, models.OrderStatusShipped)
	require.NoError(t, err)
	require.Len(t, shipped, 1)
	assert.Equal(t, first.ID, shipped[0].ID)

	all, err := env.orders.ListAllOrders(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOrderService_DeleteOrders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.placePending(t, "u1")
	b := env.placePending(t, "u1")
	c := env.placePending(t, "u2")

	assert.ErrorIs(t, env.orders.DeleteOrders(ctx, CustomerActor("u1"), []string{a.ID}), ErrAccessDenied)
	require.NoError(t, env.orders.DeleteOrders(ctx, StoreActor("admin"), []string{a.ID, b.ID, ""}))

	all, err := env.orders.ListAllOrders(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, c.ID, all[0].ID)
}

func TestOrderService_PersistenceErrorsWrapCause(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.store.Close(ctx))

	_, err := env.orders.PlaceOrder(ctx, customer("u1"), PlaceOrderRequest{
		Items:           []models.CartItem{cartLine("p1", 100, 1)},
		ShippingAddress: validAddress(),
		PaymentMethod:   models.PaymentCOD,
	})
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, docstore.ErrClosed)
}
