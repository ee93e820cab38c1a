package handlers

import (
	"net/http"
	"strings"

	"github.com/SumanthCsy/Mens-Club-sub000/app/helpers"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	render       *render.Render
	orderService *services.OrderService
	registry     *services.SyncRegistry
}

func NewOrderHandler(r *render.Render, orderService *services.OrderService, registry *services.SyncRegistry) *OrderHandler {
	return &OrderHandler{render: r, orderService: orderService, registry: registry}
}

type checkoutRequest struct {
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   models.PaymentMethod   `json:"paymentMethod"`
	CouponCode      string                 `json:"couponCode"`
	IdempotencyKey  string                 `json:"idempotencyKey"`
}

type cancelRequest struct {
	Reason  string `json:"reason"`
	Remarks string `json:"remarks"`
}

// CheckoutPost places an order from the signed-in user's cart. The
// Idempotency-Key header is used when the body carries no key.
func (h *OrderHandler) CheckoutPost(w http.ResponseWriter, r *http.Request) {
	var in checkoutRequest
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	if in.IdempotencyKey == "" {
		in.IdempotencyKey = strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	}
	session, err := syncSession(h.registry, r)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}

	res, err := h.orderService.Checkout(r.Context(), session, services.PlaceOrderRequest{
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		CouponCode:      in.CouponCode,
		IdempotencyKey:  in.IdempotencyKey,
	})
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, res)
}

func (h *OrderHandler) ListGet(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListOrdersForUser(r.Context(), helpers.GetUserIDFromContext(r.Context()))
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) DetailGet(w http.ResponseWriter, r *http.Request) {
	user := helpers.GetUserFromContext(r.Context())
	if user == nil {
		helpers.WriteError(h.render, w, r, services.ErrNotAuthenticated)
		return
	}
	order, err := h.orderService.GetOrder(r.Context(), services.ActorFor(user), mux.Vars(r)["id"])
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}

// CancelPost is the customer's cancellation request. Admins use the admin
// route, which acts for the store.
func (h *OrderHandler) CancelPost(w http.ResponseWriter, r *http.Request) {
	var in cancelRequest
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	userID := helpers.GetUserIDFromContext(r.Context())
	order, err := h.orderService.RequestCancellation(r.Context(), services.CustomerActor(userID), mux.Vars(r)["id"], in.Reason, in.Remarks)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}
