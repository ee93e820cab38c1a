package handlers

import (
	"net/http"
	"time"

	"github.com/SumanthCsy/Mens-Club-sub000/app/helpers"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/SumanthCsy/Mens-Club-sub000/app/utils/calc"
	"github.com/SumanthCsy/Mens-Club-sub000/app/utils/format"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type CouponHandler struct {
	render          *render.Render
	couponService   *services.CouponService
	settingsService *services.SettingsService
	registry        *services.SyncRegistry
	now             func() time.Time
}

func NewCouponHandler(r *render.Render, couponService *services.CouponService, settingsService *services.SettingsService, registry *services.SyncRegistry) *CouponHandler {
	return &CouponHandler{
		render:          r,
		couponService:   couponService,
		settingsService: settingsService,
		registry:        registry,
		now:             time.Now,
	}
}

type applyCouponRequest struct {
	Code string `json:"code"`
}

// CouponQuote previews the totals of the current cart with a coupon.
type CouponQuote struct {
	AppliedCouponCode   string          `json:"appliedCouponCode"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	Discount            decimal.Decimal `json:"discount"`
	ShippingCost        decimal.Decimal `json:"shippingCost"`
	GrandTotal          decimal.Decimal `json:"grandTotal"`
	GrandTotalFormatted string          `json:"grandTotalFormatted"`
}

func (h *CouponHandler) ListGet(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.couponService.ListDisplayableCoupons(r.Context(), h.now(), true)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, coupons)
}

func (h *CouponHandler) ApplyPost(w http.ResponseWriter, r *http.Request) {
	var in applyCouponRequest
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	session, err := syncSession(h.registry, r)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	if session.Cart.CartCount() == 0 {
		helpers.WriteError(h.render, w, r, services.ErrEmptyCart)
		return
	}

	subtotal := session.Cart.CartTotal()
	applied, err := h.couponService.ValidateAndApply(r.Context(), in.Code, subtotal, h.now())
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	shipping := settings.ShippingFor(subtotal)
	total := calc.CalculateGrandTotal(subtotal, shipping, applied.Discount)

	_ = h.render.JSON(w, http.StatusOK, CouponQuote{
		AppliedCouponCode:   applied.Code,
		Subtotal:            subtotal,
		Discount:            applied.Discount,
		ShippingCost:        shipping,
		GrandTotal:          total,
		GrandTotalFormatted: format.INR(total),
	})
}
