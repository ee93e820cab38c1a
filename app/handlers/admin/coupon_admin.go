package admin

import (
	"net/http"

	"github.com/SumanthCsy/Mens-Club-sub000/app/helpers"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/gorilla/mux"
)

type toggleRequest struct {
	Value bool `json:"value"`
}

func (h *AdminHandler) CouponsGet(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.couponService.ListCoupons(r.Context())
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, coupons)
}

func (h *AdminHandler) CouponPost(w http.ResponseWriter, r *http.Request) {
	var in services.CouponInput
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	coupon, err := h.couponService.CreateCoupon(r.Context(), in)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, coupon)
}

func (h *AdminHandler) CouponPatch(w http.ResponseWriter, r *http.Request) {
	var patch services.CouponPatch
	if err := helpers.DecodeJSON(r, &patch); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	coupon, err := h.couponService.UpdateCoupon(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, coupon)
}

func (h *AdminHandler) CouponActivePost(w http.ResponseWriter, r *http.Request) {
	var in toggleRequest
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	coupon, err := h.couponService.SetActive(r.Context(), mux.Vars(r)["id"], in.Value)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, coupon)
}

func (h *AdminHandler) CouponDisplayPost(w http.ResponseWriter, r *http.Request) {
	var in toggleRequest
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	coupon, err := h.couponService.SetDisplayOnSite(r.Context(), mux.Vars(r)["id"], in.Value)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, coupon)
}

func (h *AdminHandler) CouponDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.couponService.DeleteCoupon(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	helpers.WriteNotice(h.render, w, http.StatusOK, "Coupon deleted.")
}
