package admin

import (
	"net/http"

	"github.com/SumanthCsy/Mens-Club-sub000/app/helpers"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/gorilla/mux"
)

type statusRequest struct {
	Status models.OrderStatus `json:"status"`
	Reason string             `json:"reason"`
}

type cancelRequest struct {
	Reason  string `json:"reason"`
	Remarks string `json:"remarks"`
}

type deleteOrdersRequest struct {
	IDs []string `json:"ids"`
}

func (h *AdminHandler) OrdersGet(w http.ResponseWriter, r *http.Request) {
	status := models.OrderStatus(r.URL.Query().Get("status"))
	orders, err := h.orderService.ListAllOrders(r.Context(), status)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, orders)
}

func (h *AdminHandler) OrderGet(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.GetOrder(r.Context(), h.actor(r), mux.Vars(r)["id"])
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}

func (h *AdminHandler) OrderStatusPatch(w http.ResponseWriter, r *http.Request) {
	var in statusRequest
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	order, err := h.orderService.ChangeStatus(r.Context(), h.actor(r), mux.Vars(r)["id"], in.Status, in.Reason)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}

func (h *AdminHandler) OrderCancelPost(w http.ResponseWriter, r *http.Request) {
	var in cancelRequest
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	order, err := h.orderService.RequestCancellation(r.Context(), h.actor(r), mux.Vars(r)["id"], in.Reason, in.Remarks)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}

func (h *AdminHandler) OrdersDeletePost(w http.ResponseWriter, r *http.Request) {
	var in deleteOrdersRequest
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	if err := h.orderService.DeleteOrders(r.Context(), h.actor(r), in.IDs); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	helpers.WriteNotice(h.render, w, http.StatusOK, "Orders deleted.")
}
