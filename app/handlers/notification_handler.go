package handlers

import (
	"net/http"

	"github.com/SumanthCsy/Mens-Club-sub000/app/helpers"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/unrolled/render"
)

type NotificationHandler struct {
	render       *render.Render
	orderService *services.OrderService
	notifier     *services.Notifier
}

func NewNotificationHandler(r *render.Render, orderService *services.OrderService, notifier *services.Notifier) *NotificationHandler {
	return &NotificationHandler{render: r, orderService: orderService, notifier: notifier}
}

type orderNotificationRequest struct {
	OrderID string `json:"orderId"`
}

type orderNotificationResponse struct {
	Status  string `json:"status"`
	Subject string `json:"subject"`
}

// OrderNotificationPost formats and sends the store notification for an
// order the caller can see. Delivery problems are logged, not returned.
func (h *NotificationHandler) OrderNotificationPost(w http.ResponseWriter, r *http.Request) {
	var in orderNotificationRequest
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	user := helpers.GetUserFromContext(r.Context())
	if user == nil {
		helpers.WriteError(h.render, w, r, services.ErrNotAuthenticated)
		return
	}
	order, err := h.orderService.GetOrder(r.Context(), services.ActorFor(user), in.OrderID)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	subject, _ := h.notifier.Notify(order)
	_ = h.render.JSON(w, http.StatusOK, orderNotificationResponse{Status: "success", Subject: subject})
}
