package admin

import (
	"net/http"

	"github.com/SumanthCsy/Mens-Club-sub000/app/helpers"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/unrolled/render"
)

// AdminHandler serves the /admin API. Every route sits behind the admin
// gate, so the user in the request context is an admin.
type AdminHandler struct {
	render          *render.Render
	productService  *services.ProductService
	couponService   *services.CouponService
	orderService    *services.OrderService
	authService     *services.AuthService
	settingsService *services.SettingsService
}

func NewAdminHandler(
	render *render.Render,
	productService *services.ProductService,
	couponService *services.CouponService,
	orderService *services.OrderService,
	authService *services.AuthService,
	settingsService *services.SettingsService,
) *AdminHandler {
	return &AdminHandler{
		render:          render,
		productService:  productService,
		couponService:   couponService,
		orderService:    orderService,
		authService:     authService,
		settingsService: settingsService,
	}
}

func (h *AdminHandler) admin(r *http.Request) *models.User {
	return helpers.GetUserFromContext(r.Context())
}

func (h *AdminHandler) actor(r *http.Request) services.Actor {
	user := h.admin(r)
	if user == nil {
		return services.Actor{}
	}
	return services.ActorFor(user)
}
