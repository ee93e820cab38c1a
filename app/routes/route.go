package routes

import (
	"net/http"

	"github.com/SumanthCsy/Mens-Club-sub000/app/handlers"
	"github.com/SumanthCsy/Mens-Club-sub000/app/handlers/admin"
	"github.com/SumanthCsy/Mens-Club-sub000/app/helpers"
	"github.com/SumanthCsy/Mens-Club-sub000/app/middlewares"
	"github.com/gorilla/mux"
)

func NewRouter(app *App) *mux.Router {
	router := mux.NewRouter()
	router.Use(middlewares.RequestLogger)
	router.Use(middlewares.SessionAuthMiddleware(app.Sessions, app.UserRepo))

	rd := app.Render
	requireAuth := middlewares.RequireAuth(rd)

	authHandler := handlers.NewAuthHandler(rd, app.Auth, app.Sessions, app.Registry)
	productHandler := handlers.NewProductHandler(rd, app.Products)
	cartHandler := handlers.NewCartHandler(rd, app.Registry, app.Products)
	wishlistHandler := handlers.NewWishlistHandler(rd, app.Registry, app.Products)
	couponHandler := handlers.NewCouponHandler(rd, app.Coupons, app.Settings, app.Registry)
	orderHandler := handlers.NewOrderHandler(rd, app.Orders, app.Registry)
	notificationHandler := handlers.NewNotificationHandler(rd, app.Orders, app.Notifier)
	adminHandler := admin.NewAdminHandler(rd, app.Products, app.Coupons, app.Orders, app.Auth, app.Settings)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteNotice(rd, w, http.StatusOK, "ok")
	}).Methods("GET")

	router.HandleFunc("/auth/signup", authHandler.SignUpPost).Methods("POST")
	router.HandleFunc("/auth/signin", authHandler.SignInPost).Methods("POST")
	router.HandleFunc("/auth/signout", authHandler.SignOutPost).Methods("POST")
	router.Handle("/auth/password", requireAuth(http.HandlerFunc(authHandler.ChangePasswordPost))).Methods("POST")
	router.Handle("/auth/me", requireAuth(http.HandlerFunc(authHandler.MeGet))).Methods("GET")

	router.HandleFunc("/products", productHandler.ListGet).Methods("GET")
	router.HandleFunc("/products/{id}", productHandler.DetailGet).Methods("GET")
	router.Handle("/products/{id}/reviews", requireAuth(http.HandlerFunc(productHandler.ReviewPost))).Methods("POST")

	router.HandleFunc("/coupons", couponHandler.ListGet).Methods("GET")

	user := router.NewRoute().Subrouter()
	user.Use(requireAuth)
	user.HandleFunc("/cart", cartHandler.CartGet).Methods("GET")
	user.HandleFunc("/cart", cartHandler.ClearDelete).Methods("DELETE")
	user.HandleFunc("/cart/items", cartHandler.AddItemPost).Methods("POST")
	user.HandleFunc("/cart/items/{id}", cartHandler.UpdateItemPatch).Methods("PATCH")
	user.HandleFunc("/cart/items/{id}", cartHandler.RemoveItemDelete).Methods("DELETE")
	user.HandleFunc("/wishlist", wishlistHandler.WishlistGet).Methods("GET")
	user.HandleFunc("/wishlist/{productId}", wishlistHandler.AddPost).Methods("POST")
	user.HandleFunc("/wishlist/{productId}", wishlistHandler.RemoveDelete).Methods("DELETE")
	user.HandleFunc("/coupons/apply", couponHandler.ApplyPost).Methods("POST")
	user.HandleFunc("/checkout", orderHandler.CheckoutPost).Methods("POST")
	user.HandleFunc("/orders", orderHandler.ListGet).Methods("GET")
	user.HandleFunc("/orders/{id}", orderHandler.DetailGet).Methods("GET")
	user.HandleFunc("/orders/{id}/cancel", orderHandler.CancelPost).Methods("POST")
	user.HandleFunc("/api/order-notification", notificationHandler.OrderNotificationPost).Methods("POST")

	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middlewares.AdminAuthMiddleware(rd))
	adminRouter.HandleFunc("/products", adminHandler.ProductsGet).Methods("GET")
	adminRouter.HandleFunc("/products", adminHandler.ProductPost).Methods("POST")
	adminRouter.HandleFunc("/products/{id}", adminHandler.ProductPut).Methods("PUT")
	adminRouter.HandleFunc("/products/{id}", adminHandler.ProductDelete).Methods("DELETE")
	adminRouter.HandleFunc("/coupons", adminHandler.CouponsGet).Methods("GET")
	adminRouter.HandleFunc("/coupons", adminHandler.CouponPost).Methods("POST")
	adminRouter.HandleFunc("/coupons/{id}", adminHandler.CouponPatch).Methods("PATCH")
	adminRouter.HandleFunc("/coupons/{id}", adminHandler.CouponDelete).Methods("DELETE")
	adminRouter.HandleFunc("/coupons/{id}/active", adminHandler.CouponActivePost).Methods("POST")
	adminRouter.HandleFunc("/coupons/{id}/display", adminHandler.CouponDisplayPost).Methods("POST")
	adminRouter.HandleFunc("/orders", adminHandler.OrdersGet).Methods("GET")
	adminRouter.HandleFunc("/orders/delete", adminHandler.OrdersDeletePost).Methods("POST")
	adminRouter.HandleFunc("/orders/{id}", adminHandler.OrderGet).Methods("GET")
	adminRouter.HandleFunc("/orders/{id}/status", adminHandler.OrderStatusPatch).Methods("PATCH")
	adminRouter.HandleFunc("/orders/{id}/cancel", adminHandler.OrderCancelPost).Methods("POST")
	adminRouter.HandleFunc("/users", adminHandler.UsersGet).Methods("GET")
	adminRouter.HandleFunc("/users/{id}/role", adminHandler.UserRolePatch).Methods("PATCH")
	adminRouter.HandleFunc("/settings", adminHandler.SettingsGet).Methods("GET")
	adminRouter.HandleFunc("/settings", adminHandler.SettingsPut).Methods("PUT")

	return router
}

// Handler wraps the router in the outer middlewares that must run before
// route matching.
func Handler(app *App) http.Handler {
	return middlewares.MethodOverrideMiddleware(NewRouter(app))
}
