package routes

import (
	"github.com/SumanthCsy/Mens-Club-sub000/app/docstore"
	"github.com/SumanthCsy/Mens-Club-sub000/app/repositories"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/SumanthCsy/Mens-Club-sub000/app/utils/sessions"
	EventBus "github.com/asaskevich/EventBus"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
)

// App holds everything the HTTP layer needs.
type App struct {
	Store    docstore.Store
	Bus      EventBus.Bus
	Render   *render.Render
	Sessions sessions.SessionStore
	UserRepo repositories.UserRepositoryImpl

	Auth     *services.AuthService
	Products *services.ProductService
	Coupons  *services.CouponService
	Orders   *services.OrderService
	Settings *services.SettingsService
	Registry *services.SyncRegistry
	Notifier *services.Notifier
}

// NewApp builds the repositories and services over store.
func NewApp(store docstore.Store, bus EventBus.Bus, rd *render.Render, sessionStore sessions.SessionStore, notifier *services.Notifier) *App {
	validate := validator.New()

	productRepo := repositories.NewProductRepository(store)
	cartRepo := repositories.NewCartItemRepository(store)
	wishlistRepo := repositories.NewWishlistRepository(store)
	couponRepo := repositories.NewCouponRepository(store)
	orderRepo := repositories.NewOrderRepository(store)
	userRepo := repositories.NewUserRepository(store)
	settingsRepo := repositories.NewSettingsRepository(store)

	coupons := services.NewCouponService(couponRepo)

	return &App{
		Store:    store,
		Bus:      bus,
		Render:   rd,
		Sessions: sessionStore,
		UserRepo: userRepo,
		Auth:     services.NewAuthService(userRepo, validate),
		Products: services.NewProductService(productRepo, validate),
		Coupons:  coupons,
		Orders:   services.NewOrderService(orderRepo, settingsRepo, coupons, bus, validate),
		Settings: services.NewSettingsService(settingsRepo),
		Registry: services.NewSyncRegistry(cartRepo, wishlistRepo),
		Notifier: notifier,
	}
}
