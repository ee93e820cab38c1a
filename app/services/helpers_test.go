package services

import (
	"context"
	"testing"
	"time"

	"github.com/SumanthCsy/Mens-Club-sub000/app/docstore"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/SumanthCsy/Mens-Club-sub000/app/repositories"
	EventBus "github.com/asaskevich/EventBus"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	store        *docstore.MemoryStore
	productRepo  repositories.ProductRepositoryImpl
	cartRepo     repositories.CartItemRepositoryImpl
	wishlistRepo repositories.WishlistRepositoryImpl
	couponRepo   repositories.CouponRepositoryImpl
	orderRepo    repositories.OrderRepository
	userRepo     repositories.UserRepositoryImpl
	settingsRepo repositories.SettingsRepositoryImpl
	bus          EventBus.Bus

	coupons  *CouponService
	orders   *OrderService
	auth     *AuthService
	products *ProductService
	settings *SettingsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := docstore.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	v := validator.New()
	env := &testEnv{
		store:        store,
		productRepo:  repositories.NewProductRepository(store),
		cartRepo:     repositories.NewCartItemRepository(store),
		wishlistRepo: repositories.NewWishlistRepository(store),
		couponRepo:   repositories.NewCouponRepository(store),
		orderRepo:    repositories.NewOrderRepository(store),
		userRepo:     repositories.NewUserRepository(store),
		settingsRepo: repositories.NewSettingsRepository(store),
		bus:          EventBus.New(),
	}
	env.coupons = NewCouponService(env.couponRepo)
	env.coupons.now = func() time.Time { return testNow }
	env.orders = NewOrderService(env.orderRepo, env.settingsRepo, env.coupons, env.bus, v)
	env.orders.now = func() time.Time { return testNow }
	env.auth = NewAuthService(env.userRepo, v)
	env.auth.cost = bcrypt.MinCost
	env.products = NewProductService(env.productRepo, v)
	env.settings = NewSettingsService(env.settingsRepo)
	return env
}

func (e *testEnv) session(t *testing.T, user *models.User) *Session {
	t.Helper()
	s := NewSession(e.cartRepo, e.wishlistRepo)
	require.NoError(t, s.Attach(context.Background(), user))
	t.Cleanup(s.Detach)
	return s
}

func (e *testEnv) addProduct(t *testing.T, id string, price int64, stock *int) *models.Product {
	t.Helper()
	p := &models.Product{ID: id, Name: "Product " + id, Price: decimal.NewFromInt(price), Category: "shirts", Stock: stock, Images: []string{"/img/" + id + ".jpg"}}
	require.NoError(t, e.productRepo.Create(context.Background(), p))
	return p
}

func (e *testEnv) addCoupon(t *testing.T, c models.Coupon) *models.Coupon {
	t.Helper()
	c.Code = models.NormalizeCouponCode(c.Code)
	require.NoError(t, e.couponRepo.Create(context.Background(), &c))
	return &c
}

func intPtr(n int) *int { return &n }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func customer(id string) *models.User {
	return &models.User{ID: id, Name: "Customer " + id, Email: id + "@example.com", Role: models.RoleCustomer}
}

func validAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FullName:     "Ravi Kumar",
		Phone:        "9876543210",
		AddressLine1: "12 Main Road",
		City:         "Keshavapatnam",
		State:        "Telangana",
		PostalCode:   "505451",
		Country:      "India",
	}
}

// eventually waits for the session mirror to catch up with the store.
func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond)
}
