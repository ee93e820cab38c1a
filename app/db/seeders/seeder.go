package seeders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SumanthCsy/Mens-Club-sub000/app/db/fakers"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/SumanthCsy/Mens-Club-sub000/app/repositories"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Deps struct {
	ProductRepo  repositories.ProductRepositoryImpl
	SettingsRepo repositories.SettingsRepositoryImpl
	Coupons      *services.CouponService
	Auth         *services.AuthService
}

type Options struct {
	FakeProducts  int
	AdminName     string
	AdminEmail    string
	AdminPassword string
	Now           time.Time
}

type Seeder struct {
	Name string
	Run  func(ctx context.Context) error
}

func SeedersRegister(d Deps, opts Options) []Seeder {
	return []Seeder{
		{Name: "settings", Run: func(ctx context.Context) error { return seedSettings(ctx, d, opts) }},
		{Name: "products", Run: func(ctx context.Context) error { return seedProducts(ctx, d, opts) }},
		{Name: "coupons", Run: func(ctx context.Context) error { return seedCoupons(ctx, d, opts) }},
		{Name: "admin", Run: func(ctx context.Context) error { return seedAdmin(ctx, d, opts) }},
	}
}

func DBSeed(ctx context.Context, d Deps, opts Options) error {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	for _, seeder := range SeedersRegister(d, opts) {
		if err := seeder.Run(ctx); err != nil {
			return fmt.Errorf("seed %s: %w", seeder.Name, err)
		}
		zap.S().Infof("DBSeed: %s seeded", seeder.Name)
	}
	return nil
}

// seedSettings writes the defaults only when no settings exist.
func seedSettings(ctx context.Context, d Deps, opts Options) error {
	current, err := d.SettingsRepo.Get(ctx)
	if err != nil {
		return err
	}
	if current != nil {
		return nil
	}
	settings := models.DefaultStoreSettings()
	threshold := decimal.NewFromInt(1999)
	settings.FreeShippingThreshold = &threshold
	settings.UpdatedAt = opts.Now
	return d.SettingsRepo.Save(ctx, &settings)
}

func seedProducts(ctx context.Context, d Deps, opts Options) error {
	products := fakers.SampleCatalogue(opts.Now)
	for i := 0; i < opts.FakeProducts; i++ {
		products = append(products, fakers.ProductFaker(opts.Now))
	}
	for i := range products {
		if err := d.ProductRepo.Save(ctx, &products[i]); err != nil {
			return err
		}
	}
	return nil
}

func seedCoupons(ctx context.Context, d Deps, opts Options) error {
	minPurchase := decimal.NewFromInt(500)
	expiry := opts.Now.AddDate(0, 3, 0)
	inputs := []services.CouponInput{
		{
			Code:              "SAVE10",
			DiscountType:      models.DiscountPercentage,
			DiscountValue:     decimal.NewFromInt(10),
			MinPurchaseAmount: &minPurchase,
			IsActive:          true,
			DisplayOnSite:     true,
		},
		{
			Code:          "WELCOME100",
			DiscountType:  models.DiscountFixed,
			DiscountValue: decimal.NewFromInt(100),
			ExpiryDate:    &expiry,
			IsActive:      true,
			DisplayOnSite: true,
		},
	}
	for _, in := range inputs {
		if _, err := d.Coupons.CreateCoupon(ctx, in); err != nil && !errors.Is(err, services.ErrCouponCodeTaken) {
			return err
		}
	}
	return nil
}

func seedAdmin(ctx context.Context, d Deps, opts Options) error {
	if opts.AdminEmail == "" || opts.AdminPassword == "" {
		zap.S().Info("seedAdmin: ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin user")
		return nil
	}
	_, err := d.Auth.EnsureAdmin(ctx, opts.AdminName, opts.AdminEmail, opts.AdminPassword)
	return err
}
