package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SumanthCsy/Mens-Club-sub000/app/docstore"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/SumanthCsy/Mens-Club-sub000/app/repositories"
	"github.com/SumanthCsy/Mens-Club-sub000/app/utils/calc"
	"github.com/shopspring/decimal"
)

type CouponService struct {
	couponRepo repositories.CouponRepositoryImpl
	now        func() time.Time
}

func NewCouponService(couponRepo repositories.CouponRepositoryImpl) *CouponService {
	return &CouponService{couponRepo: couponRepo, now: time.Now}
}

type AppliedCoupon struct {
	Code     string          `json:"appliedCouponCode"`
	Discount decimal.Decimal `json:"discount"`
	Coupon   *models.Coupon  `json:"-"`
}

// ListDisplayableCoupons returns active, site-visible, unexpired coupons.
func (s *CouponService) ListDisplayableCoupons(ctx context.Context, now time.Time, newestFirst bool) ([]models.Coupon, error) {
	all, err := s.couponRepo.GetAll(ctx)
	if err != nil {
		return nil, persistence("CouponService.ListDisplayableCoupons", err)
	}
	out := make([]models.Coupon, 0, len(all))
	for _, c := range all {
		if c.IsDisplayable(now) {
			out = append(out, c)
		}
	}
	if newestFirst {
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out, nil
}

// ValidateAndApply checks the coupon against subtotal at now and computes
// the discount. Checks run in order: existence, expiry, active flag,
// minimum purchase.
func (s *CouponService) ValidateAndApply(ctx context.Context, code string, subtotal decimal.Decimal, now time.Time) (*AppliedCoupon, error) {
	code = models.NormalizeCouponCode(code)
	if code == "" {
		return nil, ErrCouponNotFound
	}
	coupon, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, persistence("CouponService.ValidateAndApply", err)
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	if coupon.IsExpired(now) {
		return nil, ErrCouponExpired
	}
	if !coupon.IsActive {
		return nil, ErrCouponInactive
	}
	if !coupon.MeetsMinimum(subtotal) {
		return nil, ErrMinimumPurchaseNotMet
	}
	return &AppliedCoupon{Code: code, Discount: Discount(coupon, subtotal), Coupon: coupon}, nil
}

// Discount is the amount coupon takes off subtotal, never above subtotal.
func Discount(coupon *models.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch coupon.DiscountType {
	case models.DiscountPercentage:
		discount = calc.PercentageDiscount(subtotal, coupon.DiscountValue)
	default:
		discount = coupon.DiscountValue
	}
	return calc.CapDiscount(discount, subtotal)
}

type CouponInput struct {
	Code              string              `json:"code" validate:"required,min=3,max=30"`
	DiscountType      models.DiscountType `json:"discountType" validate:"required,oneof=percentage fixed"`
	DiscountValue     decimal.Decimal     `json:"discountValue"`
	ExpiryDate        *time.Time          `json:"expiryDate,omitempty"`
	MinPurchaseAmount *decimal.Decimal    `json:"minPurchaseAmount,omitempty"`
	IsActive          bool                `json:"isActive"`
	DisplayOnSite     bool                `json:"displayOnSite"`
}

func (in CouponInput) check() error {
	if !in.DiscountType.Valid() {
		return fmt.Errorf("%w: discount type %q", ErrInvalidCoupon, in.DiscountType)
	}
	if !in.DiscountValue.IsPositive() {
		return fmt.Errorf("%w: discount value must be greater than zero", ErrInvalidCoupon)
	}
	if in.MinPurchaseAmount != nil && in.MinPurchaseAmount.IsNegative() {
		return fmt.Errorf("%w: minimum purchase cannot be negative", ErrInvalidCoupon)
	}
	return nil
}

func (s *CouponService) CreateCoupon(ctx context.Context, in CouponInput) (*models.Coupon, error) {
	code := models.NormalizeCouponCode(in.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidCoupon)
	}
	if err := in.check(); err != nil {
		return nil, err
	}
	existing, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, persistence("CouponService.CreateCoupon", err)
	}
	if existing != nil {
		return nil, ErrCouponCodeTaken
	}
	coupon := &models.Coupon{
		Code:              code,
		DiscountType:      in.DiscountType,
		DiscountValue:     in.DiscountValue,
		ExpiryDate:        in.ExpiryDate,
		MinPurchaseAmount: in.MinPurchaseAmount,
		IsActive:          in.IsActive,
		DisplayOnSite:     in.DisplayOnSite,
		CreatedAt:         s.now(),
	}
	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, persistence("CouponService.CreateCoupon", err)
	}
	return coupon, nil
}

// CouponPatch changes only the fields it names. ClearExpiry and
// ClearMinPurchase remove the optional limits.
type CouponPatch struct {
	Code              *string              `json:"code,omitempty"`
	DiscountType      *models.DiscountType `json:"discountType,omitempty"`
	DiscountValue     *decimal.Decimal     `json:"discountValue,omitempty"`
	ExpiryDate        *time.Time           `json:"expiryDate,omitempty"`
	ClearExpiry       bool                 `json:"clearExpiry,omitempty"`
	MinPurchaseAmount *decimal.Decimal     `json:"minPurchaseAmount,omitempty"`
	ClearMinPurchase  bool                 `json:"clearMinPurchase,omitempty"`
	IsActive          *bool                `json:"isActive,omitempty"`
	DisplayOnSite     *bool                `json:"displayOnSite,omitempty"`
}

func (s *CouponService) UpdateCoupon(ctx context.Context, id string, patch CouponPatch) (*models.Coupon, error) {
	current, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return nil, persistence("CouponService.UpdateCoupon", err)
	}
	if current == nil {
		return nil, ErrCouponNotFound
	}

	var updates []docstore.Update
	if patch.Code != nil {
		code := models.NormalizeCouponCode(*patch.Code)
		if code == "" {
			return nil, fmt.Errorf("%w: code is required", ErrInvalidCoupon)
		}
		if code != current.Code {
			other, err := s.couponRepo.FindByCode(ctx, code)
			if err != nil {
				return nil, persistence("CouponService.UpdateCoupon", err)
			}
			if other != nil && other.ID != id {
				return nil, ErrCouponCodeTaken
			}
		}
		updates = append(updates, docstore.Set("code", code))
	}
	if patch.DiscountType != nil {
		if !patch.DiscountType.Valid() {
			return nil, fmt.Errorf("%w: discount type %q", ErrInvalidCoupon, *patch.DiscountType)
		}
		updates = append(updates, docstore.Set("discountType", *patch.DiscountType))
	}
	if patch.DiscountValue != nil {
		if !patch.DiscountValue.IsPositive() {
			return nil, fmt.Errorf("%w: discount value must be greater than zero", ErrInvalidCoupon)
		}
		updates = append(updates, docstore.Set("discountValue", *patch.DiscountValue))
	}
	switch {
	case patch.ClearExpiry:
		updates = append(updates, docstore.Clear("expiryDate"))
	case patch.ExpiryDate != nil:
		updates = append(updates, docstore.Set("expiryDate", *patch.ExpiryDate))
	}
	switch {
	case patch.ClearMinPurchase:
		updates = append(updates, docstore.Clear("minPurchaseAmount"))
	case patch.MinPurchaseAmount != nil:
		updates = append(updates, docstore.Set("minPurchaseAmount", *patch.MinPurchaseAmount))
	}
	if patch.IsActive != nil {
		updates = append(updates, docstore.Set("isActive", *patch.IsActive))
	}
	if patch.DisplayOnSite != nil {
		updates = append(updates, docstore.Set("displayOnSite", *patch.DisplayOnSite))
	}
	if len(updates) == 0 {
		return current, nil
	}
	if err := s.couponRepo.Update(ctx, id, updates...); err != nil {
		return nil, persistence("CouponService.UpdateCoupon", err)
	}
	return s.GetCoupon(ctx, id)
}

func (s *CouponService) SetActive(ctx context.Context, id string, active bool) (*models.Coupon, error) {
	return s.UpdateCoupon(ctx, id, CouponPatch{IsActive: &active})
}

func (s *CouponService) SetDisplayOnSite(ctx context.Context, id string, display bool) (*models.Coupon, error) {
	return s.UpdateCoupon(ctx, id, CouponPatch{DisplayOnSite: &display})
}

func (s *CouponService) GetCoupon(ctx context.Context, id string) (*models.Coupon, error) {
	c, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return nil, persistence("CouponService.GetCoupon", err)
	}
	if c == nil {
		return nil, ErrCouponNotFound
	}
	return c, nil
}

func (s *CouponService) DeleteCoupon(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrCouponNotFound
	}
	if err := s.couponRepo.Delete(ctx, id); err != nil {
		return persistence("CouponService.DeleteCoupon", err)
	}
	return nil
}

// ListCoupons returns every coupon, newest first.
func (s *CouponService) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	all, err := s.couponRepo.GetAll(ctx)
	if err != nil {
		return nil, persistence("CouponService.ListCoupons", err)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, nil
}
