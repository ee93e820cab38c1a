package repositories

import (
	"context"

	"github.com/SumanthCsy/Mens-Club-sub000/app/docstore"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
)

type CouponRepositoryImpl interface {
	GetAll(ctx context.Context) ([]models.Coupon, error)
	GetByID(ctx context.Context, id string) (*models.Coupon, error)
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	Create(ctx context.Context, coupon *models.Coupon) error
	Update(ctx context.Context, id string, updates ...docstore.Update) error
	Delete(ctx context.Context, id string) error
}

type couponRepository struct {
	store docstore.Store
}

func NewCouponRepository(store docstore.Store) CouponRepositoryImpl {
	return &couponRepository{store}
}

func setCouponID(c *models.Coupon, id string) { c.ID = id }

func (r *couponRepository) GetAll(ctx context.Context) ([]models.Coupon, error) {
	return queryDocs(ctx, r.store, docstore.Coupons, setCouponID)
}

func (r *couponRepository) GetByID(ctx context.Context, id string) (*models.Coupon, error) {
	return getDoc(ctx, r.store, docstore.Coupons, id, setCouponID)
}

// FindByCode expects an already normalized code. When several documents
// share a code the first by id wins.
func (r *couponRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	coupons, err := queryDocs(ctx, r.store, docstore.Coupons, setCouponID, docstore.Where("code", code))
	if err != nil {
		return nil, err
	}
	if len(coupons) == 0 {
		return nil, nil
	}
	return &coupons[0], nil
}

func (r *couponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	id, err := r.store.Add(ctx, docstore.Coupons, coupon)
	if err != nil {
		return err
	}
	coupon.ID = id
	return nil
}

func (r *couponRepository) Update(ctx context.Context, id string, updates ...docstore.Update) error {
	return r.store.Update(ctx, docstore.Coupons, id, updates...)
}

func (r *couponRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, docstore.Coupons, id)
}
