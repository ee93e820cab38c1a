package repositories

import (
	"context"

	"github.com/SumanthCsy/Mens-Club-sub000/app/docstore"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
)

// WishlistRepositoryImpl works on users/{uid}/wishlist, keyed by product id.
type WishlistRepositoryImpl interface {
	Add(ctx context.Context, userID string, item *models.WishlistItem) error
	Delete(ctx context.Context, userID, productID string) error
	GetByUserID(ctx context.Context, userID string) ([]models.WishlistItem, error)
	Subscribe(ctx context.Context, userID string) (*docstore.Subscription, error)
	Decode(doc docstore.Document) (models.WishlistItem, error)
}

type wishlistRepository struct {
	store docstore.Store
}

func NewWishlistRepository(store docstore.Store) WishlistRepositoryImpl {
	return &wishlistRepository{store}
}

func setWishlistProductID(w *models.WishlistItem, id string) { w.ProductID = id }

func (r *wishlistRepository) Add(ctx context.Context, userID string, item *models.WishlistItem) error {
	return r.store.Set(ctx, docstore.UserWishlist(userID), item.ProductID, item)
}

func (r *wishlistRepository) Delete(ctx context.Context, userID, productID string) error {
	return r.store.Delete(ctx, docstore.UserWishlist(userID), productID)
}

func (r *wishlistRepository) GetByUserID(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	return queryDocs(ctx, r.store, docstore.UserWishlist(userID), setWishlistProductID)
}

func (r *wishlistRepository) Subscribe(ctx context.Context, userID string) (*docstore.Subscription, error) {
	return r.store.Subscribe(ctx, docstore.UserWishlist(userID))
}

func (r *wishlistRepository) Decode(doc docstore.Document) (models.WishlistItem, error) {
	var item models.WishlistItem
	if err := doc.DataTo(&item); err != nil {
		return item, err
	}
	item.ProductID = doc.ID
	return item, nil
}
