package services

import (
	"context"
	"strings"
	"time"

	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/SumanthCsy/Mens-Club-sub000/app/repositories"
)

// WishlistSync mirrors users/{uid}/wishlist, a set of product ids.
type WishlistSync struct {
	wishlistRepo repositories.WishlistRepositoryImpl
	mirror       *mirror[models.WishlistItem]
	now          func() time.Time
}

func NewWishlistSync(wishlistRepo repositories.WishlistRepositoryImpl) *WishlistSync {
	return &WishlistSync{
		wishlistRepo: wishlistRepo,
		mirror:       newMirror("WishlistSync", wishlistRepo.Decode),
		now:          time.Now,
	}
}

func (s *WishlistSync) Attach(ctx context.Context, user *models.User) error {
	if user == nil || user.ID == "" {
		return ErrNotAuthenticated
	}
	return s.mirror.attach(ctx, user.ID, s.wishlistRepo.Subscribe)
}

func (s *WishlistSync) Detach() {
	s.mirror.detach()
}

func (s *WishlistSync) userID() (string, error) {
	uid := s.mirror.ownerID()
	if uid == "" {
		return "", ErrNotAuthenticated
	}
	return uid, nil
}

func (s *WishlistSync) AddToWishlist(ctx context.Context, productID string) error {
	uid, err := s.userID()
	if err != nil {
		return err
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return ErrProductNotFound
	}
	item := &models.WishlistItem{ProductID: productID, AddedAt: s.now()}
	if err := s.wishlistRepo.Add(ctx, uid, item); err != nil {
		return persistence("WishlistSync.AddToWishlist", err)
	}
	return nil
}

func (s *WishlistSync) RemoveFromWishlist(ctx context.Context, productID string) error {
	uid, err := s.userID()
	if err != nil {
		return err
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return ErrProductNotFound
	}
	if err := s.wishlistRepo.Delete(ctx, uid, productID); err != nil {
		return persistence("WishlistSync.RemoveFromWishlist", err)
	}
	return nil
}

func (s *WishlistSync) IsProductInWishlist(productID string) bool {
	_, ok := s.mirror.get(productID)
	return ok
}

func (s *WishlistSync) WishlistCount() int {
	return s.mirror.len()
}

func (s *WishlistSync) ProductIDs() []string {
	items := s.mirror.list()
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

func (s *WishlistSync) Items() []models.WishlistItem {
	return s.mirror.list()
}
