package repositories

import (
	"context"

	"github.com/SumanthCsy/Mens-Club-sub000/app/docstore"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
)

// CartItemRepositoryImpl works on users/{uid}/cart.
type CartItemRepositoryImpl interface {
	Save(ctx context.Context, userID string, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, userID, itemID string, qty int) error
	UpdateLine(ctx context.Context, userID, itemID string, qty int, stock *int) error
	Delete(ctx context.Context, userID, itemID string) error
	DeleteItems(ctx context.Context, userID string, itemIDs []string) error
	GetByUserID(ctx context.Context, userID string) ([]models.CartItem, error)
	ClearCartItems(ctx context.Context, userID string) error
	Subscribe(ctx context.Context, userID string) (*docstore.Subscription, error)
	Decode(doc docstore.Document) (models.CartItem, error)
}

type CartItemRepository struct {
	store docstore.Store
}

func NewCartItemRepository(store docstore.Store) CartItemRepositoryImpl {
	return &CartItemRepository{store}
}

func setCartItemID(ci *models.CartItem, id string) { ci.ID = id }

func (r *CartItemRepository) Save(ctx context.Context, userID string, item *models.CartItem) error {
	return r.store.Set(ctx, docstore.UserCart(userID), item.ID, item)
}

func (r *CartItemRepository) UpdateQuantity(ctx context.Context, userID, itemID string, qty int) error {
	return r.store.Update(ctx, docstore.UserCart(userID), itemID, docstore.Set("quantity", qty))
}

// UpdateLine sets the quantity and refreshes the stock snapshot; a nil
// stock clears it.
func (r *CartItemRepository) UpdateLine(ctx context.Context, userID, itemID string, qty int, stock *int) error {
	stockUpdate := docstore.Clear("stock")
	if stock != nil {
		stockUpdate = docstore.Set("stock", *stock)
	}
	return r.store.Update(ctx, docstore.UserCart(userID), itemID, docstore.Set("quantity", qty), stockUpdate)
}

func (r *CartItemRepository) Delete(ctx context.Context, userID, itemID string) error {
	return r.store.Delete(ctx, docstore.UserCart(userID), itemID)
}

func (r *CartItemRepository) GetByUserID(ctx context.Context, userID string) ([]models.CartItem, error) {
	return queryDocs(ctx, r.store, docstore.UserCart(userID), setCartItemID)
}

// ClearCartItems deletes every line the store currently holds, in one batch.
func (r *CartItemRepository) ClearCartItems(ctx context.Context, userID string) error {
	path := docstore.UserCart(userID)
	docs, err := r.store.Query(ctx, path)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}
	ops := make([]docstore.BatchOp, 0, len(docs))
	for _, d := range docs {
		ops = append(ops, docstore.DeleteOp(path, d.ID))
	}
	return r.store.Batch(ctx, ops...)
}

// DeleteItems deletes the given lines in one batch. Lines already gone
// are ignored.
func (r *CartItemRepository) DeleteItems(ctx context.Context, userID string, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}
	path := docstore.UserCart(userID)
	ops := make([]docstore.BatchOp, 0, len(itemIDs))
	for _, id := range itemIDs {
		ops = append(ops, docstore.DeleteOp(path, id))
	}
	return r.store.Batch(ctx, ops...)
}

func (r *CartItemRepository) Subscribe(ctx context.Context, userID string) (*docstore.Subscription, error) {
	return r.store.Subscribe(ctx, docstore.UserCart(userID))
}

func (r *CartItemRepository) Decode(doc docstore.Document) (models.CartItem, error) {
	var item models.CartItem
	if err := doc.DataTo(&item); err != nil {
		return item, err
	}
	item.ID = doc.ID
	return item, nil
}
