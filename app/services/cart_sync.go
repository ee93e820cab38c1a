package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SumanthCsy/Mens-Club-sub000/app/docstore"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/SumanthCsy/Mens-Club-sub000/app/repositories"
	"github.com/SumanthCsy/Mens-Club-sub000/app/utils/calc"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartSync mirrors users/{uid}/cart into local state. Writes go to the
// store only; local state changes when the subscription delivers the next
// snapshot.
type CartSync struct {
	cartRepo repositories.CartItemRepositoryImpl
	mirror   *mirror[models.CartItem]
	now      func() time.Time
}

func NewCartSync(cartRepo repositories.CartItemRepositoryImpl) *CartSync {
	return &CartSync{
		cartRepo: cartRepo,
		mirror:   newMirror("CartSync", cartRepo.Decode),
		now:      time.Now,
	}
}

func (c *CartSync) Attach(ctx context.Context, user *models.User) error {
	if user == nil || user.ID == "" {
		return ErrNotAuthenticated
	}
	return c.mirror.attach(ctx, user.ID, c.cartRepo.Subscribe)
}

func (c *CartSync) Detach() {
	c.mirror.detach()
}

func (c *CartSync) userID() (string, error) {
	uid := c.mirror.ownerID()
	if uid == "" {
		return "", ErrNotAuthenticated
	}
	return uid, nil
}

// clampQuantity bounds qty to [1, stock]; a nil stock is unlimited.
func clampQuantity(qty int, stock *int) (int, bool) {
	if qty < 1 {
		qty = 1
	}
	if stock != nil && qty > *stock {
		return *stock, true
	}
	return qty, false
}

// AddToCart inserts a new line or increments the existing line for the same
// product and size. The returned flag reports that the quantity was capped
// at the available stock.
func (c *CartSync) AddToCart(ctx context.Context, product *models.Product, size, color string, qty int) (bool, error) {
	uid, err := c.userID()
	if err != nil {
		return false, err
	}
	if product == nil || product.ID == "" {
		return false, ErrProductNotFound
	}
	if qty < 1 {
		qty = 1
	}
	stock := product.AvailableStock(size)
	if stock != nil && *stock < 1 {
		return false, ErrOutOfStock
	}

	id := models.CartItemID(product.ID, size)
	if existing, ok := c.mirror.get(id); ok {
		newQty, limited := clampQuantity(existing.Quantity+qty, stock)
		err := c.cartRepo.UpdateLine(ctx, uid, id, newQty, stock)
		if errors.Is(err, docstore.ErrNotFound) {
			// Removed elsewhere before our snapshot caught up.
			newQty, limited = clampQuantity(qty, stock)
			return limited, c.insert(ctx, uid, id, product, size, color, newQty, stock)
		}
		if err != nil {
			return false, persistence("CartSync.AddToCart", err)
		}
		return limited, nil
	}

	newQty, limited := clampQuantity(qty, stock)
	return limited, c.insert(ctx, uid, id, product, size, color, newQty, stock)
}

func (c *CartSync) insert(ctx context.Context, uid, id string, product *models.Product, size, color string, qty int, stock *int) error {
	item := &models.CartItem{
		ID:            id,
		ProductID:     product.ID,
		Name:          product.Name,
		Price:         product.Price,
		ImageURL:      product.PrimaryImage(),
		Sku:           product.Sku,
		Stock:         stock,
		Quantity:      qty,
		SelectedSize:  strings.TrimSpace(size),
		SelectedColor: strings.TrimSpace(color),
		AddedAt:       c.now(),
	}
	if err := c.cartRepo.Save(ctx, uid, item); err != nil {
		return persistence("CartSync.AddToCart", err)
	}
	return nil
}

// UpdateCartItemQuantity ignores ids not present in local state. It reports
// limitReached when the request was above the stock recorded on the line.
func (c *CartSync) UpdateCartItemQuantity(ctx context.Context, id string, qty int) (bool, error) {
	uid, err := c.userID()
	if err != nil {
		return false, err
	}
	item, ok := c.mirror.get(id)
	if !ok {
		zap.S().Debugf("CartSync.UpdateCartItemQuantity: %s not in cart, ignoring", id)
		return false, nil
	}
	newQty, limited := clampQuantity(qty, item.Stock)
	if newQty == item.Quantity {
		return limited, nil
	}
	if err := c.cartRepo.UpdateQuantity(ctx, uid, id, newQty); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return false, nil
		}
		return false, persistence("CartSync.UpdateCartItemQuantity", err)
	}
	return limited, nil
}

func (c *CartSync) RemoveFromCart(ctx context.Context, id string) error {
	uid, err := c.userID()
	if err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return ErrInvalidCartItem
	}
	if err := c.cartRepo.Delete(ctx, uid, id); err != nil {
		return persistence("CartSync.RemoveFromCart", err)
	}
	return nil
}

// ClearCart deletes what the store holds, not what local state shows.
func (c *CartSync) ClearCart(ctx context.Context) error {
	uid, err := c.userID()
	if err != nil {
		return err
	}
	if err := c.cartRepo.ClearCartItems(ctx, uid); err != nil {
		return persistence("CartSync.ClearCart", err)
	}
	return nil
}

// RemoveItems deletes exactly the given lines, leaving anything added
// since untouched.
func (c *CartSync) RemoveItems(ctx context.Context, ids []string) error {
	uid, err := c.userID()
	if err != nil {
		return err
	}
	if err := c.cartRepo.DeleteItems(ctx, uid, ids); err != nil {
		return persistence("CartSync.RemoveItems", err)
	}
	return nil
}

func (c *CartSync) Items() []models.CartItem {
	return c.mirror.list()
}

func (c *CartSync) Item(id string) (models.CartItem, bool) {
	return c.mirror.get(id)
}

func (c *CartSync) CartCount() int {
	n := 0
	for _, it := range c.mirror.list() {
		n += it.Quantity
	}
	return n
}

func (c *CartSync) CartTotal() decimal.Decimal {
	return calc.Subtotal(c.mirror.list())
}
