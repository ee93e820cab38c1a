package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultSize = "default"

var whitespaceRun = regexp.MustCompile(`\s+`)

// CartItem is one line of a user's cart. Name, price, image and stock are
// copies taken from the product when the line was first added.
type CartItem struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"productId"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	Sku           string          `json:"sku,omitempty"`
	Stock         *int            `json:"stock,omitempty"`
	Quantity      int             `json:"quantity"`
	SelectedSize  string          `json:"selectedSize"`
	SelectedColor string          `json:"selectedColor,omitempty"`
	AddedAt       time.Time       `json:"addedAt"`
}

// CartItemID derives the line id from product and size, so the same product
// in the same size always lands on the same line.
func CartItemID(productID, size string) string {
	return productID + "_" + NormalizeSize(size)
}

func NormalizeSize(size string) string {
	s := strings.TrimSpace(size)
	if s == "" {
		return DefaultSize
	}
	return whitespaceRun.ReplaceAllString(s, "-")
}

func (c CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
