package models

import (
	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ProductID     string          `json:"productId"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	SelectedSize  string          `json:"selectedSize,omitempty"`
	SelectedColor string          `json:"selectedColor,omitempty"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	Sku           string          `json:"sku,omitempty"`
}

func OrderItemFromCart(ci CartItem) OrderItem {
	return OrderItem{
		ProductID:     ci.ProductID,
		Name:          ci.Name,
		Quantity:      ci.Quantity,
		Price:         ci.Price,
		SelectedSize:  ci.SelectedSize,
		SelectedColor: ci.SelectedColor,
		ImageURL:      ci.ImageURL,
		Sku:           ci.Sku,
	}
}

func (oi OrderItem) LineTotal() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
