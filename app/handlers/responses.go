package handlers

import (
	"time"

	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/SumanthCsy/Mens-Club-sub000/app/utils/format"
	"github.com/shopspring/decimal"
)

// UserResponse is the public view of a user; the password hash never
// leaves the server.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

type CartResponse struct {
	Items          []models.CartItem `json:"items"`
	Count          int               `json:"count"`
	Total          decimal.Decimal   `json:"total"`
	TotalFormatted string            `json:"totalFormatted"`
}

func NewCartResponse(cart *services.CartSync) CartResponse {
	total := cart.CartTotal()
	return CartResponse{
		Items:          cart.Items(),
		Count:          cart.CartCount(),
		Total:          total,
		TotalFormatted: format.INR(total),
	}
}

type WishlistResponse struct {
	ProductIDs []string `json:"productIds"`
	Count      int      `json:"count"`
}

func NewWishlistResponse(wishlist *services.WishlistSync) WishlistResponse {
	return WishlistResponse{ProductIDs: wishlist.ProductIDs(), Count: wishlist.WishlistCount()}
}
