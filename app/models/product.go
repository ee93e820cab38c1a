package models

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPrice  = errors.New("price must be greater than zero")
	ErrNegativeStock = errors.New("stock cannot be negative")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

type ProductVariant struct {
	Size  string `json:"size" validate:"required"`
	Stock int    `json:"stock"`
}

type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name" validate:"required,min=2,max=200"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Images        []string         `json:"images"`
	Category      string           `json:"category" validate:"required"`
	Brand         string           `json:"brand,omitempty"`
	Sizes         []string         `json:"sizes"`
	Colors        []string         `json:"colors,omitempty"`
	Sku           string           `json:"sku,omitempty" validate:"omitempty,max=100"`
	Tags          []string         `json:"tags,omitempty"`
	Stock         *int             `json:"stock,omitempty"`
	Variants      []ProductVariant `json:"variants,omitempty" validate:"dive"`
	AverageRating float64          `json:"averageRating"`
	ReviewCount   int              `json:"reviewCount"`
	Reviews       []Review         `json:"reviews,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// AvailableStock reports the units available for size. A nil result means
// the product does not track stock. Products with variants only sell the
// listed sizes.
func (p *Product) AvailableStock(size string) *int {
	if len(p.Variants) > 0 {
		want := strings.TrimSpace(size)
		for _, v := range p.Variants {
			if strings.EqualFold(strings.TrimSpace(v.Size), want) {
				stock := v.Stock
				return &stock
			}
		}
		zero := 0
		return &zero
	}
	if p.Stock == nil {
		return nil
	}
	stock := *p.Stock
	return &stock
}

func (p *Product) TotalStock() *int {
	if len(p.Variants) == 0 {
		return p.Stock
	}
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return &total
}

func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func (p *Product) Validate() error {
	if !p.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if p.Stock != nil && *p.Stock < 0 {
		return ErrNegativeStock
	}
	for _, v := range p.Variants {
		if v.Stock < 0 {
			return ErrNegativeStock
		}
	}
	return nil
}

// AddReview appends r and recomputes the rating aggregate, rounded to one
// decimal place.
func (p *Product) AddReview(r Review) error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	p.Reviews = append(p.Reviews, r)
	sum := 0
	for _, rv := range p.Reviews {
		sum += rv.Rating
	}
	p.ReviewCount = len(p.Reviews)
	p.AverageRating = math.Round(float64(sum)/float64(p.ReviewCount)*10) / 10
	return nil
}
