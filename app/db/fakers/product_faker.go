package fakers

import (
	"math/rand"
	"time"

	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

var imagePaths = []string{
	"/images/products/shirt.jpg",
	"/images/products/trouser.jpg",
	"/images/products/kurta.jpg",
}

var categories = []string{"shirts", "t-shirts", "jeans", "trousers", "kurtas", "accessories"}

func intPtr(n int) *int { return &n }

func newProduct(name, category, brand string, price int64, sizes []string, stock *int, variants []models.ProductVariant, now time.Time) models.Product {
	return models.Product{
		ID:          slug.Make(name),
		Name:        name,
		Description: name + " from the Mens Club Keshavapatnam collection.",
		Price:       decimal.NewFromInt(price),
		Images:      []string{imagePaths[len(name)%len(imagePaths)]},
		Category:    category,
		Brand:       brand,
		Sizes:       sizes,
		Sku:         slug.Make(brand + " " + name),
		Stock:       stock,
		Variants:    variants,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SampleCatalogue is the fixed demo catalogue. Ids derive from the names,
// so seeding twice overwrites instead of duplicating.
func SampleCatalogue(now time.Time) []models.Product {
	sizes := []string{"S", "M", "L", "XL"}
	return []models.Product{
		newProduct("Classic White Oxford Shirt", "shirts", "Mens Club", 899, sizes, nil, []models.ProductVariant{
			{Size: "S", Stock: 4}, {Size: "M", Stock: 10}, {Size: "L", Stock: 8}, {Size: "XL", Stock: 0},
		}, now),
		newProduct("Linen Summer Shirt", "shirts", "Mens Club", 1199, sizes, intPtr(15), nil, now),
		newProduct("Slim Fit Stretch Jeans", "jeans", "Denim Co", 1499, []string{"30", "32", "34", "36"}, nil, []models.ProductVariant{
			{Size: "30", Stock: 3}, {Size: "32", Stock: 6}, {Size: "34", Stock: 6}, {Size: "36", Stock: 2},
		}, now),
		newProduct("Cotton Crew T-Shirt", "t-shirts", "Basics", 399, sizes, intPtr(40), nil, now),
		newProduct("Festive Silk Kurta", "kurtas", "Utsav", 2499, sizes, intPtr(5), nil, now),
		newProduct("Formal Pleated Trousers", "trousers", "Mens Club", 1299, []string{"30", "32", "34"}, intPtr(12), nil, now),
		newProduct("Leather Belt", "accessories", "Basics", 499, []string{"Free Size"}, nil, nil, now),
	}
}

// ProductFaker returns a random product for load and UI testing.
func ProductFaker(now time.Time) models.Product {
	name := faker.Word() + " " + faker.Word() + " " + faker.Word()
	category := categories[rand.Intn(len(categories))]
	p := newProduct(name, category, faker.LastName(), int64(rand.Intn(4000)+199), []string{"M", "L"}, intPtr(rand.Intn(20)+1), nil, now)
	p.ID = slug.Make(name + "-" + faker.UUIDDigit()[:6])
	p.Description = faker.Sentence()
	return p
}
