package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/SumanthCsy/Mens-Club-sub000/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type ProductFilter struct {
	Category string
	Brand    string
	Search   string
}

func (f ProductFilter) match(p *models.Product) bool {
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.Brand != "" && !strings.EqualFold(p.Brand, f.Brand) {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		hay := strings.ToLower(p.Name + " " + p.Description + " " + strings.Join(p.Tags, " "))
		if !strings.Contains(hay, term) {
			return false
		}
	}
	return true
}

type ProductService struct {
	productRepo repositories.ProductRepositoryImpl
	validate    *validator.Validate
	now         func() time.Time
}

func NewProductService(productRepo repositories.ProductRepositoryImpl, validate *validator.Validate) *ProductService {
	return &ProductService{productRepo: productRepo, validate: validate, now: time.Now}
}

// ListProducts returns matching products, newest first.
func (s *ProductService) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	var (
		all []models.Product
		err error
	)
	if filter.Category != "" {
		all, err = s.productRepo.GetByCategory(ctx, filter.Category)
		filter.Category = ""
	} else {
		all, err = s.productRepo.GetProducts(ctx)
	}
	if err != nil {
		return nil, persistence("ProductService.ListProducts", err)
	}
	out := all[:0]
	for i := range all {
		if filter.match(&all[i]) {
			out = append(out, all[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, persistence("ProductService.GetProduct", err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *ProductService) check(p *models.Product) error {
	if err := s.validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

func (s *ProductService) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	if err := s.check(p); err != nil {
		return nil, err
	}
	now := s.now()
	p.ID = ""
	p.Reviews = nil
	p.ReviewCount = 0
	p.AverageRating = 0
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Sku == "" {
		p.Sku = slug.Make(p.Name)
	}
	if err := s.productRepo.Create(ctx, p); err != nil {
		return nil, persistence("ProductService.CreateProduct", err)
	}
	return p, nil
}

// UpdateProduct replaces the editable fields; reviews and the rating
// aggregate are kept from the stored product.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, p *models.Product) (*models.Product, error) {
	current, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.check(p); err != nil {
		return nil, err
	}
	p.ID = id
	p.Reviews = current.Reviews
	p.ReviewCount = current.ReviewCount
	p.AverageRating = current.AverageRating
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = s.now()
	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, persistence("ProductService.UpdateProduct", err)
	}
	return p, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return persistence("ProductService.DeleteProduct", err)
	}
	return nil
}

// AddReview appends a review and recomputes the rating. Concurrent reviews
// of one product are last-write-wins.
func (s *ProductService) AddReview(ctx context.Context, user *models.User, productID string, rating int, comment string) (*models.Product, error) {
	if user == nil || user.ID == "" {
		return nil, ErrNotAuthenticated
	}
	p, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	review := models.Review{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.Name,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: s.now(),
	}
	if err := p.AddReview(review); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	p.UpdatedAt = s.now()
	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, persistence("ProductService.AddReview", err)
	}
	return p, nil
}
