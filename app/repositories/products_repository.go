package repositories

import (
	"context"

	"github.com/SumanthCsy/Mens-Club-sub000/app/docstore"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
)

type ProductRepositoryImpl interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetByCategory(ctx context.Context, category string) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Save(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	store docstore.Store
}

func NewProductRepository(store docstore.Store) ProductRepositoryImpl {
	return &productRepository{store}
}

func setProductID(p *models.Product, id string) { p.ID = id }

func (p *productRepository) GetProducts(ctx context.Context) ([]models.Product, error) {
	return queryDocs(ctx, p.store, docstore.Products, setProductID)
}

func (p *productRepository) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return queryDocs(ctx, p.store, docstore.Products, setProductID, docstore.Where("category", category))
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return getDoc(ctx, p.store, docstore.Products, id, setProductID)
}

// Create stores a new product, generating the id when it is empty.
func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID != "" {
		return p.store.Create(ctx, docstore.Products, product.ID, product)
	}
	id, err := p.store.Add(ctx, docstore.Products, product)
	if err != nil {
		return err
	}
	product.ID = id
	return nil
}

func (p *productRepository) Save(ctx context.Context, product *models.Product) error {
	return p.store.Set(ctx, docstore.Products, product.ID, product)
}

func (p *productRepository) Delete(ctx context.Context, id string) error {
	return p.store.Delete(ctx, docstore.Products, id)
}
