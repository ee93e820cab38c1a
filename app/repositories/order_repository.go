package repositories

import (
	"context"

	"github.com/SumanthCsy/Mens-Club-sub000/app/docstore"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
)

type OrderRepository interface {
	// Create stores a new order under a generated id and sets order.ID.
	Create(ctx context.Context, order *models.Order) error
	// CreateWithID fails with docstore.ErrAlreadyExists when order.ID is taken.
	CreateWithID(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Order, error)
	FindByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, id string, updates ...docstore.Update) error
	DeleteMany(ctx context.Context, ids []string) error
}

type orderRepository struct {
	store docstore.Store
}

func NewOrderRepository(store docstore.Store) OrderRepository {
	return &orderRepository{store: store}
}

func setOrderID(o *models.Order, id string) { o.ID = id }

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	id, err := r.store.Add(ctx, docstore.Orders, order)
	if err != nil {
		return err
	}
	order.ID = id
	return nil
}

func (r *orderRepository) CreateWithID(ctx context.Context, order *models.Order) error {
	return r.store.Create(ctx, docstore.Orders, order.ID, order)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return getDoc(ctx, r.store, docstore.Orders, id, setOrderID)
}

func (r *orderRepository) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	return queryDocs(ctx, r.store, docstore.Orders, setOrderID, docstore.Where("userId", userID))
}

func (r *orderRepository) FindByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	return queryDocs(ctx, r.store, docstore.Orders, setOrderID, docstore.Where("status", status))
}

func (r *orderRepository) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return queryDocs(ctx, r.store, docstore.Orders, setOrderID)
}

func (r *orderRepository) Update(ctx context.Context, id string, updates ...docstore.Update) error {
	return r.store.Update(ctx, docstore.Orders, id, updates...)
}

func (r *orderRepository) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	ops := make([]docstore.BatchOp, 0, len(ids))
	for _, id := range ids {
		ops = append(ops, docstore.DeleteOp(docstore.Orders, id))
	}
	return r.store.Batch(ctx, ops...)
}
