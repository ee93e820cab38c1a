package repositories

import (
	"context"

	"github.com/SumanthCsy/Mens-Club-sub000/app/docstore"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/google/uuid"
)

type UserRepositoryImpl interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id string, updates ...docstore.Update) error
	GetAll(ctx context.Context) ([]models.User, error)
}

type userRepository struct {
	store docstore.Store
}

func NewUserRepository(store docstore.Store) UserRepositoryImpl {
	return &userRepository{store}
}

func setUserID(u *models.User, id string) { u.ID = id }

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleCustomer
	}
	user.Email = models.NormalizeEmail(user.Email)
	return r.store.Create(ctx, docstore.Users, user.ID, user)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return getDoc(ctx, r.store, docstore.Users, id, setUserID)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := queryDocs(ctx, r.store, docstore.Users, setUserID, docstore.Where("email", models.NormalizeEmail(email)))
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (r *userRepository) Update(ctx context.Context, id string, updates ...docstore.Update) error {
	return r.store.Update(ctx, docstore.Users, id, updates...)
}

func (r *userRepository) GetAll(ctx context.Context) ([]models.User, error) {
	return queryDocs(ctx, r.store, docstore.Users, setUserID)
}
