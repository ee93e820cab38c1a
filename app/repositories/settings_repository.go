package repositories

import (
	"context"

	"github.com/SumanthCsy/Mens-Club-sub000/app/docstore"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
)

type SettingsRepositoryImpl interface {
	Get(ctx context.Context) (*models.StoreSettings, error)
	Save(ctx context.Context, settings *models.StoreSettings) error
}

type settingsRepository struct {
	store docstore.Store
}

func NewSettingsRepository(store docstore.Store) SettingsRepositoryImpl {
	return &settingsRepository{store}
}

func (r *settingsRepository) Get(ctx context.Context) (*models.StoreSettings, error) {
	return getDoc[models.StoreSettings](ctx, r.store, docstore.Settings, models.StoreSettingsID, nil)
}

func (r *settingsRepository) Save(ctx context.Context, settings *models.StoreSettings) error {
	return r.store.Set(ctx, docstore.Settings, models.StoreSettingsID, settings)
}
