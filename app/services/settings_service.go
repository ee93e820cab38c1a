package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/SumanthCsy/Mens-Club-sub000/app/repositories"
)

type SettingsService struct {
	settingsRepo repositories.SettingsRepositoryImpl
	now          func() time.Time
}

func NewSettingsService(settingsRepo repositories.SettingsRepositoryImpl) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, now: time.Now}
}

// Get falls back to the defaults until an admin saves settings.
func (s *SettingsService) Get(ctx context.Context) (models.StoreSettings, error) {
	st, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return models.StoreSettings{}, persistence("SettingsService.Get", err)
	}
	if st == nil {
		return models.DefaultStoreSettings(), nil
	}
	return *st, nil
}

func (s *SettingsService) Update(ctx context.Context, in models.StoreSettings) (models.StoreSettings, error) {
	if in.ShippingCost.IsNegative() {
		return models.StoreSettings{}, fmt.Errorf("%w: shipping cost cannot be negative", ErrInvalidInput)
	}
	if in.FreeShippingThreshold != nil && in.FreeShippingThreshold.IsNegative() {
		return models.StoreSettings{}, fmt.Errorf("%w: free shipping threshold cannot be negative", ErrInvalidInput)
	}
	if in.StoreName == "" {
		in.StoreName = models.DefaultStoreSettings().StoreName
	}
	in.UpdatedAt = s.now()
	if err := s.settingsRepo.Save(ctx, &in); err != nil {
		return models.StoreSettings{}, persistence("SettingsService.Update", err)
	}
	return in, nil
}
