package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wilcommerce/catalog/internal/domain"
	"github.com/wilcommerce/catalog/internal/event"
	"github.com/wilcommerce/catalog/internal/repository"
	apperrors "github.com/wilcommerce/catalog/pkg/errors"
)

// SettingsService implements the write operations for the catalog settings
// aggregate. The catalog holds a single settings record; GetSettings creates
// it with defaults on first access.
type SettingsService struct {
	repo     repository.SettingsRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewSettingsService creates a new settings service.
func NewSettingsService(repo repository.SettingsRepository, producer *event.Producer, logger *slog.Logger) *SettingsService {
	return &SettingsService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// Default page sizes used when the settings record is created lazily.
const (
	defaultCategoriesPerPage = 20
	defaultProductsPerPage   = 20
)

// GetSettings returns the catalog settings, creating the record with
// defaults when none exists yet.
func (s *SettingsService) GetSettings(ctx context.Context) (*domain.CatalogSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("get catalog settings: %w", err)
	}

	settings, err = domain.NewCatalogSettings(defaultCategoriesPerPage, defaultProductsPerPage, domain.ViewTypeList, domain.ViewTypeList)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Add(ctx, settings); err != nil {
		return nil, fmt.Errorf("add catalog settings: %w", err)
	}

	if err := s.producer.PublishSettingsCreated(ctx, settings, ""); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish settings.created event",
			slog.String("settings_id", settings.ID.String()),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "catalog settings created with defaults",
		slog.String("settings_id", settings.ID.String()),
	)

	return settings, nil
}

// UpdateSettingsInput holds the parameters for updating the catalog
// settings. Nil fields are left unchanged.
type UpdateSettingsInput struct {
	CategoriesPerPage     *int
	ProductsPerPage       *int
	CategoriesViewType    *string
	ProductsViewType      *string
	PricesShown           *bool
	ProductReviewsAllowed *bool
	ReviewsPerPage        *int
	ActorID               string
}

// UpdateSettings updates the catalog settings. Reviews-per-page is applied
// after the reviews-allowed toggle so both can change in one call.
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*domain.CatalogSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if input.CategoriesPerPage != nil {
		if err := settings.SetCategoriesPerPage(*input.CategoriesPerPage); err != nil {
			return nil, err
		}
	}
	if input.ProductsPerPage != nil {
		if err := settings.SetProductsPerPage(*input.ProductsPerPage); err != nil {
			return nil, err
		}
	}
	if input.CategoriesViewType != nil {
		if err := settings.SetCategoriesViewType(*input.CategoriesViewType); err != nil {
			return nil, err
		}
	}
	if input.ProductsViewType != nil {
		if err := settings.SetProductsViewType(*input.ProductsViewType); err != nil {
			return nil, err
		}
	}
	if input.PricesShown != nil {
		settings.ShowPrices(*input.PricesShown)
	}
	if input.ProductReviewsAllowed != nil {
		settings.AllowProductReviews(*input.ProductReviewsAllowed)
	}
	if input.ReviewsPerPage != nil {
		if err := settings.SetProductReviewsPerPage(*input.ReviewsPerPage); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("save catalog settings: %w", err)
	}

	if err := s.producer.PublishSettingsUpdated(ctx, settings, input.ActorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish settings.updated event",
			slog.String("settings_id", settings.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "catalog settings updated",
		slog.String("settings_id", settings.ID.String()),
	)

	return settings, nil
}
