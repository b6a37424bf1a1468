package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wilcommerce/catalog/internal/domain"
	"github.com/wilcommerce/catalog/internal/event"
	"github.com/wilcommerce/catalog/internal/repository"
	apperrors "github.com/wilcommerce/catalog/pkg/errors"
	"github.com/wilcommerce/catalog/pkg/slug"
)

// BrandService implements the write operations for the brand aggregate.
type BrandService struct {
	repo     repository.BrandRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewBrandService creates a new brand service.
func NewBrandService(repo repository.BrandRepository, producer *event.Producer, logger *slog.Logger) *BrandService {
	return &BrandService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CreateBrandInput holds the parameters for creating a brand.
type CreateBrandInput struct {
	Name        string
	URL         string
	Description string
	Logo        *domain.Image
	Seo         *domain.SeoData
	ActorID     string
}

// CreateBrand creates a new brand. When no URL slug is supplied, one is
// derived from the name.
func (s *BrandService) CreateBrand(ctx context.Context, input *CreateBrandInput) (*domain.Brand, error) {
	url := input.URL
	if url == "" {
		url = slug.Generate(input.Name)
	}

	brand, err := domain.NewBrand(input.Name, url)
	if err != nil {
		return nil, err
	}
	if input.Description != "" {
		brand.ChangeDescription(input.Description)
	}
	if input.Logo != nil {
		if err := brand.SetLogo(input.Logo); err != nil {
			return nil, err
		}
	}
	if input.Seo != nil {
		if err := brand.SetSeoData(input.Seo); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Add(ctx, brand); err != nil {
		return nil, fmt.Errorf("add brand: %w", err)
	}

	if err := s.producer.PublishBrandCreated(ctx, brand, input.ActorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish brand.created event",
			slog.String("brand_id", brand.ID.String()),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "brand created",
		slog.String("brand_id", brand.ID.String()),
		slog.String("url", brand.URL),
	)

	return brand, nil
}

// GetBrand retrieves a brand by its ID.
func (s *BrandService) GetBrand(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	if id == uuid.Nil {
		return nil, apperrors.MissingArgument("brand id")
	}
	brand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get brand by id: %w", err)
	}
	return brand, nil
}

// ListBrands returns all brands.
func (s *BrandService) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	brands, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return brands, nil
}

// UpdateBrandInput holds the parameters for updating a brand. Nil fields are
// left unchanged.
type UpdateBrandInput struct {
	Name        *string
	URL         *string
	Description *string
	Logo        *domain.Image
	Seo         *domain.SeoData
	ActorID     string
}

// UpdateBrand updates the editable fields of an existing brand.
func (s *BrandService) UpdateBrand(ctx context.Context, id uuid.UUID, input *UpdateBrandInput) (*domain.Brand, error) {
	if id == uuid.Nil {
		return nil, apperrors.MissingArgument("brand id")
	}

	brand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get brand by id: %w", err)
	}

	if input.Name != nil {
		if err := brand.ChangeName(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.URL != nil {
		if err := brand.ChangeURL(*input.URL); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		brand.ChangeDescription(*input.Description)
	}
	if input.Logo != nil {
		if err := brand.SetLogo(input.Logo); err != nil {
			return nil, err
		}
	}
	if input.Seo != nil {
		if err := brand.SetSeoData(input.Seo); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, brand); err != nil {
		return nil, fmt.Errorf("save brand: %w", err)
	}

	if err := s.producer.PublishBrandUpdated(ctx, brand, input.ActorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish brand.updated event",
			slog.String("brand_id", brand.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "brand updated",
		slog.String("brand_id", brand.ID.String()),
	)

	return brand, nil
}

// DeleteBrand soft-deletes a brand.
func (s *BrandService) DeleteBrand(ctx context.Context, id uuid.UUID, actorID string) error {
	if id == uuid.Nil {
		return apperrors.MissingArgument("brand id")
	}

	brand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get brand by id: %w", err)
	}

	if err := brand.Delete(); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, brand); err != nil {
		return fmt.Errorf("save brand: %w", err)
	}

	if err := s.producer.PublishBrandDeleted(ctx, brand.ID.String(), actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish brand.deleted event",
			slog.String("brand_id", brand.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "brand deleted",
		slog.String("brand_id", brand.ID.String()),
	)

	return nil
}

// RestoreBrand brings a soft-deleted brand back.
func (s *BrandService) RestoreBrand(ctx context.Context, id uuid.UUID, actorID string) error {
	if id == uuid.Nil {
		return apperrors.MissingArgument("brand id")
	}

	brand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get brand by id: %w", err)
	}

	if err := brand.Restore(); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, brand); err != nil {
		return fmt.Errorf("save brand: %w", err)
	}

	if err := s.producer.PublishBrandRestored(ctx, brand.ID.String(), actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish brand.restored event",
			slog.String("brand_id", brand.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "brand restored",
		slog.String("brand_id", brand.ID.String()),
	)

	return nil
}

// SetBrandSeoData replaces the SEO information of a brand.
func (s *BrandService) SetBrandSeoData(ctx context.Context, id uuid.UUID, seo *domain.SeoData, actorID string) error {
	if id == uuid.Nil {
		return apperrors.MissingArgument("brand id")
	}

	brand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get brand by id: %w", err)
	}

	if err := brand.SetSeoData(seo); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, brand); err != nil {
		return fmt.Errorf("save brand: %w", err)
	}

	if err := s.producer.PublishBrandUpdated(ctx, brand, actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish brand.updated event",
			slog.String("brand_id", brand.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	return nil
}
