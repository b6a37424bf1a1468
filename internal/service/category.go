package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wilcommerce/catalog/internal/domain"
	"github.com/wilcommerce/catalog/internal/event"
	"github.com/wilcommerce/catalog/internal/repository"
	apperrors "github.com/wilcommerce/catalog/pkg/errors"
	"github.com/wilcommerce/catalog/pkg/slug"
)

// CategoryService implements the write operations for the category aggregate.
type CategoryService struct {
	repo     repository.CategoryRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, producer *event.Producer, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CreateCategoryInput holds the parameters for creating a category.
type CreateCategoryInput struct {
	Code        string
	Name        string
	URL         string
	Description string
	IsVisible   bool
	VisibleFrom *time.Time
	VisibleTo   *time.Time
	Seo         *domain.SeoData
	ActorID     string
}

// CreateCategory creates a new category. When no URL slug is supplied, one
// is derived from the name.
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*domain.Category, error) {
	url := input.URL
	if url == "" {
		url = slug.Generate(input.Name)
	}

	category, err := domain.NewCategory(input.Code, input.Name, url)
	if err != nil {
		return nil, err
	}
	if input.Description != "" {
		category.ChangeDescription(input.Description)
	}
	if input.IsVisible {
		if err := s.applyVisibility(category, input.VisibleFrom, input.VisibleTo); err != nil {
			return nil, err
		}
	}
	if input.Seo != nil {
		if err := category.SetSeoData(input.Seo); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Add(ctx, category); err != nil {
		return nil, fmt.Errorf("add category: %w", err)
	}

	if err := s.producer.PublishCategoryCreated(ctx, category, input.ActorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish category.created event",
			slog.String("category_id", category.ID.String()),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "category created",
		slog.String("category_id", category.ID.String()),
		slog.String("code", category.Code),
	)

	return category, nil
}

func (s *CategoryService) applyVisibility(category *domain.Category, from, to *time.Time) error {
	switch {
	case from != nil && to != nil:
		return category.SetAsVisibleBetween(*from, *to)
	case from != nil:
		category.SetAsVisibleFrom(*from)
		return nil
	default:
		category.SetAsVisible()
		return nil
	}
}

// GetCategory retrieves a category by its ID.
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if id == uuid.Nil {
		return nil, apperrors.MissingArgument("category id")
	}
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category by id: %w", err)
	}
	return category, nil
}

// ListCategories returns all categories.
func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategoryInput holds the parameters for updating a category. Nil
// fields are left unchanged.
type UpdateCategoryInput struct {
	Code        *string
	Name        *string
	URL         *string
	Description *string
	Seo         *domain.SeoData
	ActorID     string
}

// UpdateCategory updates the editable fields of an existing category.
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, input *UpdateCategoryInput) (*domain.Category, error) {
	if id == uuid.Nil {
		return nil, apperrors.MissingArgument("category id")
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category by id: %w", err)
	}

	if input.Code != nil {
		if err := category.ChangeCode(*input.Code); err != nil {
			return nil, err
		}
	}
	if input.Name != nil {
		if err := category.ChangeName(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.URL != nil {
		if err := category.ChangeURL(*input.URL); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		category.ChangeDescription(*input.Description)
	}
	if input.Seo != nil {
		if err := category.SetSeoData(input.Seo); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, category); err != nil {
		return nil, fmt.Errorf("save category: %w", err)
	}

	if err := s.producer.PublishCategoryUpdated(ctx, category, input.ActorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish category.updated event",
			slog.String("category_id", category.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "category updated",
		slog.String("category_id", category.ID.String()),
	)

	return category, nil
}

// SetCategoryVisibilityInput holds the parameters for changing a category's
// visibility window.
type SetCategoryVisibilityInput struct {
	IsVisible   bool
	VisibleFrom *time.Time
	VisibleTo   *time.Time
	ActorID     string
}

// SetCategoryVisibility shows or hides a category, with an optional
// visibility window.
func (s *CategoryService) SetCategoryVisibility(ctx context.Context, id uuid.UUID, input *SetCategoryVisibilityInput) error {
	if id == uuid.Nil {
		return apperrors.MissingArgument("category id")
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get category by id: %w", err)
	}

	if input.IsVisible {
		if err := s.applyVisibility(category, input.VisibleFrom, input.VisibleTo); err != nil {
			return err
		}
	} else {
		category.Hide()
	}

	if err := s.repo.Save(ctx, category); err != nil {
		return fmt.Errorf("save category: %w", err)
	}

	if err := s.producer.PublishCategoryVisibilityChanged(ctx, category, input.ActorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish category.visibility_changed event",
			slog.String("category_id", category.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// AddCategoryChild adds an existing category as a child of another one. Both
// sides of the relation are persisted.
func (s *CategoryService) AddCategoryChild(ctx context.Context, id, childID uuid.UUID, actorID string) error {
	if id == uuid.Nil {
		return apperrors.MissingArgument("category id")
	}
	if childID == uuid.Nil {
		return apperrors.MissingArgument("child id")
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get category by id: %w", err)
	}
	child, err := s.repo.GetByID(ctx, childID)
	if err != nil {
		return fmt.Errorf("get child category by id: %w", err)
	}

	if err := category.AddChild(child); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, category); err != nil {
		return fmt.Errorf("save category: %w", err)
	}
	if err := s.repo.Save(ctx, child); err != nil {
		return fmt.Errorf("save child category: %w", err)
	}

	if err := s.producer.PublishCategoryUpdated(ctx, category, actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish category.updated event",
			slog.String("category_id", category.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "category child added",
		slog.String("category_id", category.ID.String()),
		slog.String("child_id", child.ID.String()),
	)

	return nil
}

// RemoveCategoryChild detaches a child category.
func (s *CategoryService) RemoveCategoryChild(ctx context.Context, id, childID uuid.UUID, actorID string) error {
	if id == uuid.Nil {
		return apperrors.MissingArgument("category id")
	}
	if childID == uuid.Nil {
		return apperrors.MissingArgument("child id")
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get category by id: %w", err)
	}

	if err := category.RemoveChild(childID); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, category); err != nil {
		return fmt.Errorf("save category: %w", err)
	}

	if child, err := s.repo.GetByID(ctx, childID); err == nil && child.ParentID != nil && *child.ParentID == id {
		child.RemoveParent()
		if err := s.repo.Save(ctx, child); err != nil {
			return fmt.Errorf("save child category: %w", err)
		}
	}

	if err := s.producer.PublishCategoryUpdated(ctx, category, actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish category.updated event",
			slog.String("category_id", category.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// SetCategoryParent sets the parent of a category.
func (s *CategoryService) SetCategoryParent(ctx context.Context, id, parentID uuid.UUID, actorID string) error {
	if id == uuid.Nil {
		return apperrors.MissingArgument("category id")
	}
	if parentID == uuid.Nil {
		return apperrors.MissingArgument("parent id")
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get category by id: %w", err)
	}
	parent, err := s.repo.GetByID(ctx, parentID)
	if err != nil {
		return fmt.Errorf("get parent category by id: %w", err)
	}

	if err := parent.AddChild(category); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, parent); err != nil {
		return fmt.Errorf("save parent category: %w", err)
	}
	if err := s.repo.Save(ctx, category); err != nil {
		return fmt.Errorf("save category: %w", err)
	}

	if err := s.producer.PublishCategoryUpdated(ctx, category, actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish category.updated event",
			slog.String("category_id", category.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// RemoveCategoryParent detaches a category from its parent.
func (s *CategoryService) RemoveCategoryParent(ctx context.Context, id uuid.UUID, actorID string) error {
	if id == uuid.Nil {
		return apperrors.MissingArgument("category id")
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get category by id: %w", err)
	}

	parentID := category.ParentID
	category.RemoveParent()

	if err := s.repo.Save(ctx, category); err != nil {
		return fmt.Errorf("save category: %w", err)
	}

	if parentID != nil {
		if parent, err := s.repo.GetByID(ctx, *parentID); err == nil {
			if err := parent.RemoveChild(id); err == nil {
				if err := s.repo.Save(ctx, parent); err != nil {
					return fmt.Errorf("save parent category: %w", err)
				}
			}
		}
	}

	if err := s.producer.PublishCategoryUpdated(ctx, category, actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish category.updated event",
			slog.String("category_id", category.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// DeleteCategory soft-deletes a category.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID, actorID string) error {
	if id == uuid.Nil {
		return apperrors.MissingArgument("category id")
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get category by id: %w", err)
	}

	if err := category.Delete(); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, category); err != nil {
		return fmt.Errorf("save category: %w", err)
	}

	if err := s.producer.PublishCategoryDeleted(ctx, category.ID.String(), actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish category.deleted event",
			slog.String("category_id", category.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "category deleted",
		slog.String("category_id", category.ID.String()),
	)

	return nil
}

// RestoreCategory brings a soft-deleted category back.
func (s *CategoryService) RestoreCategory(ctx context.Context, id uuid.UUID, actorID string) error {
	if id == uuid.Nil {
		return apperrors.MissingArgument("category id")
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get category by id: %w", err)
	}

	if err := category.Restore(); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, category); err != nil {
		return fmt.Errorf("save category: %w", err)
	}

	if err := s.producer.PublishCategoryRestored(ctx, category.ID.String(), actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish category.restored event",
			slog.String("category_id", category.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "category restored",
		slog.String("category_id", category.ID.String()),
	)

	return nil
}
