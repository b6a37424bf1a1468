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
)

// CustomAttributeService implements the write operations for the custom
// attribute aggregate.
type CustomAttributeService struct {
	repo     repository.CustomAttributeRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCustomAttributeService creates a new custom attribute service.
func NewCustomAttributeService(repo repository.CustomAttributeRepository, producer *event.Producer, logger *slog.Logger) *CustomAttributeService {
	return &CustomAttributeService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CreateAttributeInput holds the parameters for creating a custom attribute.
type CreateAttributeInput struct {
	Name          string
	DataType      string
	Description   string
	UnitOfMeasure string
	Values        []string
	ActorID       string
}

// CreateAttribute creates a new custom attribute with an optional initial
// value set.
func (s *CustomAttributeService) CreateAttribute(ctx context.Context, input *CreateAttributeInput) (*domain.CustomAttribute, error) {
	attribute, err := domain.NewCustomAttribute(input.Name, input.DataType)
	if err != nil {
		return nil, err
	}
	if input.Description != "" {
		attribute.ChangeDescription(input.Description)
	}
	if input.UnitOfMeasure != "" {
		attribute.SetUnitOfMeasure(input.UnitOfMeasure)
	}
	for _, value := range input.Values {
		if err := attribute.AddValue(value); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Add(ctx, attribute); err != nil {
		return nil, fmt.Errorf("add custom attribute: %w", err)
	}

	if err := s.producer.PublishAttributeCreated(ctx, attribute, input.ActorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish custom_attribute.created event",
			slog.String("attribute_id", attribute.ID.String()),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "custom attribute created",
		slog.String("attribute_id", attribute.ID.String()),
		slog.String("name", attribute.Name),
	)

	return attribute, nil
}

// GetAttribute retrieves a custom attribute by its ID.
func (s *CustomAttributeService) GetAttribute(ctx context.Context, id uuid.UUID) (*domain.CustomAttribute, error) {
	if id == uuid.Nil {
		return nil, apperrors.MissingArgument("attribute id")
	}
	attribute, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get custom attribute by id: %w", err)
	}
	return attribute, nil
}

// ListAttributes returns all custom attributes.
func (s *CustomAttributeService) ListAttributes(ctx context.Context) ([]domain.CustomAttribute, error) {
	attributes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list custom attributes: %w", err)
	}
	return attributes, nil
}

// UpdateAttributeInput holds the parameters for updating a custom attribute.
// Nil fields are left unchanged.
type UpdateAttributeInput struct {
	Name          *string
	DataType      *string
	Description   *string
	UnitOfMeasure *string
	ActorID       string
}

// UpdateAttribute updates the editable fields of an existing custom
// attribute.
func (s *CustomAttributeService) UpdateAttribute(ctx context.Context, id uuid.UUID, input *UpdateAttributeInput) (*domain.CustomAttribute, error) {
	if id == uuid.Nil {
		return nil, apperrors.MissingArgument("attribute id")
	}

	attribute, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get custom attribute by id: %w", err)
	}

	if input.Name != nil {
		if err := attribute.ChangeName(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.DataType != nil {
		if err := attribute.ChangeDataType(*input.DataType); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		attribute.ChangeDescription(*input.Description)
	}
	if input.UnitOfMeasure != nil {
		attribute.SetUnitOfMeasure(*input.UnitOfMeasure)
	}

	if err := s.repo.Save(ctx, attribute); err != nil {
		return nil, fmt.Errorf("save custom attribute: %w", err)
	}

	if err := s.producer.PublishAttributeUpdated(ctx, attribute, input.ActorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish custom_attribute.updated event",
			slog.String("attribute_id", attribute.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "custom attribute updated",
		slog.String("attribute_id", attribute.ID.String()),
	)

	return attribute, nil
}

// AddAttributeValue adds a value to the attribute's permitted value set.
func (s *CustomAttributeService) AddAttributeValue(ctx context.Context, id uuid.UUID, value string, actorID string) error {
	if id == uuid.Nil {
		return apperrors.MissingArgument("attribute id")
	}

	attribute, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get custom attribute by id: %w", err)
	}

	if err := attribute.AddValue(value); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, attribute); err != nil {
		return fmt.Errorf("save custom attribute: %w", err)
	}

	if err := s.producer.PublishAttributeUpdated(ctx, attribute, actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish custom_attribute.updated event",
			slog.String("attribute_id", attribute.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// RemoveAttributeValue removes a value from the attribute's permitted value
// set.
func (s *CustomAttributeService) RemoveAttributeValue(ctx context.Context, id uuid.UUID, value string, actorID string) error {
	if id == uuid.Nil {
		return apperrors.MissingArgument("attribute id")
	}

	attribute, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get custom attribute by id: %w", err)
	}

	if err := attribute.RemoveValue(value); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, attribute); err != nil {
		return fmt.Errorf("save custom attribute: %w", err)
	}

	if err := s.producer.PublishAttributeUpdated(ctx, attribute, actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish custom_attribute.updated event",
			slog.String("attribute_id", attribute.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// DeleteAttribute soft-deletes a custom attribute.
func (s *CustomAttributeService) DeleteAttribute(ctx context.Context, id uuid.UUID, actorID string) error {
	if id == uuid.Nil {
		return apperrors.MissingArgument("attribute id")
	}

	attribute, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get custom attribute by id: %w", err)
	}

	if err := attribute.Delete(); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, attribute); err != nil {
		return fmt.Errorf("save custom attribute: %w", err)
	}

	if err := s.producer.PublishAttributeDeleted(ctx, attribute.ID.String(), actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish custom_attribute.deleted event",
			slog.String("attribute_id", attribute.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "custom attribute deleted",
		slog.String("attribute_id", attribute.ID.String()),
	)

	return nil
}

// RestoreAttribute brings a soft-deleted custom attribute back.
func (s *CustomAttributeService) RestoreAttribute(ctx context.Context, id uuid.UUID, actorID string) error {
	if id == uuid.Nil {
		return apperrors.MissingArgument("attribute id")
	}

	attribute, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get custom attribute by id: %w", err)
	}

	if err := attribute.Restore(); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, attribute); err != nil {
		return fmt.Errorf("save custom attribute: %w", err)
	}

	if err := s.producer.PublishAttributeRestored(ctx, attribute.ID.String(), actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish custom_attribute.restored event",
			slog.String("attribute_id", attribute.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "custom attribute restored",
		slog.String("attribute_id", attribute.ID.String()),
	)

	return nil
}
