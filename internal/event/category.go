package event

import (
	"context"
	"time"

	"github.com/wilcommerce/catalog/internal/domain"
)

// Kafka topic constants for category domain events.
const (
	TopicCategoryCreated           = "catalog.category.created"
	TopicCategoryUpdated           = "catalog.category.updated"
	TopicCategoryVisibilityChanged = "catalog.category.visibility_changed"
	TopicCategoryDeleted           = "catalog.category.deleted"
	TopicCategoryRestored          = "catalog.category.restored"
)

// CategoryData is the payload for category.created and category.updated
// events.
type CategoryData struct {
	ID          string  `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Description string  `json:"description,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
}

// CategoryVisibilityData is the payload for a category.visibility_changed
// event.
type CategoryVisibilityData struct {
	ID          string     `json:"id"`
	IsVisible   bool       `json:"is_visible"`
	VisibleFrom *time.Time `json:"visible_from,omitempty"`
	VisibleTo   *time.Time `json:"visible_to,omitempty"`
}

// CategoryRefData is the payload for category.deleted and category.restored
// events.
type CategoryRefData struct {
	ID string `json:"id"`
}

func categoryData(category *domain.Category) CategoryData {
	data := CategoryData{
		ID:          category.ID.String(),
		Code:        category.Code,
		Name:        category.Name,
		URL:         category.URL,
		Description: category.Description,
	}
	if category.ParentID != nil {
		parent := category.ParentID.String()
		data.ParentID = &parent
	}
	return data
}

// PublishCategoryCreated publishes a category.created event.
func (p *Producer) PublishCategoryCreated(ctx context.Context, category *domain.Category, actorID string) error {
	return p.publish(ctx, TopicCategoryCreated, category.ID.String(), AggregateTypeCategory, actorID, categoryData(category))
}

// PublishCategoryUpdated publishes a category.updated event.
func (p *Producer) PublishCategoryUpdated(ctx context.Context, category *domain.Category, actorID string) error {
	return p.publish(ctx, TopicCategoryUpdated, category.ID.String(), AggregateTypeCategory, actorID, categoryData(category))
}

// PublishCategoryVisibilityChanged publishes a category.visibility_changed
// event.
func (p *Producer) PublishCategoryVisibilityChanged(ctx context.Context, category *domain.Category, actorID string) error {
	data := CategoryVisibilityData{
		ID:          category.ID.String(),
		IsVisible:   category.IsVisible,
		VisibleFrom: category.VisibleFrom,
		VisibleTo:   category.VisibleTo,
	}
	return p.publish(ctx, TopicCategoryVisibilityChanged, category.ID.String(), AggregateTypeCategory, actorID, data)
}

// PublishCategoryDeleted publishes a category.deleted event.
func (p *Producer) PublishCategoryDeleted(ctx context.Context, id string, actorID string) error {
	return p.publish(ctx, TopicCategoryDeleted, id, AggregateTypeCategory, actorID, CategoryRefData{ID: id})
}

// PublishCategoryRestored publishes a category.restored event.
func (p *Producer) PublishCategoryRestored(ctx context.Context, id string, actorID string) error {
	return p.publish(ctx, TopicCategoryRestored, id, AggregateTypeCategory, actorID, CategoryRefData{ID: id})
}
