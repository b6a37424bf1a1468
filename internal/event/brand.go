package event

import (
	"context"

	"github.com/wilcommerce/catalog/internal/domain"
)

// Kafka topic constants for brand domain events.
const (
	TopicBrandCreated  = "catalog.brand.created"
	TopicBrandUpdated  = "catalog.brand.updated"
	TopicBrandDeleted  = "catalog.brand.deleted"
	TopicBrandRestored = "catalog.brand.restored"
)

// BrandData is the payload for brand.created and brand.updated events.
type BrandData struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// BrandRefData is the payload for brand.deleted and brand.restored events.
type BrandRefData struct {
	ID string `json:"id"`
}

func brandData(brand *domain.Brand) BrandData {
	return BrandData{
		ID:          brand.ID.String(),
		Name:        brand.Name,
		URL:         brand.URL,
		Description: brand.Description,
	}
}

// PublishBrandCreated publishes a brand.created event.
func (p *Producer) PublishBrandCreated(ctx context.Context, brand *domain.Brand, actorID string) error {
	return p.publish(ctx, TopicBrandCreated, brand.ID.String(), AggregateTypeBrand, actorID, brandData(brand))
}

// PublishBrandUpdated publishes a brand.updated event.
func (p *Producer) PublishBrandUpdated(ctx context.Context, brand *domain.Brand, actorID string) error {
	return p.publish(ctx, TopicBrandUpdated, brand.ID.String(), AggregateTypeBrand, actorID, brandData(brand))
}

// PublishBrandDeleted publishes a brand.deleted event.
func (p *Producer) PublishBrandDeleted(ctx context.Context, id string, actorID string) error {
	return p.publish(ctx, TopicBrandDeleted, id, AggregateTypeBrand, actorID, BrandRefData{ID: id})
}

// PublishBrandRestored publishes a brand.restored event.
func (p *Producer) PublishBrandRestored(ctx context.Context, id string, actorID string) error {
	return p.publish(ctx, TopicBrandRestored, id, AggregateTypeBrand, actorID, BrandRefData{ID: id})
}
