package event

import (
	"context"

	"github.com/wilcommerce/catalog/internal/domain"
)

// Kafka topic constants for catalog settings domain events.
const (
	TopicSettingsCreated = "catalog.settings.created"
	TopicSettingsUpdated = "catalog.settings.updated"
)

// SettingsData is the payload for settings.created and settings.updated
// events.
type SettingsData struct {
	ID                    string `json:"id"`
	CategoriesPerPage     int    `json:"categories_per_page"`
	ProductsPerPage       int    `json:"products_per_page"`
	CategoriesViewType    string `json:"categories_view_type"`
	ProductsViewType      string `json:"products_view_type"`
	PricesShown           bool   `json:"prices_shown"`
	ProductReviewsAllowed bool   `json:"product_reviews_allowed"`
	ReviewsPerPage        int    `json:"reviews_per_page"`
}

func settingsData(settings *domain.CatalogSettings) SettingsData {
	return SettingsData{
		ID:                    settings.ID.String(),
		CategoriesPerPage:     settings.CategoriesPerPage,
		ProductsPerPage:       settings.ProductsPerPage,
		CategoriesViewType:    settings.CategoriesViewType,
		ProductsViewType:      settings.ProductsViewType,
		PricesShown:           settings.PricesShown,
		ProductReviewsAllowed: settings.ProductReviewsAllowed,
		ReviewsPerPage:        settings.ReviewsPerPage,
	}
}

// PublishSettingsCreated publishes a settings.created event.
func (p *Producer) PublishSettingsCreated(ctx context.Context, settings *domain.CatalogSettings, actorID string) error {
	return p.publish(ctx, TopicSettingsCreated, settings.ID.String(), AggregateTypeSettings, actorID, settingsData(settings))
}

// PublishSettingsUpdated publishes a settings.updated event.
func (p *Producer) PublishSettingsUpdated(ctx context.Context, settings *domain.CatalogSettings, actorID string) error {
	return p.publish(ctx, TopicSettingsUpdated, settings.ID.String(), AggregateTypeSettings, actorID, settingsData(settings))
}
