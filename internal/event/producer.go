package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/wilcommerce/catalog/pkg/kafka"
)

// Aggregate type tags carried on every event envelope.
const (
	AggregateTypeBrand     = "brand"
	AggregateTypeCategory  = "category"
	AggregateTypeAttribute = "custom_attribute"
	AggregateTypeProduct   = "product"
	AggregateTypeSettings  = "catalog_settings"
)

// Source identifier for events originating from the catalog service.
const SourceCatalogService = "catalog-service"

// Producer publishes catalog domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the catalog service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// publish wraps the payload in the standard envelope and writes it to the
// topic. The actor id, when present, records the user the change was made
// on behalf of.
func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType, actorID string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if actorID != "" {
		event.WithActor(actorID)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)

	return nil
}
