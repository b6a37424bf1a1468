package event

import (
	"context"

	"github.com/wilcommerce/catalog/internal/domain"
)

// Kafka topic constants for custom attribute domain events.
const (
	TopicAttributeCreated  = "catalog.custom_attribute.created"
	TopicAttributeUpdated  = "catalog.custom_attribute.updated"
	TopicAttributeDeleted  = "catalog.custom_attribute.deleted"
	TopicAttributeRestored = "catalog.custom_attribute.restored"
)

// AttributeData is the payload for custom_attribute.created and
// custom_attribute.updated events.
type AttributeData struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	DataType      string   `json:"data_type"`
	Description   string   `json:"description,omitempty"`
	UnitOfMeasure string   `json:"unit_of_measure,omitempty"`
	Values        []string `json:"values,omitempty"`
}

// AttributeRefData is the payload for custom_attribute.deleted and
// custom_attribute.restored events.
type AttributeRefData struct {
	ID string `json:"id"`
}

func attributeData(attribute *domain.CustomAttribute) AttributeData {
	return AttributeData{
		ID:            attribute.ID.String(),
		Name:          attribute.Name,
		DataType:      attribute.DataType,
		Description:   attribute.Description,
		UnitOfMeasure: attribute.UnitOfMeasure,
		Values:        attribute.Values,
	}
}

// PublishAttributeCreated publishes a custom_attribute.created event.
func (p *Producer) PublishAttributeCreated(ctx context.Context, attribute *domain.CustomAttribute, actorID string) error {
	return p.publish(ctx, TopicAttributeCreated, attribute.ID.String(), AggregateTypeAttribute, actorID, attributeData(attribute))
}

// PublishAttributeUpdated publishes a custom_attribute.updated event.
func (p *Producer) PublishAttributeUpdated(ctx context.Context, attribute *domain.CustomAttribute, actorID string) error {
	return p.publish(ctx, TopicAttributeUpdated, attribute.ID.String(), AggregateTypeAttribute, actorID, attributeData(attribute))
}

// PublishAttributeDeleted publishes a custom_attribute.deleted event.
func (p *Producer) PublishAttributeDeleted(ctx context.Context, id string, actorID string) error {
	return p.publish(ctx, TopicAttributeDeleted, id, AggregateTypeAttribute, actorID, AttributeRefData{ID: id})
}

// PublishAttributeRestored publishes a custom_attribute.restored event.
func (p *Producer) PublishAttributeRestored(ctx context.Context, id string, actorID string) error {
	return p.publish(ctx, TopicAttributeRestored, id, AggregateTypeAttribute, actorID, AttributeRefData{ID: id})
}
