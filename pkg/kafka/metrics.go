package kafka

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Publish metrics, labelled by topic so dashboards can split catalog event
// streams (brands, categories, products, settings) apart.
var (
	// ProducerMessagesPublished counts events that reached the broker.
	ProducerMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_producer_messages_published_total",
			Help: "Catalog events successfully written to Kafka",
		},
		[]string{"topic"},
	)

	// ProducerPublishErrors counts WriteMessages failures.
	ProducerPublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_producer_publish_errors_total",
			Help: "Catalog events that failed to publish",
		},
		[]string{"topic"},
	)

	// ProducerPublishDuration observes end-to-end publish latency,
	// including broker acks.
	ProducerPublishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kafka_producer_publish_duration_seconds",
			Help:    "Time spent publishing a catalog event",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"topic"},
	)
)
