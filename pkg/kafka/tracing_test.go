package kafka

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestHeaderCarrier_GetSet(t *testing.T) {
	headers := []kafka.Header{
		{Key: "event_type", Value: []byte("catalog.brand.created")},
	}
	carrier := NewHeaderCarrier(&headers)

	assert.Equal(t, "catalog.brand.created", carrier.Get("event_type"))
	assert.Empty(t, carrier.Get("missing"))

	carrier.Set("correlation_id", "corr-1")
	assert.Equal(t, "corr-1", carrier.Get("correlation_id"))

	carrier.Set("event_type", "catalog.brand.updated")
	assert.Equal(t, "catalog.brand.updated", carrier.Get("event_type"))
	assert.Len(t, headers, 2, "overwrite must not append a duplicate header")
}

func TestHeaderCarrier_Keys(t *testing.T) {
	headers := []kafka.Header{
		{Key: "a", Value: []byte("1")},
		{Key: "b", Value: []byte("2")},
		{Key: "c", Value: []byte("3")},
	}
	carrier := NewHeaderCarrier(&headers)

	assert.ElementsMatch(t, []string{"a", "b", "c"}, carrier.Keys())
}

func TestHeaderCarrier_Empty(t *testing.T) {
	headers := []kafka.Header{}
	carrier := NewHeaderCarrier(&headers)

	assert.Empty(t, carrier.Keys())
	assert.Empty(t, carrier.Get("anything"))
}

func TestHeaderCarrier_PropagationRoundTrip(t *testing.T) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(tracetest.NewInMemoryExporter()))
	t.Cleanup(func() { tp.Shutdown(context.Background()) }) //nolint:errcheck

	propagator := propagation.TraceContext{}

	ctx, span := tp.Tracer("test").Start(context.Background(), "publish")
	defer span.End()

	headers := []kafka.Header{}
	carrier := NewHeaderCarrier(&headers)
	propagator.Inject(ctx, carrier)

	require.NotEmpty(t, carrier.Get("traceparent"))

	extracted := propagator.Extract(context.Background(), carrier)
	assert.Equal(t,
		span.SpanContext().TraceID(),
		trace.SpanContextFromContext(extracted).TraceID(),
	)
}
