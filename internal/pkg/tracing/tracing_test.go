package tracing_test

import (
	"errors"
	"testing"

	"orders/internal/pkg/tracing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartAndFail(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	_, span := tracing.Start(t.Context(), "charge", "tenant-1/order-1")
	tracing.Fail(span, errors.New("gateway unavailable"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "charge", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "gateway unavailable", ended[0].Status().Description)
	assert.Contains(t, ended[0].Attributes(), attribute.String("order.key", "tenant-1/order-1"))
	require.Len(t, ended[0].Events(), 1)
}

func TestInit_WithoutExporter(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	shutdown, err := tracing.Init(t.Context(), tracing.Config{
		SampleRate:  1,
		ServiceName: "orders",
		Environment: "test",
	})

	require.NoError(t, err)
	_, span := tracing.Start(t.Context(), "submit", "tenant-1/order-1")
	assert.True(t, span.SpanContext().IsValid())
	span.End()
	assert.NoError(t, shutdown(t.Context()))
}
