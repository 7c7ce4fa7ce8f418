package tracing

import (
	"context"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const traceparentHeader = "traceparent"

// InjectKafkaHeaders returns the record headers carrying the span context of ctx.
// It returns no headers when ctx carries no valid span.
func InjectKafkaHeaders(ctx context.Context) []kgo.RecordHeader {
	carrier := propagation.MapCarrier{}
	propagation.TraceContext{}.Inject(ctx, carrier)

	traceparent, ok := carrier[traceparentHeader]
	if !ok {
		return nil
	}

	return []kgo.RecordHeader{
		{Key: traceparentHeader, Value: []byte(traceparent)},
	}
}

// ExtractKafkaLinks turns the producer's span context into a link for the consumer span.
func ExtractKafkaLinks(ctx context.Context, headers []kgo.RecordHeader) []trace.Link {
	carrier := propagation.MapCarrier{}
	for _, h := range headers {
		if h.Key == traceparentHeader {
			carrier[traceparentHeader] = string(h.Value)
			break
		}
	}
	if carrier[traceparentHeader] == "" {
		return nil
	}

	producer := trace.SpanContextFromContext(propagation.TraceContext{}.Extract(ctx, carrier))
	if !producer.IsValid() {
		return nil
	}

	return []trace.Link{{
		SpanContext: producer,
		Attributes: []attribute.KeyValue{
			attribute.String("link.type", "async"),
			attribute.String("link.protocol", "kafka"),
		},
	}}
}
