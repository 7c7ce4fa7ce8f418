// Package kafka publishes order notifications to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orders/internal/core/domain/model/fulfillment"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/tracing"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const clientID = "orders-service"

// NotificationPublisher writes one record per notification, keyed by order id
// so every status of an order lands on the same partition.
type NotificationPublisher struct {
	client *kgo.Client
	admin  *kadm.Client
	topic  string
	logger *slog.Logger
}

func NewNotificationPublisher(brokers []string, topic string, logger *slog.Logger) (*NotificationPublisher, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("KAFKA_HOST")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("KAFKA_NOTIFICATIONS_TOPIC")
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProduceRequestTimeout(10*time.Second),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ClientID(clientID),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &NotificationPublisher{
		client: client,
		admin:  kadm.NewClient(client),
		topic:  topic,
		logger: logger.With("component", "notification-publisher"),
	}, nil
}

// EnsureTopic creates the notifications topic when the cluster does not have it.
func (p *NotificationPublisher) EnsureTopic(ctx context.Context) error {
	topics, err := p.admin.ListTopics(ctx)
	if err != nil {
		return fmt.Errorf("list topics: %w", err)
	}
	if topics.Has(p.topic) {
		return nil
	}

	resp, err := p.admin.CreateTopic(ctx, 1, 1, nil, p.topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", p.topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", p.topic, resp.Err)
	}

	p.logger.InfoContext(ctx, "notifications topic created", "topic", p.topic)
	return nil
}

// Publish blocks until the broker acknowledged the record.
func (p *NotificationPublisher) Publish(ctx context.Context, notification fulfillment.Notification) error {
	ctx, span := tracing.Start(ctx, "kafka.Publish", notification.TenantID+"/"+notification.OrderID,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(attribute.String("messaging.destination.name", p.topic)),
	)
	defer span.End()

	record, err := NewRecord(ctx, p.topic, notification)
	if err != nil {
		tracing.Fail(span, err)
		return err
	}

	if err = p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		tracing.Fail(span, err)
		return fmt.Errorf("produce notification for order %s: %w", notification.OrderID, err)
	}

	p.logger.InfoContext(ctx, "notification published",
		"topic", p.topic,
		"tenant_id", notification.TenantID,
		"order_id", notification.OrderID,
		"status", notification.Status,
	)
	return nil
}

func (p *NotificationPublisher) Close() {
	p.client.Close()
}

// NewRecord encodes a notification as a Kafka record carrying the trace context of ctx.
func NewRecord(ctx context.Context, topic string, notification fulfillment.Notification) (*kgo.Record, error) {
	value, err := json.Marshal(notification)
	if err != nil {
		return nil, fmt.Errorf("encode notification: %w", err)
	}

	return &kgo.Record{
		Topic:   topic,
		Key:     []byte(notification.OrderID),
		Value:   value,
		Headers: tracing.InjectKafkaHeaders(ctx),
	}, nil
}
