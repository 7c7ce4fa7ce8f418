// Package kafka consumes order notifications and hands them to the email sender.
//
// Delivery is at least once: a record may arrive again after a rebalance or a
// restart. The subscriber remembers recently delivered (order, status) pairs
// and drops repeats.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orders/internal/core/domain/model/fulfillment"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/tracing"

	"github.com/cenkalti/backoff/v4"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel/trace"
)

const (
	dedupCapacity   = 10_000
	sendAttempts    = 3
	sendRetryPeriod = 500 * time.Millisecond
)

var ErrMalformedNotification = errors.New("malformed notification record")

type NotificationSubscriber struct {
	client *kgo.Client
	sender ports.EmailSender
	seen   *lru.Cache[string, struct{}]
	logger *slog.Logger
}

func NewNotificationSubscriber(
	brokers []string,
	group string,
	topic string,
	sender ports.EmailSender,
	logger *slog.Logger,
) (*NotificationSubscriber, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("KAFKA_HOST")
	}
	if group == "" {
		return nil, errs.NewValueIsRequiredError("KAFKA_CONSUMER_GROUP")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("KAFKA_NOTIFICATIONS_TOPIC")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumerGroup(group),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
		kgo.DisableAutoCommit(),
		kgo.BlockRebalanceOnPoll(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer: %w", err)
	}

	sub, err := newSubscriber(client, sender, logger, dedupCapacity)
	if err != nil {
		client.Close()
		return nil, err
	}
	return sub, nil
}

// newSubscriber remembers the last capacity delivered (order, status) pairs.
func newSubscriber(client *kgo.Client, sender ports.EmailSender, logger *slog.Logger, capacity int) (*NotificationSubscriber, error) {
	if logger == nil {
		logger = slog.Default()
	}
	seen, err := lru.New[string, struct{}](capacity)
	if err != nil {
		return nil, errs.NewValueIsOutOfRangeErrorWithCause("dedupCapacity", capacity, 1, "unbounded", err)
	}
	return &NotificationSubscriber{
		client: client,
		sender: sender,
		seen:   seen,
		logger: logger.With("component", "notification-subscriber"),
	}, nil
}

// Run polls until ctx is canceled or the client is closed.
// Offsets are committed after each polled batch was handled.
func (s *NotificationSubscriber) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "notification subscriber started")

	for {
		fetches := s.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			s.logger.InfoContext(context.WithoutCancel(ctx), "notification subscriber stopped")
			return nil
		}

		fetches.EachError(func(topic string, partition int32, err error) {
			s.logger.ErrorContext(ctx, "fetch failed", "topic", topic, "partition", partition, "error", err)
		})

		iter := fetches.RecordIter()
		for !iter.Done() {
			record := iter.Next()
			if err := s.Handle(ctx, record); err != nil {
				s.logger.ErrorContext(ctx, "notification dropped",
					"topic", record.Topic,
					"partition", record.Partition,
					"offset", record.Offset,
					"error", err,
				)
			}
		}

		if err := s.client.CommitUncommittedOffsets(ctx); err != nil {
			s.logger.ErrorContext(ctx, "commit offsets failed", "error", err)
		}
		s.client.AllowRebalance()
	}
}

// Handle delivers one record to the email sender unless it was delivered already.
func (s *NotificationSubscriber) Handle(ctx context.Context, record *kgo.Record) error {
	links := tracing.ExtractKafkaLinks(ctx, record.Headers)
	ctx, span := tracing.Start(ctx, "kafka.Consume", string(record.Key),
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithLinks(links...),
	)
	defer span.End()

	notification, err := decode(record.Value)
	if err != nil {
		tracing.Fail(span, err)
		return err
	}

	key := notification.DedupKey()
	if s.seen.Contains(key) {
		s.logger.DebugContext(ctx, "duplicate notification skipped", "dedup_key", key)
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(sendRetryPeriod), sendAttempts-1),
		ctx,
	)
	if err = backoff.Retry(func() error {
		return s.sender.Send(ctx, notification)
	}, policy); err != nil {
		tracing.Fail(span, err)
		return fmt.Errorf("send notification %s: %w", key, err)
	}

	s.seen.Add(key, struct{}{})
	return nil
}

func (s *NotificationSubscriber) Close() {
	s.client.Close()
}

func decode(value []byte) (fulfillment.Notification, error) {
	var n fulfillment.Notification
	if err := json.Unmarshal(value, &n); err != nil {
		return fulfillment.Notification{}, fmt.Errorf("%w: %w", ErrMalformedNotification, err)
	}
	if n.TenantID == "" || n.OrderID == "" || n.Status == "" {
		return fulfillment.Notification{}, fmt.Errorf("%w: missing key or status", ErrMalformedNotification)
	}
	return n, nil
}
