package ports

import (
	"context"

	"orders/internal/core/domain/model/fulfillment"
)

// NotificationPublisher hands the final order status to an at-least-once channel.
// It returns once the channel accepted the message.
type NotificationPublisher interface {
	Publish(ctx context.Context, notification fulfillment.Notification) error
}

// EmailSender delivers a notification to the customer.
type EmailSender interface {
	Send(ctx context.Context, notification fulfillment.Notification) error
}
