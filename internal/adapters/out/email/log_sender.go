// Package email delivers customer notifications.
package email

import (
	"context"
	"fmt"
	"log/slog"

	"orders/internal/core/domain/model/fulfillment"
	"orders/internal/pkg/errs"
)

// LogSender writes the email it would send to the log.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger.With("component", "email-sender")}
}

func (s *LogSender) Send(ctx context.Context, notification fulfillment.Notification) error {
	if notification.Email == "" {
		return errs.NewValueIsRequiredError("email")
	}

	s.logger.InfoContext(ctx, "email sent",
		"to", notification.Email,
		"subject", Subject(notification),
		"tenant_id", notification.TenantID,
		"total", notification.Total,
	)
	return nil
}

// Subject is the email subject line for a notification.
func Subject(n fulfillment.Notification) string {
	return fmt.Sprintf("Order %s is %s", n.OrderID, n.Status)
}
