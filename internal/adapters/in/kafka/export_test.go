package kafka

import (
	"log/slog"

	"orders/internal/core/ports"
)

func NewSubscriberWithoutClient(sender ports.EmailSender, logger *slog.Logger) *NotificationSubscriber {
	sub, err := newSubscriber(nil, sender, logger, dedupCapacity)
	if err != nil {
		panic(err)
	}
	return sub
}

func NewSubscriberWithDedupCapacity(sender ports.EmailSender, capacity int) (*NotificationSubscriber, error) {
	return newSubscriber(nil, sender, nil, capacity)
}
