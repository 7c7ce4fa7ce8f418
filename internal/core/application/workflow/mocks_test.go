package workflow_test

import (
	"context"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/fulfillment"

	"github.com/stretchr/testify/mock"
)

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Charge(ctx context.Context, payload fulfillment.Payload) (fulfillment.ChargeOutcome, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(fulfillment.ChargeOutcome), args.Error(1)
}

type MockStatusUpdater struct {
	mock.Mock
}

func (m *MockStatusUpdater) Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (fulfillment.StatusUpdate, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(fulfillment.StatusUpdate), args.Error(1)
}

type MockNotificationPublisher struct {
	mock.Mock
}

func (m *MockNotificationPublisher) Publish(ctx context.Context, notification fulfillment.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}
