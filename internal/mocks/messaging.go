package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nargizk/dastarkhan/internal/interfaces"
)

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishOrderEvent(ctx context.Context, msg interfaces.OrderEventMessage) error {
	return m.Called(ctx, msg).Error(0)
}
