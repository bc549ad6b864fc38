package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Order lifecycle events published to RabbitMQ.

type OrderEventType string

const (
	OrderCreated   OrderEventType = "created"
	OrderPaid      OrderEventType = "paid"
	OrderCancelled OrderEventType = "cancelled"
)

type OrderEventMessage struct {
	Event         OrderEventType  `json:"event"`
	OrderID       string          `json:"order_id"`
	CustomerID    string          `json:"customer_id"`
	RestaurantID  string          `json:"restaurant_id"`
	Status        string          `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Messaging interfaces (Adapter/RabbitMQ)

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, msg OrderEventMessage) error
}

type EventConsumer interface {
	ConsumeOrderEvents(ctx context.Context, handler OrderEventHandler) error
}

type OrderEventHandler func(ctx context.Context, body []byte) error
