package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nargizk/dastarkhan/internal/adapter/logger"
	"github.com/nargizk/dastarkhan/internal/interfaces"
)

// NotificationHandler consumes order lifecycle events and logs them. A real
// deployment would fan these out to SMS/email.
type NotificationHandler struct {
	logger logger.Logger
}

func NewNotificationHandler(lgr logger.Logger) *NotificationHandler {
	return &NotificationHandler{logger: lgr}
}

func (h *NotificationHandler) HandleNotification(ctx context.Context, body []byte) error {
	var msg interfaces.OrderEventMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("notification_decode_failed", "Failed to decode order event", "", nil, err)
		// Drop malformed messages instead of redelivering them forever.
		return nil
	}

	h.logger.Info("notification_received", fmt.Sprintf("Order %s %s", msg.OrderID, msg.Event), "", map[string]interface{}{
		"order_id":     msg.OrderID,
		"customer_id":  msg.CustomerID,
		"event":        string(msg.Event),
		"status":       msg.Status,
		"total_amount": msg.TotalAmount.String(),
	})

	return nil
}
