package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/nargizk/dastarkhan/internal/adapter/logger"
	"github.com/nargizk/dastarkhan/internal/domain"
	"github.com/nargizk/dastarkhan/internal/interfaces"
)

// Service is the checkout engine: cart → durable order with stock reservation
// and one-time discount redemption, plus the payment and cancellation
// transitions that follow.
//
// A checkout moves Draft → Reserved → Persisted. Any failure before Persisted
// compensates everything already done: reserved stock is restored and a
// redeemed code is released, so a failed checkout leaves no trace.
type Service struct {
	orders    interfaces.OrderRepository
	catalog   interfaces.CatalogService
	discounts interfaces.DiscountService
	loyalty   interfaces.LoyaltyService
	publisher interfaces.EventPublisher
	logger    logger.Logger

	trackingURL string
}

func NewService(
	orders interfaces.OrderRepository,
	catalog interfaces.CatalogService,
	discounts interfaces.DiscountService,
	loyalty interfaces.LoyaltyService,
	publisher interfaces.EventPublisher,
	lgr logger.Logger,
	trackingURL string,
) *Service {
	return &Service{
		orders:      orders,
		catalog:     catalog,
		discounts:   discounts,
		loyalty:     loyalty,
		publisher:   publisher,
		logger:      lgr,
		trackingURL: trackingURL,
	}
}

// Checkout turns the cart into a Pending order.
//
// Ordering matters: the discount is validated early but redeemed only after
// every reservation succeeded, so a checkout doomed by stock never burns a
// code. Reservation failures roll back all prior reservations of this
// checkout before the error is returned.
func (s *Service) Checkout(ctx context.Context, cart *domain.Cart, cmd interfaces.CheckoutCommand) (*domain.Order, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	// Freeze unit prices from the cart's food snapshots.
	items := make([]domain.OrderItem, len(cart.Items))
	for i, entry := range cart.Items {
		items[i] = domain.OrderItem{
			FoodID:    entry.FoodID,
			FoodName:  entry.FoodName,
			Quantity:  entry.Quantity,
			UnitPrice: entry.SellingPrice,
		}
	}

	order, err := domain.NewOrder(cart.Items[0].RestaurantID, cmd.CustomerID, items, cmd.DeliveryDate, cmd.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if cmd.DiscountCode != nil {
		dc, err := s.discounts.Validate(ctx, *cmd.DiscountCode, cmd.CustomerID)
		if err != nil {
			return nil, err
		}
		order.ApplyDiscount(dc.Code, dc.AmountFor(order.BaseAmount))
	}

	// Reserve stock in the cart's iteration order.
	reserved := make([]domain.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		if err := s.catalog.ReserveStock(ctx, item.FoodID, item.Quantity); err != nil {
			s.rollbackReservations(ctx, reserved)
			return nil, fmt.Errorf("failed to reserve %s: %w", item.FoodID, err)
		}
		reserved = append(reserved, item)
	}

	// Redemption is deliberately the last step before persistence.
	if order.DiscountCode != nil {
		if err := s.discounts.Redeem(ctx, *order.DiscountCode); err != nil {
			s.rollbackReservations(ctx, reserved)
			return nil, err
		}
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.rollbackReservations(ctx, reserved)
		if order.DiscountCode != nil {
			if relErr := s.discounts.Release(ctx, *order.DiscountCode); relErr != nil {
				s.logger.Error("discount_release_failed", "Failed to release discount code after persist failure", "", map[string]interface{}{
					"code": *order.DiscountCode,
				}, relErr)
			}
		}
		s.logger.Error("order_persist_failed", "Failed to persist order", "", nil, err)
		return nil, err
	}

	cart.Clear()

	s.logger.Info("order_created", "Checkout completed", "", map[string]interface{}{
		"order_id":     order.ID,
		"customer_id":  order.CustomerID,
		"total_amount": order.TotalAmount().String(),
	})

	s.publishEvent(ctx, interfaces.OrderCreated, order)

	return order, nil
}

// rollbackReservations restores stock for every already-decremented item of a
// failed checkout. Individual restore failures are logged and skipped so the
// remaining items still get their stock back.
func (s *Service) rollbackReservations(ctx context.Context, reserved []domain.OrderItem) {
	for _, item := range reserved {
		if err := s.catalog.RestoreStock(ctx, item.FoodID, item.Quantity); err != nil {
			s.logger.Error("reservation_rollback_failed", "Failed to restore reserved stock", "", map[string]interface{}{
				"food_id":  item.FoodID,
				"quantity": item.Quantity,
			}, err)
		}
	}
}

// ProcessPayment transitions Pending→Paid and accrues loyalty points from the
// pre-discount base amount. Paying an already-Paid order is an idempotent
// no-op: it is logged but never re-grants points.
func (s *Service) ProcessPayment(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == domain.StatusPaid {
		s.logger.Warn("payment_repeated", "Order is already paid", "", map[string]interface{}{
			"order_id": orderID,
		})
		return order, nil
	}

	if err := order.TransitionTo(domain.StatusPaid); err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(ctx, orderID, domain.StatusPaid); err != nil {
		return nil, err
	}

	points := s.loyalty.PointsForAmount(order.BaseAmount)
	if points > 0 {
		if err := s.loyalty.AddPoints(ctx, order.CustomerID, points); err != nil {
			// Payment already succeeded; a lost accrual must not fail it.
			s.logger.Error("points_accrual_failed", "Failed to accrue loyalty points", "", map[string]interface{}{
				"order_id":    orderID,
				"customer_id": order.CustomerID,
				"points":      points,
			}, err)
		}
	}

	s.logger.Info("order_paid", "Payment confirmed", "", map[string]interface{}{
		"order_id": orderID,
		"points":   points,
	})

	s.publishEvent(ctx, interfaces.OrderPaid, order)

	return order, nil
}

// CancelOrder restores stock for every item and marks the order Cancelled.
// Terminal orders (Sent, Cancelled) are rejected. A food deleted since the
// checkout cannot have its stock restored; that is logged as a warning and
// the remaining restorations still run.
func (s *Service) CancelOrder(ctx context.Context, orderID string) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if len(order.Items) == 0 {
		return fmt.Errorf("order %s has no items: %w", orderID, domain.ErrNotFound)
	}

	if !order.CanTransitionTo(domain.StatusCancelled) {
		return fmt.Errorf("%w: cannot cancel %s order", domain.ErrInvalidStatusTransition, order.Status)
	}

	for _, item := range order.Items {
		if err := s.catalog.RestoreStock(ctx, item.FoodID, item.Quantity); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.logger.Warn("stock_restore_skipped", "Food no longer exists, stock not restored", "", map[string]interface{}{
					"order_id": orderID,
					"food_id":  item.FoodID,
					"quantity": item.Quantity,
				})
				continue
			}
			s.logger.Error("stock_restore_failed", "Failed to restore stock during cancellation", "", map[string]interface{}{
				"order_id": orderID,
				"food_id":  item.FoodID,
			}, err)
		}
	}

	if err := s.orders.UpdateStatus(ctx, orderID, domain.StatusCancelled); err != nil {
		return err
	}
	order.Status = domain.StatusCancelled

	s.logger.Info("order_cancelled", "Order cancelled, stock restored", "", map[string]interface{}{
		"order_id": orderID,
	})

	s.publishEvent(ctx, interfaces.OrderCancelled, order)

	return nil
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orders.FindByID(ctx, orderID)
}

func (s *Service) ListCustomerOrders(ctx context.Context, customerID string) ([]*domain.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

// OrderQR renders a PNG QR code pointing at the order's tracking URL.
func (s *Service) OrderQR(ctx context.Context, orderID string) ([]byte, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/orders/%s", s.trackingURL, order.ID)
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}

// publishEvent reports an order lifecycle change. The order is already
// durable at this point, so a publish failure is logged, not returned.
func (s *Service) publishEvent(ctx context.Context, event interfaces.OrderEventType, order *domain.Order) {
	msg := interfaces.OrderEventMessage{
		Event:         event,
		OrderID:       order.ID,
		CustomerID:    order.CustomerID,
		RestaurantID:  order.RestaurantID,
		Status:        string(order.Status),
		TotalAmount:   order.TotalAmount(),
		PaymentMethod: string(order.PaymentMethod),
		Timestamp:     time.Now().UTC(),
	}

	if err := s.publisher.PublishOrderEvent(ctx, msg); err != nil {
		s.logger.Error("event_publish_failed", "Failed to publish order event", "", map[string]interface{}{
			"order_id": order.ID,
			"event":    string(event),
		}, err)
	}
}
