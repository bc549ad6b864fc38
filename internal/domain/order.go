package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusPaid      Status = "Paid"
	StatusSent      Status = "Sent"
	StatusCancelled Status = "Cancelled"
)

type PaymentMethod string

const (
	PaymentOnline         PaymentMethod = "Online"
	PaymentCashOnDelivery PaymentMethod = "CashOnDelivery"
)

// OrderItem is immutable once created: the unit price is copied from the food
// at checkout time and never re-read, so later price changes cannot rewrite
// order history.
type OrderItem struct {
	OrderID   string
	FoodID    string
	FoodName  string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Total returns unit price × quantity.
func (i OrderItem) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the durable result of a checkout. BaseAmount is computed once at
// creation; TotalAmount is always derived from BaseAmount and DiscountAmount.
type Order struct {
	ID             string
	RestaurantID   string
	CustomerID     string
	OrderDate      time.Time
	DeliveryDate   time.Time
	Status         Status
	PaymentMethod  PaymentMethod
	Items          []OrderItem
	BaseAmount     decimal.Decimal
	DiscountCode   *string
	DiscountAmount decimal.Decimal
}

// NewOrder builds a Pending order from frozen order items and applies the
// creation-time business rules.
func NewOrder(restaurantID, customerID string, items []OrderItem, deliveryDate time.Time, method PaymentMethod) (*Order, error) {
	order := &Order{
		ID:             uuid.NewString(),
		RestaurantID:   restaurantID,
		CustomerID:     customerID,
		OrderDate:      time.Now(),
		DeliveryDate:   deliveryDate,
		Status:         StatusPending,
		PaymentMethod:  method,
		Items:          items,
		BaseAmount:     decimal.Zero,
		DiscountAmount: decimal.Zero,
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		order.BaseAmount = order.BaseAmount.Add(order.Items[i].Total())
	}

	return order, nil
}

// Validate applies creation-time business rules.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", ErrInvalidArgument)
	}

	if o.CustomerID == "" {
		return fmt.Errorf("%w: customer id is required", ErrInvalidArgument)
	}

	if o.PaymentMethod != PaymentOnline && o.PaymentMethod != PaymentCashOnDelivery {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidArgument, o.PaymentMethod)
	}

	// Delivery on the order day itself is allowed, earlier days are not.
	oy, om, od := o.OrderDate.Date()
	orderDay := time.Date(oy, om, od, 0, 0, 0, 0, o.OrderDate.Location())
	if o.DeliveryDate.Before(orderDay) {
		return fmt.Errorf("%w: delivery date is before order date", ErrInvalidArgument)
	}

	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item quantity must be positive", ErrInvalidArgument)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: item price must not be negative", ErrInvalidArgument)
		}
	}

	return nil
}

// ApplyDiscount attaches a validated code and its computed amount.
func (o *Order) ApplyDiscount(code string, amount decimal.Decimal) {
	o.DiscountCode = &code
	o.DiscountAmount = amount
}

// TotalAmount is always recomputed from the base and discount amounts, never
// stored independently.
func (o *Order) TotalAmount() decimal.Decimal {
	return o.BaseAmount.Sub(o.DiscountAmount)
}

// IsTerminal reports whether the order can no longer change state.
func (o *Order) IsTerminal() bool {
	return o.Status == StatusSent || o.Status == StatusCancelled
}

// TransitionTo moves the order to a new status if the transition is allowed.
func (o *Order) TransitionTo(newStatus Status) error {
	if !o.CanTransitionTo(newStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, o.Status, newStatus)
	}
	o.Status = newStatus
	return nil
}

// CanTransitionTo checks the forward transitions Pending→Paid→Sent plus
// cancellation from any non-terminal state.
func (o *Order) CanTransitionTo(newStatus Status) bool {
	validTransitions := map[Status][]Status{
		StatusPending:   {StatusPaid, StatusCancelled},
		StatusPaid:      {StatusSent, StatusCancelled},
		StatusSent:      {},
		StatusCancelled: {},
	}

	for _, s := range validTransitions[o.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}
