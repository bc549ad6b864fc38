package interfaces

import (
	"context"
	"time"

	"github.com/nargizk/dastarkhan/internal/domain"
)

// Repository interfaces (Adapter/Postgres)

type FoodRepository interface {
	Create(ctx context.Context, food *domain.Food) error
	FindByID(ctx context.Context, foodID string) (*domain.Food, error)
	ListAll(ctx context.Context) ([]*domain.Food, error)
	ListForDate(ctx context.Context, day time.Time) ([]*domain.Food, error)
	Update(ctx context.Context, food *domain.Food) error
	Delete(ctx context.Context, foodID string) error

	// ReserveStock decrements stock by quantity against the authoritative
	// current value; it fails with domain.ErrInsufficientStock when the row
	// holds less than quantity and domain.ErrNotFound for an unknown id.
	ReserveStock(ctx context.Context, foodID string, quantity int) error

	// RestoreStock increments stock unconditionally. An unknown id returns
	// domain.ErrNotFound so the caller can log and continue.
	RestoreStock(ctx context.Context, foodID string, quantity int) error
}

type OrderRepository interface {
	// Create persists the order and its items atomically.
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, orderID string) (*domain.Order, error)
	GetItems(ctx context.Context, orderID string) ([]domain.OrderItem, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.Status) error
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]*domain.Order, error)
}

type DiscountRepository interface {
	Create(ctx context.Context, code *domain.DiscountCode) error
	FindByCode(ctx context.Context, code string) (*domain.DiscountCode, error)

	// Redeem flips is_used to true; it fails with domain.ErrCodeAlreadyUsed
	// when the flag was already set.
	Redeem(ctx context.Context, code string) error

	// Release flips is_used back to false. Compensating action for a checkout
	// that redeemed a code and then failed to persist.
	Release(ctx context.Context, code string) error
}

type LoyaltyRepository interface {
	AddPoints(ctx context.Context, customerID string, points int) error

	// DeductPoints fails with domain.ErrInsufficientPoints when the balance
	// is lower than points.
	DeductPoints(ctx context.Context, customerID string, points int) error

	// Balance returns 0 for an unknown customer, not an error.
	Balance(ctx context.Context, customerID string) (int, error)
}

// CartStore parks a customer's session cart between requests (Adapter/Redis).
type CartStore interface {
	Get(ctx context.Context, customerID string) (*domain.Cart, error)
	Save(ctx context.Context, customerID string, cart *domain.Cart) error
	Delete(ctx context.Context, customerID string) error
}
