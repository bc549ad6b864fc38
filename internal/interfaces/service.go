package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nargizk/dastarkhan/internal/domain"
)

// Service interfaces (Business Logic)

// CheckoutCommand carries everything the engine needs besides the cart itself.
type CheckoutCommand struct {
	CustomerID    string
	DeliveryDate  time.Time
	PaymentMethod domain.PaymentMethod
	DiscountCode  *string
}

type CheckoutService interface {
	Checkout(ctx context.Context, cart *domain.Cart, cmd CheckoutCommand) (*domain.Order, error)
	ProcessPayment(ctx context.Context, orderID string) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID string) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListCustomerOrders(ctx context.Context, customerID string) ([]*domain.Order, error)
	OrderQR(ctx context.Context, orderID string) ([]byte, error)
}

type CatalogService interface {
	GetFood(ctx context.Context, foodID string) (*domain.Food, error)
	ListFoods(ctx context.Context) ([]*domain.Food, error)
	MenuForDate(ctx context.Context, day time.Time) ([]*domain.Food, error)
	Search(ctx context.Context, query string, day *time.Time) ([]*domain.Food, error)
	CreateFood(ctx context.Context, food *domain.Food) error
	UpdateFood(ctx context.Context, food *domain.Food) error
	DeleteFood(ctx context.Context, foodID string) error
	ReserveStock(ctx context.Context, foodID string, quantity int) error
	RestoreStock(ctx context.Context, foodID string, quantity int) error
}

type CartService interface {
	AddItem(ctx context.Context, customerID, foodID string, quantity int) (*domain.Cart, error)
	UpdateItemQuantity(ctx context.Context, customerID, foodID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, customerID, foodID string) (*domain.Cart, error)
	View(ctx context.Context, customerID string) (*domain.Cart, error)
	Clear(ctx context.Context, customerID string) error
}

type DiscountService interface {
	Validate(ctx context.Context, code, customerID string) (*domain.DiscountCode, error)
	Redeem(ctx context.Context, code string) error
	Release(ctx context.Context, code string) error
	CreateForCustomer(ctx context.Context, customerID string, percentage decimal.Decimal) (*domain.DiscountCode, error)
	GenerateFromPoints(ctx context.Context, customerID string, pointsCost int) (*domain.DiscountCode, error)
}

type LoyaltyService interface {
	AddPoints(ctx context.Context, customerID string, points int) error
	DeductPoints(ctx context.Context, customerID string, points int) error
	Balance(ctx context.Context, customerID string) (int, error)
	PointsForAmount(amount decimal.Decimal) int
}

// SalesReport aggregates sales and profit over a date range.
type SalesReport struct {
	StartDate   time.Time
	EndDate     time.Time
	OrderCount  int
	TotalSales  decimal.Decimal
	TotalProfit decimal.Decimal
}

type ReportService interface {
	SalesBetween(ctx context.Context, start, end time.Time) (*SalesReport, error)
}
