package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nargizk/dastarkhan/internal/adapter/logger"
	"github.com/nargizk/dastarkhan/internal/domain"
	"github.com/nargizk/dastarkhan/internal/interfaces"
	"github.com/nargizk/dastarkhan/internal/mocks"
)

type engineMocks struct {
	orders    *mocks.OrderRepository
	catalog   *mocks.CatalogService
	discounts *mocks.DiscountService
	loyalty   *mocks.LoyaltyService
	publisher *mocks.EventPublisher
}

func newEngine(t *testing.T) (*Service, *engineMocks) {
	t.Helper()
	m := &engineMocks{
		orders:    new(mocks.OrderRepository),
		catalog:   new(mocks.CatalogService),
		discounts: new(mocks.DiscountService),
		loyalty:   new(mocks.LoyaltyService),
		publisher: new(mocks.EventPublisher),
	}
	svc := NewService(m.orders, m.catalog, m.discounts, m.loyalty, m.publisher, logger.New("test"), "http://localhost:3000")
	return svc, m
}

func cartWith(t *testing.T, foods ...*domain.Food) *domain.Cart {
	t.Helper()
	cart := domain.NewCart()
	for _, food := range foods {
		assert.NoError(t, cart.AddItem(food, 2))
	}
	return cart
}

func food(id string, price int64, stock int) *domain.Food {
	return &domain.Food{
		ID:           id,
		RestaurantID: "rest-1",
		Name:         "food " + id,
		SellingPrice: decimal.NewFromInt(price),
		Stock:        stock,
	}
}

func checkoutCmd(code *string) interfaces.CheckoutCommand {
	return interfaces.CheckoutCommand{
		CustomerID:    "cust-1",
		DeliveryDate:  time.Now().AddDate(0, 0, 1),
		PaymentMethod: domain.PaymentOnline,
		DiscountCode:  code,
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, m := newEngine(t)

	_, err := svc.Checkout(context.Background(), domain.NewCart(), checkoutCmd(nil))
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = svc.Checkout(context.Background(), nil, checkoutCmd(nil))
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	// no state was touched
	m.catalog.AssertNotCalled(t, "ReserveStock", mock.Anything, mock.Anything, mock.Anything)
	m.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckout_Success(t *testing.T) {
	svc, m := newEngine(t)
	cart := cartWith(t, food("f1", 40000, 5), food("f2", 10000, 5))

	m.catalog.On("ReserveStock", mock.Anything, "f1", 2).Return(nil).Once()
	m.catalog.On("ReserveStock", mock.Anything, "f2", 2).Return(nil).Once()
	m.orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
	m.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil).Once()

	order, err := svc.Checkout(context.Background(), cart, checkoutCmd(nil))

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.True(t, order.BaseAmount.Equal(decimal.NewFromInt(100000)))
	assert.True(t, order.TotalAmount().Equal(decimal.NewFromInt(100000)))
	assert.Len(t, order.Items, 2)
	// unit prices frozen from the cart snapshot
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.NewFromInt(40000)))
	assert.True(t, cart.IsEmpty(), "cart must be cleared after checkout")

	m.catalog.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.discounts.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything)
}

func TestCheckout_WithDiscount(t *testing.T) {
	svc, m := newEngine(t)
	cart := cartWith(t, food("f1", 40000, 5), food("f2", 10000, 5))
	code := "LO-ABC123"

	var calls []string
	record := func(name string) func(mock.Arguments) {
		return func(mock.Arguments) { calls = append(calls, name) }
	}

	m.discounts.On("Validate", mock.Anything, code, "cust-1").Return(&domain.DiscountCode{
		Code:               code,
		DiscountPercentage: decimal.NewFromInt(10),
		ExpiryDate:         time.Now().AddDate(0, 0, 10),
	}, nil).Once()
	m.catalog.On("ReserveStock", mock.Anything, "f1", 2).Run(record("reserve-f1")).Return(nil).Once()
	m.catalog.On("ReserveStock", mock.Anything, "f2", 2).Run(record("reserve-f2")).Return(nil).Once()
	m.discounts.On("Redeem", mock.Anything, code).Run(record("redeem")).Return(nil).Once()
	m.orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Run(record("persist")).Return(nil).Once()
	m.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil).Once()

	order, err := svc.Checkout(context.Background(), cart, checkoutCmd(&code))

	assert.NoError(t, err)
	assert.True(t, order.DiscountAmount.Equal(decimal.NewFromInt(10000)))
	assert.True(t, order.TotalAmount().Equal(decimal.NewFromInt(90000)))
	assert.Equal(t, code, *order.DiscountCode)

	// redemption happens only after every reservation succeeded
	assert.Equal(t, []string{"reserve-f1", "reserve-f2", "redeem", "persist"}, calls)
	m.discounts.AssertExpectations(t)
}

func TestCheckout_InvalidDiscountStopsBeforeReservation(t *testing.T) {
	svc, m := newEngine(t)
	cart := cartWith(t, food("f1", 40000, 5))
	code := "LO-DEAD00"

	m.discounts.On("Validate", mock.Anything, code, "cust-1").
		Return(nil, domain.ErrCodeAlreadyUsed).Once()

	_, err := svc.Checkout(context.Background(), cart, checkoutCmd(&code))

	assert.ErrorIs(t, err, domain.ErrCodeAlreadyUsed)
	assert.False(t, cart.IsEmpty())
	m.catalog.AssertNotCalled(t, "ReserveStock", mock.Anything, mock.Anything, mock.Anything)
	m.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckout_PartialReservationRollsBack(t *testing.T) {
	svc, m := newEngine(t)
	cart := cartWith(t, food("f1", 40000, 5), food("f2", 10000, 5), food("f3", 5000, 5))

	m.catalog.On("ReserveStock", mock.Anything, "f1", 2).Return(nil).Once()
	m.catalog.On("ReserveStock", mock.Anything, "f2", 2).Return(nil).Once()
	m.catalog.On("ReserveStock", mock.Anything, "f3", 2).Return(domain.ErrInsufficientStock).Once()

	// every already-decremented item gets its stock back
	m.catalog.On("RestoreStock", mock.Anything, "f1", 2).Return(nil).Once()
	m.catalog.On("RestoreStock", mock.Anything, "f2", 2).Return(nil).Once()

	_, err := svc.Checkout(context.Background(), cart, checkoutCmd(nil))

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.False(t, cart.IsEmpty(), "cart survives a failed checkout")
	m.catalog.AssertExpectations(t)
	m.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
}

func TestCheckout_RedeemFailureRollsBackReservations(t *testing.T) {
	svc, m := newEngine(t)
	cart := cartWith(t, food("f1", 40000, 5))
	code := "LO-RACE01"

	m.discounts.On("Validate", mock.Anything, code, "cust-1").Return(&domain.DiscountCode{
		Code:               code,
		DiscountPercentage: decimal.NewFromInt(10),
		ExpiryDate:         time.Now().AddDate(0, 0, 10),
	}, nil).Once()
	m.catalog.On("ReserveStock", mock.Anything, "f1", 2).Return(nil).Once()
	// a concurrent checkout won the code in between
	m.discounts.On("Redeem", mock.Anything, code).Return(domain.ErrCodeAlreadyUsed).Once()
	m.catalog.On("RestoreStock", mock.Anything, "f1", 2).Return(nil).Once()

	_, err := svc.Checkout(context.Background(), cart, checkoutCmd(&code))

	assert.ErrorIs(t, err, domain.ErrCodeAlreadyUsed)
	m.catalog.AssertExpectations(t)
	m.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckout_PersistFailureCompensatesEverything(t *testing.T) {
	svc, m := newEngine(t)
	cart := cartWith(t, food("f1", 40000, 5))
	code := "LO-FAIL01"

	m.discounts.On("Validate", mock.Anything, code, "cust-1").Return(&domain.DiscountCode{
		Code:               code,
		DiscountPercentage: decimal.NewFromInt(10),
		ExpiryDate:         time.Now().AddDate(0, 0, 10),
	}, nil).Once()
	m.catalog.On("ReserveStock", mock.Anything, "f1", 2).Return(nil).Once()
	m.discounts.On("Redeem", mock.Anything, code).Return(nil).Once()
	m.orders.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
	m.catalog.On("RestoreStock", mock.Anything, "f1", 2).Return(nil).Once()
	m.discounts.On("Release", mock.Anything, code).Return(nil).Once()

	_, err := svc.Checkout(context.Background(), cart, checkoutCmd(&code))

	assert.Error(t, err)
	m.catalog.AssertExpectations(t)
	m.discounts.AssertExpectations(t)
	m.publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
}

func TestProcessPayment(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.Status
		baseAmount int64
		wantPoints int
		wantErr    error
	}{
		{
			name:       "pending order accrues floor points",
			status:     domain.StatusPending,
			baseAmount: 5500,
			wantPoints: 5,
		},
		{
			name:       "large order",
			status:     domain.StatusPending,
			baseAmount: 100000,
			wantPoints: 100,
		},
		{
			name:       "small order accrues nothing",
			status:     domain.StatusPending,
			baseAmount: 900,
			wantPoints: 0,
		},
		{
			name:       "cancelled order rejects payment",
			status:     domain.StatusCancelled,
			baseAmount: 5500,
			wantErr:    domain.ErrInvalidStatusTransition,
		},
		{
			name:       "sent order rejects payment",
			status:     domain.StatusSent,
			baseAmount: 5500,
			wantErr:    domain.ErrInvalidStatusTransition,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, m := newEngine(t)
			order := &domain.Order{
				ID:         "ord-1",
				CustomerID: "cust-1",
				Status:     testCase.status,
				BaseAmount: decimal.NewFromInt(testCase.baseAmount),
				Items:      []domain.OrderItem{{FoodID: "f1", Quantity: 1, UnitPrice: decimal.NewFromInt(testCase.baseAmount)}},
			}

			m.orders.On("FindByID", mock.Anything, "ord-1").Return(order, nil).Once()

			if testCase.wantErr == nil {
				m.orders.On("UpdateStatus", mock.Anything, "ord-1", domain.StatusPaid).Return(nil).Once()
				m.loyalty.On("PointsForAmount", mock.Anything).Return(testCase.wantPoints).Once()
				if testCase.wantPoints > 0 {
					m.loyalty.On("AddPoints", mock.Anything, "cust-1", testCase.wantPoints).Return(nil).Once()
				}
				m.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil).Once()
			}

			result, err := svc.ProcessPayment(context.Background(), "ord-1")

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				m.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, domain.StatusPaid, result.Status)
			m.orders.AssertExpectations(t)
			m.loyalty.AssertExpectations(t)
		})
	}
}

func TestProcessPayment_IdempotentOnPaidOrder(t *testing.T) {
	svc, m := newEngine(t)
	order := &domain.Order{
		ID:         "ord-1",
		CustomerID: "cust-1",
		Status:     domain.StatusPaid,
		BaseAmount: decimal.NewFromInt(5500),
		Items:      []domain.OrderItem{{FoodID: "f1", Quantity: 1, UnitPrice: decimal.NewFromInt(5500)}},
	}

	m.orders.On("FindByID", mock.Anything, "ord-1").Return(order, nil).Once()

	result, err := svc.ProcessPayment(context.Background(), "ord-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, result.Status)
	// no second accrual, no status write, no event
	m.loyalty.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything)
	m.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	m.publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
}

func TestCancelOrder_RestoresStock(t *testing.T) {
	svc, m := newEngine(t)
	order := &domain.Order{
		ID:         "ord-1",
		CustomerID: "cust-1",
		Status:     domain.StatusPending,
		BaseAmount: decimal.NewFromInt(80000),
		Items: []domain.OrderItem{
			{FoodID: "f1", Quantity: 2, UnitPrice: decimal.NewFromInt(40000)},
			{FoodID: "f2", Quantity: 3, UnitPrice: decimal.NewFromInt(10000)},
		},
	}

	m.orders.On("FindByID", mock.Anything, "ord-1").Return(order, nil).Once()
	m.catalog.On("RestoreStock", mock.Anything, "f1", 2).Return(nil).Once()
	m.catalog.On("RestoreStock", mock.Anything, "f2", 3).Return(nil).Once()
	m.orders.On("UpdateStatus", mock.Anything, "ord-1", domain.StatusCancelled).Return(nil).Once()
	m.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil).Once()

	err := svc.CancelOrder(context.Background(), "ord-1")

	assert.NoError(t, err)
	m.catalog.AssertExpectations(t)
	m.orders.AssertExpectations(t)
}

func TestCancelOrder_MissingFoodIsSkipped(t *testing.T) {
	svc, m := newEngine(t)
	order := &domain.Order{
		ID:         "ord-1",
		CustomerID: "cust-1",
		Status:     domain.StatusPaid,
		BaseAmount: decimal.NewFromInt(50000),
		Items: []domain.OrderItem{
			{FoodID: "gone", Quantity: 1, UnitPrice: decimal.NewFromInt(10000)},
			{FoodID: "f2", Quantity: 4, UnitPrice: decimal.NewFromInt(10000)},
		},
	}

	m.orders.On("FindByID", mock.Anything, "ord-1").Return(order, nil).Once()
	m.catalog.On("RestoreStock", mock.Anything, "gone", 1).Return(domain.ErrNotFound).Once()
	// the deleted food must not stop the remaining restoration
	m.catalog.On("RestoreStock", mock.Anything, "f2", 4).Return(nil).Once()
	m.orders.On("UpdateStatus", mock.Anything, "ord-1", domain.StatusCancelled).Return(nil).Once()
	m.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil).Once()

	err := svc.CancelOrder(context.Background(), "ord-1")

	assert.NoError(t, err)
	m.catalog.AssertExpectations(t)
}

func TestCancelOrder_TerminalStatesRejected(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusCancelled, domain.StatusSent} {
		t.Run(string(status), func(t *testing.T) {
			svc, m := newEngine(t)
			order := &domain.Order{
				ID:     "ord-1",
				Status: status,
				Items:  []domain.OrderItem{{FoodID: "f1", Quantity: 1, UnitPrice: decimal.NewFromInt(100)}},
			}

			m.orders.On("FindByID", mock.Anything, "ord-1").Return(order, nil).Once()

			err := svc.CancelOrder(context.Background(), "ord-1")

			assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
			m.catalog.AssertNotCalled(t, "RestoreStock", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCancelOrder_NotFoundAndNoItems(t *testing.T) {
	svc, m := newEngine(t)

	m.orders.On("FindByID", mock.Anything, "missing").Return(nil, domain.ErrNotFound).Once()
	assert.ErrorIs(t, svc.CancelOrder(context.Background(), "missing"), domain.ErrNotFound)

	empty := &domain.Order{ID: "ord-2", Status: domain.StatusPending}
	m.orders.On("FindByID", mock.Anything, "ord-2").Return(empty, nil).Once()
	assert.ErrorIs(t, svc.CancelOrder(context.Background(), "ord-2"), domain.ErrNotFound)
}

func TestStockConservation(t *testing.T) {
	// Scenario: stock 5, checkout qty 2, cancel → net stock change is zero.
	// The fake catalog tracks a real counter to assert conservation.
	svc, m := newEngine(t)

	stock := 5
	m.catalog.On("ReserveStock", mock.Anything, "f1", 2).Run(func(mock.Arguments) {
		stock -= 2
	}).Return(nil).Once()
	m.catalog.On("RestoreStock", mock.Anything, "f1", 2).Run(func(mock.Arguments) {
		stock += 2
	}).Return(nil).Once()
	m.orders.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	m.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil).Times(2)

	cart := cartWith(t, food("f1", 40000, stock))
	order, err := svc.Checkout(context.Background(), cart, checkoutCmd(nil))
	assert.NoError(t, err)
	assert.Equal(t, 3, stock)

	m.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil).Once()
	m.orders.On("UpdateStatus", mock.Anything, order.ID, domain.StatusCancelled).Return(nil).Once()

	assert.NoError(t, svc.CancelOrder(context.Background(), order.ID))
	assert.Equal(t, 5, stock)
}

func TestOrderQR(t *testing.T) {
	svc, m := newEngine(t)
	order := &domain.Order{
		ID:     "ord-1",
		Status: domain.StatusPending,
		Items:  []domain.OrderItem{{FoodID: "f1", Quantity: 1, UnitPrice: decimal.NewFromInt(100)}},
	}

	m.orders.On("FindByID", mock.Anything, "ord-1").Return(order, nil).Once()

	png, err := svc.OrderQR(context.Background(), "ord-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, png)

	m.orders.On("FindByID", mock.Anything, "missing").Return(nil, domain.ErrNotFound).Once()
	_, err = svc.OrderQR(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
