package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/nargizk/dastarkhan/internal/domain"
)

type FoodRepository struct {
	mock.Mock
}

func (m *FoodRepository) Create(ctx context.Context, food *domain.Food) error {
	return m.Called(ctx, food).Error(0)
}

func (m *FoodRepository) FindByID(ctx context.Context, foodID string) (*domain.Food, error) {
	args := m.Called(ctx, foodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Food), args.Error(1)
}

func (m *FoodRepository) ListAll(ctx context.Context) ([]*domain.Food, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Food), args.Error(1)
}

func (m *FoodRepository) ListForDate(ctx context.Context, day time.Time) ([]*domain.Food, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Food), args.Error(1)
}

func (m *FoodRepository) Update(ctx context.Context, food *domain.Food) error {
	return m.Called(ctx, food).Error(0)
}

func (m *FoodRepository) Delete(ctx context.Context, foodID string) error {
	return m.Called(ctx, foodID).Error(0)
}

func (m *FoodRepository) ReserveStock(ctx context.Context, foodID string, quantity int) error {
	return m.Called(ctx, foodID, quantity).Error(0)
}

func (m *FoodRepository) RestoreStock(ctx context.Context, foodID string, quantity int) error {
	return m.Called(ctx, foodID, quantity).Error(0)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepository) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *OrderRepository) GetItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderItem), args.Error(1)
}

func (m *OrderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.Status) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *OrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

func (m *OrderRepository) ListBetween(ctx context.Context, start, end time.Time) ([]*domain.Order, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

type DiscountRepository struct {
	mock.Mock
}

func (m *DiscountRepository) Create(ctx context.Context, code *domain.DiscountCode) error {
	return m.Called(ctx, code).Error(0)
}

func (m *DiscountRepository) FindByCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscountCode), args.Error(1)
}

func (m *DiscountRepository) Redeem(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

func (m *DiscountRepository) Release(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

type LoyaltyRepository struct {
	mock.Mock
}

func (m *LoyaltyRepository) AddPoints(ctx context.Context, customerID string, points int) error {
	return m.Called(ctx, customerID, points).Error(0)
}

func (m *LoyaltyRepository) DeductPoints(ctx context.Context, customerID string, points int) error {
	return m.Called(ctx, customerID, points).Error(0)
}

func (m *LoyaltyRepository) Balance(ctx context.Context, customerID string) (int, error) {
	args := m.Called(ctx, customerID)
	return args.Int(0), args.Error(1)
}

type CartStore struct {
	mock.Mock
}

func (m *CartStore) Get(ctx context.Context, customerID string) (*domain.Cart, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *CartStore) Save(ctx context.Context, customerID string, cart *domain.Cart) error {
	return m.Called(ctx, customerID, cart).Error(0)
}

func (m *CartStore) Delete(ctx context.Context, customerID string) error {
	return m.Called(ctx, customerID).Error(0)
}
