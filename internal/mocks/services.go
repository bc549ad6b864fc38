package mocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/nargizk/dastarkhan/internal/domain"
)

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) GetFood(ctx context.Context, foodID string) (*domain.Food, error) {
	args := m.Called(ctx, foodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Food), args.Error(1)
}

func (m *CatalogService) ListFoods(ctx context.Context) ([]*domain.Food, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Food), args.Error(1)
}

func (m *CatalogService) MenuForDate(ctx context.Context, day time.Time) ([]*domain.Food, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Food), args.Error(1)
}

func (m *CatalogService) Search(ctx context.Context, query string, day *time.Time) ([]*domain.Food, error) {
	args := m.Called(ctx, query, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Food), args.Error(1)
}

func (m *CatalogService) CreateFood(ctx context.Context, food *domain.Food) error {
	return m.Called(ctx, food).Error(0)
}

func (m *CatalogService) UpdateFood(ctx context.Context, food *domain.Food) error {
	return m.Called(ctx, food).Error(0)
}

func (m *CatalogService) DeleteFood(ctx context.Context, foodID string) error {
	return m.Called(ctx, foodID).Error(0)
}

func (m *CatalogService) ReserveStock(ctx context.Context, foodID string, quantity int) error {
	return m.Called(ctx, foodID, quantity).Error(0)
}

func (m *CatalogService) RestoreStock(ctx context.Context, foodID string, quantity int) error {
	return m.Called(ctx, foodID, quantity).Error(0)
}

type DiscountService struct {
	mock.Mock
}

func (m *DiscountService) Validate(ctx context.Context, code, customerID string) (*domain.DiscountCode, error) {
	args := m.Called(ctx, code, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscountCode), args.Error(1)
}

func (m *DiscountService) Redeem(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

func (m *DiscountService) Release(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

func (m *DiscountService) CreateForCustomer(ctx context.Context, customerID string, percentage decimal.Decimal) (*domain.DiscountCode, error) {
	args := m.Called(ctx, customerID, percentage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscountCode), args.Error(1)
}

func (m *DiscountService) GenerateFromPoints(ctx context.Context, customerID string, pointsCost int) (*domain.DiscountCode, error) {
	args := m.Called(ctx, customerID, pointsCost)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscountCode), args.Error(1)
}

type LoyaltyService struct {
	mock.Mock
}

func (m *LoyaltyService) AddPoints(ctx context.Context, customerID string, points int) error {
	return m.Called(ctx, customerID, points).Error(0)
}

func (m *LoyaltyService) DeductPoints(ctx context.Context, customerID string, points int) error {
	return m.Called(ctx, customerID, points).Error(0)
}

func (m *LoyaltyService) Balance(ctx context.Context, customerID string) (int, error) {
	args := m.Called(ctx, customerID)
	return args.Int(0), args.Error(1)
}

func (m *LoyaltyService) PointsForAmount(amount decimal.Decimal) int {
	return m.Called(amount).Int(0)
}
