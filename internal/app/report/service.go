package report

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nargizk/dastarkhan/internal/adapter/logger"
	"github.com/nargizk/dastarkhan/internal/domain"
	"github.com/nargizk/dastarkhan/internal/interfaces"
)

// Service builds read-only sales reports from order history. Sales use the
// unit prices frozen at checkout; profit uses the current cost price, since
// cost prices are not versioned.
type Service struct {
	orders interfaces.OrderRepository
	foods  interfaces.FoodRepository
	logger logger.Logger
}

func NewService(orders interfaces.OrderRepository, foods interfaces.FoodRepository, lgr logger.Logger) *Service {
	return &Service{orders: orders, foods: foods, logger: lgr}
}

func (s *Service) SalesBetween(ctx context.Context, start, end time.Time) (*interfaces.SalesReport, error) {
	orders, err := s.orders.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	rep := &interfaces.SalesReport{
		StartDate:   start,
		EndDate:     end,
		OrderCount:  len(orders),
		TotalSales:  decimal.Zero,
		TotalProfit: decimal.Zero,
	}

	costPrices := make(map[string]decimal.Decimal)

	for _, order := range orders {
		items, err := s.orders.GetItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}

		for _, item := range items {
			qty := decimal.NewFromInt(int64(item.Quantity))
			rep.TotalSales = rep.TotalSales.Add(item.UnitPrice.Mul(qty))

			cost, ok := costPrices[item.FoodID]
			if !ok {
				food, err := s.foods.FindByID(ctx, item.FoodID)
				if errors.Is(err, domain.ErrNotFound) {
					// Deleted foods contribute sales but no profit figure.
					s.logger.Warn("report_food_missing", "Food deleted, excluded from profit", "", map[string]interface{}{
						"food_id": item.FoodID,
					})
					costPrices[item.FoodID] = item.UnitPrice
					continue
				}
				if err != nil {
					return nil, err
				}
				cost = food.CostPrice
				costPrices[item.FoodID] = cost
			}

			rep.TotalProfit = rep.TotalProfit.Add(item.UnitPrice.Sub(cost).Mul(qty))
		}
	}

	return rep, nil
}
