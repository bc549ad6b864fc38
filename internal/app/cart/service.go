package cart

import (
	"context"
	"fmt"

	"github.com/nargizk/dastarkhan/internal/adapter/logger"
	"github.com/nargizk/dastarkhan/internal/domain"
	"github.com/nargizk/dastarkhan/internal/interfaces"
)

// Service manages per-customer session carts. Every mutation re-reads the food
// from the catalog so the stock pre-check runs against the current database
// value, not a stale snapshot. Nothing here reserves stock; that happens at
// checkout.
type Service struct {
	store   interfaces.CartStore
	catalog interfaces.CatalogService
	logger  logger.Logger
}

func NewService(store interfaces.CartStore, catalog interfaces.CatalogService, lgr logger.Logger) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		logger:  lgr,
	}
}

func (s *Service) AddItem(ctx context.Context, customerID, foodID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidArgument)
	}

	food, err := s.catalog.GetFood(ctx, foodID)
	if err != nil {
		return nil, err
	}

	cart, err := s.store.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := cart.AddItem(food, quantity); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, customerID, cart); err != nil {
		return nil, err
	}

	s.logger.Debug("cart_item_added", "Item added to cart", "", map[string]interface{}{
		"customer_id": customerID,
		"food_id":     foodID,
		"quantity":    quantity,
	})
	return cart, nil
}

// UpdateItemQuantity sets an absolute quantity; zero or less removes the item.
func (s *Service) UpdateItemQuantity(ctx context.Context, customerID, foodID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, customerID, foodID)
	}

	food, err := s.catalog.GetFood(ctx, foodID)
	if err != nil {
		return nil, err
	}

	cart, err := s.store.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := cart.SetItemQuantity(food, quantity); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, customerID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Service) RemoveItem(ctx context.Context, customerID, foodID string) (*domain.Cart, error) {
	cart, err := s.store.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(foodID)

	if err := s.store.Save(ctx, customerID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Service) View(ctx context.Context, customerID string) (*domain.Cart, error) {
	return s.store.Get(ctx, customerID)
}

func (s *Service) Clear(ctx context.Context, customerID string) error {
	return s.store.Delete(ctx, customerID)
}
