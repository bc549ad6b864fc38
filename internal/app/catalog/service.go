package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nargizk/dastarkhan/internal/adapter/logger"
	"github.com/nargizk/dastarkhan/internal/domain"
	"github.com/nargizk/dastarkhan/internal/interfaces"
)

// Service exposes food reads for the menu surface and stock mutation for the
// checkout engine. Admin CRUD never touches stock through reserve/restore.
type Service struct {
	repo   interfaces.FoodRepository
	locks  *keyMutex
	logger logger.Logger
}

func NewService(repo interfaces.FoodRepository, lgr logger.Logger) *Service {
	return &Service{
		repo:   repo,
		locks:  newKeyMutex(),
		logger: lgr,
	}
}

func (s *Service) GetFood(ctx context.Context, foodID string) (*domain.Food, error) {
	return s.repo.FindByID(ctx, foodID)
}

func (s *Service) ListFoods(ctx context.Context) ([]*domain.Food, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) MenuForDate(ctx context.Context, day time.Time) ([]*domain.Food, error) {
	return s.repo.ListForDate(ctx, day)
}

// Search filters foods by a text query over name, ingredients and description,
// optionally restricted to a menu day.
func (s *Service) Search(ctx context.Context, query string, day *time.Time) ([]*domain.Food, error) {
	var foods []*domain.Food
	var err error
	if day != nil {
		foods, err = s.repo.ListForDate(ctx, *day)
	} else {
		foods, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	var matched []*domain.Food
	for _, food := range foods {
		if food.MatchesQuery(query) {
			matched = append(matched, food)
		}
	}
	return matched, nil
}

func (s *Service) CreateFood(ctx context.Context, food *domain.Food) error {
	if food.ID == "" {
		food.ID = uuid.NewString()
	}
	if err := food.Validate(); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, food); err != nil {
		return fmt.Errorf("failed to create food: %w", err)
	}

	s.logger.Info("food_created", "Food added to menu", "", map[string]interface{}{
		"food_id": food.ID,
		"name":    food.Name,
	})
	return nil
}

func (s *Service) UpdateFood(ctx context.Context, food *domain.Food) error {
	if err := food.Validate(); err != nil {
		return err
	}
	return s.repo.Update(ctx, food)
}

func (s *Service) DeleteFood(ctx context.Context, foodID string) error {
	return s.repo.Delete(ctx, foodID)
}

// ReserveStock decrements stock for a checkout. The repository validates the
// requested quantity against the row's current value, never a cached one.
func (s *Service) ReserveStock(ctx context.Context, foodID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidArgument)
	}

	s.locks.Lock(foodID)
	defer s.locks.Unlock(foodID)

	return s.repo.ReserveStock(ctx, foodID, quantity)
}

// RestoreStock increments stock after a cancellation or a rolled-back
// reservation. A deleted food is logged as a warning, not treated as fatal:
// the caller must still be able to restore the remaining items.
func (s *Service) RestoreStock(ctx context.Context, foodID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidArgument)
	}

	s.locks.Lock(foodID)
	defer s.locks.Unlock(foodID)

	return s.repo.RestoreStock(ctx, foodID, quantity)
}
