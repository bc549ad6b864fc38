package loyalty

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nargizk/dastarkhan/internal/adapter/logger"
	"github.com/nargizk/dastarkhan/internal/interfaces"
)

// One loyalty point per 1000 currency units of pre-discount order value.
var pointsDivisor = decimal.NewFromInt(1000)

// Service is the loyalty ledger over per-customer point balances.
type Service struct {
	repo   interfaces.LoyaltyRepository
	logger logger.Logger
}

func NewService(repo interfaces.LoyaltyRepository, lgr logger.Logger) *Service {
	return &Service{repo: repo, logger: lgr}
}

func (s *Service) AddPoints(ctx context.Context, customerID string, points int) error {
	if points == 0 {
		return nil
	}
	if err := s.repo.AddPoints(ctx, customerID, points); err != nil {
		return err
	}

	s.logger.Debug("points_added", "Loyalty points accrued", "", map[string]interface{}{
		"customer_id": customerID,
		"points":      points,
	})
	return nil
}

func (s *Service) DeductPoints(ctx context.Context, customerID string, points int) error {
	return s.repo.DeductPoints(ctx, customerID, points)
}

func (s *Service) Balance(ctx context.Context, customerID string) (int, error) {
	return s.repo.Balance(ctx, customerID)
}

// PointsForAmount computes floor(amount / 1000).
func (s *Service) PointsForAmount(amount decimal.Decimal) int {
	return int(amount.Div(pointsDivisor).Floor().IntPart())
}
