package discount

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nargizk/dastarkhan/internal/adapter/logger"
	"github.com/nargizk/dastarkhan/internal/domain"
	"github.com/nargizk/dastarkhan/internal/interfaces"
)

const (
	// Converting loyalty points into a code costs at least 100 points and
	// always yields a 10% discount.
	minPointsForCode = 100

	adminCodePrefix   = "ADMIN"
	loyaltyCodePrefix = "LO"
)

var loyaltyCodePercentage = decimal.NewFromInt(10)

// Service is the discount ledger: code validation, one-time redemption and the
// two code-minting paths (admin-issued, loyalty conversion).
type Service struct {
	repo    interfaces.DiscountRepository
	loyalty interfaces.LoyaltyService
	logger  logger.Logger
}

func NewService(repo interfaces.DiscountRepository, loyalty interfaces.LoyaltyService, lgr logger.Logger) *Service {
	return &Service{
		repo:    repo,
		loyalty: loyalty,
		logger:  lgr,
	}
}

// Validate returns the code when it is redeemable by the customer right now.
func (s *Service) Validate(ctx context.Context, code, customerID string) (*domain.DiscountCode, error) {
	dc, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := dc.ValidateFor(customerID, time.Now()); err != nil {
		return nil, err
	}
	return dc, nil
}

// Redeem consumes the code. Called exactly once per successful checkout, after
// every other validation has passed.
func (s *Service) Redeem(ctx context.Context, code string) error {
	return s.repo.Redeem(ctx, code)
}

// Release is the compensating action for a redemption whose checkout failed
// before persisting.
func (s *Service) Release(ctx context.Context, code string) error {
	return s.repo.Release(ctx, code)
}

// CreateForCustomer mints an admin-issued code restricted to one customer.
func (s *Service) CreateForCustomer(ctx context.Context, customerID string, percentage decimal.Decimal) (*domain.DiscountCode, error) {
	dc, err := domain.NewDiscountCode(adminCodePrefix, percentage, &customerID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, dc); err != nil {
		return nil, err
	}

	s.logger.Info("discount_created", "Admin discount code issued", "", map[string]interface{}{
		"code":        dc.Code,
		"customer_id": customerID,
		"percentage":  percentage.String(),
	})
	return dc, nil
}

// GenerateFromPoints converts loyalty points into a fixed 10% code. The point
// deduction happens first; if minting then fails the points are refunded.
func (s *Service) GenerateFromPoints(ctx context.Context, customerID string, pointsCost int) (*domain.DiscountCode, error) {
	if pointsCost < minPointsForCode {
		return nil, fmt.Errorf("%w: at least %d points required", domain.ErrInvalidArgument, minPointsForCode)
	}

	if err := s.loyalty.DeductPoints(ctx, customerID, pointsCost); err != nil {
		return nil, err
	}

	dc, err := domain.NewDiscountCode(loyaltyCodePrefix, loyaltyCodePercentage, nil)
	if err != nil {
		s.refundPoints(ctx, customerID, pointsCost)
		return nil, err
	}

	if err := s.repo.Create(ctx, dc); err != nil {
		s.refundPoints(ctx, customerID, pointsCost)
		return nil, err
	}

	s.logger.Info("discount_generated", "Loyalty points converted to discount code", "", map[string]interface{}{
		"code":        dc.Code,
		"customer_id": customerID,
		"points_cost": pointsCost,
	})
	return dc, nil
}

func (s *Service) refundPoints(ctx context.Context, customerID string, points int) {
	if err := s.loyalty.AddPoints(ctx, customerID, points); err != nil {
		s.logger.Error("points_refund_failed", "Failed to refund loyalty points", "", map[string]interface{}{
			"customer_id": customerID,
			"points":      points,
		}, err)
	}
}
