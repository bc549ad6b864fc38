package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountCode is a one-shot percentage discount. A customer-restricted code
// carries the owning customer id; an open code has none.
type DiscountCode struct {
	Code               string
	DiscountPercentage decimal.Decimal
	ExpiryDate         time.Time
	IsUsed             bool
	CustomerID         *string
}

const discountValidityDays = 30

var hundred = decimal.NewFromInt(100)

// NewDiscountCode mints a code with the given prefix, valid for 30 days.
func NewDiscountCode(prefix string, percentage decimal.Decimal, customerID *string) (*DiscountCode, error) {
	if percentage.LessThanOrEqual(decimal.Zero) || percentage.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: discount percentage must be in (0, 100]", ErrInvalidArgument)
	}

	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return &DiscountCode{
		Code:               fmt.Sprintf("%s-%s", prefix, suffix),
		DiscountPercentage: percentage,
		ExpiryDate:         time.Now().AddDate(0, 0, discountValidityDays),
		CustomerID:         customerID,
	}, nil
}

// ValidateFor checks redeemability for a customer at a point in time.
func (d *DiscountCode) ValidateFor(customerID string, now time.Time) error {
	if now.After(d.ExpiryDate) {
		return fmt.Errorf("%w: %s expired on %s", ErrCodeExpired, d.Code, d.ExpiryDate.Format("2006-01-02"))
	}
	if d.IsUsed {
		return fmt.Errorf("%w: %s", ErrCodeAlreadyUsed, d.Code)
	}
	if d.CustomerID != nil && *d.CustomerID != customerID {
		return fmt.Errorf("%w: %s", ErrCodeNotOwned, d.Code)
	}
	return nil
}

// AmountFor computes the discount amount for a base amount:
// base × percentage / 100.
func (d *DiscountCode) AmountFor(baseAmount decimal.Decimal) decimal.Decimal {
	return baseAmount.Mul(d.DiscountPercentage).Div(hundred)
}
