package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nargizk/dastarkhan/internal/domain"
	"github.com/nargizk/dastarkhan/internal/interfaces"
)

type discountRepository struct {
	db DB
}

func NewDiscountRepository(db DB) interfaces.DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(ctx context.Context, code *domain.DiscountCode) error {
	query := `
		INSERT INTO discount_codes (code, discount_percentage, expiry_date, is_used, customer_id)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query,
		code.Code, code.DiscountPercentage, code.ExpiryDate, code.IsUsed, code.CustomerID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert discount code: %w", err)
	}
	return nil
}

func (r *discountRepository) FindByCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	query := `
		SELECT code, discount_percentage, expiry_date, is_used, customer_id
		FROM discount_codes
		WHERE code = $1
	`

	var dc domain.DiscountCode
	err := r.db.QueryRow(ctx, query, code).Scan(
		&dc.Code, &dc.DiscountPercentage, &dc.ExpiryDate, &dc.IsUsed, &dc.CustomerID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("discount code %s: %w", code, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load discount code: %w", err)
	}
	return &dc, nil
}

// Redeem flips is_used in a single conditional UPDATE; a concurrent redemption
// of the same code loses the race and gets ErrCodeAlreadyUsed.
func (r *discountRepository) Redeem(ctx context.Context, code string) error {
	query := `
		UPDATE discount_codes
		SET is_used = TRUE
		WHERE code = $1 AND is_used = FALSE
	`
	tag, err := r.db.Exec(ctx, query, code)
	if err != nil {
		return fmt.Errorf("failed to redeem discount code: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var used bool
	err = r.db.QueryRow(ctx, `SELECT is_used FROM discount_codes WHERE code = $1`, code).Scan(&used)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("discount code %s: %w", code, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read discount code: %w", err)
	}
	return fmt.Errorf("%w: %s", domain.ErrCodeAlreadyUsed, code)
}

// Release undoes a redemption when the checkout that consumed the code failed
// before persisting.
func (r *discountRepository) Release(ctx context.Context, code string) error {
	tag, err := r.db.Exec(ctx, `UPDATE discount_codes SET is_used = FALSE WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("failed to release discount code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("discount code %s: %w", code, domain.ErrNotFound)
	}
	return nil
}
