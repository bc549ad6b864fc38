package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nargizk/dastarkhan/internal/domain"
	"github.com/nargizk/dastarkhan/internal/interfaces"
)

type loyaltyRepository struct {
	db DB
}

func NewLoyaltyRepository(db DB) interfaces.LoyaltyRepository {
	return &loyaltyRepository{db: db}
}

func (r *loyaltyRepository) AddPoints(ctx context.Context, customerID string, points int) error {
	if points < 0 {
		return fmt.Errorf("%w: points must not be negative", domain.ErrInvalidArgument)
	}

	query := `
		UPDATE users
		SET loyalty_points = loyalty_points + $1
		WHERE user_id = $2
	`
	tag, err := r.db.Exec(ctx, query, points, customerID)
	if err != nil {
		return fmt.Errorf("failed to add loyalty points: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", customerID, domain.ErrNotFound)
	}
	return nil
}

// DeductPoints checks the balance and decrements in one conditional UPDATE.
func (r *loyaltyRepository) DeductPoints(ctx context.Context, customerID string, points int) error {
	if points < 0 {
		return fmt.Errorf("%w: points must not be negative", domain.ErrInvalidArgument)
	}

	query := `
		UPDATE users
		SET loyalty_points = loyalty_points - $1
		WHERE user_id = $2 AND loyalty_points >= $1
	`
	tag, err := r.db.Exec(ctx, query, points, customerID)
	if err != nil {
		return fmt.Errorf("failed to deduct loyalty points: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var balance int
	err = r.db.QueryRow(ctx, `SELECT loyalty_points FROM users WHERE user_id = $1`, customerID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("customer %s: %w", customerID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read loyalty balance: %w", err)
	}
	return fmt.Errorf("%w: balance %d, requested %d", domain.ErrInsufficientPoints, balance, points)
}

// Balance returns 0 for an unknown customer, not an error.
func (r *loyaltyRepository) Balance(ctx context.Context, customerID string) (int, error) {
	var balance int
	err := r.db.QueryRow(ctx, `SELECT loyalty_points FROM users WHERE user_id = $1`, customerID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read loyalty balance: %w", err)
	}
	return balance, nil
}
