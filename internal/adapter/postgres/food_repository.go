package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nargizk/dastarkhan/internal/domain"
	"github.com/nargizk/dastarkhan/internal/interfaces"
)

type foodRepository struct {
	db DB
}

func NewFoodRepository(db DB) interfaces.FoodRepository {
	return &foodRepository{db: db}
}

const foodColumns = `food_id, restaurant_id, name, category, selling_price, cost_price,
	       ingredients, description, stock, available_dates, image_path`

func (r *foodRepository) Create(ctx context.Context, food *domain.Food) error {
	query := `
		INSERT INTO foods (food_id, restaurant_id, name, category, selling_price, cost_price,
		                   ingredients, description, stock, available_dates, image_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(ctx, query,
		food.ID, food.RestaurantID, food.Name, food.Category, food.SellingPrice, food.CostPrice,
		food.Ingredients, food.Description, food.Stock, food.AvailableDates, food.ImagePath,
	)
	if err != nil {
		return fmt.Errorf("failed to insert food: %w", err)
	}
	return nil
}

func (r *foodRepository) FindByID(ctx context.Context, foodID string) (*domain.Food, error) {
	query := `SELECT ` + foodColumns + ` FROM foods WHERE food_id = $1`

	food, err := scanFood(r.db.QueryRow(ctx, query, foodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("food %s: %w", foodID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load food: %w", err)
	}
	return food, nil
}

func (r *foodRepository) ListAll(ctx context.Context) ([]*domain.Food, error) {
	query := `SELECT ` + foodColumns + ` FROM foods ORDER BY name`
	return r.list(ctx, query)
}

func (r *foodRepository) ListForDate(ctx context.Context, day time.Time) ([]*domain.Food, error) {
	query := `SELECT ` + foodColumns + ` FROM foods WHERE $1 = ANY(available_dates) ORDER BY name`
	return r.list(ctx, query, day)
}

func (r *foodRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Food, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	var foods []*domain.Food
	for rows.Next() {
		food, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		foods = append(foods, food)
	}
	return foods, nil
}

func (r *foodRepository) Update(ctx context.Context, food *domain.Food) error {
	query := `
		UPDATE foods
		SET name = $1, category = $2, selling_price = $3, cost_price = $4,
		    ingredients = $5, description = $6, stock = $7, available_dates = $8, image_path = $9
		WHERE food_id = $10
	`
	tag, err := r.db.Exec(ctx, query,
		food.Name, food.Category, food.SellingPrice, food.CostPrice,
		food.Ingredients, food.Description, food.Stock, food.AvailableDates, food.ImagePath,
		food.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update food: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("food %s: %w", food.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *foodRepository) Delete(ctx context.Context, foodID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM foods WHERE food_id = $1`, foodID)
	if err != nil {
		return fmt.Errorf("failed to delete food: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("food %s: %w", foodID, domain.ErrNotFound)
	}
	return nil
}

// ReserveStock decrements the stock counter in a single conditional UPDATE so
// the check runs against the row's current value, not a cached read.
func (r *foodRepository) ReserveStock(ctx context.Context, foodID string, quantity int) error {
	query := `
		UPDATE foods
		SET stock = stock - $1
		WHERE food_id = $2 AND stock >= $1
	`
	tag, err := r.db.Exec(ctx, query, quantity, foodID)
	if err != nil {
		return fmt.Errorf("failed to reserve stock: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Zero rows: either the food is gone or the stock is too low.
	var stock int
	err = r.db.QueryRow(ctx, `SELECT stock FROM foods WHERE food_id = $1`, foodID).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("food %s: %w", foodID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read stock: %w", err)
	}
	return fmt.Errorf("%w: food %s has %d, requested %d", domain.ErrInsufficientStock, foodID, stock, quantity)
}

// RestoreStock increments the stock counter unconditionally.
func (r *foodRepository) RestoreStock(ctx context.Context, foodID string, quantity int) error {
	query := `
		UPDATE foods
		SET stock = stock + $1
		WHERE food_id = $2
	`
	tag, err := r.db.Exec(ctx, query, quantity, foodID)
	if err != nil {
		return fmt.Errorf("failed to restore stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("food %s: %w", foodID, domain.ErrNotFound)
	}
	return nil
}

func scanFood(row Row) (*domain.Food, error) {
	var food domain.Food
	err := row.Scan(
		&food.ID, &food.RestaurantID, &food.Name, &food.Category,
		&food.SellingPrice, &food.CostPrice, &food.Ingredients, &food.Description,
		&food.Stock, &food.AvailableDates, &food.ImagePath,
	)
	if err != nil {
		return nil, err
	}
	return &food, nil
}
