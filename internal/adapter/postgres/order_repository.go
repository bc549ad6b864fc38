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

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (order_id, restaurant_id, customer_id, order_date, delivery_date,
		                    status, payment_method, base_amount, discount_code, discount_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.Exec(ctx, query,
		order.ID, order.RestaurantID, order.CustomerID, order.OrderDate, order.DeliveryDate,
		order.Status, order.PaymentMethod, order.BaseAmount, order.DiscountCode, order.DiscountAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	// Items keep the cart's iteration order via the position column.
	for i, item := range order.Items {
		itemQuery := `
			INSERT INTO order_items (order_id, food_id, food_name, quantity, unit_price, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err = tx.Exec(ctx, itemQuery,
			order.ID, item.FoodID, item.FoodName, item.Quantity, item.UnitPrice, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `
		SELECT order_id, restaurant_id, customer_id, order_date, delivery_date,
		       status, payment_method, base_amount, discount_code, discount_amount
		FROM orders
		WHERE order_id = $1
	`

	order, err := scanOrder(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	items, err := r.GetItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (r *orderRepository) GetItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	query := `
		SELECT order_id, food_id, food_name, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY position ASC
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.OrderID, &item.FoodID, &item.FoodName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE orders SET status = $1 WHERE order_id = $2`, status, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}
	return nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	query := `
		SELECT order_id, restaurant_id, customer_id, order_date, delivery_date,
		       status, payment_method, base_amount, discount_code, discount_amount
		FROM orders
		WHERE customer_id = $1
		ORDER BY order_date DESC
	`
	return r.list(ctx, query, customerID)
}

func (r *orderRepository) ListBetween(ctx context.Context, start, end time.Time) ([]*domain.Order, error) {
	query := `
		SELECT order_id, restaurant_id, customer_id, order_date, delivery_date,
		       status, payment_method, base_amount, discount_code, discount_amount
		FROM orders
		WHERE order_date >= $1 AND order_date <= $2
		ORDER BY order_date ASC
	`
	return r.list(ctx, query, start, end)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func scanOrder(row Row) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID, &order.RestaurantID, &order.CustomerID, &order.OrderDate, &order.DeliveryDate,
		&order.Status, &order.PaymentMethod, &order.BaseAmount, &order.DiscountCode, &order.DiscountAmount,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
