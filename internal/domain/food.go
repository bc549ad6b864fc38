package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Food represents a menu item with its live stock counter.
type Food struct {
	ID             string
	RestaurantID   string
	Name           string
	Category       string
	SellingPrice   decimal.Decimal
	CostPrice      decimal.Decimal
	Ingredients    string
	Description    string
	Stock          int
	AvailableDates []time.Time
	ImagePath      *string
}

// Validate applies the admin-side business rules for creating or editing a food.
func (f *Food) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: food name is required", ErrInvalidArgument)
	}
	if f.SellingPrice.IsNegative() {
		return fmt.Errorf("%w: selling price must not be negative", ErrInvalidArgument)
	}
	if f.CostPrice.IsNegative() {
		return fmt.Errorf("%w: cost price must not be negative", ErrInvalidArgument)
	}
	if f.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidArgument)
	}
	return nil
}

// IsAvailable reports whether the current stock covers the requested quantity.
func (f *Food) IsAvailable(quantity int) bool {
	return f.Stock >= quantity
}

// AvailableOn reports whether the food is on the menu for the given calendar day.
func (f *Food) AvailableOn(day time.Time) bool {
	y, m, d := day.Date()
	for _, date := range f.AvailableDates {
		dy, dm, dd := date.Date()
		if dy == y && dm == m && dd == d {
			return true
		}
	}
	return false
}

// MatchesQuery reports whether the query appears in the name, ingredients or
// description, case-insensitively.
func (f *Food) MatchesQuery(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(f.Name), q) ||
		strings.Contains(strings.ToLower(f.Ingredients), q) ||
		strings.Contains(strings.ToLower(f.Description), q)
}
