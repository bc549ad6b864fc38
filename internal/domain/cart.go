package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CartItem is a requested (food, quantity) pair. The price is a live quote
// taken from the food snapshot; it is frozen into an OrderItem only at checkout.
type CartItem struct {
	FoodID       string          `json:"food_id"`
	FoodName     string          `json:"food_name"`
	RestaurantID string          `json:"restaurant_id"`
	Quantity     int             `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// Cart is the ephemeral per-session shopping cart. Adding to a cart reserves
// nothing; stock is only decremented at checkout.
type Cart struct {
	Items []CartItem `json:"items"`
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem adds the requested quantity of a food, accumulating with any
// existing entry for the same food id. The combined quantity is checked
// against the caller-supplied current stock of the food snapshot.
func (c *Cart) AddItem(food *Food, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidArgument)
	}

	for i := range c.Items {
		if c.Items[i].FoodID == food.ID {
			if !food.IsAvailable(c.Items[i].Quantity + quantity) {
				return fmt.Errorf("%w: %s has %d in stock", ErrInsufficientStock, food.Name, food.Stock)
			}
			c.Items[i].Quantity += quantity
			c.Items[i].SellingPrice = food.SellingPrice
			return nil
		}
	}

	if !food.IsAvailable(quantity) {
		return fmt.Errorf("%w: %s has %d in stock", ErrInsufficientStock, food.Name, food.Stock)
	}

	c.Items = append(c.Items, CartItem{
		FoodID:       food.ID,
		FoodName:     food.Name,
		RestaurantID: food.RestaurantID,
		Quantity:     quantity,
		SellingPrice: food.SellingPrice,
	})
	return nil
}

// SetItemQuantity replaces the quantity of an existing entry. The new quantity
// is checked against the caller-supplied current stock.
func (c *Cart) SetItemQuantity(food *Food, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidArgument)
	}
	if !food.IsAvailable(quantity) {
		return fmt.Errorf("%w: %s has %d in stock", ErrInsufficientStock, food.Name, food.Stock)
	}

	for i := range c.Items {
		if c.Items[i].FoodID == food.ID {
			c.Items[i].Quantity = quantity
			c.Items[i].SellingPrice = food.SellingPrice
			return nil
		}
	}
	return c.AddItem(food, quantity)
}

// RemoveItem deletes the entry for the food id; removing an absent item is a no-op.
func (c *Cart) RemoveItem(foodID string) {
	for i := range c.Items {
		if c.Items[i].FoodID == foodID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total sums quantity × current selling price over all entries. This is a live
// quote; the checkout engine freezes prices into order items.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.SellingPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
