package domain

import "errors"

// Typed failure kinds for the checkout and inventory engine. Callers match
// them with errors.Is; adapters wrap them with context via fmt.Errorf %w.
var (
	ErrNotFound                = errors.New("not found")
	ErrInvalidArgument         = errors.New("invalid argument")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrInsufficientPoints      = errors.New("insufficient loyalty points")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrCodeExpired             = errors.New("discount code expired")
	ErrCodeAlreadyUsed         = errors.New("discount code already used")
	ErrCodeNotOwned            = errors.New("discount code belongs to another customer")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
