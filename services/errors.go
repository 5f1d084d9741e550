package services

import (
	"fmt"
)

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// ForbiddenError reports an authorization violation, e.g. buying your own
// listing.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// InsufficientStockError reports a purchase that asked for more units than
// the listing has left. Available carries the live amount for client display.
type InsufficientStockError struct {
	FoodName  string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient quantity, only %d %s available", e.Available, e.FoodName)
}

// ConflictError reports a write that lost a uniqueness race, e.g. a retried
// send whose winning row cannot be read back.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
