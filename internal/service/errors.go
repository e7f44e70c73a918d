package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid order status transition")

	ErrMachineMismatch      = errors.New("vending machine does not match")
	ErrOrderDetailsMismatch = errors.New("order details do not match")
	ErrItemCountMismatch    = errors.New("item count does not match")

	// ErrTooManyConflicts means the stock CAS loop exhausted its retries
	// against concurrent writers.
	ErrTooManyConflicts = errors.New("too many concurrent stock updates")
)

// InsufficientStockError names the first item whose decrement would go
// negative. No part of the request is applied when it is returned.
type InsufficientStockError struct {
	ItemName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for item: %s", e.ItemName)
}

// ItemNotFoundError names a canonical order item with no counterpart in the
// scanned payload.
type ItemNotFoundError struct {
	ItemName string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item not found in the QR code: %s", e.ItemName)
}

// ItemMismatchError names an item whose quantity or price differs between the
// canonical order and the scanned payload.
type ItemMismatchError struct {
	ItemName string
}

func (e *ItemMismatchError) Error() string {
	return fmt.Sprintf("item details do not match for %s", e.ItemName)
}
