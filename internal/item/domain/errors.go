package domain

import "errors"

var (
	// ErrItemNotFound is returned when an item id or product code does not resolve
	ErrItemNotFound = errors.New("item not found")

	// ErrInsufficientStock is returned when a decrement asks for more than is available
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrDuplicateProductCode is returned when a product code is already taken
	ErrDuplicateProductCode = errors.New("product code already exists")
)
