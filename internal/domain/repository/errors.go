package repository

import "errors"

// Sentinel errors returned by repository implementations. Services translate
// them into application errors.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrBillNotActive     = errors.New("bill is not active")
)
