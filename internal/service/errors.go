package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Not-found sentinels, mapped to 404 by the handlers.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrSaleNotFound     = errors.New("sale not found")
	ErrCreditNotFound   = errors.New("credit not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")
)

// Conflict sentinels, mapped to 409 by the handlers.
var (
	ErrDuplicateSKU        = errors.New("a product with this SKU already exists")
	ErrDuplicateCategory   = errors.New("a category with this name already exists")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrSaleAlreadyRefunded = errors.New("sale is already refunded")
)

// InvalidInputError marks malformed request values caught past binding
// (identifiers, date strings). Handlers map it to 400; anything else
// unrecognized is a 500 with a generic body.
type InvalidInputError struct {
	Msg string
}

func (e *InvalidInputError) Error() string { return e.Msg }

func invalidInputf(format string, args ...interface{}) error {
	return &InvalidInputError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientStockError is always surfaced to the end user verbatim — it is
// actionable (which product, how much short) and never silently clamped.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// Actor identifies the authenticated user performing a mutation, carried into
// the activity trail.
type Actor struct {
	ID   uuid.UUID
	Name string
}
