package errors

import "fmt"

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation is returned when validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrConflict is returned when a write conflicts with existing state
// (duplicate email, stale cart version)
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "conflict"
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrForbidden is returned when an authenticated caller lacks the required role
type ErrForbidden struct {
	Message string
}

func (e *ErrForbidden) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "forbidden"
}

// ErrInsufficientStock is returned when a requested quantity exceeds the
// product's current stock. Requested carries the quantity that was asked for,
// Available what the catalog currently holds.
type ErrInsufficientStock struct {
	ProductID int64
	Requested int
	Available int
}

func (e *ErrInsufficientStock) Error() string {
	return fmt.Sprintf("cannot add %d items of product %d: only %d in stock", e.Requested, e.ProductID, e.Available)
}

// ErrInvalidTransition is returned when an order status change is attempted
// outside its allowed window (cancel after packing, return before shipping)
type ErrInvalidTransition struct {
	Message string
}

func (e *ErrInvalidTransition) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "invalid status transition"
}
