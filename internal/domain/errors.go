package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError reports malformed or out-of-range input. Caller's fault,
// never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Resource string
	ID       uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id=%s not found", e.Resource, e.ID)
}

// InsufficientStockError reports that the requested quantity exceeds the
// available stock, either at the initial check or after losing a concurrent
// decrement race. The two cases are indistinguishable to the caller.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product '%s' (id=%s): requested=%d, available=%d",
		e.ProductName, e.ProductID, e.Requested, e.Available)
}

// InvalidTransitionError reports an order status change not permitted from
// the current state.
type InvalidTransitionError struct {
	Current   OrderStatus
	Requested OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order status from '%s' to '%s'", e.Current, e.Requested)
}
