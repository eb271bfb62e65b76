package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Shipped and Cancelled are terminal states.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {},
	OrderStatusCancelled: {},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine permits moving from s
// to next. Transitions are monotonic: once an order leaves Pending it never
// changes status again.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	Status    OrderStatus `json:"status" db:"status"`
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

type OrderItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	// Price snapshot at order time, preserved for historical integrity.
	PriceAtTime decimal.Decimal `json:"price_at_time" db:"price_at_time"`
}

// NewOrder builds a Pending order around an already validated item list.
// The item list is immutable after this point.
func NewOrder(items []OrderItem) *Order {
	now := time.Now()
	return &Order{
		ID:        uuid.New(),
		Status:    OrderStatusPending,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewOrderItem(productID uuid.UUID, quantity int, priceAtTime decimal.Decimal) OrderItem {
	return OrderItem{
		ID:          uuid.New(),
		ProductID:   productID,
		Quantity:    quantity,
		PriceAtTime: priceAtTime,
	}
}
