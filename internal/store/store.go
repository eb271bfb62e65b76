package store

import (
	"github.com/google/uuid"

	"github.com/Thakshaka/inventory-order-management-system/internal/domain"
)

// CatalogStore owns Product records and their stock counts.
//
// DecrementStock is the single mutation path for stock and must behave as one
// atomic check-and-subtract per product: two concurrent calls for the same
// product may not both succeed when their combined amount exceeds the
// available stock.
type CatalogStore interface {
	AddProduct(product *domain.Product) error
	GetProduct(id uuid.UUID) (*domain.Product, error)
	DecrementStock(id uuid.UUID, amount int) (*domain.Product, error)
	// IncrementStock is the compensating half of DecrementStock, used to
	// roll back partially applied multi-item orders.
	IncrementStock(id uuid.UUID, amount int) (*domain.Product, error)
	ListProducts(limit, offset int) ([]*domain.Product, int, error)
}

// OrderStore owns Order records.
//
// TransitionStatus compares the stored status against from before writing,
// so of two callers racing on the same order exactly one observes the
// transition; the loser gets an InvalidTransitionError carrying the state it
// actually found.
type OrderStore interface {
	CreateOrder(order *domain.Order) error
	GetOrder(id uuid.UUID) (*domain.Order, error)
	ListOrders(limit, offset int) ([]*domain.Order, int, error)
	TransitionStatus(id uuid.UUID, from, to domain.OrderStatus) (*domain.Order, error)
}
