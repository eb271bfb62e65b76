package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Thakshaka/inventory-order-management-system/internal/domain"
)

// MemoryStore keeps products and orders in process memory behind a single
// mutex. Check-and-decrement and status transitions run entirely under the
// lock, which gives the serialization the stock invariants require.
type MemoryStore struct {
	mu         sync.RWMutex
	products   map[uuid.UUID]*domain.Product
	productIDs []uuid.UUID
	orders     map[uuid.UUID]*domain.Order
	orderIDs   []uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[uuid.UUID]*domain.Product),
		orders:   make(map[uuid.UUID]*domain.Order),
	}
}

func (s *MemoryStore) AddProduct(product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[product.ID] = cloneProduct(product)
	s.productIDs = append(s.productIDs, product.ID)
	return nil
}

func (s *MemoryStore) GetProduct(id uuid.UUID) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "Product", ID: id}
	}
	return cloneProduct(product), nil
}

func (s *MemoryStore) DecrementStock(id uuid.UUID, amount int) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "Product", ID: id}
	}
	if amount > product.StockQuantity {
		return nil, &domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   amount,
			Available:   product.StockQuantity,
		}
	}

	product.StockQuantity -= amount
	product.UpdatedAt = time.Now()
	return cloneProduct(product), nil
}

func (s *MemoryStore) IncrementStock(id uuid.UUID, amount int) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "Product", ID: id}
	}

	product.StockQuantity += amount
	product.UpdatedAt = time.Now()
	return cloneProduct(product), nil
}

func (s *MemoryStore) ListProducts(limit, offset int) ([]*domain.Product, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.productIDs)
	products := make([]*domain.Product, 0)
	for _, id := range pageIDs(s.productIDs, limit, offset) {
		products = append(products, cloneProduct(s.products[id]))
	}
	return products, total, nil
}

func (s *MemoryStore) CreateOrder(order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[order.ID] = cloneOrder(order)
	s.orderIDs = append(s.orderIDs, order.ID)
	return nil
}

func (s *MemoryStore) GetOrder(id uuid.UUID) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "Order", ID: id}
	}
	return cloneOrder(order), nil
}

func (s *MemoryStore) ListOrders(limit, offset int) ([]*domain.Order, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.orderIDs)
	orders := make([]*domain.Order, 0)
	for _, id := range pageIDs(s.orderIDs, limit, offset) {
		orders = append(orders, cloneOrder(s.orders[id]))
	}
	return orders, total, nil
}

func (s *MemoryStore) TransitionStatus(id uuid.UUID, from, to domain.OrderStatus) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "Order", ID: id}
	}
	if order.Status != from {
		return nil, &domain.InvalidTransitionError{Current: order.Status, Requested: to}
	}

	order.Status = to
	order.UpdatedAt = time.Now()
	return cloneOrder(order), nil
}

// pageIDs slices ids by creation order; limit <= 0 means no limit.
func pageIDs(ids []uuid.UUID, limit, offset int) []uuid.UUID {
	if offset < 0 {
		offset = 0
	}
	if offset > len(ids) {
		offset = len(ids)
	}
	end := len(ids)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return ids[offset:end]
}

func cloneProduct(p *domain.Product) *domain.Product {
	cp := *p
	return &cp
}

func cloneOrder(o *domain.Order) *domain.Order {
	co := *o
	co.Items = make([]domain.OrderItem, len(o.Items))
	copy(co.Items, o.Items)
	return &co
}
