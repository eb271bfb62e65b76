package store

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thakshaka/inventory-order-management-system/internal/domain"
)

func newTestProduct(t *testing.T, name string, stock int) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(name, decimal.NewFromFloat(9.99), stock)
	require.NoError(t, err)
	return product
}

func TestMemoryStoreProductLifecycle(t *testing.T) {
	s := NewMemoryStore()

	first := newTestProduct(t, "Widget", 10)
	second := newTestProduct(t, "Gadget", 5)
	require.NoError(t, s.AddProduct(first))
	require.NoError(t, s.AddProduct(second))

	got, err := s.GetProduct(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, 10, got.StockQuantity)

	// creation order
	products, total, err := s.ListProducts(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, products, 2)
	assert.Equal(t, first.ID, products[0].ID)
	assert.Equal(t, second.ID, products[1].ID)

	_, err = s.GetProduct(uuid.New())
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestMemoryStoreListProductsPaging(t *testing.T) {
	s := NewMemoryStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.AddProduct(newTestProduct(t, "Item", 1)))
	}

	products, total, err := s.ListProducts(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, products, 2)

	products, _, err = s.ListProducts(10, 4)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	products, _, err = s.ListProducts(10, 99)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestMemoryStoreDecrementStock(t *testing.T) {
	s := NewMemoryStore()
	product := newTestProduct(t, "Widget", 10)
	require.NoError(t, s.AddProduct(product))

	updated, err := s.DecrementStock(product.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.StockQuantity)

	_, err = s.DecrementStock(product.ID, 7)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 7, stockErr.Requested)
	assert.Equal(t, 6, stockErr.Available)

	// failed decrement leaves stock untouched
	got, err := s.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.StockQuantity)

	restored, err := s.IncrementStock(product.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 10, restored.StockQuantity)
}

func TestMemoryStoreConcurrentDecrements(t *testing.T) {
	s := NewMemoryStore()
	product := newTestProduct(t, "Widget", 100)
	require.NoError(t, s.AddProduct(product))

	const workers = 50
	var wg sync.WaitGroup
	failures := make(chan error, workers)

	// 50 workers each taking 3 units against 100 available: at most 33 can win.
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.DecrementStock(product.ID, 3); err != nil {
				failures <- err
			}
		}()
	}
	wg.Wait()
	close(failures)

	failed := 0
	for err := range failures {
		var stockErr *domain.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		failed++
	}

	got, err := s.GetProduct(product.ID)
	require.NoError(t, err)
	succeeded := workers - failed
	assert.Equal(t, 100-succeeded*3, got.StockQuantity)
	assert.GreaterOrEqual(t, got.StockQuantity, 0)
	assert.Equal(t, 33, succeeded)
}

func TestMemoryStoreTransitionStatus(t *testing.T) {
	s := NewMemoryStore()
	order := domain.NewOrder([]domain.OrderItem{
		domain.NewOrderItem(uuid.New(), 1, decimal.NewFromFloat(9.99)),
	})
	require.NoError(t, s.CreateOrder(order))

	updated, err := s.TransitionStatus(order.ID, domain.OrderStatusPending, domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, updated.Status)

	_, err = s.TransitionStatus(order.ID, domain.OrderStatusPending, domain.OrderStatusShipped)
	var transitionErr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, domain.OrderStatusShipped, transitionErr.Current)

	_, err = s.TransitionStatus(uuid.New(), domain.OrderStatusPending, domain.OrderStatusShipped)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestMemoryStoreConcurrentTransitions(t *testing.T) {
	s := NewMemoryStore()
	order := domain.NewOrder([]domain.OrderItem{
		domain.NewOrderItem(uuid.New(), 1, decimal.NewFromFloat(9.99)),
	})
	require.NoError(t, s.CreateOrder(order))

	const callers = 10
	var wg sync.WaitGroup
	wins := make(chan struct{}, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.TransitionStatus(order.ID, domain.OrderStatusPending, domain.OrderStatusShipped); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	assert.Len(t, wins, 1)

	got, err := s.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, got.Status)
}

func TestMemoryStoreOrderImmutability(t *testing.T) {
	s := NewMemoryStore()
	order := domain.NewOrder([]domain.OrderItem{
		domain.NewOrderItem(uuid.New(), 2, decimal.NewFromFloat(9.99)),
	})
	require.NoError(t, s.CreateOrder(order))

	// mutating the returned copy must not leak into the store
	got, err := s.GetOrder(order.ID)
	require.NoError(t, err)
	got.Items[0].Quantity = 999
	got.Status = domain.OrderStatusCancelled

	fresh, err := s.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Items[0].Quantity)
	assert.Equal(t, domain.OrderStatusPending, fresh.Status)
}
