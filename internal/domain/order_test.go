package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusShipped))
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCancelled))

	assert.False(t, OrderStatusShipped.CanTransitionTo(OrderStatusPending))
	assert.False(t, OrderStatusShipped.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusShipped))
	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusPending))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, OrderStatusPending.Valid())
	assert.True(t, OrderStatusShipped.Valid())
	assert.True(t, OrderStatusCancelled.Valid())
	assert.False(t, OrderStatus("Delivered").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestNewProductValidation(t *testing.T) {
	_, err := NewProduct("", decimal.NewFromFloat(9.99), 1)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = NewProduct("Widget", decimal.Zero, 1)
	require.ErrorAs(t, err, &validationErr)

	_, err = NewProduct("Widget", decimal.NewFromFloat(-1), 1)
	require.ErrorAs(t, err, &validationErr)

	_, err = NewProduct("Widget", decimal.NewFromFloat(9.99), -1)
	require.ErrorAs(t, err, &validationErr)

	// sub-cent precision is rejected, not rounded
	_, err = NewProduct("Widget", decimal.RequireFromString("9.999"), 1)
	require.ErrorAs(t, err, &validationErr)

	// trailing zeros beyond 2dp are still a 2dp amount
	trailing, err := NewProduct("Widget", decimal.RequireFromString("9.990"), 1)
	require.NoError(t, err)
	assert.True(t, trailing.Price.Equal(decimal.NewFromFloat(9.99)))

	product, err := NewProduct("Widget", decimal.NewFromFloat(29.99), 100)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, "Widget", product.Name)
	assert.Equal(t, 100, product.StockQuantity)
	assert.True(t, product.Price.Equal(decimal.NewFromFloat(29.99)))
}

func TestNewOrderStartsPending(t *testing.T) {
	item := NewOrderItem(uuid.New(), 3, decimal.NewFromFloat(9.99))
	order := NewOrder([]OrderItem{item})

	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, item.ProductID, order.Items[0].ProductID)
	assert.False(t, order.CreatedAt.IsZero())
}
