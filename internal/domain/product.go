package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The client contract carries prices as JSON numbers, not quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Price         decimal.Decimal `json:"price" db:"price"`
	StockQuantity int             `json:"stock_quantity" db:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// NewProduct validates the input and builds a fresh product. Stock is only
// mutated afterwards through the catalog store's decrement/increment paths.
func NewProduct(name string, price decimal.Decimal, stockQuantity int) (*Product, error) {
	if name == "" {
		return nil, NewValidationError("product name must not be empty")
	}
	if !price.IsPositive() {
		return nil, NewValidationError("product price must be positive, got %s", price)
	}
	if !price.Equal(price.Round(2)) {
		return nil, NewValidationError("product price must have at most 2 decimal places, got %s", price)
	}
	if stockQuantity < 0 {
		return nil, NewValidationError("stock_quantity must not be negative, got %d", stockQuantity)
	}

	now := time.Now()
	return &Product{
		ID:            uuid.New(),
		Name:          name,
		Price:         price,
		StockQuantity: stockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
