package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Thakshaka/inventory-order-management-system/internal/domain"
)

// PostgresStore backs the catalog and order stores with Postgres. Stock
// decrements rely on a guarded UPDATE (stock_quantity >= amount) so the
// check-and-subtract happens in a single statement; status transitions use
// the same compare-and-set shape on the status column.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) AddProduct(product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, price, stock_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.Exec(
		query,
		product.ID,
		product.Name,
		product.Price,
		product.StockQuantity,
		product.CreatedAt,
		product.UpdatedAt,
	)
	return err
}

func (s *PostgresStore) GetProduct(id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, name, price, stock_quantity, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	product := &domain.Product{}
	err := s.db.QueryRow(query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.StockQuantity,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Resource: "Product", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *PostgresStore) DecrementStock(id uuid.UUID, amount int) (*domain.Product, error) {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity - $2, updated_at = now()
		WHERE id = $1 AND stock_quantity >= $2
	`

	result, err := s.db.Exec(query, id, amount)
	if err != nil {
		return nil, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Either the product is missing or the guard rejected the amount.
		product, err := s.GetProduct(id)
		if err != nil {
			return nil, err
		}
		return nil, &domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   amount,
			Available:   product.StockQuantity,
		}
	}

	return s.GetProduct(id)
}

func (s *PostgresStore) IncrementStock(id uuid.UUID, amount int) (*domain.Product, error) {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity + $2, updated_at = now()
		WHERE id = $1
	`

	result, err := s.db.Exec(query, id, amount)
	if err != nil {
		return nil, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, &domain.NotFoundError{Resource: "Product", ID: id}
	}

	return s.GetProduct(id)
}

func (s *PostgresStore) ListProducts(limit, offset int) ([]*domain.Product, int, error) {
	var total int
	if err := s.db.QueryRow(`SELECT count(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, name, price, stock_quantity, created_at, updated_at
		FROM products
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.Query(query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]*domain.Product, 0, limit)
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&product.StockQuantity,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, product)
	}
	return products, total, rows.Err()
}

func (s *PostgresStore) CreateOrder(order *domain.Order) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.Exec(orderQuery, order.ID, order.Status, order.CreatedAt, order.UpdatedAt); err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, position, quantity, price_at_time)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for position, item := range order.Items {
		if _, err := tx.Exec(itemQuery, item.ID, order.ID, item.ProductID, position, item.Quantity, item.PriceAtTime); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) GetOrder(id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	order := &domain.Order{}
	err := s.db.QueryRow(query, id).Scan(&order.ID, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Resource: "Order", ID: id}
	}
	if err != nil {
		return nil, err
	}

	itemsByOrder, err := s.loadItems([]uuid.UUID{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = itemsByOrder[order.ID]
	return order, nil
}

func (s *PostgresStore) ListOrders(limit, offset int) ([]*domain.Order, int, error) {
	var total int
	if err := s.db.QueryRow(`SELECT count(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, status, created_at, updated_at
		FROM orders
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.Query(query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, limit)
	orderIDs := make([]uuid.UUID, 0, limit)
	for rows.Next() {
		order := &domain.Order{}
		if err := rows.Scan(&order.ID, &order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
		orderIDs = append(orderIDs, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	itemsByOrder, err := s.loadItems(orderIDs)
	if err != nil {
		return nil, 0, err
	}
	for _, order := range orders {
		order.Items = itemsByOrder[order.ID]
	}
	return orders, total, nil
}

func (s *PostgresStore) TransitionStatus(id uuid.UUID, from, to domain.OrderStatus) (*domain.Order, error) {
	query := `
		UPDATE orders
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
	`

	result, err := s.db.Exec(query, id, from, to)
	if err != nil {
		return nil, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		order, err := s.GetOrder(id)
		if err != nil {
			return nil, err
		}
		return nil, &domain.InvalidTransitionError{Current: order.Status, Requested: to}
	}

	return s.GetOrder(id)
}

func (s *PostgresStore) loadItems(orderIDs []uuid.UUID) (map[uuid.UUID][]domain.OrderItem, error) {
	itemsByOrder := make(map[uuid.UUID][]domain.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return itemsByOrder, nil
	}

	ids := make([]string, len(orderIDs))
	for i, id := range orderIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT id, order_id, product_id, quantity, price_at_time
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY position
	`

	rows, err := s.db.Query(query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("order items query error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		var orderID uuid.UUID
		if err := rows.Scan(&item.ID, &orderID, &item.ProductID, &item.Quantity, &item.PriceAtTime); err != nil {
			return nil, err
		}
		itemsByOrder[orderID] = append(itemsByOrder[orderID], item)
	}
	return itemsByOrder, rows.Err()
}
