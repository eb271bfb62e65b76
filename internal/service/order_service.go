package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Thakshaka/inventory-order-management-system/internal/domain"
	"github.com/Thakshaka/inventory-order-management-system/internal/events"
	"github.com/Thakshaka/inventory-order-management-system/internal/metrics"
	"github.com/Thakshaka/inventory-order-management-system/internal/store"
)

type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// OrderService validates and creates orders against the catalog, and
// enforces the fulfillment status machine. Order creation is all-or-nothing:
// no order exists without its stock decrements, and no decrement survives a
// failed order.
type OrderService struct {
	catalog   store.CatalogStore
	orders    store.OrderStore
	publisher events.Publisher
}

func NewOrderService(catalog store.CatalogStore, orders store.OrderStore, publisher events.Publisher) *OrderService {
	return &OrderService{
		catalog:   catalog,
		orders:    orders,
		publisher: publisher,
	}
}

// CreateOrder resolves and validates every item before touching any stock.
// Quantities for a product repeated across items are summed and checked
// together, so the aggregate can never pass item by item while overdrawing
// the product. Decrements are applied per product through the store's atomic
// check-and-subtract; if one fails because stock changed concurrently, the
// decrements already applied are compensated and the whole call fails.
func (s *OrderService) CreateOrder(items []OrderItemInput) (*domain.Order, error) {
	if len(items) == 0 {
		metrics.OrdersRejectedTotal.WithLabelValues("validation").Inc()
		return nil, domain.NewValidationError("order must contain at least one item")
	}

	required := make(map[uuid.UUID]int, len(items))
	productIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.ProductID == uuid.Nil {
			metrics.OrdersRejectedTotal.WithLabelValues("validation").Inc()
			return nil, domain.NewValidationError("product_id is required for every item")
		}
		if item.Quantity <= 0 {
			metrics.OrdersRejectedTotal.WithLabelValues("validation").Inc()
			return nil, domain.NewValidationError("item quantity must be positive, got %d", item.Quantity)
		}
		if _, seen := required[item.ProductID]; !seen {
			productIDs = append(productIDs, item.ProductID)
		}
		required[item.ProductID] += item.Quantity
	}

	// Deterministic decrement order across concurrent calls.
	sort.Slice(productIDs, func(i, j int) bool {
		return productIDs[i].String() < productIDs[j].String()
	})

	products := make(map[uuid.UUID]*domain.Product, len(productIDs))
	for _, id := range productIDs {
		product, err := s.catalog.GetProduct(id)
		if err != nil {
			metrics.OrdersRejectedTotal.WithLabelValues("not_found").Inc()
			return nil, err
		}
		if product.StockQuantity < required[id] {
			metrics.OrdersRejectedTotal.WithLabelValues("insufficient_stock").Inc()
			return nil, &domain.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   required[id],
				Available:   product.StockQuantity,
			}
		}
		products[id] = product
	}

	applied := make([]uuid.UUID, 0, len(productIDs))
	for _, id := range productIDs {
		updated, err := s.catalog.DecrementStock(id, required[id])
		if err != nil {
			// Lost a race between validation and decrement.
			s.rollbackDecrements(applied, required)
			metrics.OrdersRejectedTotal.WithLabelValues("insufficient_stock").Inc()
			return nil, err
		}
		applied = append(applied, id)
		metrics.InventoryLevel.WithLabelValues(id.String()).Set(float64(updated.StockQuantity))
	}

	orderItems := make([]domain.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = domain.NewOrderItem(item.ProductID, item.Quantity, products[item.ProductID].Price)
	}

	order := domain.NewOrder(orderItems)
	if err := s.orders.CreateOrder(order); err != nil {
		s.rollbackDecrements(applied, required)
		return nil, err
	}

	metrics.OrdersTotal.WithLabelValues(string(order.Status)).Inc()
	publishChangeEvent(s.publisher, events.OrderCreatedEvent, events.OrderCreatedPayload{Order: order})

	log.WithFields(log.Fields{
		"order_id": order.ID,
		"items":    len(order.Items),
	}).Info("order created")

	return order, nil
}

// rollbackDecrements compensates already-applied decrements after a later
// step failed, restoring the conservation invariant.
func (s *OrderService) rollbackDecrements(applied []uuid.UUID, required map[uuid.UUID]int) {
	for _, id := range applied {
		updated, err := s.catalog.IncrementStock(id, required[id])
		if err != nil {
			log.WithError(err).WithField("product_id", id).Error("compensating increment failed")
			continue
		}
		metrics.InventoryLevel.WithLabelValues(id.String()).Set(float64(updated.StockQuantity))
	}
}

func (s *OrderService) GetOrder(id uuid.UUID) (*domain.Order, error) {
	return s.orders.GetOrder(id)
}

// ListOrders returns orders in ascending creation order with their items.
func (s *OrderService) ListOrders(limit, offset int) ([]*domain.Order, int, error) {
	return s.orders.ListOrders(limit, offset)
}

// UpdateStatus applies one fulfillment transition. The store compares the
// observed status before writing, so of two callers racing on the same order
// exactly one succeeds; the loser gets an InvalidTransitionError, the same
// outcome as if it had checked first. Stock is never touched here.
func (s *OrderService) UpdateStatus(orderID uuid.UUID, next domain.OrderStatus) (*domain.Order, error) {
	if !next.Valid() {
		return nil, domain.NewValidationError("unknown order status '%s'", next)
	}

	current, err := s.orders.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, &domain.InvalidTransitionError{Current: current.Status, Requested: next}
	}

	order, err := s.orders.TransitionStatus(orderID, current.Status, next)
	if err != nil {
		return nil, err
	}

	metrics.OrdersTotal.WithLabelValues(string(next)).Inc()
	publishChangeEvent(s.publisher, events.OrderStatusChangedEvent, events.OrderStatusChangedPayload{
		OrderID:  orderID,
		Previous: current.Status,
		Current:  next,
	})

	log.WithFields(log.Fields{
		"order_id": orderID,
		"from":     current.Status,
		"to":       next,
	}).Info("order status updated")

	return order, nil
}

// MarkShipped is the common Pending → Shipped transition.
func (s *OrderService) MarkShipped(orderID uuid.UUID) (*domain.Order, error) {
	return s.UpdateStatus(orderID, domain.OrderStatusShipped)
}

// publishChangeEvent is best-effort: the mutation is already committed, so a
// broker failure is logged and swallowed.
func publishChangeEvent(publisher events.Publisher, eventType events.EventType, payload interface{}) {
	event := events.ChangeEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
	if err := publisher.PublishChangeEvent(event); err != nil {
		log.WithError(err).WithField("event_type", eventType).Warn("change event publish failed")
	}
}
