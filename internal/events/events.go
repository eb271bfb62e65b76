package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/Thakshaka/inventory-order-management-system/internal/domain"
)

type EventType string

const (
	ProductCreatedEvent     EventType = "catalog.product.created"
	OrderCreatedEvent       EventType = "order.created"
	OrderStatusChangedEvent EventType = "order.status.changed"
)

// ChangeEvent is emitted after every successful mutating operation so
// consumers can re-query instead of polling.
type ChangeEvent struct {
	ID        uuid.UUID   `json:"id"`
	EventType EventType   `json:"event_type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

type ProductCreatedPayload struct {
	Product *domain.Product `json:"product"`
}

type OrderCreatedPayload struct {
	Order *domain.Order `json:"order"`
}

type OrderStatusChangedPayload struct {
	OrderID  uuid.UUID          `json:"order_id"`
	Previous domain.OrderStatus `json:"previous"`
	Current  domain.OrderStatus `json:"current"`
}

type Publisher interface {
	PublishChangeEvent(event ChangeEvent) error
}

// NopPublisher drops events. Used when no broker is configured and in tests.
type NopPublisher struct{}

func (NopPublisher) PublishChangeEvent(ChangeEvent) error { return nil }
