package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"github.com/Thakshaka/inventory-order-management-system/internal/events"
)

// Publisher emits change events to the topic exchange. The event type is the
// routing key, so consumers can bind to catalog.* or order.* selectively.
type Publisher struct {
	client *RabbitMQClient
}

func NewPublisher(client *RabbitMQClient) *Publisher {
	return &Publisher{client: client}
}

// PublishChangeEvent retries transient broker failures before giving up;
// the caller treats the publish as best-effort either way.
func (p *Publisher) PublishChangeEvent(event events.ChangeEvent) error {
	var lastErr error

	maxRetries := p.client.config.RetryCount
	for i := 0; i < maxRetries; i++ {
		if err := p.publish(event); err != nil {
			lastErr = err
			log.WithError(err).Warnf("publish error (retry %d/%d)", i+1, maxRetries)

			if i < maxRetries-1 {
				time.Sleep(time.Second * time.Duration(i+1))
				continue
			}
		} else {
			return nil
		}
	}

	return fmt.Errorf("event publish failed after %d attempts: %w", maxRetries, lastErr)
}

func (p *Publisher) publish(event events.ChangeEvent) error {
	if !p.client.IsConnected() {
		return fmt.Errorf("no connection to RabbitMQ")
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("event serialization error: %w", err)
	}

	routingKey := string(event.EventType)

	channel := p.client.Channel()
	err = channel.Publish(
		p.client.config.Exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID.String(),
			Timestamp:    event.Timestamp,
			Headers: amqp.Table{
				"event_type": string(event.EventType),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("event publish error: %w", err)
	}

	log.WithField("routing_key", routingKey).Debug("change event published")
	return nil
}
