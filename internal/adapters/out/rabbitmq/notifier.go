// Package rabbitmq publishes order change events to a RabbitMQ topic
// exchange. Kitchen displays, customer screens and reporting consumers bind
// their own queues with the routing keys they care about.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pos/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchange       = "pos.events"
	publishTimeout = 5 * time.Second
)

// Notifier implements ports.Notifier on top of an AMQP connection. A mutex
// serializes publishes because AMQP channels are not safe for concurrent
// writes.
type Notifier struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *slog.Logger
	mu     sync.Mutex
}

// NewNotifier connects to RabbitMQ and declares the durable events exchange.
func NewNotifier(url string, logger *slog.Logger) (*Notifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &Notifier{
		conn:   conn,
		ch:     ch,
		logger: logger,
	}, nil
}

// Publish sends one event as a persistent JSON message. The routing key is
// derived from the event kind so consumers can bind selectively, for example
// "order.order_status_changed" or "order.#".
func (n *Notifier) Publish(ctx context.Context, event ports.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.Kind, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	n.mu.Lock()
	defer n.mu.Unlock()

	err = n.ch.PublishWithContext(ctx,
		exchange,
		routingKey(event.Kind),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    event.OccurredAt,
		})
	if err != nil {
		return fmt.Errorf("publish event %s: %w", event.Kind, err)
	}

	n.logger.Debug("event published",
		"kind", string(event.Kind),
		"order_id", event.OrderID)
	return nil
}

// Close releases the channel and the connection.
func (n *Notifier) Close() error {
	if n.ch != nil && !n.ch.IsClosed() {
		if err := n.ch.Close(); err != nil {
			return fmt.Errorf("close rabbitmq channel: %w", err)
		}
	}

	if n.conn != nil && !n.conn.IsClosed() {
		if err := n.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %w", err)
		}
	}
	return nil
}

func routingKey(kind ports.EventKind) string {
	return "order." + string(kind)
}
