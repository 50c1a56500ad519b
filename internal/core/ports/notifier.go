package ports

import (
	"context"
	"time"
)

// EventKind names a change-notification event published after a successful
// order operation.
type EventKind string

const (
	EventOrderCreated       EventKind = "order_created"
	EventOrderUpdated       EventKind = "order_updated"
	EventOrderStatusChanged EventKind = "order_status_changed"
	EventOrderVerified      EventKind = "order_verified"
	EventOrderHeld          EventKind = "order_held"
	EventOrderResumed       EventKind = "order_resumed"
	EventOrderCancelled     EventKind = "order_cancelled"
	EventOrderReturned      EventKind = "order_returned"
	EventOrderSplit         EventKind = "order_split"
	EventOrdersMerged       EventKind = "orders_merged"
	EventPaymentConfirmed   EventKind = "payment_confirmed"
	EventDraftsDeleted      EventKind = "drafts_deleted"
)

// Event is a change notification emitted after a state change has been
// committed. It identifies the affected order and carries a kind-specific
// payload; consumers that only care that something changed can ignore the
// payload entirely.
type Event struct {
	Kind        EventKind      `json:"kind"`
	OrderID     string         `json:"order_id,omitempty"`
	OrderNumber string         `json:"order_number,omitempty"`
	Status      string         `json:"status,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Payload     map[string]any `json:"payload,omitempty"`
}

// Notifier publishes change events to interested consumers (kitchen
// displays, customer screens, reporting). Publication happens after the
// owning transaction commits: a failed publish is logged and never rolls
// the operation back.
type Notifier interface {
	// Publish sends one event. Implementations must be safe for
	// concurrent use.
	Publish(ctx context.Context, event Event) error

	// Close releases the underlying connection.
	Close() error
}
