package ports

import (
	"context"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their return records. Provides methods for storing, retrieving, and
// querying orders by status and draft session.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using a
	// stale-state guarded write: the row is only updated while it is still
	// in the status the aggregate was loaded with (LoadedStatus). When a
	// concurrent writer got there first, Update returns a StaleStateError
	// and the caller re-fetches and retries or surfaces the conflict.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetDraftBySessionKey retrieves the single draft (Creating status)
	// owned by the given ordering session, if any. Returns an
	// ObjectNotFoundError when the session has no draft.
	GetDraftBySessionKey(ctx context.Context, sessionKey string) (*order.Order, error)

	// GetDraftsOlderThan retrieves all drafts whose last update precedes
	// the cutoff. Used by bulk draft deletion and the TTL cleanup job.
	GetDraftsOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// DeleteByIDs removes the orders with the given identifiers together
	// with their items. Only drafts are ever deleted; finalized orders are
	// closed through the state machine instead.
	DeleteByIDs(ctx context.Context, ids []kernel.UUID) error

	// AddReturn persists a new return record.
	AddReturn(ctx context.Context, record *order.ReturnRecord) error

	// GetReturnsForOrder retrieves all return records accepted against the
	// given order, oldest first.
	GetReturnsForOrder(ctx context.Context, orderID kernel.UUID) ([]*order.ReturnRecord, error)
}
