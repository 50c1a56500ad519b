package queries

import (
	"errors"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves every order currently moving through the
// fulfillment flow: everything that is neither a draft nor terminal. This
// feeds the kitchen and floor dashboards.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for in-flight orders. This is a
// parameterless query.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is one in-flight order as shown on the
// dashboard.
type GetActiveOrdersQueryResponse struct {
	ID            kernel.UUID
	OrderNumber   string
	Status        string
	CreatorName   string
	Table         string
	PaymentStatus string
	TotalAmount   int64
	ItemCount     int
	CreatedAt     time.Time
}
