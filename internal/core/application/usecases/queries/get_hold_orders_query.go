package queries

import (
	"errors"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/guard"
)

var ErrGetHoldOrdersQueryIsNotConstructed = errors.New(
	"GetHoldOrdersQuery must be created via NewGetHoldOrdersQuery constructor",
)

// GetHoldOrdersQuery retrieves all parked orders, optionally filtered by the
// creator type that placed them.
//
// Example:
//
//	query, err := NewGetHoldOrdersQuery("staff")
//	if err != nil {
//	    return err
//	}
//
//	holds, err := handler.Handle(ctx, query)
//	for _, hold := range holds {
//	    fmt.Printf("%s held by %s\n", hold.OrderNumber, hold.HeldBy)
//	}
type GetHoldOrdersQuery struct {
	creatorFilter order.CreatorType

	guard guard.ConstructorGuard
}

// NewGetHoldOrdersQuery creates a query for parked orders. creatorFilter may
// be empty to list holds regardless of who created the order.
func NewGetHoldOrdersQuery(creatorFilter string) (GetHoldOrdersQuery, error) {
	query := GetHoldOrdersQuery{guard: guard.NewConstructorGuard()}

	if creatorFilter != "" {
		creator, err := order.CreatorTypeFromString(creatorFilter)
		if err != nil {
			return GetHoldOrdersQuery{}, err
		}
		query.creatorFilter = creator
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetHoldOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetHoldOrdersQueryIsNotConstructed)
}

// CreatorFilter returns the creator type to filter by, or UnknownCreator
// when the query spans all creators.
func (q GetHoldOrdersQuery) CreatorFilter() order.CreatorType {
	return q.creatorFilter
}

// GetHoldOrdersQueryResponse is one parked order as shown on the hold list.
type GetHoldOrdersQueryResponse struct {
	ID          kernel.UUID
	OrderNumber string
	CreatorName string
	Table       string
	HoldName    string
	HeldBy      string
	HeldAt      time.Time
	TotalAmount int64
	ItemCount   int
}
