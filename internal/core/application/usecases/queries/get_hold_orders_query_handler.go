package queries

import (
	"context"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetHoldOrdersQueryHandler reads parked orders straight from the database,
// bypassing the aggregate. The hold list is a display concern; no business
// rules apply on the way out.
type GetHoldOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetHoldOrdersQueryHandler creates a handler for hold-list queries.
func NewGetHoldOrdersQueryHandler(db *gorm.DB) GetHoldOrdersQueryHandler {
	return GetHoldOrdersQueryHandler{db: db}
}

// Handle returns all orders currently in Hold status, oldest hold first.
func (h GetHoldOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetHoldOrdersQuery,
) ([]GetHoldOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			o.id,
			o.order_number,
			o.creator_name,
			o.table_number,
			o.hold_name,
			o.held_by,
			o.held_at,
			o.total_amount,
			COUNT(i.id)
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.status = ?
	`
	args := []any{order.Hold.String()}

	if query.CreatorFilter() != order.UnknownCreator {
		sql += " AND o.creator = ?"
		args = append(args, query.CreatorFilter().String())
	}

	sql += `
		GROUP BY o.id, o.order_number, o.creator_name, o.table_number,
			o.hold_name, o.held_by, o.held_at, o.total_amount
		ORDER BY o.held_at
	`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holds := make([]GetHoldOrdersQueryResponse, 0)

	for rows.Next() {
		var resp GetHoldOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&resp.CreatorName,
			&resp.Table,
			&resp.HoldName,
			&resp.HeldBy,
			&resp.HeldAt,
			&resp.TotalAmount,
			&resp.ItemCount,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		holds = append(holds, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return holds, nil
}
