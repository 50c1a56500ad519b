package queries

import (
	"context"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads in-flight orders from the database for
// dashboard display.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for dashboard queries.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle returns all orders that are neither drafts nor terminal, oldest
// first so the kitchen works the queue in arrival order.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.status,
			o.creator_name,
			o.table_number,
			o.payment_status,
			o.total_amount,
			COUNT(i.id),
			o.created_at
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.status NOT IN (?, ?, ?)
		GROUP BY o.id, o.order_number, o.status, o.creator_name,
			o.table_number, o.payment_status, o.total_amount, o.created_at
		ORDER BY o.created_at
	`, order.Creating.String(), order.Completed.String(), order.Cancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetActiveOrdersQueryResponse, 0)

	for rows.Next() {
		var resp GetActiveOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&resp.Status,
			&resp.CreatorName,
			&resp.Table,
			&resp.PaymentStatus,
			&resp.TotalAmount,
			&resp.ItemCount,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
