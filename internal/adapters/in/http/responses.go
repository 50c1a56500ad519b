package http

import (
	"time"

	"pos/internal/core/application/usecases/queries"
	"pos/internal/core/domain/model/order"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type customerResponse struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Table string `json:"table,omitempty"`
	Notes string `json:"notes,omitempty"`
}

type itemResponse struct {
	ID               string   `json:"id"`
	ProductID        string   `json:"product_id"`
	Name             string   `json:"name"`
	Price            int64    `json:"price"`
	Quantity         int      `json:"quantity"`
	Subtotal         int64    `json:"subtotal"`
	SelectedSize     string   `json:"selected_size,omitempty"`
	SelectedToppings []string `json:"selected_toppings,omitempty"`
	Note             string   `json:"note,omitempty"`
}

type holdResponse struct {
	Name      string     `json:"name,omitempty"`
	HeldBy    string     `json:"held_by"`
	HeldAt    time.Time  `json:"held_at"`
	ResumedBy string     `json:"resumed_by,omitempty"`
	ResumedAt *time.Time `json:"resumed_at,omitempty"`
}

type confirmationResponse struct {
	ConfirmedBy     string    `json:"confirmed_by"`
	ConfirmedByName string    `json:"confirmed_by_name,omitempty"`
	ConfirmedAt     time.Time `json:"confirmed_at"`
}

type cancellationResponse struct {
	Reason       string    `json:"reason"`
	ReasonType   string    `json:"reason_type"`
	RefundAmount *int64    `json:"refund_amount,omitempty"`
	RefundMethod *string   `json:"refund_method,omitempty"`
	CancelledBy  string    `json:"cancelled_by"`
	CancelledAt  time.Time `json:"cancelled_at"`
}

type orderResponse struct {
	ID            string                `json:"id"`
	OrderNumber   string                `json:"order_number"`
	Status        string                `json:"status"`
	Creator       string                `json:"creator"`
	CreatorName   string                `json:"creator_name,omitempty"`
	SessionKey    string                `json:"session_key,omitempty"`
	Customer      customerResponse      `json:"customer"`
	PaymentMethod string                `json:"payment_method"`
	PaymentStatus string                `json:"payment_status"`
	PaidAt        *time.Time            `json:"paid_at,omitempty"`
	TotalAmount   int64                 `json:"total_amount"`
	Items         []itemResponse        `json:"items"`
	Hold          *holdResponse         `json:"hold,omitempty"`
	Confirmation  *confirmationResponse `json:"confirmation,omitempty"`
	Cancellation  *cancellationResponse `json:"cancellation,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

func orderToResponse(o *order.Order) orderResponse {
	items := make([]itemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, itemResponse{
			ID:               item.ID().String(),
			ProductID:        item.ProductID().String(),
			Name:             item.Name(),
			Price:            item.Price().Amount(),
			Quantity:         item.Quantity(),
			Subtotal:         item.Subtotal().Amount(),
			SelectedSize:     item.SelectedSize(),
			SelectedToppings: item.SelectedToppings(),
			Note:             item.Note(),
		})
	}

	response := orderResponse{
		ID:          o.ID().String(),
		OrderNumber: o.OrderNumber(),
		Status:      o.Status().String(),
		Creator:     o.Creator().String(),
		CreatorName: o.CreatorName(),
		SessionKey:  o.SessionKey(),
		Customer: customerResponse{
			Name:  o.Customer().Name,
			Phone: o.Customer().Phone,
			Table: o.Customer().Table,
			Notes: o.Customer().Notes,
		},
		PaymentMethod: o.PaymentMethod().String(),
		PaymentStatus: o.PaymentStatus().String(),
		PaidAt:        o.PaidAt(),
		TotalAmount:   o.TotalAmount().Amount(),
		Items:         items,
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}

	if hold := o.Hold(); hold != nil {
		response.Hold = &holdResponse{
			Name:      hold.Name,
			HeldBy:    hold.HeldBy,
			HeldAt:    hold.HeldAt,
			ResumedBy: hold.ResumedBy,
			ResumedAt: hold.ResumedAt,
		}
	}

	if confirmation := o.Confirmation(); confirmation != nil {
		response.Confirmation = &confirmationResponse{
			ConfirmedBy:     confirmation.ConfirmedBy,
			ConfirmedByName: confirmation.ConfirmedByName,
			ConfirmedAt:     confirmation.ConfirmedAt,
		}
	}

	if cancellation := o.Cancellation(); cancellation != nil {
		resp := &cancellationResponse{
			Reason:      cancellation.Reason,
			ReasonType:  cancellation.ReasonType.String(),
			CancelledBy: cancellation.CancelledBy,
			CancelledAt: cancellation.CancelledAt,
		}
		if cancellation.RefundAmount != nil {
			amount := cancellation.RefundAmount.Amount()
			method := cancellation.RefundMethod.String()
			resp.RefundAmount = &amount
			resp.RefundMethod = &method
		}
		response.Cancellation = resp
	}

	return response
}

func ordersToResponse(orders []*order.Order) []orderResponse {
	responses := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, orderToResponse(o))
	}
	return responses
}

type returnLineResponse struct {
	OrderItemID  string `json:"order_item_id"`
	Quantity     int    `json:"quantity"`
	RefundAmount int64  `json:"refund_amount"`
}

type returnResponse struct {
	ID           string               `json:"id"`
	OrderID      string               `json:"order_id"`
	Type         string               `json:"type"`
	Reason       string               `json:"reason"`
	RefundMethod string               `json:"refund_method"`
	Notes        string               `json:"notes,omitempty"`
	Lines        []returnLineResponse `json:"lines"`
	TotalRefund  int64                `json:"total_refund"`
	ProcessedBy  string               `json:"processed_by"`
	ProcessedAt  time.Time            `json:"processed_at"`
}

func returnToResponse(record *order.ReturnRecord) returnResponse {
	lines := make([]returnLineResponse, 0, len(record.Lines()))
	for _, line := range record.Lines() {
		lines = append(lines, returnLineResponse{
			OrderItemID:  line.OrderItemID.String(),
			Quantity:     line.Quantity,
			RefundAmount: line.RefundAmount.Amount(),
		})
	}

	return returnResponse{
		ID:           record.ID().String(),
		OrderID:      record.OrderID().String(),
		Type:         record.Type().String(),
		Reason:       record.Reason().String(),
		RefundMethod: record.RefundMethod().String(),
		Notes:        record.Notes(),
		Lines:        lines,
		TotalRefund:  record.TotalRefund().Amount(),
		ProcessedBy:  record.ProcessedBy(),
		ProcessedAt:  record.ProcessedAt(),
	}
}

type holdOrderSummaryResponse struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"order_number"`
	CreatorName string    `json:"creator_name,omitempty"`
	Table       string    `json:"table,omitempty"`
	HoldName    string    `json:"hold_name,omitempty"`
	HeldBy      string    `json:"held_by"`
	HeldAt      time.Time `json:"held_at"`
	TotalAmount int64     `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
}

func holdOrdersToResponse(rows []queries.GetHoldOrdersQueryResponse) []holdOrderSummaryResponse {
	responses := make([]holdOrderSummaryResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, holdOrderSummaryResponse{
			ID:          row.ID.String(),
			OrderNumber: row.OrderNumber,
			CreatorName: row.CreatorName,
			Table:       row.Table,
			HoldName:    row.HoldName,
			HeldBy:      row.HeldBy,
			HeldAt:      row.HeldAt,
			TotalAmount: row.TotalAmount,
			ItemCount:   row.ItemCount,
		})
	}
	return responses
}

type activeOrderSummaryResponse struct {
	ID            string    `json:"id"`
	OrderNumber   string    `json:"order_number"`
	Status        string    `json:"status"`
	CreatorName   string    `json:"creator_name,omitempty"`
	Table         string    `json:"table,omitempty"`
	PaymentStatus string    `json:"payment_status"`
	TotalAmount   int64     `json:"total_amount"`
	ItemCount     int       `json:"item_count"`
	CreatedAt     time.Time `json:"created_at"`
}

func activeOrdersToResponse(rows []queries.GetActiveOrdersQueryResponse) []activeOrderSummaryResponse {
	responses := make([]activeOrderSummaryResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, activeOrderSummaryResponse{
			ID:            row.ID.String(),
			OrderNumber:   row.OrderNumber,
			Status:        row.Status,
			CreatorName:   row.CreatorName,
			Table:         row.Table,
			PaymentStatus: row.PaymentStatus,
			TotalAmount:   row.TotalAmount,
			ItemCount:     row.ItemCount,
			CreatedAt:     row.CreatedAt,
		})
	}
	return responses
}
