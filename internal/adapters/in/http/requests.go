package http

import (
	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
)

// Request bodies accepted by the HTTP adapter. Enumerations travel as their
// string names and are parsed through the domain's FromString functions, so
// the wire format and the persisted format agree.

type customerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Table string `json:"table"`
	Notes string `json:"notes"`
}

func (r customerRequest) toDomain() order.CustomerInfo {
	return order.CustomerInfo{
		Name:  r.Name,
		Phone: r.Phone,
		Table: r.Table,
		Notes: r.Notes,
	}
}

type itemRequest struct {
	ProductID        string   `json:"product_id"`
	Name             string   `json:"name"`
	Price            int64    `json:"price"`
	Quantity         int      `json:"quantity"`
	SelectedSize     string   `json:"selected_size"`
	SelectedToppings []string `json:"selected_toppings"`
	Note             string   `json:"note"`
}

type syncDraftRequest struct {
	SessionKey    string          `json:"session_key"`
	Creator       string          `json:"creator"`
	CreatorName   string          `json:"creator_name"`
	Customer      customerRequest `json:"customer"`
	PaymentMethod string          `json:"payment_method"`
	Items         []itemRequest   `json:"items"`
}

func (r syncDraftRequest) itemInputs() ([]commands.ItemInput, error) {
	inputs := make([]commands.ItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			return nil, err
		}

		inputs = append(inputs, commands.ItemInput{
			ProductID:        productID,
			Name:             item.Name,
			Price:            item.Price,
			Quantity:         item.Quantity,
			SelectedSize:     item.SelectedSize,
			SelectedToppings: item.SelectedToppings,
			Note:             item.Note,
		})
	}
	return inputs, nil
}

type rejectOrderRequest struct {
	Reason string `json:"reason"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type holdOrderRequest struct {
	HoldName string `json:"hold_name"`
}

type cancelOrderRequest struct {
	Reason       string  `json:"reason"`
	ReasonType   string  `json:"reason_type"`
	RefundAmount *int64  `json:"refund_amount"`
	RefundMethod *string `json:"refund_method"`
}

type returnLineRequest struct {
	OrderItemID  string `json:"order_item_id"`
	Quantity     int    `json:"quantity"`
	RefundAmount int64  `json:"refund_amount"`
}

type returnOrderRequest struct {
	Type         string              `json:"type"`
	Reason       string              `json:"reason"`
	RefundMethod string              `json:"refund_method"`
	Notes        string              `json:"notes"`
	Lines        []returnLineRequest `json:"lines"`
}

func (r returnOrderRequest) lineInputs() ([]commands.ReturnLineInput, error) {
	lines := make([]commands.ReturnLineInput, 0, len(r.Lines))
	for _, line := range r.Lines {
		itemID, err := kernel.UUIDFromString(line.OrderItemID)
		if err != nil {
			return nil, err
		}

		lines = append(lines, commands.ReturnLineInput{
			OrderItemID:  itemID,
			Quantity:     line.Quantity,
			RefundAmount: line.RefundAmount,
		})
	}
	return lines, nil
}

type splitRequest struct {
	Name    string   `json:"name"`
	ItemIDs []string `json:"item_ids"`
}

type splitOrderRequest struct {
	Splits []splitRequest `json:"splits"`
}

func (r splitOrderRequest) splitInputs() ([]commands.SplitInput, error) {
	splits := make([]commands.SplitInput, 0, len(r.Splits))
	for _, split := range r.Splits {
		itemIDs := make([]kernel.UUID, 0, len(split.ItemIDs))
		for _, raw := range split.ItemIDs {
			id, err := kernel.UUIDFromString(raw)
			if err != nil {
				return nil, err
			}
			itemIDs = append(itemIDs, id)
		}
		splits = append(splits, commands.SplitInput{Name: split.Name, ItemIDs: itemIDs})
	}
	return splits, nil
}

type mergeOrdersRequest struct {
	OrderIDs []string `json:"order_ids"`
	Name     string   `json:"name"`
}

func (r mergeOrdersRequest) orderIDs() ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(r.OrderIDs))
	for _, raw := range r.OrderIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

type confirmPaymentRequest struct {
	Reference string `json:"reference"`
}
