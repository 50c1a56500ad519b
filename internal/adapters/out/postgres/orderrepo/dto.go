// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and their relational
// representation.
package orderrepo

import (
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row of an order aggregate. Enumerations are
// stored in their string form so that the stale-state guard and the raw
// read-side queries can match on readable values. Timestamps are managed by
// the domain, not by GORM.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber string    `gorm:"index"`
	Status      string    `gorm:"index"`
	Creator     string
	CreatorName string
	SessionKey  string `gorm:"index"`

	CustomerName  string
	CustomerPhone string
	TableNumber   string
	CustomerNotes string

	PaymentMethod string
	PaymentStatus string
	PaidAt        *time.Time
	TotalAmount   int64

	HoldName  string
	HeldBy    string
	HeldAt    *time.Time
	ResumedBy string
	ResumedAt *time.Time

	CancelReason     string
	CancelReasonType string
	RefundAmount     *int64
	RefundMethod     *string
	CancelledBy      string
	CancelledAt      *time.Time

	ConfirmedBy     string
	ConfirmedByName string
	ConfirmedAt     *time.Time

	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`

	Items []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is the database row of one order line.
type ItemDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;index"`
	ProductID        uuid.UUID `gorm:"type:uuid"`
	Name             string
	Price            int64
	Quantity         int
	Subtotal         int64
	SelectedSize     string
	SelectedToppings []string `gorm:"serializer:json"`
	Note             string
}

// TableName overrides GORM's default naming to use "order_items".
func (ItemDTO) TableName() string {
	return "order_items"
}

// ReturnDTO is the database row of one accepted return.
type ReturnDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	ReturnType   string
	Reason       string
	RefundMethod string
	Notes        string
	ProcessedBy  string
	ProcessedAt  time.Time

	Lines []ReturnLineDTO `gorm:"foreignKey:ReturnID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "order_returns".
func (ReturnDTO) TableName() string {
	return "order_returns"
}

// ReturnLineDTO is one (item, quantity, refund) tuple of a return.
type ReturnLineDTO struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	ReturnID     uuid.UUID `gorm:"type:uuid;index"`
	OrderItemID  uuid.UUID `gorm:"type:uuid"`
	Quantity     int
	RefundAmount int64
}

// TableName overrides GORM's default naming to use "order_return_lines".
func (ReturnLineDTO) TableName() string {
	return "order_return_lines"
}

// fromDomain converts an order aggregate to its database representation,
// flattening the optional hold, confirmation and cancellation records into
// nullable columns.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:            aggregate.ID().Bytes(),
		OrderNumber:   aggregate.OrderNumber(),
		Status:        aggregate.Status().String(),
		Creator:       aggregate.Creator().String(),
		CreatorName:   aggregate.CreatorName(),
		SessionKey:    aggregate.SessionKey(),
		CustomerName:  aggregate.Customer().Name,
		CustomerPhone: aggregate.Customer().Phone,
		TableNumber:   aggregate.Customer().Table,
		CustomerNotes: aggregate.Customer().Notes,
		PaymentMethod: aggregate.PaymentMethod().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		PaidAt:        aggregate.PaidAt(),
		TotalAmount:   aggregate.TotalAmount().Amount(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
		Items:         itemsFromDomain(aggregate),
	}

	if hold := aggregate.Hold(); hold != nil {
		heldAt := hold.HeldAt
		dto.HoldName = hold.Name
		dto.HeldBy = hold.HeldBy
		dto.HeldAt = &heldAt
		dto.ResumedBy = hold.ResumedBy
		dto.ResumedAt = hold.ResumedAt
	}

	if confirmation := aggregate.Confirmation(); confirmation != nil {
		confirmedAt := confirmation.ConfirmedAt
		dto.ConfirmedBy = confirmation.ConfirmedBy
		dto.ConfirmedByName = confirmation.ConfirmedByName
		dto.ConfirmedAt = &confirmedAt
	}

	if cancellation := aggregate.Cancellation(); cancellation != nil {
		cancelledAt := cancellation.CancelledAt
		dto.CancelReason = cancellation.Reason
		dto.CancelReasonType = cancellation.ReasonType.String()
		dto.CancelledBy = cancellation.CancelledBy
		dto.CancelledAt = &cancelledAt

		if cancellation.RefundAmount != nil {
			amount := cancellation.RefundAmount.Amount()
			method := cancellation.RefundMethod.String()
			dto.RefundAmount = &amount
			dto.RefundMethod = &method
		}
	}

	return dto
}

func itemsFromDomain(aggregate *order.Order) []ItemDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:               item.ID().Bytes(),
			OrderID:          aggregate.ID().Bytes(),
			ProductID:        item.ProductID().Bytes(),
			Name:             item.Name(),
			Price:            item.Price().Amount(),
			Quantity:         item.Quantity(),
			Subtotal:         item.Subtotal().Amount(),
			SelectedSize:     item.SelectedSize(),
			SelectedToppings: item.SelectedToppings(),
			Note:             item.Note(),
		})
	}
	return items
}

// toDomain reconstructs the order aggregate from its database row using
// RestoreOrder, which re-validates the persisted state.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	creator, err := order.CreatorTypeFromString(dto.Creator)
	if err != nil {
		return nil, err
	}

	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	params := order.RestoreOrderParams{
		ID:          id,
		OrderNumber: dto.OrderNumber,
		Status:      status,
		Items:       items,
		TotalAmount: total,
		Customer: order.CustomerInfo{
			Name:  dto.CustomerName,
			Phone: dto.CustomerPhone,
			Table: dto.TableNumber,
			Notes: dto.CustomerNotes,
		},
		Creator:       creator,
		CreatorName:   dto.CreatorName,
		SessionKey:    dto.SessionKey,
		PaymentMethod: paymentMethod,
		PaymentStatus: paymentStatus,
		PaidAt:        dto.PaidAt,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	}

	if dto.HeldAt != nil {
		params.Hold = &order.HoldInfo{
			Name:      dto.HoldName,
			HeldBy:    dto.HeldBy,
			HeldAt:    *dto.HeldAt,
			ResumedBy: dto.ResumedBy,
			ResumedAt: dto.ResumedAt,
		}
	}

	if dto.ConfirmedAt != nil {
		params.Confirmation = &order.Confirmation{
			ConfirmedBy:     dto.ConfirmedBy,
			ConfirmedByName: dto.ConfirmedByName,
			ConfirmedAt:     *dto.ConfirmedAt,
		}
	}

	if dto.CancelledAt != nil {
		cancellation, cancelErr := cancellationToDomain(dto)
		if cancelErr != nil {
			return nil, cancelErr
		}
		params.Cancellation = cancellation
	}

	return order.RestoreOrder(params)
}

func cancellationToDomain(dto OrderDTO) (*order.Cancellation, error) {
	reasonType, err := order.ReasonCategoryFromString(dto.CancelReasonType)
	if err != nil {
		return nil, err
	}

	cancellation := &order.Cancellation{
		Reason:      dto.CancelReason,
		ReasonType:  reasonType,
		CancelledBy: dto.CancelledBy,
		CancelledAt: *dto.CancelledAt,
	}

	if dto.RefundAmount != nil {
		amount, moneyErr := kernel.NewMoney(*dto.RefundAmount)
		if moneyErr != nil {
			return nil, moneyErr
		}

		method, methodErr := order.RefundMethodFromString(*dto.RefundMethod)
		if methodErr != nil {
			return nil, methodErr
		}

		cancellation.RefundAmount = &amount
		cancellation.RefundMethod = &method
	}

	return cancellation, nil
}

func itemsToDomain(dtos []ItemDTO) ([]*order.Item, error) {
	items := make([]*order.Item, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}

		productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
		if err != nil {
			return nil, err
		}

		price, err := kernel.NewMoney(dto.Price)
		if err != nil {
			return nil, err
		}

		subtotal, err := kernel.NewMoney(dto.Subtotal)
		if err != nil {
			return nil, err
		}

		item, err := order.RestoreItem(id, productID, dto.Name, price, dto.Quantity,
			subtotal, dto.SelectedSize, dto.SelectedToppings, dto.Note)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}
	return items, nil
}

// returnFromDomain converts a return record to its database representation.
func returnFromDomain(record *order.ReturnRecord) ReturnDTO {
	lines := make([]ReturnLineDTO, 0, len(record.Lines()))
	for _, line := range record.Lines() {
		lines = append(lines, ReturnLineDTO{
			ReturnID:     record.ID().Bytes(),
			OrderItemID:  line.OrderItemID.Bytes(),
			Quantity:     line.Quantity,
			RefundAmount: line.RefundAmount.Amount(),
		})
	}

	return ReturnDTO{
		ID:           record.ID().Bytes(),
		OrderID:      record.OrderID().Bytes(),
		ReturnType:   record.Type().String(),
		Reason:       record.Reason().String(),
		RefundMethod: record.RefundMethod().String(),
		Notes:        record.Notes(),
		ProcessedBy:  record.ProcessedBy(),
		ProcessedAt:  record.ProcessedAt(),
		Lines:        lines,
	}
}

// returnToDomain reconstructs a return record from its database row.
func returnToDomain(dto ReturnDTO) (*order.ReturnRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	returnType, err := order.ReturnTypeFromString(dto.ReturnType)
	if err != nil {
		return nil, err
	}

	reason, err := order.ReasonCategoryFromString(dto.Reason)
	if err != nil {
		return nil, err
	}

	refundMethod, err := order.RefundMethodFromString(dto.RefundMethod)
	if err != nil {
		return nil, err
	}

	lines := make([]order.ReturnLine, 0, len(dto.Lines))
	for _, line := range dto.Lines {
		itemID, lineErr := kernel.UUIDFromBytes(line.OrderItemID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		refund, lineErr := kernel.NewMoney(line.RefundAmount)
		if lineErr != nil {
			return nil, lineErr
		}

		lines = append(lines, order.ReturnLine{
			OrderItemID:  itemID,
			Quantity:     line.Quantity,
			RefundAmount: refund,
		})
	}

	return order.RestoreReturnRecord(id, orderID, returnType, reason, refundMethod,
		lines, dto.Notes, dto.ProcessedBy, dto.ProcessedAt)
}
