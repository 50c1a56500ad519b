package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
)

// ErrReturnRecordIsNotConstructed is returned when a ReturnRecord was not
// created through a factory method.
var ErrReturnRecordIsNotConstructed = errors.New("ReturnRecord must be created via Order.BuildReturn or RestoreReturnRecord")

// ErrQuantityExceedsAvailable is the unwrap target for
// QuantityExceedsAvailableError.
var ErrQuantityExceedsAvailable = errors.New("quantity exceeds available")

// QuantityExceedsAvailableError reports a return line asking for more units
// than the item still has available after prior returns.
type QuantityExceedsAvailableError struct {
	ItemID    kernel.UUID
	Requested int
	Available int
}

// NewQuantityExceedsAvailableError creates a QuantityExceedsAvailableError
// for the given line.
func NewQuantityExceedsAvailableError(itemID kernel.UUID, requested, available int) *QuantityExceedsAvailableError {
	return &QuantityExceedsAvailableError{ItemID: itemID, Requested: requested, Available: available}
}

func (e *QuantityExceedsAvailableError) Error() string {
	return fmt.Sprintf("%s: item %s has %d unit(s) left, %d requested",
		ErrQuantityExceedsAvailable, e.ItemID, e.Available, e.Requested)
}

func (e *QuantityExceedsAvailableError) Unwrap() error {
	return ErrQuantityExceedsAvailable
}

// ErrRefundExceedsItemValue is the unwrap target for
// RefundExceedsItemValueError.
var ErrRefundExceedsItemValue = errors.New("refund exceeds item value")

// RefundExceedsItemValueError reports a return line whose refund is larger
// than the returned units are worth (unit price × returned quantity).
type RefundExceedsItemValueError struct {
	ItemID kernel.UUID
	Refund kernel.Money
	Max    kernel.Money
}

// NewRefundExceedsItemValueError creates a RefundExceedsItemValueError for
// the given line.
func NewRefundExceedsItemValueError(itemID kernel.UUID, refund, maxRefund kernel.Money) *RefundExceedsItemValueError {
	return &RefundExceedsItemValueError{ItemID: itemID, Refund: refund, Max: maxRefund}
}

func (e *RefundExceedsItemValueError) Error() string {
	return fmt.Sprintf("%s: item %s allows at most %s, %s requested",
		ErrRefundExceedsItemValue, e.ItemID, e.Max, e.Refund)
}

func (e *RefundExceedsItemValueError) Unwrap() error {
	return ErrRefundExceedsItemValue
}

// ReturnType distinguishes a full return (every item at its full remaining
// quantity) from a partial one.
type ReturnType int

const (
	// UnknownReturnType represents an invalid or undefined type.
	UnknownReturnType ReturnType = iota

	// FullReturn covers every item at its full remaining quantity.
	FullReturn

	// PartialReturn covers any strict subset of items/quantities.
	PartialReturn
)

// Validate checks if the ReturnType value is valid.
func (t ReturnType) Validate() error {
	if t != FullReturn && t != PartialReturn {
		return errs.NewValueIsInvalidErrorWithCause("return type is invalid",
			fmt.Errorf("%d is not a valid return type", t))
	}
	return nil
}

// String returns the human-readable name of the return type.
func (t ReturnType) String() string {
	switch t {
	case FullReturn:
		return "Full"
	case PartialReturn:
		return "Partial"
	default:
		return "Unknown"
	}
}

// ReturnTypeFromString parses a return type name, case-insensitively.
func ReturnTypeFromString(name string) (ReturnType, error) {
	switch strings.ToLower(name) {
	case "full":
		return FullReturn, nil
	case "partial":
		return PartialReturn, nil
	default:
		return UnknownReturnType, errs.NewValueIsInvalidErrorWithCause("return type is invalid",
			fmt.Errorf("%q is not a valid return type name", name))
	}
}

// ReturnLine is one (item, returned quantity, refund) tuple of a return
// request or record.
type ReturnLine struct {
	OrderItemID  kernel.UUID
	Quantity     int
	RefundAmount kernel.Money
}

// ReturnRequest carries the caller-supplied input of a return operation.
type ReturnRequest struct {
	Type         ReturnType
	Reason       ReasonCategory
	RefundMethod RefundMethod
	Lines        []ReturnLine
	Notes        string
}

// ReturnRecord is the persisted fact of one accepted return against a
// completed order. The order itself keeps its Completed status; repeat
// partial returns accumulate as further records until every item is fully
// returned.
type ReturnRecord struct {
	id           kernel.UUID
	orderID      kernel.UUID
	returnType   ReturnType
	reason       ReasonCategory
	refundMethod RefundMethod
	lines        []ReturnLine
	notes        string
	processedBy  string
	processedAt  time.Time

	isConstructed bool
}

// RestoreReturnRecord reconstructs a return record from persistence.
func RestoreReturnRecord(
	id kernel.UUID,
	orderID kernel.UUID,
	returnType ReturnType,
	reason ReasonCategory,
	refundMethod RefundMethod,
	lines []ReturnLine,
	notes string,
	processedBy string,
	processedAt time.Time,
) (*ReturnRecord, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		returnType.Validate(),
		reason.Validate(),
		refundMethod.Validate(),
	); err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("return lines")
	}

	return &ReturnRecord{
		id:            id,
		orderID:       orderID,
		returnType:    returnType,
		reason:        reason,
		refundMethod:  refundMethod,
		lines:         append([]ReturnLine(nil), lines...),
		notes:         notes,
		processedBy:   processedBy,
		processedAt:   processedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the record was created through a factory method.
func (r *ReturnRecord) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReturnRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (r *ReturnRecord) ID() kernel.UUID {
	return r.id
}

// OrderID returns the returned-against order's identifier.
func (r *ReturnRecord) OrderID() kernel.UUID {
	return r.orderID
}

// Type returns whether this was a full or partial return.
func (r *ReturnRecord) Type() ReturnType {
	return r.returnType
}

// Reason returns the return's reason category.
func (r *ReturnRecord) Reason() ReasonCategory {
	return r.reason
}

// RefundMethod returns the channel the refund is settled through.
func (r *ReturnRecord) RefundMethod() RefundMethod {
	return r.refundMethod
}

// Lines returns a copy of the per-item return tuples.
func (r *ReturnRecord) Lines() []ReturnLine {
	return append([]ReturnLine(nil), r.lines...)
}

// Notes returns the free-text notes of the return.
func (r *ReturnRecord) Notes() string {
	return r.notes
}

// ProcessedBy returns the staff identity that processed the return.
func (r *ReturnRecord) ProcessedBy() string {
	return r.processedBy
}

// ProcessedAt returns when the return was processed.
func (r *ReturnRecord) ProcessedAt() time.Time {
	return r.processedAt
}

// TotalRefund returns the sum of the per-line refund amounts.
func (r *ReturnRecord) TotalRefund() kernel.Money {
	total := kernel.ZeroMoney()
	for _, line := range r.lines {
		total, _ = total.Add(line.RefundAmount)
	}
	return total
}

// returnedQuantity sums how many units of the given item prior return
// records already claimed.
func returnedQuantity(prior []*ReturnRecord, itemID kernel.UUID) int {
	total := 0
	for _, record := range prior {
		for _, line := range record.lines {
			if line.OrderItemID.IsEqual(itemID) {
				total += line.Quantity
			}
		}
	}
	return total
}

// BuildReturn validates a return request against this order and the returns
// already recorded for it, and produces the resulting ReturnRecord. The
// order must be Completed; its own state is not changed (a fully returned
// order stays Completed, the accumulated records tell the story).
//
// Validation, in order:
//  1. every referenced line must belong to this order
//  2. each line's quantity must not exceed the item's original quantity
//     minus quantities already returned (no double-return)
//  3. a Full return must cover every item at its full remaining quantity
//  4. each line's refund must not exceed unit price × returned quantity
//  5. the summed refund must not exceed the order total
func (o *Order) BuildReturn(
	returnID kernel.UUID,
	req ReturnRequest,
	prior []*ReturnRecord,
	processedBy string,
	now time.Time,
) (*ReturnRecord, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.status != Completed {
		return nil, errs.NewValueIsInvalidErrorWithCause("order status is invalid",
			fmt.Errorf("%s order cannot be returned, only Completed", o.status))
	}
	if err := errors.Join(
		req.Type.Validate(),
		req.Reason.Validate(),
		req.RefundMethod.Validate(),
	); err != nil {
		return nil, err
	}
	if len(req.Lines) == 0 {
		return nil, errs.NewValueIsRequiredError("return lines")
	}
	if processedBy == "" {
		return nil, errs.NewValueIsRequiredError("processed by")
	}

	remaining := make(map[kernel.UUID]int, len(o.items))
	for _, item := range o.items {
		remaining[item.ID()] = item.Quantity() - returnedQuantity(prior, item.ID())
	}

	covered := make(map[kernel.UUID]int, len(req.Lines))
	totalRefund := kernel.ZeroMoney()

	for _, line := range req.Lines {
		item, err := o.ItemByID(line.OrderItemID)
		if err != nil {
			return nil, err
		}

		if line.Quantity <= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("return quantity is invalid",
				fmt.Errorf("%d is not greater than 0", line.Quantity))
		}

		available := remaining[item.ID()] - covered[item.ID()]
		if line.Quantity > available {
			return nil, NewQuantityExceedsAvailableError(item.ID(), line.Quantity, available)
		}
		covered[item.ID()] += line.Quantity

		maxRefund, err := item.Price().MulInt(line.Quantity)
		if err != nil {
			return nil, err
		}
		if line.RefundAmount.GreaterThan(maxRefund) {
			return nil, NewRefundExceedsItemValueError(item.ID(), line.RefundAmount, maxRefund)
		}

		totalRefund, err = totalRefund.Add(line.RefundAmount)
		if err != nil {
			return nil, err
		}
	}

	if totalRefund.GreaterThan(o.totalAmount) {
		return nil, errs.NewValueIsInvalidErrorWithCause("refund amount is invalid",
			fmt.Errorf("summed refund %s exceeds order total %s", totalRefund, o.totalAmount))
	}

	if req.Type == FullReturn {
		for itemID, left := range remaining {
			if left > 0 && covered[itemID] != left {
				return nil, errs.NewValueIsInvalidErrorWithCause("return lines are invalid",
					fmt.Errorf("full return must cover item %s at its remaining quantity %d", itemID, left))
			}
		}
	}

	return RestoreReturnRecord(returnID, o.id, req.Type, req.Reason,
		req.RefundMethod, req.Lines, req.Notes, processedBy, now)
}
