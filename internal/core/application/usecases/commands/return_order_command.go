package commands

import (
	"errors"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"
)

var ErrReturnOrderCommandIsNotConstructed = errors.New(
	"ReturnOrderCommand must be created via NewReturnOrderCommand constructor",
)

// ReturnLineInput is one (item, quantity, refund) tuple of a return request
// as supplied by the terminal. The refund amount is in minor currency units.
type ReturnLineInput struct {
	OrderItemID  kernel.UUID
	Quantity     int
	RefundAmount int64
}

// ReturnOrderCommand records a full or partial return against a completed
// order. Quantities are validated against what prior returns left available;
// refunds are capped per line and in total.
type ReturnOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	returnType   order.ReturnType
	reason       order.ReasonCategory
	refundMethod order.RefundMethod
	lines        []ReturnLineInput
	notes        string
	token        string

	guard guard.ConstructorGuard
}

// NewReturnOrderCommand creates a return command for the given order.
func NewReturnOrderCommand(
	orderID kernel.UUID,
	returnType order.ReturnType,
	reason order.ReasonCategory,
	refundMethod order.RefundMethod,
	lines []ReturnLineInput,
	notes string,
	token string,
) (ReturnOrderCommand, error) {
	command := ReturnOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setReturnType(returnType),
		command.setReason(reason),
		command.setRefundMethod(refundMethod),
		command.setLines(lines),
		command.setToken(token),
	); err != nil {
		return ReturnOrderCommand{}, err
	}

	command.notes = notes
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReturnOrderCommand) Validate() error {
	return c.guard.Validate(ErrReturnOrderCommandIsNotConstructed)
}

// OrderID returns the order's unique identifier.
func (c ReturnOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ReturnType returns whether this is a full or partial return.
func (c ReturnOrderCommand) ReturnType() order.ReturnType {
	return c.returnType
}

// Reason returns the return reason category.
func (c ReturnOrderCommand) Reason() order.ReasonCategory {
	return c.reason
}

// RefundMethod returns the channel the refund is settled through.
func (c ReturnOrderCommand) RefundMethod() order.RefundMethod {
	return c.refundMethod
}

// Lines returns a copy of the per-item return tuples.
func (c ReturnOrderCommand) Lines() []ReturnLineInput {
	return append([]ReturnLineInput(nil), c.lines...)
}

// Notes returns the free-text notes of the return.
func (c ReturnOrderCommand) Notes() string {
	return c.notes
}

// Token returns the staff access token.
func (c ReturnOrderCommand) Token() string {
	return c.token
}

func (c *ReturnOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReturnOrderCommand) setReturnType(returnType order.ReturnType) error {
	if err := returnType.Validate(); err != nil {
		return err
	}

	c.returnType = returnType
	return nil
}

func (c *ReturnOrderCommand) setReason(reason order.ReasonCategory) error {
	if err := reason.Validate(); err != nil {
		return err
	}

	c.reason = reason
	return nil
}

func (c *ReturnOrderCommand) setRefundMethod(method order.RefundMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.refundMethod = method
	return nil
}

func (c *ReturnOrderCommand) setLines(lines []ReturnLineInput) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("return lines")
	}

	c.lines = append([]ReturnLineInput(nil), lines...)
	return nil
}

func (c *ReturnOrderCommand) setToken(token string) error {
	if token == "" {
		return errs.NewValueIsRequiredError("token")
	}

	c.token = token
	return nil
}
