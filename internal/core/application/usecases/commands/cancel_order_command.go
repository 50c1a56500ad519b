package commands

import (
	"errors"
	"strings"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand terminates an order from any non-terminal status. The
// refund fields are optional: for paid orders the domain defaults a missing
// amount to the full total and a missing method to the payment method's
// refund channel; for unpaid orders they are discarded.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	reason       string
	reasonType   order.ReasonCategory
	refundAmount *kernel.Money
	refundMethod *order.RefundMethod
	token        string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a cancellation command for the given order.
// refundAmount and refundMethod may be nil.
func NewCancelOrderCommand(
	orderID kernel.UUID,
	reason string,
	reasonType order.ReasonCategory,
	refundAmount *kernel.Money,
	refundMethod *order.RefundMethod,
	token string,
) (CancelOrderCommand, error) {
	command := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setReason(reason),
		command.setReasonType(reasonType),
		command.setToken(token),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	command.refundAmount = refundAmount
	command.refundMethod = refundMethod

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order's unique identifier.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the free-text cancellation reason.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

// ReasonType returns the cancellation reason category.
func (c CancelOrderCommand) ReasonType() order.ReasonCategory {
	return c.reasonType
}

// RefundAmount returns the explicit refund amount, or nil for the default.
func (c CancelOrderCommand) RefundAmount() *kernel.Money {
	return c.refundAmount
}

// RefundMethod returns the explicit refund method, or nil for the default.
func (c CancelOrderCommand) RefundMethod() *order.RefundMethod {
	return c.refundMethod
}

// Token returns the staff access token.
func (c CancelOrderCommand) Token() string {
	return c.token
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}

	c.reason = reason
	return nil
}

func (c *CancelOrderCommand) setReasonType(reasonType order.ReasonCategory) error {
	if err := reasonType.Validate(); err != nil {
		return err
	}

	c.reasonType = reasonType
	return nil
}

func (c *CancelOrderCommand) setToken(token string) error {
	if token == "" {
		return errs.NewValueIsRequiredError("token")
	}

	c.token = token
	return nil
}
