package commands

import (
	"errors"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"
)

var ErrHoldOrderCommandIsNotConstructed = errors.New(
	"HoldOrderCommand must be created via NewHoldOrderCommand constructor",
)

// HoldOrderCommand parks an in-progress order without losing any of its
// state. The optional hold name is a staff-facing label ("table 5 stepped
// out") shown on the held-orders board.
type HoldOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	holdName string
	token    string

	guard guard.ConstructorGuard
}

// NewHoldOrderCommand creates a hold command for the given order.
func NewHoldOrderCommand(orderID kernel.UUID, holdName, token string) (HoldOrderCommand, error) {
	command := HoldOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setToken(token),
	); err != nil {
		return HoldOrderCommand{}, err
	}

	command.holdName = holdName
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c HoldOrderCommand) Validate() error {
	return c.guard.Validate(ErrHoldOrderCommandIsNotConstructed)
}

// OrderID returns the order's unique identifier.
func (c HoldOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// HoldName returns the staff-facing hold label, possibly empty.
func (c HoldOrderCommand) HoldName() string {
	return c.holdName
}

// Token returns the staff access token.
func (c HoldOrderCommand) Token() string {
	return c.token
}

func (c *HoldOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *HoldOrderCommand) setToken(token string) error {
	if token == "" {
		return errs.NewValueIsRequiredError("token")
	}

	c.token = token
	return nil
}
