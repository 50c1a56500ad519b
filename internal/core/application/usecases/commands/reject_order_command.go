package commands

import (
	"errors"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand represents a staff decision to decline a pending
// customer order. The reason is optional; a blank one falls back to the
// standard reject reason.
type RejectOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string
	token   string

	guard guard.ConstructorGuard
}

// NewRejectOrderCommand creates a rejection command for the given order.
func NewRejectOrderCommand(orderID kernel.UUID, reason, token string) (RejectOrderCommand, error) {
	command := RejectOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setToken(token),
	); err != nil {
		return RejectOrderCommand{}, err
	}

	command.reason = reason
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

// OrderID returns the order's unique identifier.
func (c RejectOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the rejection reason, possibly empty.
func (c RejectOrderCommand) Reason() string {
	return c.reason
}

// Token returns the staff access token.
func (c RejectOrderCommand) Token() string {
	return c.token
}

func (c *RejectOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RejectOrderCommand) setToken(token string) error {
	if token == "" {
		return errs.NewValueIsRequiredError("token")
	}

	c.token = token
	return nil
}
