package commands

import (
	"errors"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"
)

var ErrVerifyOrderCommandIsNotConstructed = errors.New(
	"VerifyOrderCommand must be created via NewVerifyOrderCommand constructor",
)

// VerifyOrderCommand represents a staff approval of a customer-created order
// awaiting review. The access token identifies the approving staff member.
type VerifyOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	token   string

	guard guard.ConstructorGuard
}

// NewVerifyOrderCommand creates an approval command for the given order.
func NewVerifyOrderCommand(orderID kernel.UUID, token string) (VerifyOrderCommand, error) {
	command := VerifyOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setToken(token),
	); err != nil {
		return VerifyOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyOrderCommand) Validate() error {
	return c.guard.Validate(ErrVerifyOrderCommandIsNotConstructed)
}

// OrderID returns the order's unique identifier.
func (c VerifyOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Token returns the staff access token.
func (c VerifyOrderCommand) Token() string {
	return c.token
}

func (c *VerifyOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *VerifyOrderCommand) setToken(token string) error {
	if token == "" {
		return errs.NewValueIsRequiredError("token")
	}

	c.token = token
	return nil
}
