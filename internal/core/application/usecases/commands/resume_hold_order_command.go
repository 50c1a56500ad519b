package commands

import (
	"errors"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"
)

var ErrResumeHoldOrderCommandIsNotConstructed = errors.New(
	"ResumeHoldOrderCommand must be created via NewResumeHoldOrderCommand constructor",
)

// ResumeHoldOrderCommand brings a parked order back into the active flow.
type ResumeHoldOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	token   string

	guard guard.ConstructorGuard
}

// NewResumeHoldOrderCommand creates a resume command for the given order.
func NewResumeHoldOrderCommand(orderID kernel.UUID, token string) (ResumeHoldOrderCommand, error) {
	command := ResumeHoldOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setToken(token),
	); err != nil {
		return ResumeHoldOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ResumeHoldOrderCommand) Validate() error {
	return c.guard.Validate(ErrResumeHoldOrderCommandIsNotConstructed)
}

// OrderID returns the order's unique identifier.
func (c ResumeHoldOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Token returns the staff access token.
func (c ResumeHoldOrderCommand) Token() string {
	return c.token
}

func (c *ResumeHoldOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ResumeHoldOrderCommand) setToken(token string) error {
	if token == "" {
		return errs.NewValueIsRequiredError("token")
	}

	c.token = token
	return nil
}
