package commands

import (
	"errors"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/guard"
)

var ErrFinalizeOrderCommandIsNotConstructed = errors.New(
	"FinalizeOrderCommand must be created via NewFinalizeOrderCommand constructor",
)

// FinalizeOrderCommand commits a draft cart to fulfillment. The draft leaves
// the freely-overwritable Creating stage: customer-created orders go to
// Pending for staff approval, staff-created ones directly to Confirmed.
type FinalizeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFinalizeOrderCommand creates a finalization command for the given draft.
func NewFinalizeOrderCommand(orderID kernel.UUID) (FinalizeOrderCommand, error) {
	command := FinalizeOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOrderID(orderID); err != nil {
		return FinalizeOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c FinalizeOrderCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeOrderCommandIsNotConstructed)
}

// OrderID returns the draft's unique identifier.
func (c FinalizeOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *FinalizeOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
