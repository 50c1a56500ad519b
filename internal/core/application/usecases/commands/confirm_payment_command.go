package commands

import (
	"errors"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand records the outcome of a payment attempt. For card
// and QR payments the reference identifies the charge at the external
// provider and is verified before the order is marked paid; cash needs no
// reference.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	reference string

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a payment confirmation command.
func NewConfirmPaymentCommand(orderID kernel.UUID, reference string) (ConfirmPaymentCommand, error) {
	command := ConfirmPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOrderID(orderID); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	command.reference = reference
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// OrderID returns the order's unique identifier.
func (c ConfirmPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reference returns the provider-side charge reference, possibly empty for
// cash payments.
func (c ConfirmPaymentCommand) Reference() string {
	return c.reference
}

func (c *ConfirmPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
