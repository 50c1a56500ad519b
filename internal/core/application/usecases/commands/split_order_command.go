package commands

import (
	"errors"
	"fmt"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"
)

var ErrSplitOrderCommandIsNotConstructed = errors.New(
	"SplitOrderCommand must be created via NewSplitOrderCommand constructor",
)

// SplitInput describes one resulting order of a split: an optional label
// and the item ids it takes from the source.
type SplitInput struct {
	Name    string
	ItemIDs []kernel.UUID
}

// SplitOrderCommand partitions an in-progress order into two or more new
// orders, the typical "separate checks" request. The splits must cover the
// source's items exactly.
type SplitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	splits  []SplitInput
	token   string

	guard guard.ConstructorGuard
}

// NewSplitOrderCommand creates a split command for the given order.
func NewSplitOrderCommand(orderID kernel.UUID, splits []SplitInput, token string) (SplitOrderCommand, error) {
	command := SplitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setSplits(splits),
		command.setToken(token),
	); err != nil {
		return SplitOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SplitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSplitOrderCommandIsNotConstructed)
}

// OrderID returns the source order's unique identifier.
func (c SplitOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Splits returns a copy of the requested partitions.
func (c SplitOrderCommand) Splits() []SplitInput {
	return append([]SplitInput(nil), c.splits...)
}

// Token returns the staff access token.
func (c SplitOrderCommand) Token() string {
	return c.token
}

func (c *SplitOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SplitOrderCommand) setSplits(splits []SplitInput) error {
	if len(splits) < 2 {
		return errs.NewValueIsInvalidErrorWithCause("splits are invalid",
			fmt.Errorf("%d split(s) given, at least 2 required", len(splits)))
	}

	c.splits = append([]SplitInput(nil), splits...)
	return nil
}

func (c *SplitOrderCommand) setToken(token string) error {
	if token == "" {
		return errs.NewValueIsRequiredError("token")
	}

	c.token = token
	return nil
}
