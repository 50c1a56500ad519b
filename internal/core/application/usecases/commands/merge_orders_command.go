package commands

import (
	"errors"
	"fmt"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"
)

var ErrMergeOrdersCommandIsNotConstructed = errors.New(
	"MergeOrdersCommand must be created via NewMergeOrdersCommand constructor",
)

// MergeOrdersCommand consolidates two or more in-progress orders into one,
// the typical "put these tables on one check" request. The optional merged
// name labels the resulting order.
type MergeOrdersCommand struct { //nolint:recvcheck //using for validation
	orderIDs   []kernel.UUID
	mergedName string
	token      string

	guard guard.ConstructorGuard
}

// NewMergeOrdersCommand creates a merge command for the given source orders.
func NewMergeOrdersCommand(orderIDs []kernel.UUID, mergedName, token string) (MergeOrdersCommand, error) {
	command := MergeOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderIDs(orderIDs),
		command.setToken(token),
	); err != nil {
		return MergeOrdersCommand{}, err
	}

	command.mergedName = mergedName
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c MergeOrdersCommand) Validate() error {
	return c.guard.Validate(ErrMergeOrdersCommandIsNotConstructed)
}

// OrderIDs returns a copy of the source order identifiers.
func (c MergeOrdersCommand) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.orderIDs...)
}

// MergedName returns the label for the merged order, possibly empty.
func (c MergeOrdersCommand) MergedName() string {
	return c.mergedName
}

// Token returns the staff access token.
func (c MergeOrdersCommand) Token() string {
	return c.token
}

func (c *MergeOrdersCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) < 2 {
		return errs.NewValueIsInvalidErrorWithCause("orders are invalid",
			fmt.Errorf("%d order(s) given, at least 2 required", len(orderIDs)))
	}

	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = append([]kernel.UUID(nil), orderIDs...)
	return nil
}

func (c *MergeOrdersCommand) setToken(token string) error {
	if token == "" {
		return errs.NewValueIsRequiredError("token")
	}

	c.token = token
	return nil
}
