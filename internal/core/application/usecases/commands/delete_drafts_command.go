package commands

import (
	"errors"
	"time"

	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"
)

var ErrDeleteDraftsCommandIsNotConstructed = errors.New(
	"DeleteDraftsCommand must be created via NewDeleteDraftsCommand constructor",
)

// DeleteDraftsCommand requests bulk removal of abandoned drafts: every order
// still in Creating status whose last update precedes the cutoff. Finalized
// orders are never touched.
type DeleteDraftsCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewDeleteDraftsCommand creates a draft purge command for the given cutoff.
func NewDeleteDraftsCommand(cutoff time.Time) (DeleteDraftsCommand, error) {
	command := DeleteDraftsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setCutoff(cutoff); err != nil {
		return DeleteDraftsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteDraftsCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDraftsCommandIsNotConstructed)
}

// Cutoff returns the staleness boundary; drafts last updated before it are
// deleted.
func (c DeleteDraftsCommand) Cutoff() time.Time {
	return c.cutoff
}

func (c *DeleteDraftsCommand) setCutoff(cutoff time.Time) error {
	if cutoff.IsZero() {
		return errs.NewValueIsRequiredError("cutoff")
	}

	c.cutoff = cutoff
	return nil
}
