package order

import (
	"errors"
	"fmt"

	"pos/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct business workflow.
//
// State transitions:
//
//	Creating ──┬──> Pending ───> Confirmed ──> Preparing ──> Ready ──> Completed
//	           │       ^             │             │           │
//	           └───────│──> Confirmed│             │           │
//	                   │             v             v           v
//	                   └────────── Hold <──────────┴───────────┘
//
// Cancellation is reachable from every non-terminal state. Completed and
// Cancelled are terminal. Creating finalizes to Pending for customer-created
// orders (staff approval required) and directly to Confirmed for
// staff-created orders.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Creating is the draft state: an in-progress cart that is freely
	// overwritable and not yet committed to fulfillment.
	Creating

	// Pending indicates a customer-created order awaiting staff approval,
	// or a resumed order awaiting re-progression.
	Pending

	// Confirmed indicates the order has been approved for fulfillment.
	Confirmed

	// Preparing indicates the kitchen is working on the order.
	Preparing

	// Ready indicates the order is prepared and awaiting handover.
	Ready

	// Hold indicates the order is parked; items and totals are untouched
	// until it is resumed.
	Hold

	// Completed indicates the order has been handed over. Terminal, except
	// that post-completion returns may be recorded against it.
	Completed

	// Cancelled indicates the order was terminated before completion.
	// Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string
// representations. All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Creating:  "Creating",
		Pending:   "Pending",
		Confirmed: "Confirmed",
		Preparing: "Preparing",
		Ready:     "Ready",
		Hold:      "Hold",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Creating:  "Creating",
		Pending:   "Pending",
		Confirmed: "Confirmed",
		Preparing: "Preparing",
		Ready:     "Ready",
		Hold:      "Hold",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// getAllowedTransitions returns the full transition table of the order
// state machine. Every status change in the system passes through this
// table; cancellation is listed explicitly for each non-terminal source.
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Creating:  {Pending, Confirmed, Cancelled},
		Pending:   {Confirmed, Cancelled},
		Confirmed: {Preparing, Cancelled, Hold},
		Preparing: {Ready, Cancelled, Hold},
		Ready:     {Completed, Cancelled, Hold},
		Hold:      {Pending, Cancelled},
		Completed: {},
		Cancelled: {},
	}
}

// ErrInvalidTransition is the unwrap target for InvalidTransitionError.
// Callers classify state-machine rejections with errors.Is against it.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a state-machine rejection, naming the
// attempted source and target statuses so the caller can correct the
// request.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the
// attempted from -> to move.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values. Implements fmt.Stringer and
// is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status name as produced by String.
// Returns an error for unrecognized or invalid names; "Unknown" is not
// accepted.
func StatusFromString(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status name", name))
}

// CanTransitionTo checks whether the state machine permits moving from the
// current status to target, without performing the transition.
//
// Returns nil if the move is allowed, or an InvalidTransitionError naming
// the attempted source and target otherwise.
func (s Status) CanTransitionTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == target {
			return nil
		}
	}

	return NewInvalidTransitionError(s, target)
}

// TransitionTo performs a guarded transition to target.
//
// Returns:
//   - (target, nil) on a valid transition
//   - (Unknown, *InvalidTransitionError) if the move is not in the table
//
// This method is the single chokepoint used by the Order aggregate for
// every status change.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.CanTransitionTo(target); err != nil {
		return Unknown, err
	}
	return target, nil
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsHoldEligible reports whether an order in this status may be parked.
// Only orders already in progress qualify: not drafts, not pending
// approval, not terminal.
func (s Status) IsHoldEligible() bool {
	return s == Confirmed || s == Preparing || s == Ready
}

// IsMergeEligible reports whether an order in this status may participate
// in a merge. The eligible set matches hold eligibility: in-progress
// orders only.
func (s Status) IsMergeEligible() bool {
	return s.IsHoldEligible()
}
