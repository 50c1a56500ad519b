package order

import (
	"fmt"
	"strings"

	"pos/internal/pkg/errs"
)

// AnonymousCustomerName is the sentinel used as the creator display name
// when a customer-facing terminal supplies none.
const AnonymousCustomerName = "anonymous-customer"

// CreatorType identifies which kind of actor created an order. It
// determines the approval path: staff orders are self-approved, customer
// orders require staff verification.
type CreatorType int

const (
	// UnknownCreator represents an invalid or undefined creator type.
	UnknownCreator CreatorType = iota

	// StaffCreator marks orders created on a staff terminal.
	StaffCreator

	// CustomerCreator marks orders created on a customer-facing terminal.
	CustomerCreator
)

func getCreatorTypeStrings() map[CreatorType]string {
	return map[CreatorType]string{
		UnknownCreator:  "Unknown",
		StaffCreator:    "Staff",
		CustomerCreator: "Customer",
	}
}

// Validate checks if the CreatorType value is valid.
func (c CreatorType) Validate() error {
	if c != StaffCreator && c != CustomerCreator {
		return errs.NewValueIsInvalidErrorWithCause("creator type is invalid",
			fmt.Errorf("%d is not a valid creator type", c))
	}
	return nil
}

// String returns the human-readable name of the creator type.
func (c CreatorType) String() string {
	if str, ok := getCreatorTypeStrings()[c]; ok {
		return str
	}
	return "Unknown"
}

// CreatorTypeFromString parses a creator type name, case-insensitively.
func CreatorTypeFromString(name string) (CreatorType, error) {
	switch strings.ToLower(name) {
	case "staff":
		return StaffCreator, nil
	case "customer":
		return CustomerCreator, nil
	default:
		return UnknownCreator, errs.NewValueIsInvalidErrorWithCause("creator type is invalid",
			fmt.Errorf("%q is not a valid creator type name", name))
	}
}

// DeriveSessionKey builds the draft-session key for callers that do not
// supply an explicit session identifier. The key combines the creator type
// with the creator display name, falling back to the anonymous-customer
// sentinel so that nameless customer terminals share one cart per terminal
// type rather than failing.
func DeriveSessionKey(creator CreatorType, creatorName string) string {
	name := creatorName
	if name == "" {
		name = AnonymousCustomerName
	}
	return fmt.Sprintf("%s:%s", strings.ToLower(creator.String()), name)
}
