package order

import (
	"fmt"
	"strings"
	"time"

	"pos/internal/core/domain/model/kernel"

	"pos/internal/pkg/errs"
)

// DefaultRejectReason is recorded when staff reject a pending order without
// supplying a reason.
const DefaultRejectReason = "rejected by staff"

// ReasonCategory classifies why an order was cancelled or returned. The set
// is fixed; free-text detail travels in the accompanying reason field.
type ReasonCategory int

const (
	// UnknownReason represents an invalid or undefined category.
	UnknownReason ReasonCategory = iota

	// StockShortage: an ingredient or product ran out.
	StockShortage

	// CustomerRequest: the customer asked for the cancellation or return.
	CustomerRequest

	// SystemError: a POS or kitchen mistake.
	SystemError

	// OtherReason: anything else, including system-generated closures
	// produced by split and merge.
	OtherReason
)

func getReasonCategoryStrings() map[ReasonCategory]string {
	return map[ReasonCategory]string{
		UnknownReason:   "Unknown",
		StockShortage:   "StockShortage",
		CustomerRequest: "CustomerRequest",
		SystemError:     "SystemError",
		OtherReason:     "Other",
	}
}

// Validate checks if the ReasonCategory value is valid.
func (c ReasonCategory) Validate() error {
	switch c {
	case StockShortage, CustomerRequest, SystemError, OtherReason:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("reason category is invalid",
			fmt.Errorf("%d is not a valid reason category", c))
	}
}

// String returns the human-readable name of the reason category.
func (c ReasonCategory) String() string {
	if str, ok := getReasonCategoryStrings()[c]; ok {
		return str
	}
	return "Unknown"
}

// ReasonCategoryFromString parses a reason category name,
// case-insensitively.
func ReasonCategoryFromString(name string) (ReasonCategory, error) {
	switch strings.ToLower(name) {
	case "stockshortage", "stock_shortage":
		return StockShortage, nil
	case "customerrequest", "customer_request":
		return CustomerRequest, nil
	case "systemerror", "system_error":
		return SystemError, nil
	case "other":
		return OtherReason, nil
	default:
		return UnknownReason, errs.NewValueIsInvalidErrorWithCause("reason category is invalid",
			fmt.Errorf("%q is not a valid reason category name", name))
	}
}

// Cancellation records why and how an order was terminated. It is set
// exactly when the order transitions to Cancelled and is immutable
// afterwards. RefundAmount and RefundMethod are nil when no refund
// obligation exists (the order was never successfully paid).
type Cancellation struct {
	Reason       string
	ReasonType   ReasonCategory
	RefundAmount *kernel.Money
	RefundMethod *RefundMethod
	CancelledBy  string
	CancelledAt  time.Time
}

// CancellationRequest carries the caller-supplied cancellation input.
// RefundAmount and RefundMethod are optional; the refund policy fills in
// defaults for paid orders and discards them entirely for unpaid ones.
type CancellationRequest struct {
	Reason       string
	ReasonType   ReasonCategory
	RefundAmount *kernel.Money
	RefundMethod *RefundMethod
}

func (r CancellationRequest) validate() error {
	if strings.TrimSpace(r.Reason) == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}
	if err := r.ReasonType.Validate(); err != nil {
		return err
	}
	if r.RefundAmount != nil {
		if err := r.RefundAmount.Validate(); err != nil {
			return err
		}
	}
	if r.RefundMethod != nil {
		if err := r.RefundMethod.Validate(); err != nil {
			return err
		}
	}
	return nil
}
