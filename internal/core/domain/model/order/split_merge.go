package order

import (
	"errors"
	"fmt"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
)

// ErrPartitionMismatch is the unwrap target for PartitionMismatchError.
var ErrPartitionMismatch = errors.New("item partition mismatch")

// PartitionMismatchError reports that a split's item coverage is not an
// exact partition of the source order's items: an item was omitted,
// duplicated, or does not belong to the source.
type PartitionMismatchError struct {
	Detail string
}

// NewPartitionMismatchError creates a PartitionMismatchError with the given
// detail.
func NewPartitionMismatchError(detail string) *PartitionMismatchError {
	return &PartitionMismatchError{Detail: detail}
}

func (e *PartitionMismatchError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPartitionMismatch, e.Detail)
}

func (e *PartitionMismatchError) Unwrap() error {
	return ErrPartitionMismatch
}

// ErrIncompatibleMerge is the unwrap target for IncompatibleMergeError.
var ErrIncompatibleMerge = errors.New("orders are not eligible for merge")

// IncompatibleMergeError reports a merge source whose status makes it
// ineligible: only in-progress orders (Confirmed, Preparing, Ready) merge.
type IncompatibleMergeError struct {
	OrderID kernel.UUID
	Status  Status
}

// NewIncompatibleMergeError creates an IncompatibleMergeError for the
// offending source order.
func NewIncompatibleMergeError(orderID kernel.UUID, status Status) *IncompatibleMergeError {
	return &IncompatibleMergeError{OrderID: orderID, Status: status}
}

func (e *IncompatibleMergeError) Error() string {
	return fmt.Sprintf("%s: order %s is %s", ErrIncompatibleMerge, e.OrderID, e.Status)
}

func (e *IncompatibleMergeError) Unwrap() error {
	return ErrIncompatibleMerge
}

// SplitSpec describes one resulting order of a split: an optional
// customer-facing label and the non-empty set of source item ids it takes.
type SplitSpec struct {
	Name    string
	ItemIDs []kernel.UUID
}

// Split partitions this order's items into len(specs) new orders and
// closes the source. Items are moved by reference, never copied or
// recomputed, so the sum of the new orders' totals equals the source total
// exactly.
//
// Preconditions:
//   - at least 2 specs, each taking at least one item
//   - the specs' item ids form an exact partition of the source's items:
//     every item assigned exactly once, none omitted, none foreign
//   - the source is in progress (Confirmed, Preparing or Ready)
//
// The new orders start in Confirmed status (the source was already
// staff-approved), carry over the source's customer/table/payment-method
// context with the spec's label appended to the notes, and have fresh
// payment state. The source order ends with zero items and Cancelled
// status, its reason naming the split, so it cannot be acted on again.
//
// Split either fully succeeds or leaves the source untouched.
func (o *Order) Split(specs []SplitSpec, splitBy string, now time.Time) ([]*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if splitBy == "" {
		return nil, errs.NewValueIsRequiredError("split by")
	}
	if len(specs) < 2 {
		return nil, errs.NewValueIsInvalidErrorWithCause("splits are invalid",
			fmt.Errorf("%d split(s) given, at least 2 required", len(specs)))
	}
	if !o.status.IsHoldEligible() {
		return nil, errs.NewValueIsInvalidErrorWithCause("order status is invalid",
			fmt.Errorf("%s order cannot be split, only in-progress orders can", o.status))
	}

	byID := make(map[kernel.UUID]*Item, len(o.items))
	for _, item := range o.items {
		byID[item.ID()] = item
	}

	assigned := make(map[kernel.UUID]struct{}, len(o.items))
	grouped := make([][]*Item, len(specs))
	for i, spec := range specs {
		if len(spec.ItemIDs) == 0 {
			return nil, NewPartitionMismatchError(fmt.Sprintf("split %d takes no items", i+1))
		}
		for _, itemID := range spec.ItemIDs {
			item, ok := byID[itemID]
			if !ok {
				return nil, NewPartitionMismatchError(
					fmt.Sprintf("item %s does not belong to order %s", itemID, o.orderNumber))
			}
			if _, dup := assigned[itemID]; dup {
				return nil, NewPartitionMismatchError(
					fmt.Sprintf("item %s is assigned to more than one split", itemID))
			}
			assigned[itemID] = struct{}{}
			grouped[i] = append(grouped[i], item)
		}
	}
	if len(assigned) != len(o.items) {
		return nil, NewPartitionMismatchError(
			fmt.Sprintf("%d of %d items left unassigned", len(o.items)-len(assigned), len(o.items)))
	}

	// Validation passed; from here on the operation cannot fail.
	children := make([]*Order, len(specs))
	for i, spec := range specs {
		customer := o.customer
		if spec.Name != "" {
			customer.Notes = appendLabel(customer.Notes, fmt.Sprintf("split: %s", spec.Name))
		}

		child := &Order{
			id:            kernel.NewUUID(),
			orderNumber:   NewOrderNumber(now),
			status:        Confirmed,
			customer:      customer,
			creator:       o.creator,
			creatorName:   o.creatorName,
			paymentMethod: o.paymentMethod,
			paymentStatus: PaymentPending,
			createdAt:     now,
			updatedAt:     now,
			isConstructed: true,
		}
		child.items = grouped[i]
		_ = child.recomputeTotal()
		children[i] = child
	}

	o.detachItems()
	if err := o.closeForRestructure(fmt.Sprintf("split into %d orders", len(specs)), splitBy, now); err != nil {
		return nil, err
	}

	return children, nil
}

// MergeOrders consolidates the items of at least two in-progress orders
// into one new order and closes the sources. Items move by reference, so
// item count and total amount are exactly conserved.
//
// The merged order takes the most-advanced status among the sources (food
// already in progress must not regress), the customer/table/payment
// context of the first source, fresh payment state, and the optional
// caller-supplied display name appended to its notes. Every source ends
// Cancelled with zero items, its reason naming the merged order.
//
// Merge either fully succeeds or leaves every source untouched.
func MergeOrders(sources []*Order, mergedName, mergedBy string, now time.Time) (*Order, error) {
	if mergedBy == "" {
		return nil, errs.NewValueIsRequiredError("merged by")
	}
	if len(sources) < 2 {
		return nil, errs.NewValueIsInvalidErrorWithCause("orders are invalid",
			fmt.Errorf("%d order(s) given, at least 2 required", len(sources)))
	}

	seen := make(map[kernel.UUID]struct{}, len(sources))
	mergedStatus := Unknown
	for _, src := range sources {
		if err := src.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[src.ID()]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("orders are invalid",
				fmt.Errorf("order %s is listed more than once", src.ID()))
		}
		seen[src.ID()] = struct{}{}

		if !src.Status().IsMergeEligible() {
			return nil, NewIncompatibleMergeError(src.ID(), src.Status())
		}
		if src.Status() > mergedStatus {
			mergedStatus = src.Status()
		}
	}

	// Validation passed; from here on the operation cannot fail.
	base := sources[0]
	customer := base.customer
	if mergedName != "" {
		customer.Notes = appendLabel(customer.Notes, fmt.Sprintf("merged: %s", mergedName))
	}

	merged := &Order{
		id:            kernel.NewUUID(),
		orderNumber:   NewOrderNumber(now),
		status:        mergedStatus,
		customer:      customer,
		creator:       base.creator,
		creatorName:   base.creatorName,
		paymentMethod: base.paymentMethod,
		paymentStatus: PaymentPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	for _, src := range sources {
		merged.items = append(merged.items, src.detachItems()...)
	}
	_ = merged.recomputeTotal()

	reason := fmt.Sprintf("merged into order %s", merged.orderNumber)
	for _, src := range sources {
		if err := src.closeForRestructure(reason, mergedBy, now); err != nil {
			return nil, err
		}
	}

	return merged, nil
}

// appendLabel attaches a bracketed label to free-text notes, keeping the
// label visibly distinguishable from the original text.
func appendLabel(notes, label string) string {
	if notes == "" {
		return fmt.Sprintf("[%s]", label)
	}
	return fmt.Sprintf("%s [%s]", notes, label)
}
