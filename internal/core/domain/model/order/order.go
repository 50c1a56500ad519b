package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through one of the factory methods. This ensures all orders
	// are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewDraftOrder, NewOrder or RestoreOrder")
)

// HoldInfo records why and by whom an order was parked. It is set when the
// order transitions to Hold; on resume the audit fields are filled in
// rather than the record being erased, so the last hold remains traceable.
type HoldInfo struct {
	Name      string
	HeldBy    string
	HeldAt    time.Time
	ResumedBy string
	ResumedAt *time.Time
}

// Confirmation records the staff identity that approved a customer-created
// order, set when the order transitions from Pending to Confirmed.
type Confirmation struct {
	ConfirmedBy     string
	ConfirmedByName string
	ConfirmedAt     time.Time
}

// CustomerInfo carries the optional customer-facing context of an order.
type CustomerInfo struct {
	Name  string
	Phone string
	Table string
	Notes string
}

// Order is the aggregate root of the order lifecycle engine. It owns its
// items exclusively, enforces the status state machine on every change, and
// keeps its total equal to the sum of its item subtotals.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-blank order number
//   - Every status change passes the transition table (status.go)
//   - totalAmount equals the sum of item subtotals after every recompute
//   - Per-state metadata (hold, confirmation, cancellation) is present
//     exactly when the status makes it meaningful
//   - Can only be created through a factory method
//
// Persistence notes: the status observed when the aggregate was loaded is
// retained (LoadedStatus) so the repository can perform the stale-state
// guarded write described in the ports package.
type Order struct {
	id          kernel.UUID
	orderNumber string
	status      Status

	// loadedStatus is the persisted status at load time; Unknown for
	// aggregates that have never been stored. The repository conditions
	// its update on it.
	loadedStatus Status

	items       []*Item
	totalAmount kernel.Money

	customer CustomerInfo

	creator     CreatorType
	creatorName string

	// sessionKey identifies the ordering session that owns this cart while
	// the order is a draft; creator type/name are display metadata only.
	sessionKey string

	paymentMethod PaymentMethod
	paymentStatus PaymentStatus
	paidAt        *time.Time

	hold         *HoldInfo
	confirmation *Confirmation
	cancellation *Cancellation

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewDraftOrder creates an order in Creating status representing an
// in-progress cart. An empty item set is allowed: a cleared cart is a
// legitimate draft with a zero total.
//
// When sessionKey is blank it is derived from the creator type and name
// (see DeriveSessionKey), preserving the legacy session identity for
// terminals that do not issue explicit session identifiers.
func NewDraftOrder(
	id kernel.UUID,
	orderNumber string,
	creator CreatorType,
	creatorName string,
	sessionKey string,
	customer CustomerInfo,
	paymentMethod PaymentMethod,
	items []*Item,
	now time.Time,
) (*Order, error) {
	o, err := newOrder(id, orderNumber, creator, creatorName, sessionKey, customer, paymentMethod, items, now)
	if err != nil {
		return nil, err
	}

	o.status = Creating
	return o, nil
}

// NewOrder creates an order already finalized for fulfillment, bypassing
// the draft stage: Pending for customer-created orders (staff approval
// required) or Confirmed for staff-created ones (self-approved). At least
// one item is required.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	creator CreatorType,
	creatorName string,
	customer CustomerInfo,
	paymentMethod PaymentMethod,
	items []*Item,
	now time.Time,
) (*Order, error) {
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("order items")
	}

	o, err := newOrder(id, orderNumber, creator, creatorName, "", customer, paymentMethod, items, now)
	if err != nil {
		return nil, err
	}

	o.status = finalizedStatusFor(creator)
	return o, nil
}

func newOrder(
	id kernel.UUID,
	orderNumber string,
	creator CreatorType,
	creatorName string,
	sessionKey string,
	customer CustomerInfo,
	paymentMethod PaymentMethod,
	items []*Item,
	now time.Time,
) (*Order, error) {
	o := &Order{
		paymentStatus: PaymentPending,
		customer:      customer,
		creatorName:   creatorName,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCreator(creator),
		o.setPaymentMethod(paymentMethod),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if sessionKey == "" {
		sessionKey = DeriveSessionKey(o.creator, o.creatorName)
	}
	o.sessionKey = sessionKey

	if err := o.recomputeTotal(); err != nil {
		return nil, err
	}

	return o, nil
}

// finalizedStatusFor returns the status an order enters when it leaves the
// draft stage: customer orders await staff approval, staff orders are
// self-approved.
func finalizedStatusFor(creator CreatorType) Status {
	if creator == CustomerCreator {
		return Pending
	}
	return Confirmed
}

// RestoreOrderParams carries the persisted state needed to reconstruct an
// Order aggregate.
type RestoreOrderParams struct {
	ID            kernel.UUID
	OrderNumber   string
	Status        Status
	Items         []*Item
	TotalAmount   kernel.Money
	Customer      CustomerInfo
	Creator       CreatorType
	CreatorName   string
	SessionKey    string
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	PaidAt        *time.Time
	Hold          *HoldInfo
	Confirmation  *Confirmation
	Cancellation  *Cancellation
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RestoreOrder reconstructs an Order from persistence. Unlike the creation
// factories it accepts any valid status and keeps the stored total rather
// than recomputing it (a closed-out split/merge source legitimately holds a
// non-zero total with zero items). The restored status is retained as the
// load snapshot for the repository's stale-state guard.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	o := &Order{
		customer:      params.Customer,
		creatorName:   params.CreatorName,
		sessionKey:    params.SessionKey,
		paidAt:        params.PaidAt,
		hold:          params.Hold,
		confirmation:  params.Confirmation,
		cancellation:  params.Cancellation,
		createdAt:     params.CreatedAt,
		updatedAt:     params.UpdatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setOrderNumber(params.OrderNumber),
		o.setCreator(params.Creator),
		o.setPaymentMethod(params.PaymentMethod),
		o.setItems(params.Items),
		params.Status.Validate(),
		params.PaymentStatus.Validate(),
		params.TotalAmount.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = params.Status
	o.loadedStatus = params.Status
	o.paymentStatus = params.PaymentStatus
	o.totalAmount = params.TotalAmount

	if err := o.validateStateDetails(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. Call it when reconstructing orders from persistence to
// ensure data integrity.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-readable order number, stable for the
// order's life.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// LoadedStatus returns the persisted status observed when the aggregate was
// loaded, or Unknown for aggregates that have never been stored. The
// repository uses it for the stale-state guarded write.
func (o *Order) LoadedStatus() Status {
	return o.loadedStatus
}

// Items returns the order's lines. The returned slice is a copy; the Item
// pointers are the owned lines themselves.
func (o *Order) Items() []*Item {
	return append([]*Item(nil), o.items...)
}

// ItemByID returns the owned line with the given id, or an ObjectNotFound
// error if no such line belongs to this order.
func (o *Order) ItemByID(id kernel.UUID) (*Item, error) {
	for _, item := range o.items {
		if item.ID().IsEqual(id) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("orderItem", id.String())
}

// TotalAmount returns the order total (sum of item subtotals at the time of
// the last recompute).
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// Customer returns the optional customer-facing context.
func (o *Order) Customer() CustomerInfo {
	return o.customer
}

// Creator returns the type of actor that created the order.
func (o *Order) Creator() CreatorType {
	return o.creator
}

// CreatorName returns the creator's display name, possibly empty.
func (o *Order) CreatorName() string {
	return o.creatorName
}

// SessionKey returns the ordering-session identifier that owns this cart
// while the order is a draft.
func (o *Order) SessionKey() string {
	return o.sessionKey
}

// PaymentMethod returns how the order is (to be) paid.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// PaymentStatus returns whether the order has been paid.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// PaidAt returns when payment succeeded, or nil.
func (o *Order) PaidAt() *time.Time {
	return o.paidAt
}

// Hold returns the hold record, or nil if the order was never parked.
func (o *Order) Hold() *HoldInfo {
	return o.hold
}

// Confirmation returns the staff approval stamp, or nil.
func (o *Order) Confirmation() *Confirmation {
	return o.confirmation
}

// Cancellation returns the cancellation record, or nil while the order is
// not cancelled.
func (o *Order) Cancellation() *Cancellation {
	return o.cancellation
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last-mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ReplaceItems swaps the draft's entire item set and customer context for
// the supplied ones and recomputes the total. This is the draft-sync
// "current cart" upsert: it is only legal while the order is in Creating
// status, and an empty set is allowed (cleared cart, total zero).
func (o *Order) ReplaceItems(items []*Item, customer CustomerInfo, now time.Time) error {
	if o.status != Creating {
		return NewInvalidTransitionError(o.status, Creating)
	}

	if err := o.setItems(items); err != nil {
		return err
	}

	o.customer = customer
	if err := o.recomputeTotal(); err != nil {
		return err
	}

	o.touch(now)
	return nil
}

// Finalize commits a draft to fulfillment: Creating -> Pending for
// customer-created orders, Creating -> Confirmed for staff-created ones.
// Unlike draft sync, an empty cart is rejected here.
func (o *Order) Finalize(now time.Time) error {
	if len(o.items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}

	if err := o.transitionTo(finalizedStatusFor(o.creator)); err != nil {
		return err
	}

	o.touch(now)
	return nil
}

// Verify approves a customer-created order awaiting staff approval:
// Pending -> Confirmed, stamping the confirmer identity and time.
func (o *Order) Verify(confirmerID, confirmerName string, now time.Time) error {
	if confirmerID == "" {
		return errs.NewValueIsRequiredError("confirmer id")
	}

	if err := o.transitionTo(Confirmed); err != nil {
		return err
	}

	o.confirmation = &Confirmation{
		ConfirmedBy:     confirmerID,
		ConfirmedByName: confirmerName,
		ConfirmedAt:     now,
	}
	o.touch(now)
	return nil
}

// Reject declines a pending order: Pending -> Cancelled, recording the
// supplied reason or DefaultRejectReason when it is blank. The standard
// refund policy applies: an already-paid order records a full default
// refund.
func (o *Order) Reject(reason, rejectedBy string, now time.Time) error {
	if o.status != Pending {
		return NewInvalidTransitionError(o.status, Cancelled)
	}

	if strings.TrimSpace(reason) == "" {
		reason = DefaultRejectReason
	}

	return o.Cancel(CancellationRequest{
		Reason:     reason,
		ReasonType: OtherReason,
	}, rejectedBy, now)
}

// Advance moves the order one step forward through the fulfillment flow.
// Only the forward statuses Confirmed, Preparing, Ready and Completed are
// accepted, and the move must satisfy the transition table.
func (o *Order) Advance(target Status, now time.Time) error {
	switch target {
	case Confirmed, Preparing, Ready, Completed:
	default:
		return NewInvalidTransitionError(o.status, target)
	}

	if err := o.transitionTo(target); err != nil {
		return err
	}

	o.touch(now)
	return nil
}

// PlaceOnHold parks an in-progress order (Confirmed, Preparing or Ready),
// storing who held it and why. Items and totals are untouched.
func (o *Order) PlaceOnHold(holdName, heldBy string, now time.Time) error {
	if heldBy == "" {
		return errs.NewValueIsRequiredError("held by")
	}

	if err := o.transitionTo(Hold); err != nil {
		return err
	}

	o.hold = &HoldInfo{
		Name:   holdName,
		HeldBy: heldBy,
		HeldAt: now,
	}
	o.touch(now)
	return nil
}

// ResumeFromHold restores a parked order: Hold -> Pending, from which staff
// re-progress it. The hold record is kept with the resume audit filled in
// rather than erased.
func (o *Order) ResumeFromHold(resumedBy string, now time.Time) error {
	if resumedBy == "" {
		return errs.NewValueIsRequiredError("resumed by")
	}

	if err := o.transitionTo(Pending); err != nil {
		return err
	}

	o.hold.ResumedBy = resumedBy
	resumedAt := now
	o.hold.ResumedAt = &resumedAt
	o.touch(now)
	return nil
}

// Cancel terminates the order from any non-terminal status, persisting the
// reason and resolving the refund obligation:
//
//   - paymentStatus == Success: a refund is owed. A missing refund amount
//     defaults to the full order total; a missing refund method defaults to
//     the payment method's refund channel.
//   - paymentStatus != Success: no refund obligation exists; any supplied
//     refund fields are discarded.
//
// paymentStatus itself is never rewritten: it remains the historical record
// of what was charged, and the refund is a separate ledger fact.
func (o *Order) Cancel(req CancellationRequest, cancelledBy string, now time.Time) error {
	if err := req.validate(); err != nil {
		return err
	}
	if cancelledBy == "" {
		return errs.NewValueIsRequiredError("cancelled by")
	}

	if err := o.transitionTo(Cancelled); err != nil {
		return err
	}

	cancellation := &Cancellation{
		Reason:      req.Reason,
		ReasonType:  req.ReasonType,
		CancelledBy: cancelledBy,
		CancelledAt: now,
	}

	if o.paymentStatus == PaymentSuccess {
		amount := o.totalAmount
		if req.RefundAmount != nil {
			amount = *req.RefundAmount
		}
		method := o.paymentMethod.RefundChannel()
		if req.RefundMethod != nil {
			method = *req.RefundMethod
		}
		cancellation.RefundAmount = &amount
		cancellation.RefundMethod = &method
	}

	o.cancellation = cancellation
	o.touch(now)
	return nil
}

// MarkPaymentResult records the payment verifier's verdict: Success with a
// paid timestamp, or Failed. An order that already completed payment cannot
// be re-verified.
func (o *Order) MarkPaymentResult(success bool, now time.Time) error {
	if o.paymentStatus == PaymentSuccess {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("order %s is already paid", o.orderNumber))
	}

	if success {
		o.paymentStatus = PaymentSuccess
		paidAt := now
		o.paidAt = &paidAt
	} else {
		o.paymentStatus = PaymentFailed
	}

	o.touch(now)
	return nil
}

// closeForRestructure terminates the order as part of a split or merge.
// The closure goes through the same transition guard as a regular
// cancellation but records no refund: the order's monetary value moved to
// its successor orders rather than back to the customer.
func (o *Order) closeForRestructure(reason, closedBy string, now time.Time) error {
	if err := o.transitionTo(Cancelled); err != nil {
		return err
	}

	o.cancellation = &Cancellation{
		Reason:      reason,
		ReasonType:  OtherReason,
		CancelledBy: closedBy,
		CancelledAt: now,
	}
	o.touch(now)
	return nil
}

// detachItems removes and returns all lines, leaving the order empty. The
// total is deliberately left at its pre-detach value as the historical
// record of what the closed-out order was worth.
func (o *Order) detachItems() []*Item {
	detached := o.items
	o.items = nil
	return detached
}

// transitionTo performs a table-guarded status change.
func (o *Order) transitionTo(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// recomputeTotal sets totalAmount to the sum of item subtotals; an empty
// item set yields zero.
func (o *Order) recomputeTotal() error {
	total := kernel.ZeroMoney()
	for _, item := range o.items {
		sum, err := total.Add(item.Subtotal())
		if err != nil {
			return err
		}
		total = sum
	}
	o.totalAmount = total
	return nil
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now
}

// validateStateDetails enforces the consistency between the status and the
// per-state metadata records, so a restored aggregate can never carry, say,
// a cancellation record while not cancelled.
func (o *Order) validateStateDetails() error {
	if (o.status == Cancelled) != (o.cancellation != nil) {
		return errs.NewValueIsInvalidErrorWithCause("cancellation is invalid",
			fmt.Errorf("%s order must carry a cancellation record if and only if cancelled", o.status))
	}

	if o.status == Hold {
		if o.hold == nil || o.hold.ResumedAt != nil {
			return errs.NewValueIsInvalidErrorWithCause("hold is invalid",
				fmt.Errorf("held order must carry an unresolved hold record"))
		}
	}

	if (o.status == Creating || o.status == Pending) && o.confirmation != nil && o.hold == nil {
		return errs.NewValueIsInvalidErrorWithCause("confirmation is invalid",
			fmt.Errorf("%s order cannot carry a confirmation stamp", o.status))
	}

	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if strings.TrimSpace(orderNumber) == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setCreator(creator CreatorType) error {
	if err := creator.Validate(); err != nil {
		return err
	}
	o.creator = creator
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setItems(items []*Item) error {
	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, ok := seen[item.ID()]; ok {
			return errs.NewValueIsInvalidErrorWithCause("order items are invalid",
				fmt.Errorf("duplicate item id %s", item.ID()))
		}
		seen[item.ID()] = struct{}{}
	}

	o.items = append([]*Item(nil), items...)
	return nil
}
