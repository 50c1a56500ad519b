package commands

import (
	"errors"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/guard"
)

var ErrSyncDraftCommandIsNotConstructed = errors.New(
	"SyncDraftCommand must be created via NewSyncDraftCommand constructor",
)

// ItemInput carries one cart line as supplied by the terminal. Prices are in
// minor currency units and are captured as-is; the domain computes the
// subtotal.
type ItemInput struct {
	ProductID        kernel.UUID
	Name             string
	Price            int64
	Quantity         int
	SelectedSize     string
	SelectedToppings []string
	Note             string
}

// SyncDraftCommand represents one terminal's "this is my current cart"
// declaration. The handler upserts the session's draft to match: the first
// sync creates the draft, later syncs overwrite its items and customer
// context wholesale. An empty item list is a legitimate cleared cart.
//
// Example:
//
//	cmd, err := NewSyncDraftCommand(kernel.NewUUID(), "session-42",
//	    order.CustomerCreator, "", customer, order.Cash, items)
//	if err != nil {
//	    return fmt.Errorf("invalid cart data: %w", err)
//	}
//
//	draft, err := handler.Handle(ctx, cmd)
type SyncDraftCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	sessionKey    string
	creator       order.CreatorType
	creatorName   string
	customer      order.CustomerInfo
	paymentMethod order.PaymentMethod
	items         []ItemInput

	guard guard.ConstructorGuard
}

// NewSyncDraftCommand creates a draft synchronization command. The orderID
// is used only when this sync creates the session's draft; when a draft
// already exists its identity is kept and the supplied one ignored. The
// session key may be empty, in which case the draft derives one from the
// creator identity.
func NewSyncDraftCommand(
	orderID kernel.UUID,
	sessionKey string,
	creator order.CreatorType,
	creatorName string,
	customer order.CustomerInfo,
	paymentMethod order.PaymentMethod,
	items []ItemInput,
) (SyncDraftCommand, error) {
	command := SyncDraftCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCreator(creator),
		command.setPaymentMethod(paymentMethod),
	); err != nil {
		return SyncDraftCommand{}, err
	}

	command.sessionKey = sessionKey
	command.creatorName = creatorName
	command.customer = customer
	command.items = append([]ItemInput(nil), items...)

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SyncDraftCommand) Validate() error {
	return c.guard.Validate(ErrSyncDraftCommandIsNotConstructed)
}

// OrderID returns the identifier to use when creating a new draft.
func (c SyncDraftCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SessionKey returns the ordering-session identifier, possibly empty.
func (c SyncDraftCommand) SessionKey() string {
	return c.sessionKey
}

// Creator returns the type of actor syncing the cart.
func (c SyncDraftCommand) Creator() order.CreatorType {
	return c.creator
}

// CreatorName returns the creator's display name, possibly empty.
func (c SyncDraftCommand) CreatorName() string {
	return c.creatorName
}

// Customer returns the customer-facing context of the cart.
func (c SyncDraftCommand) Customer() order.CustomerInfo {
	return c.customer
}

// PaymentMethod returns the intended payment method.
func (c SyncDraftCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// Items returns a copy of the cart lines.
func (c SyncDraftCommand) Items() []ItemInput {
	return append([]ItemInput(nil), c.items...)
}

func (c *SyncDraftCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SyncDraftCommand) setCreator(creator order.CreatorType) error {
	if err := creator.Validate(); err != nil {
		return err
	}

	c.creator = creator
	return nil
}

func (c *SyncDraftCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.paymentMethod = method
	return nil
}
