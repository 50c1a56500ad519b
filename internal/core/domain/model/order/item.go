package order

import (
	"errors"
	"fmt"
	"strings"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem or RestoreItem factory methods.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Item is an order line. It is owned exclusively by one Order and never
// shared; split and merge move Item references between orders without
// copying them, which is what keeps monetary totals exactly conserved.
//
// The unit price and subtotal are captured at add-time and are immune to
// later product price changes. The invariant subtotal == price × quantity
// holds at creation; subtotal may later be adjusted explicitly when an
// order-level discount or VAT redistribution changes the order total.
type Item struct {
	// id is the unique identifier for the line
	id kernel.UUID

	// productID references the product as it was at order time
	productID kernel.UUID

	// name is the product display name captured at add-time
	name string

	// price is the unit price captured at add-time
	price kernel.Money

	// quantity is the ordered count (always positive)
	quantity int

	// subtotal is price × quantity at creation, explicitly adjustable
	subtotal kernel.Money

	// selectedSize is the chosen size name, empty when the product has none
	selectedSize string

	// selectedToppings is the ordered list of chosen topping names
	selectedToppings []string

	// note is free-text per-line instructions
	note string

	// isConstructed ensures the item was created via a factory method
	isConstructed bool
}

// NewItem creates a new order line with validation. The subtotal is
// computed as price × quantity.
//
// Parameters:
//   - id: Unique identifier for the line (must be a valid UUID)
//   - productID: The referenced product (must be a valid UUID)
//   - name: Product display name (must not be blank)
//   - price: Unit price at add-time
//   - quantity: Ordered count (must be positive)
//   - selectedSize: Optional size name
//   - selectedToppings: Optional ordered topping names
//   - note: Optional free-text instructions
func NewItem(
	id kernel.UUID,
	productID kernel.UUID,
	name string,
	price kernel.Money,
	quantity int,
	selectedSize string,
	selectedToppings []string,
	note string,
) (*Item, error) {
	subtotal, err := price.MulInt(quantity)
	if err != nil {
		return nil, err
	}

	return RestoreItem(id, productID, name, price, quantity, subtotal,
		selectedSize, selectedToppings, note)
}

// RestoreItem reconstructs an order line from persistence, keeping the
// stored subtotal rather than recomputing it (the stored value may carry an
// explicit discount/VAT adjustment).
func RestoreItem(
	id kernel.UUID,
	productID kernel.UUID,
	name string,
	price kernel.Money,
	quantity int,
	subtotal kernel.Money,
	selectedSize string,
	selectedToppings []string,
	note string,
) (*Item, error) {
	item := &Item{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setName(name),
		item.setPrice(price),
		item.setQuantity(quantity),
		item.setSubtotal(subtotal),
	); err != nil {
		return nil, err
	}

	item.selectedSize = selectedSize
	item.selectedToppings = append([]string(nil), selectedToppings...)
	item.note = note

	return item, nil
}

// Validate ensures the Item instance was properly constructed through a
// factory method.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the referenced product's identifier.
func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product display name captured at add-time.
func (i *Item) Name() string {
	return i.name
}

// Price returns the unit price captured at add-time.
func (i *Item) Price() kernel.Money {
	return i.price
}

// Quantity returns the ordered count.
func (i *Item) Quantity() int {
	return i.quantity
}

// Subtotal returns the line subtotal.
func (i *Item) Subtotal() kernel.Money {
	return i.subtotal
}

// SelectedSize returns the chosen size name, or an empty string.
func (i *Item) SelectedSize() string {
	return i.selectedSize
}

// SelectedToppings returns a copy of the chosen topping names.
func (i *Item) SelectedToppings() []string {
	return append([]string(nil), i.selectedToppings...)
}

// Note returns the free-text per-line instructions.
func (i *Item) Note() string {
	return i.note
}

// AdjustSubtotal explicitly overrides the line subtotal. Used when an
// order-level discount or VAT redistribution changes the order total; the
// captured unit price is left untouched.
func (i *Item) AdjustSubtotal(subtotal kernel.Money) error {
	return i.setSubtotal(subtotal)
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.price = price
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setSubtotal(subtotal kernel.Money) error {
	if err := subtotal.Validate(); err != nil {
		return err
	}
	i.subtotal = subtotal
	return nil
}
