// Package order provides domain entities and business logic for order
// lifecycle management in the point-of-sale system. It implements the Order
// aggregate root with draft handling, state transitions, cancellation,
// returns, and split/merge restructuring.
//
// The package includes:
//   - Order: The aggregate root that owns its items and enforces every rule
//   - Status: A state machine that enforces valid order status transitions
//   - Item: An order line owned exclusively by one order
//   - ReturnRecord: The persisted fact of a post-completion return
//
// Key business rules:
//   - Orders must have a valid unique identifier and order number
//   - Order status follows a defined workflow: Creating -> Pending ->
//     Confirmed -> Preparing -> Ready -> Completed, with Hold as a parking
//     state and Cancelled reachable from every non-terminal status
//   - The order total always equals the sum of its item subtotals
//   - Split and merge move items by reference, conserving counts and totals
//   - Returns are validated against quantities not already returned
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are
// enforced.
package order
