// Package guard provides ConstructorGuard, a marker embedded in value objects,
// commands and aggregates to tell a constructor-built value from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is the error returned by ConstructorGuard.Validate
// on a zero-value guard when the caller passes a nil validation error, so the
// check still fails with a readable message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing value was created through its
// constructor. Value objects, commands and aggregates embed it as an unexported
// field and check it from their own Validate method.
//
// Only NewConstructorGuard sets the internal flag. A struct literal, a zero
// value or a value decoded by reflection carries a zero guard and fails
// validation. Handlers call Validate on their commands and inputs first, so a
// half-initialized Node or command never reaches a warehouse or the store.
//
// Example usage:
//
//	var ErrNodeNotConstructed = errors.New("Node must be created via NewNode")
//
//	type Node struct {
//	    id          string
//	    baseAddress string
//	    guard       guard.ConstructorGuard
//	}
//
//	func NewNode(id, baseAddress string) (Node, error) {
//	    if id == "" {
//	        return Node{}, errors.New("id is required")
//	    }
//	    if baseAddress == "" {
//	        return Node{}, errors.New("base address is required")
//	    }
//	    return Node{
//	        id:          id,
//	        baseAddress: baseAddress,
//	        guard:       guard.NewConstructorGuard(),
//	    }, nil
//	}
//
//	func (n Node) Validate() error {
//	    return n.guard.Validate(ErrNodeNotConstructed)
//	}
//
// Behavior:
//   - The zero value reports "not constructed"
//   - Copies keep the flag of the value they were copied from
//   - The guard holds no other state and is safe to copy and compare
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed. Call it from the
// constructor of the guarded type only, after the inputs have been checked.
//
// Example:
//
//	func NewSubmitOrderCommand(o *order.Order, warehouseID string) (SubmitOrderCommand, error) {
//	    if warehouseID == "" {
//	        return SubmitOrderCommand{}, errs.NewValueIsRequiredError("warehouse id")
//	    }
//	    return SubmitOrderCommand{
//	        order:       o,
//	        warehouseID: warehouseID,
//	        guard:       guard.NewConstructorGuard(),
//	    }, nil
//	}
//
// Returns:
//   - A ConstructorGuard whose Validate returns nil
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate reports whether the guarded value went through its constructor.
//
// For a zero-value guard it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil. Call it first in the
// Validate method of the guarded type, before any field checks.
//
// Parameters:
//   - validationError: The error to return when the value was not constructed
//
// Example:
//
//	var ErrSubmitOrderCommandNotConstructed = errors.New("SubmitOrderCommand must be created via NewSubmitOrderCommand")
//
//	func (c SubmitOrderCommand) Validate() error {
//	    if err := c.guard.Validate(ErrSubmitOrderCommandNotConstructed); err != nil {
//	        return err
//	    }
//	    return c.order.Validate()
//	}
//
// Returns:
//   - nil if the value was built by its constructor
//   - validationError if it was not
//   - ErrDefaultConstructorGuard if it was not and validationError is nil
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
