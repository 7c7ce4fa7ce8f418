// Package guard detects values that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes no error of its own.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in commands, queries and value objects. Its zero value
// reports "not constructed", so a struct literal that skipped the constructor is caught
// at the first Validate call.
//
// Example:
//
//	var ErrSubmitOrderCommandIsNotConstructed = errors.New("SubmitOrderCommand must be created via NewSubmitOrderCommand")
//
//	type SubmitOrderCommand struct {
//	    quantity int
//	    guard    guard.ConstructorGuard
//	}
//
//	func (c SubmitOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing value as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
