// Package guard holds ConstructorGuard, a marker embedded into domain types
// so that zero values can be told apart from values built by a constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set by New*/Restore* constructors of aggregates, entities
// and value objects. A zero value guard fails validation.
//
//	type Budget struct {
//	    id    kernel.UUID
//	    guard guard.ConstructorGuard
//	}
//
//	func (b *Budget) Validate() error {
//	    return b.guard.Validate(ErrBudgetIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guarded value was not created through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
