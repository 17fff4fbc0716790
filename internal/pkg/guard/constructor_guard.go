// Package guard provides the constructor-guard pattern used by commands,
// queries and domain objects to reject zero-value instances that bypassed
// their factory functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes
// a nil validation error for an object that was not properly constructed.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its designated
// constructor. Embed it as a private field and set it with
// NewConstructorGuard inside the factory; a zero-value instance of the
// enclosing type will then fail Validate.
//
// Example:
//
//	type StartStageCommand struct {
//	    stage string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewStartStageCommand(stage string) (StartStageCommand, error) {
//	    return StartStageCommand{stage: stage, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c StartStageCommand) Validate() error {
//	    return c.guard.Validate(ErrStartStageCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as
// properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was created through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
