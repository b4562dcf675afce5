package errs

import (
	"fmt"
	"strings"
)

// InvalidStateError reports an operation attempted while an entity is in a
// status that does not permit it. Expected lists the statuses that would have
// been accepted; Actual is the status the entity is really in.
type InvalidStateError struct {
	Entity   string
	Expected []string
	Actual   string
}

func NewInvalidStateError(entity string, actual string, expected ...string) *InvalidStateError {
	return &InvalidStateError{
		Entity:   entity,
		Expected: expected,
		Actual:   actual,
	}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s is %s, expected %s",
		ErrInvalidState, e.Entity, e.Actual, strings.Join(e.Expected, " or "))
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}
