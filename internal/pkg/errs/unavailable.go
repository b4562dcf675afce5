package errs

import "fmt"

// UnavailableError wraps a failure of an outer collaborator (database, lock
// service, broker). Callers may retry the operation.
type UnavailableError struct {
	Resource string
	Cause    error
}

func NewUnavailableError(resource string, cause error) *UnavailableError {
	return &UnavailableError{Resource: resource, Cause: cause}
}

func (e *UnavailableError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrUnavailable, e.Resource), e.Cause)
}

func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}
