package param

import (
	"errors"
	"fmt"
)

// Sentinel errors for parameter resolution
var (
	ErrParameterNotFound  = errors.New("parameter not found")
	ErrParameterType      = errors.New("parameter has the wrong type")
	ErrDuplicateParameter = errors.New("duplicate parameter id")
)

// ResolveError reports which parameter could not be resolved to a typed handle.
type ResolveError struct {
	ID  string
	Err error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve parameter %q: %v", e.ID, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}
