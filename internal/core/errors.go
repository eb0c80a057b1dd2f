package core

import "fmt"

// CoercionError reports an override or unit value that could not be
// parsed as an exact decimal during computation. It is the only failure
// mode Compute has; callers map it to a user-facing message.
type CoercionError struct {
	Field string
	Value string
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("field %s: cannot parse %q as a number: %v", e.Field, e.Value, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }
