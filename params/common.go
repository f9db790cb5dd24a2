package params

import (
	"errors"
	"fmt"
)

var ErrConstraintViolation = errors.New("value rejected by parameter constraint")
var ErrParameterNotFound = errors.New("no parameter with that name in the list")
var ErrDuplicateParameter = errors.New("a parameter with that name is already in the list")
var ErrNilParameter = errors.New("nil parameter supplied")

// ConstraintViolationError reports a value rejected by a parameter's
// constraint. It unwraps to ErrConstraintViolation, so callers can match it
// with errors.Is or take it apart with errors.As.
type ConstraintViolationError struct {
	ParameterName string
	Value         float64
	Constraint    Constraint
}

// Error renders the parameter name, the rejected value, and the constraint.
func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("parameter %q: value %g is outside %s", e.ParameterName, e.Value, e.Constraint)
}

// Unwrap returns ErrConstraintViolation.
func (e *ConstraintViolationError) Unwrap() error {
	return ErrConstraintViolation
}
