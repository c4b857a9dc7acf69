package error

import (
	"errors"
	"fmt"
)

// ErrInvalidConstruction is matched by every *ConstructionError. It marks a
// caller misusing this package, never a pipeline validation failure.
var ErrInvalidConstruction = errors.New("invalid error construction")

// ConstructionError reports which field of which kind was rejected.
type ConstructionError struct {
	Kind   Kind
	Field  string
	Reason string
}

func (e *ConstructionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s: %s", ErrInvalidConstruction, e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s: %s: field %q %s", ErrInvalidConstruction, e.Kind, e.Field, e.Reason)
}

func (*ConstructionError) Unwrap() error { return ErrInvalidConstruction }
