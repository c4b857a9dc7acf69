package error

import (
	"errors"
)

// Wrap attaches cause to a new Error built from d. A nil cause is omitted.
func Wrap(cause error, d Detail) (*Error, error) {
	return New(d, WithCause(cause))
}

// From returns the outermost *Error in err's chain.
//
// Behavior:
//   - nil input => nil, false
//   - *Error anywhere in the chain => that value (same pointer), true
//   - otherwise => nil, false
func From(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}

	var e *Error
	if errors.As(err, &e) {
		return e, true
	}

	return nil, false
}

// KindOf reports the kind of the outermost *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	if e, ok := From(err); ok {
		return e.Kind()
	}
	return KindUnknown
}

// IsKind reports whether any *Error in err's chain has kind k.
func IsKind(err error, k Kind) bool {
	for _, link := range Chain(err) {
		if e, ok := link.(*Error); ok && e.Kind() == k {
			return true
		}
	}
	return false
}

// Chain lists err followed by each cause reached through Unwrap, outermost first.
// Multi-error unwraps (Unwrap() []error) are not descended.
func Chain(err error) []error {
	var out []error
	for err != nil {
		out = append(out, err)
		err = errors.Unwrap(err)
	}
	return out
}
