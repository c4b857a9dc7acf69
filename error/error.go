// Package error provides the closed failure catalog for stage-graph validation.
//
// It defines a single concrete type Error, immutable after construction, whose
// Detail is one member of a sealed set of variants. Causes are chained through
// Unwrap so errors.Is / errors.As walk the full chain.
package error

import (
	"github.com/next-trace/scg-pipeline-error/contract"
)

// Error is the canonical pipeline-validation failure.
//
// Fields:
//   - detail:     structured payload; its Kind selects code, key and template
//   - message:    rendered template, fixed at construction
//   - cause:      failure that directly produced this one (optional)
//   - causeTrace: diagnostic trace of the cause, captured best-effort
type Error struct {
	detail     Detail
	message    string
	cause      error
	causeTrace string
}

// compile-time guarantee that *Error implements contract.Error
var _ contract.Error = (*Error)(nil)

// ------ standard error interface

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// ------ getters

func (e *Error) Kind() Kind         { return e.detail.Kind() }
func (e *Error) Code() string       { return e.Kind().Code() }
func (e *Error) Key() string        { return e.Kind().Key() }
func (e *Error) Message() string    { return e.message }
func (e *Error) Cause() error       { return e.cause }
func (e *Error) CauseTrace() string { return e.causeTrace }

// Detail returns a copy of the structured payload.
func (e *Error) Detail() Detail { return e.detail.clone() }

// Context returns the structured fields as a fresh map (nil when the kind has none).
func (e *Error) Context() map[string]any { return cloneMap(e.detail.fields()) }

// ------ core constructors

// New validates d and builds an Error from it.
//
// A rejected Detail yields a *ConstructionError (matching ErrInvalidConstruction);
// that is a programming error on the caller's side, distinct from the
// validation failure the Detail represents.
func New(d Detail, opts ...Option) (*Error, error) {
	if d == nil {
		return nil, &ConstructionError{Kind: KindUnknown, Reason: "detail must not be nil"}
	}
	if err := d.validate(); err != nil {
		return nil, err
	}

	e := &Error{
		detail:  d.clone(),
		message: d.render(),
	}
	for _, o := range opts {
		o(e)
	}
	if e.cause != nil {
		e.causeTrace = captureTrace(e.cause)
	}

	return e, nil
}

// Must is like New but panics with the *ConstructionError on invalid input.
func Must(d Detail, opts ...Option) *Error {
	e, err := New(d, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

func cloneMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}

	out := make(map[string]any, len(in))

	for k, v := range in {
		switch tv := v.(type) {
		case []string:
			out[k] = append([]string(nil), tv...)
		case map[string]any:
			out[k] = cloneMap(tv)
		default:
			out[k] = v
		}
	}

	return out
}
