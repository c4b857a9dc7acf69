// Package contract exposes the minimal error interface used by other packages.
//
// Implementations must ensure Context returns a defensive copy and support
// errors.Unwrap so the cause chain stays reachable through errors.Is / errors.As.
package contract

// Error is the minimal, stable surface that reporting layers can depend on.
//
// Implementations must:
//   - Render Error() and Message() identically and deterministically.
//   - Ensure Context() returns a defensive copy (never the internal map).
//   - Return the same value from Cause() and Unwrap().
//   - Return an empty CauseTrace() when there is no cause.
//
// The interface contains only getters; values are immutable once built.
type Error interface {
	error
	Code() string
	Key() string
	Message() string
	// Context returns a defensive copy; NEVER return the internal map directly.
	Context() map[string]any
	Cause() error
	CauseTrace() string
	Unwrap() error
}
