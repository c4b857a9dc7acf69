package error

// Option configures an Error during construction. Options run before the
// cause trace is captured; nothing mutates an Error after New returns.
type Option func(*Error)

// WithCause sets the failure that directly produced the new one.
// A nil cause is ignored, leaving the error without cause or trace.
func WithCause(cause error) Option { return func(e *Error) { e.cause = cause } }
