package error

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// traceCapture is replaced in tests to exercise the recovery path.
var traceCapture = formatTrace

// captureTrace renders a diagnostic trace for cause. Any panic raised while
// formatting is swallowed and yields an empty trace.
func captureTrace(cause error) (trace string) {
	defer func() {
		if recover() != nil {
			trace = ""
		}
	}()
	return traceCapture(cause)
}

// formatTrace prefers the stack already recorded somewhere in the chain;
// otherwise it records the stack of the wrapping call site.
func formatTrace(cause error) string {
	var st stackTracer
	if errors.As(cause, &st) {
		return fmt.Sprintf("%s%+v", cause.Error(), st.StackTrace())
	}
	return fmt.Sprintf("%+v", pkgerrors.WithStack(cause))
}
