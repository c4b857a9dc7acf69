package error

import (
	"fmt"
	"io"
	"strconv"
)

// Format implements fmt.Formatter.
//
//   - %v, %s  message only
//   - %q      quoted message
//   - %+v     message, then the cause and its captured trace
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') && e != nil && e.cause != nil {
			io.WriteString(s, e.message)
			io.WriteString(s, "\ncaused by: ")
			if e.causeTrace != "" {
				io.WriteString(s, e.causeTrace)
				return
			}
			fmt.Fprintf(s, "%+v", e.cause)
			return
		}
		io.WriteString(s, e.Error())
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		io.WriteString(s, strconv.Quote(e.Error()))
	default:
		fmt.Fprintf(s, "%%!%c(*error.Error=%s)", verb, e.Error())
	}
}
