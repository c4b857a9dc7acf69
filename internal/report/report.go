// Package report renders failures for the command line and maps them to
// process exit codes.
package report

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	stageerr "github.com/next-trace/scg-pipeline-error/error"
	"github.com/next-trace/scg-pipeline-error/internal/logger"
)

// Exit codes outside the per-kind range.
const (
	ExitOK         = 0
	ExitInternal   = 70
	ExitUnexpected = 255
)

// ExitCode maps err to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, stageerr.ErrInvalidConstruction) {
		return ExitInternal
	}

	switch stageerr.KindOf(err) {
	case stageerr.KindParser:
		return 2
	case stageerr.KindNotAProject:
		return 3
	case stageerr.KindUnsupportedRemote:
		return 4
	case stageerr.KindOutputDuplication:
		return 5
	case stageerr.KindWorkingDirectoryAsOutput:
		return 6
	case stageerr.KindCircularDependency:
		return 7
	case stageerr.KindArgumentDuplication:
		return 8
	case stageerr.KindMoveNotDataSource:
		return 9
	default:
		return ExitUnexpected
	}
}

// Reporter writes failures to a user-facing stream. The top-level message
// is always printed; the cause chain and captured trace only when verbose.
type Reporter struct {
	out     io.Writer
	logger  *slog.Logger
	verbose bool
}

type Option func(*Reporter)

func WithLogger(l *slog.Logger) Option { return func(r *Reporter) { r.logger = l } }
func WithVerbose(v bool) Option        { return func(r *Reporter) { r.verbose = v } }

func New(out io.Writer, opts ...Option) *Reporter {
	r := &Reporter{out: out, logger: logger.Discard()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Report prints err and returns its exit code. A nil err prints nothing.
func (r *Reporter) Report(err error) int {
	code := ExitCode(err)
	if err == nil {
		return code
	}

	r.logger.Debug("command failed", append(Attrs(err), slog.Int("exit_code", code))...)

	fmt.Fprintf(r.out, "ERROR: %s\n", err.Error())
	if r.verbose {
		r.writeChain(err)
	}
	return code
}

func (r *Reporter) writeChain(err error) {
	chain := stageerr.Chain(err)
	for _, link := range chain[1:] {
		fmt.Fprintf(r.out, "  caused by: %s\n", indent(link.Error()))
	}

	for _, link := range chain {
		e, ok := link.(*stageerr.Error)
		if !ok || e.CauseTrace() == "" {
			continue
		}
		fmt.Fprintf(r.out, "\nTrace (%s):\n%s\n", e.Code(), strings.TrimRight(e.CauseTrace(), "\n"))
		return
	}
}

// Attrs returns structured log attributes for err.
func Attrs(err error) []any {
	attrs := []any{slog.String("error", err.Error())}

	e, ok := stageerr.From(err)
	if !ok {
		return attrs
	}
	attrs = append(attrs,
		slog.String("code", e.Code()),
		slog.String("key", e.Key()),
	)
	if ctx := e.Context(); ctx != nil {
		attrs = append(attrs, slog.Any("context", ctx))
	}
	if e.Cause() != nil {
		attrs = append(attrs, slog.String("cause", e.Cause().Error()))
	}
	return attrs
}

func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n    ")
}
