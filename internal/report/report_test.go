package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stageerr "github.com/next-trace/scg-pipeline-error/error"
	"github.com/next-trace/scg-pipeline-error/internal/logger"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitUnexpected, ExitCode(errors.New("boom")))

	_, cerr := stageerr.New(stageerr.OutputDuplication{Output: "x"})
	assert.Equal(t, ExitInternal, ExitCode(cerr))

	seen := map[int]stageerr.Kind{}
	for _, e := range []*stageerr.Error{
		stageerr.NewParserError(),
		stageerr.NewNotAProject("/"),
		stageerr.NewUnsupportedRemote("ftp://x"),
		stageerr.NewOutputDuplication("o", []string{"a", "b"}),
		stageerr.NewWorkingDirectoryAsOutput(".", "Dvcfile"),
		stageerr.NewCircularDependency("d"),
		stageerr.NewArgumentDuplication("p"),
		stageerr.NewMoveNotDataSource("s.dvc"),
	} {
		code := ExitCode(fmt.Errorf("wrapped: %w", e))
		assert.NotContains(t, []int{ExitOK, ExitInternal, ExitUnexpected}, code)
		prev, dup := seen[code]
		assert.False(t, dup, "%v and %v share exit code %d", prev, e.Kind(), code)
		seen[code] = e.Kind()
	}
}

func TestReport_Quiet(t *testing.T) {
	var out bytes.Buffer
	r := New(&out)

	cause := errors.New("yaml: line 2: could not find expected ':'")
	code := r.Report(stageerr.NewParserError(stageerr.WithCause(cause)))

	assert.Equal(t, 2, code)
	assert.Equal(t, "ERROR: parser error\n", out.String())
}

func TestReport_Nil(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, ExitOK, New(&out).Report(nil))
	assert.Empty(t, out.String())
}

func TestReport_Verbose(t *testing.T) {
	var out, logs bytes.Buffer
	r := New(&out,
		WithVerbose(true),
		WithLogger(logger.New(logger.Config{Level: "debug", Format: "json", Output: &logs})),
	)

	root := errors.New("open stages/a.dvc: permission denied")
	inner := stageerr.NewParserError(stageerr.WithCause(root))
	outer := stageerr.NewOutputDuplication("a.txt", []string{"Stage1", "Stage2"}, stageerr.WithCause(inner))

	code := r.Report(outer)
	assert.Equal(t, 5, code)

	text := out.String()
	require.True(t, strings.HasPrefix(text,
		"ERROR: file 'a.txt' is specified as an output in more than one stage:\n    Stage1\n    Stage2\n"), text)
	assert.Contains(t, text, "  caused by: parser error\n")
	assert.Contains(t, text, "  caused by: open stages/a.dvc: permission denied\n")
	assert.Contains(t, text, "Trace (graph.output_duplication):")

	assert.Contains(t, logs.String(), `"code":"graph.output_duplication"`)
	assert.Contains(t, logs.String(), `"exit_code":5`)
}

func TestReport_VerboseWithoutCause(t *testing.T) {
	var out bytes.Buffer
	New(&out, WithVerbose(true)).Report(stageerr.NewNotAProject("/home/user"))
	assert.Equal(t, "ERROR: not a dvc repository (checked up to mount point '/home/user')\n", out.String())
}

func TestAttrs(t *testing.T) {
	attrs := Attrs(errors.New("plain"))
	assert.Len(t, attrs, 1)

	attrs = Attrs(stageerr.NewArgumentDuplication("a.txt"))
	assert.Len(t, attrs, 4)
}
