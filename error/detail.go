package error

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultProjectKind is used by NotAProject when ProjectKind is empty.
const DefaultProjectKind = "dvc"

// Detail is the structured payload of one catalog kind.
//
// The set of implementations is closed: only the types declared in this
// package satisfy it. Callers branch with a type switch:
//
//	switch d := err.Detail().(type) {
//	case stageerr.OutputDuplication:
//		...d.Stages...
//	case stageerr.NotAProject:
//		...d.Root...
//	}
type Detail interface {
	Kind() Kind
	render() string
	validate() error
	fields() map[string]any
	clone() Detail
}

// UnsupportedRemote: the referenced remote type has no known handler.
type UnsupportedRemote struct {
	Remote string
}

// OutputDuplication: the same output path is declared by two or more stages.
type OutputDuplication struct {
	Output string
	Stages []string
}

// WorkingDirectoryAsOutput: a stage declares its own working directory as an output.
type WorkingDirectoryAsOutput struct {
	Cwd   string
	Fname string
}

// CircularDependency: a path is both an output and a dependency of one stage.
type CircularDependency struct {
	Dependency string
}

// ArgumentDuplication: a path appears more than once in one argument list.
type ArgumentDuplication struct {
	Path string
}

// MoveNotDataSource: move was requested for a stage that is not a data source.
type MoveNotDataSource struct {
	Path string
}

// NotAProject: no project marker was found up to Root.
type NotAProject struct {
	Root        string
	ProjectKind string
}

// ParseFailure: a pipeline definition failed to parse. The underlying
// failure, if any, travels as the cause.
type ParseFailure struct{}

var (
	_ Detail = UnsupportedRemote{}
	_ Detail = OutputDuplication{}
	_ Detail = WorkingDirectoryAsOutput{}
	_ Detail = CircularDependency{}
	_ Detail = ArgumentDuplication{}
	_ Detail = MoveNotDataSource{}
	_ Detail = NotAProject{}
	_ Detail = ParseFailure{}
)

// ------ UnsupportedRemote

func (UnsupportedRemote) Kind() Kind { return KindUnsupportedRemote }

func (d UnsupportedRemote) render() string {
	return fmt.Sprintf("remote '%s' is not supported.", d.Remote)
}

func (d UnsupportedRemote) validate() error {
	return requireNonEmpty(KindUnsupportedRemote, "remote", d.Remote)
}

func (d UnsupportedRemote) fields() map[string]any { return map[string]any{"remote": d.Remote} }
func (d UnsupportedRemote) clone() Detail          { return d }

// ------ OutputDuplication

func (OutputDuplication) Kind() Kind { return KindOutputDuplication }

func (d OutputDuplication) render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "file '%s' is specified as an output in more than one stage:", d.Output)
	for _, stage := range d.Stages {
		b.WriteString("\n    ")
		b.WriteString(stage)
	}
	return b.String()
}

func (d OutputDuplication) validate() error {
	if err := requireNonEmpty(KindOutputDuplication, "output", d.Output); err != nil {
		return err
	}
	if len(d.Stages) == 0 {
		return &ConstructionError{Kind: KindOutputDuplication, Field: "stages", Reason: "must not be empty"}
	}
	for i, stage := range d.Stages {
		if stage == "" {
			return &ConstructionError{
				Kind:   KindOutputDuplication,
				Field:  fmt.Sprintf("stages[%d]", i),
				Reason: "must not be empty",
			}
		}
	}
	return nil
}

func (d OutputDuplication) fields() map[string]any {
	return map[string]any{"output": d.Output, "stages": slices.Clone(d.Stages)}
}

func (d OutputDuplication) clone() Detail {
	d.Stages = slices.Clone(d.Stages)
	return d
}

// ------ WorkingDirectoryAsOutput

func (WorkingDirectoryAsOutput) Kind() Kind { return KindWorkingDirectoryAsOutput }

func (d WorkingDirectoryAsOutput) render() string {
	return fmt.Sprintf(
		"current working directory '%s' is specified as an output in '%s'. "+
			"Use another CWD to prevent any data removal.",
		d.Cwd, d.Fname,
	)
}

func (d WorkingDirectoryAsOutput) validate() error {
	if err := requireNonEmpty(KindWorkingDirectoryAsOutput, "cwd", d.Cwd); err != nil {
		return err
	}
	return requireNonEmpty(KindWorkingDirectoryAsOutput, "fname", d.Fname)
}

func (d WorkingDirectoryAsOutput) fields() map[string]any {
	return map[string]any{"cwd": d.Cwd, "fname": d.Fname}
}

func (d WorkingDirectoryAsOutput) clone() Detail { return d }

// ------ CircularDependency

func (CircularDependency) Kind() Kind { return KindCircularDependency }

func (d CircularDependency) render() string {
	return fmt.Sprintf("file '%s' is specified as an output and as a dependency.", d.Dependency)
}

func (d CircularDependency) validate() error {
	return requireNonEmpty(KindCircularDependency, "dependency", d.Dependency)
}

func (d CircularDependency) fields() map[string]any {
	return map[string]any{"dependency": d.Dependency}
}

func (d CircularDependency) clone() Detail { return d }

// ------ ArgumentDuplication

func (ArgumentDuplication) Kind() Kind { return KindArgumentDuplication }

func (d ArgumentDuplication) render() string {
	return fmt.Sprintf("file '%s' is specified more than once.", d.Path)
}

func (d ArgumentDuplication) validate() error {
	return requireNonEmpty(KindArgumentDuplication, "path", d.Path)
}

func (d ArgumentDuplication) fields() map[string]any { return map[string]any{"path": d.Path} }
func (d ArgumentDuplication) clone() Detail          { return d }

// ------ MoveNotDataSource

func (MoveNotDataSource) Kind() Kind { return KindMoveNotDataSource }

func (d MoveNotDataSource) render() string {
	return fmt.Sprintf(
		"move is not permitted for stages that are not data sources. "+
			"You need to either move '%[1]s' to a new location and edit it by hand, "+
			"or remove '%[1]s' and create a new one at the desired location.",
		d.Path,
	)
}

func (d MoveNotDataSource) validate() error {
	return requireNonEmpty(KindMoveNotDataSource, "path", d.Path)
}

func (d MoveNotDataSource) fields() map[string]any { return map[string]any{"path": d.Path} }
func (d MoveNotDataSource) clone() Detail          { return d }

// ------ NotAProject

func (NotAProject) Kind() Kind { return KindNotAProject }

func (d NotAProject) projectKind() string {
	if d.ProjectKind == "" {
		return DefaultProjectKind
	}
	return d.ProjectKind
}

func (d NotAProject) render() string {
	return fmt.Sprintf("not a %s repository (checked up to mount point '%s')", d.projectKind(), d.Root)
}

func (d NotAProject) validate() error {
	return requireNonEmpty(KindNotAProject, "root", d.Root)
}

func (d NotAProject) fields() map[string]any {
	return map[string]any{"root": d.Root, "project_kind": d.projectKind()}
}

func (d NotAProject) clone() Detail { return d }

// ------ ParseFailure

func (ParseFailure) Kind() Kind             { return KindParser }
func (ParseFailure) render() string         { return "parser error" }
func (ParseFailure) validate() error        { return nil }
func (ParseFailure) fields() map[string]any { return nil }
func (d ParseFailure) clone() Detail        { return d }

func requireNonEmpty(kind Kind, field, value string) error {
	if value == "" {
		return &ConstructionError{Kind: kind, Field: field, Reason: "must not be empty"}
	}
	return nil
}
