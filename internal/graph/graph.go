// Package graph validates the stage graph of a pipeline project and raises
// the catalog errors for the conditions it detects.
package graph

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	stageerr "github.com/next-trace/scg-pipeline-error/error"
)

var (
	// ErrOutputNotFound is returned by Move when no stage owns the source path.
	ErrOutputNotFound = errors.New("output not tracked by any stage")
	// ErrUnnamedStage is returned for a stage without a Path.
	ErrUnnamedStage = errors.New("stage has empty path")
)

// Stage is one unit of work. Deps and Outs are paths relative to Cwd;
// Cwd and Path are relative to the project root ("." for the root itself).
type Stage struct {
	Path string
	Cwd  string
	Cmd  string
	Deps []string
	Outs []string
}

// IsDataSource reports whether the stage has no dependencies.
func (s Stage) IsDataSource() bool { return len(s.Deps) == 0 }

func (s Stage) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(s.cwd(), p)
}

func (s Stage) cwd() string {
	if s.Cwd == "" {
		return "."
	}
	return filepath.Clean(s.Cwd)
}

// CheckStage validates a stage in isolation.
//
// Checks run in a fixed order: working directory as output, then an output
// that is also a dependency, then any path listed twice across deps and outs.
func CheckStage(s Stage) error {
	if s.Path == "" {
		return ErrUnnamedStage
	}

	cwd := s.cwd()
	deps := make(map[string]struct{}, len(s.Deps))
	for _, d := range s.Deps {
		deps[s.resolve(d)] = struct{}{}
	}

	for _, o := range s.Outs {
		out := s.resolve(o)
		if out == cwd {
			return stageerr.NewWorkingDirectoryAsOutput(cwd, s.Path)
		}
		if _, ok := deps[out]; ok {
			return stageerr.NewCircularDependency(out)
		}
	}

	paths := make([]string, 0, len(s.Deps)+len(s.Outs))
	for _, p := range slices.Concat(s.Deps, s.Outs) {
		paths = append(paths, s.resolve(p))
	}
	return CheckArguments(paths)
}

// CheckArguments rejects the first path that occurs more than once.
func CheckArguments(paths []string) error {
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		key := filepath.Clean(p)
		if _, dup := seen[key]; dup {
			return stageerr.NewArgumentDuplication(p)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Graph is a validated set of stages with unique output ownership.
type Graph struct {
	stages []Stage
	owner  map[string]int
}

// Build validates every stage and output ownership across stages.
// Stages are kept in the given order, which also orders the stage list of
// an OutputDuplication error.
func Build(stages []Stage) (*Graph, error) {
	g := &Graph{
		stages: slices.Clone(stages),
		owner:  make(map[string]int),
	}

	claims := make(map[string][]int)
	var order []string
	for i, s := range g.stages {
		if err := CheckStage(s); err != nil {
			return nil, err
		}
		for _, o := range s.Outs {
			out := s.resolve(o)
			if _, ok := claims[out]; !ok {
				order = append(order, out)
			}
			claims[out] = append(claims[out], i)
		}
	}

	for _, out := range order {
		idx := claims[out]
		if len(idx) > 1 {
			paths := make([]string, 0, len(idx))
			for _, i := range idx {
				paths = append(paths, g.stages[i].Path)
			}
			return nil, stageerr.NewOutputDuplication(out, paths)
		}
		g.owner[out] = idx[0]
	}

	return g, nil
}

// Stages returns the stages in build order.
func (g *Graph) Stages() []Stage { return slices.Clone(g.stages) }

// Len returns the number of stages.
func (g *Graph) Len() int { return len(g.stages) }

// StageFor returns the stage owning out (a root-relative path).
func (g *Graph) StageFor(out string) (Stage, bool) {
	i, ok := g.owner[filepath.Clean(out)]
	if !ok {
		return Stage{}, false
	}
	return g.stages[i], true
}

// Upstream returns the stages whose outputs s depends on, in build order.
func (g *Graph) Upstream(s Stage) []Stage {
	var idx []int
	for _, d := range s.Deps {
		if i, ok := g.owner[s.resolve(d)]; ok && !slices.Contains(idx, i) {
			idx = append(idx, i)
		}
	}
	slices.Sort(idx)

	out := make([]Stage, 0, len(idx))
	for _, i := range idx {
		out = append(out, g.stages[i])
	}
	return out
}

// Move checks that the output at from may be relocated to to and returns
// the rewritten stage. Only data-source stages can be moved. A stage with a
// single output has its stage file renamed after the new output.
func (g *Graph) Move(from, to string) (Stage, error) {
	s, ok := g.StageFor(from)
	if !ok {
		return Stage{}, fmt.Errorf("move %q: %w", from, ErrOutputNotFound)
	}
	if !s.IsDataSource() {
		return Stage{}, stageerr.NewMoveNotDataSource(s.Path)
	}
	dst := filepath.Clean(to)
	if other, taken := g.StageFor(dst); taken {
		return Stage{}, stageerr.NewOutputDuplication(dst, []string{other.Path, s.Path})
	}

	rel, err := filepath.Rel(s.cwd(), dst)
	if err != nil {
		return Stage{}, fmt.Errorf("move %q: %w", from, err)
	}

	moved := s
	moved.Outs = slices.Clone(s.Outs)
	for i, o := range moved.Outs {
		if s.resolve(o) == filepath.Clean(from) {
			moved.Outs[i] = rel
		}
	}
	if len(moved.Outs) == 1 {
		moved.Path = dst + StageFileExt
	}
	return moved, nil
}

// StageFileExt is the suffix of per-output stage files.
const StageFileExt = ".dvc"
