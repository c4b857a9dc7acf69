// Package stagefile reads stage definitions from YAML stage files.
package stagefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	stageerr "github.com/next-trace/scg-pipeline-error/error"
	"github.com/next-trace/scg-pipeline-error/internal/graph"
	"github.com/next-trace/scg-pipeline-error/internal/project"
)

// DefaultName is the stage file name used when no output names the file.
const DefaultName = "Dvcfile"

// File is the on-disk shape of a stage file.
type File struct {
	Cmd  string  `yaml:"cmd,omitempty"`
	Wdir string  `yaml:"wdir,omitempty"`
	Deps []Entry `yaml:"deps,omitempty"`
	Outs []Entry `yaml:"outs,omitempty"`
}

type Entry struct {
	Path  string `yaml:"path"`
	MD5   string `yaml:"md5,omitempty"`
	Cache *bool  `yaml:"cache,omitempty"`
}

// IsStageFile reports whether name looks like a stage file.
func IsStageFile(name string) bool {
	base := filepath.Base(name)
	return base == DefaultName || (strings.HasSuffix(base, graph.StageFileExt) && base != graph.StageFileExt)
}

// Decode parses a stage file. Unknown keys are rejected.
func Decode(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, err
	}
	for i, e := range f.Deps {
		if e.Path == "" {
			return File{}, fmt.Errorf("deps[%d]: empty path", i)
		}
	}
	for i, e := range f.Outs {
		if e.Path == "" {
			return File{}, fmt.Errorf("outs[%d]: empty path", i)
		}
	}
	return f, nil
}

// Load reads the stage file at path (absolute or relative to root).
// Read and decode failures come back as a parser error whose cause is the
// underlying failure.
func Load(root, path string) (graph.Stage, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, path)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return graph.Stage{}, fmt.Errorf("stage %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return graph.Stage{}, stageerr.NewParserError(stageerr.WithCause(fmt.Errorf("read %s: %w", rel, err)))
	}
	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		return graph.Stage{}, stageerr.NewParserError(stageerr.WithCause(fmt.Errorf("parse %s: %w", rel, err)))
	}

	return f.Stage(rel), nil
}

// Stage converts f into a graph stage defined by the file at rel.
func (f File) Stage(rel string) graph.Stage {
	s := graph.Stage{
		Path: rel,
		Cwd:  filepath.Join(filepath.Dir(rel), f.Wdir),
		Cmd:  f.Cmd,
	}
	for _, d := range f.Deps {
		s.Deps = append(s.Deps, d.Path)
	}
	for _, o := range f.Outs {
		s.Outs = append(s.Outs, o.Path)
	}
	return s
}

// LoadAll loads every stage file under root in lexical order, skipping the
// project marker directory and VCS metadata.
func LoadAll(root string) ([]graph.Stage, error) {
	var stages []graph.Stage
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (d.Name() == project.DirName || d.Name() == ".git") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsStageFile(d.Name()) {
			return nil
		}
		s, err := Load(root, path)
		if err != nil {
			return err
		}
		stages = append(stages, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stages, nil
}
