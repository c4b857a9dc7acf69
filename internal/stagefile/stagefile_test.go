package stagefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stageerr "github.com/next-trace/scg-pipeline-error/error"
	"github.com/next-trace/scg-pipeline-error/internal/graph"
)

func write(t *testing.T, root, rel, body string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestDecode(t *testing.T) {
	f, err := Decode(strings.NewReader(`
cmd: python train.py
wdir: ..
deps:
  - path: data.csv
    md5: abc123
outs:
  - path: model.pkl
    cache: false
`))
	require.NoError(t, err)
	assert.Equal(t, "python train.py", f.Cmd)
	require.Len(t, f.Deps, 1)
	require.Len(t, f.Outs, 1)
	require.NotNil(t, f.Outs[0].Cache)
	assert.False(t, *f.Outs[0].Cache)

	s := f.Stage(filepath.Join("src", "train.dvc"))
	assert.Equal(t, graph.Stage{
		Path: filepath.Join("src", "train.dvc"),
		Cwd:  ".",
		Cmd:  "python train.py",
		Deps: []string{"data.csv"},
		Outs: []string{"model.pkl"},
	}, s)
}

func TestDecode_Empty(t *testing.T) {
	f, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, File{}, f)
}

func TestDecode_Rejects(t *testing.T) {
	for name, body := range map[string]string{
		"unknown key": "command: x\n",
		"empty path":  "outs:\n  - md5: abc\n",
		"bad yaml":    "outs: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_ParserErrorWrapsCause(t *testing.T) {
	root := t.TempDir()
	write(t, root, "bad.dvc", "outs: [\n")

	_, err := Load(root, "bad.dvc")
	require.Error(t, err)

	e, ok := stageerr.From(err)
	require.True(t, ok)
	assert.Equal(t, "parser error", e.Error())
	require.Error(t, e.Cause())
	assert.True(t, strings.HasPrefix(e.Cause().Error(), "parse bad.dvc: yaml:"), e.Cause().Error())
	assert.Contains(t, e.CauseTrace(), "parse bad.dvc")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir(), "absent.dvc")
	require.Error(t, err)
	assert.Equal(t, stageerr.KindParser, stageerr.KindOf(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadAll(t *testing.T) {
	root := t.TempDir()
	write(t, root, "data.csv.dvc", "outs:\n  - path: data.csv\n")
	write(t, root, "src/Dvcfile", "cmd: make\ndeps:\n  - path: ../data.csv\nouts:\n  - path: out.bin\n")
	write(t, root, ".dvc/ignored.dvc", "not: [valid\n")
	write(t, root, ".git/x.dvc", "not: [valid\n")
	write(t, root, "notes.txt", "hello")

	stages, err := LoadAll(root)
	require.NoError(t, err)
	require.Len(t, stages, 2)
	assert.Equal(t, "data.csv.dvc", stages[0].Path)
	assert.Equal(t, filepath.Join("src", "Dvcfile"), stages[1].Path)
	assert.Equal(t, "src", stages[1].Cwd)

	g, err := graph.Build(stages)
	require.NoError(t, err)
	assert.Len(t, g.Upstream(stages[1]), 1)
}

func TestIsStageFile(t *testing.T) {
	assert.True(t, IsStageFile("a/b/model.pkl.dvc"))
	assert.True(t, IsStageFile("Dvcfile"))
	assert.False(t, IsStageFile(".dvc"))
	assert.False(t, IsStageFile("train.py"))
}
