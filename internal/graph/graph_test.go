package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stageerr "github.com/next-trace/scg-pipeline-error/error"
)

func TestCheckStage(t *testing.T) {
	tests := []struct {
		name    string
		stage   Stage
		kind    stageerr.Kind
		wantMsg string
	}{
		{
			name:  "valid",
			stage: Stage{Path: "train.dvc", Cwd: ".", Deps: []string{"data.csv"}, Outs: []string{"model.pkl"}},
		},
		{
			name:    "cwd as output",
			stage:   Stage{Path: "data/prep.dvc", Cwd: "data", Outs: []string{"."}},
			kind:    stageerr.KindWorkingDirectoryAsOutput,
			wantMsg: "current working directory 'data' is specified as an output in 'data/prep.dvc'. Use another CWD to prevent any data removal.",
		},
		{
			name:    "output is a dependency",
			stage:   Stage{Path: "loop.dvc", Deps: []string{"a.txt"}, Outs: []string{"./a.txt"}},
			kind:    stageerr.KindCircularDependency,
			wantMsg: "file 'a.txt' is specified as an output and as a dependency.",
		},
		{
			name:    "duplicated dependency",
			stage:   Stage{Path: "dup.dvc", Cwd: "src", Deps: []string{"a.txt", "a.txt"}, Outs: []string{"b.txt"}},
			kind:    stageerr.KindArgumentDuplication,
			wantMsg: "file 'src/a.txt' is specified more than once.",
		},
		{
			name:    "duplicated output",
			stage:   Stage{Path: "dup.dvc", Outs: []string{"b.txt", "b.txt"}},
			kind:    stageerr.KindArgumentDuplication,
			wantMsg: "file 'b.txt' is specified more than once.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckStage(tt.stage)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.kind, stageerr.KindOf(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestCheckStage_Unnamed(t *testing.T) {
	err := CheckStage(Stage{Outs: []string{"x"}})
	require.ErrorIs(t, err, ErrUnnamedStage)
}

func TestCheckArguments(t *testing.T) {
	require.NoError(t, CheckArguments([]string{"a", "b", "c"}))
	require.NoError(t, CheckArguments(nil))

	err := CheckArguments([]string{"a", "b", "./a"})
	require.Error(t, err)
	assert.Equal(t, "file './a' is specified more than once.", err.Error())
	assert.True(t, stageerr.IsKind(err, stageerr.KindArgumentDuplication))
}

func TestBuild_OutputDuplication(t *testing.T) {
	_, err := Build([]Stage{
		{Path: "Stage1", Outs: []string{"a.txt"}},
		{Path: "other.dvc", Outs: []string{"b.txt"}},
		{Path: "Stage2", Deps: []string{"b.txt"}, Outs: []string{"a.txt"}},
	})
	require.Error(t, err)
	assert.Equal(t, "file 'a.txt' is specified as an output in more than one stage:\n    Stage1\n    Stage2", err.Error())

	e, ok := stageerr.From(err)
	require.True(t, ok)
	d, ok := e.Detail().(stageerr.OutputDuplication)
	require.True(t, ok)
	assert.Equal(t, "a.txt", d.Output)
	assert.Equal(t, []string{"Stage1", "Stage2"}, d.Stages)
}

func TestBuild_PropagatesStageErrors(t *testing.T) {
	_, err := Build([]Stage{
		{Path: "ok.dvc", Outs: []string{"a"}},
		{Path: "bad.dvc", Deps: []string{"b"}, Outs: []string{"b"}},
	})
	assert.Equal(t, stageerr.KindCircularDependency, stageerr.KindOf(err))
}

func pipeline(t *testing.T) *Graph {
	t.Helper()
	g, err := Build([]Stage{
		{Path: "data.csv.dvc", Outs: []string{"data.csv"}},
		{Path: "prep.dvc", Cmd: "python prep.py", Deps: []string{"data.csv"}, Outs: []string{"clean.csv"}},
		{Path: "train.dvc", Cmd: "python train.py", Deps: []string{"clean.csv", "data.csv"}, Outs: []string{"model.pkl"}},
	})
	require.NoError(t, err)
	return g
}

func TestGraph_Queries(t *testing.T) {
	g := pipeline(t)
	assert.Equal(t, 3, g.Len())

	s, ok := g.StageFor("./model.pkl")
	require.True(t, ok)
	assert.Equal(t, "train.dvc", s.Path)

	_, ok = g.StageFor("missing")
	assert.False(t, ok)

	up := g.Upstream(s)
	require.Len(t, up, 2)
	assert.Equal(t, "data.csv.dvc", up[0].Path)
	assert.Equal(t, "prep.dvc", up[1].Path)

	assert.True(t, g.Stages()[0].IsDataSource())
	assert.False(t, g.Stages()[1].IsDataSource())
}

func TestGraph_Move(t *testing.T) {
	g := pipeline(t)

	moved, err := g.Move("data.csv", "raw/data.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"raw/data.csv"}, moved.Outs)
	assert.Equal(t, "raw/data.csv.dvc", moved.Path)

	_, err = g.Move("model.pkl", "models/model.pkl")
	require.Error(t, err)
	assert.Equal(t, stageerr.KindMoveNotDataSource, stageerr.KindOf(err))
	assert.Contains(t, err.Error(), "move 'train.dvc' to a new location")

	_, err = g.Move("nope.csv", "x.csv")
	require.ErrorIs(t, err, ErrOutputNotFound)

	_, err = g.Move("data.csv", "clean.csv")
	assert.Equal(t, stageerr.KindOutputDuplication, stageerr.KindOf(err))
}
