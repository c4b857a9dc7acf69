// Package cli wires the pipecheck commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/next-trace/scg-pipeline-error/internal/config"
	"github.com/next-trace/scg-pipeline-error/internal/graph"
	"github.com/next-trace/scg-pipeline-error/internal/logger"
	"github.com/next-trace/scg-pipeline-error/internal/project"
	"github.com/next-trace/scg-pipeline-error/internal/stagefile"
)

const envPrefix = "PIPECHECK"

type RootCommand struct {
	cmd    *cobra.Command
	v      *viper.Viper
	logger *slog.Logger
}

func NewRootCommand() *RootCommand {
	root := &RootCommand{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "pipecheck",
		Short: "Validate pipeline stage graphs",
		Long: `pipecheck loads the stage files of a pipeline project and reports
duplicated outputs, circular dependencies and other stage graph problems.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: root.persistentPreRunE,
	}

	pflags := cmd.PersistentFlags()
	pflags.BoolP("verbose", "v", false, "Show the cause chain and trace of failures")
	pflags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	pflags.String("log-format", "text", "Log format (text, json)")
	pflags.String("cwd", "", "Run as if started in this directory")

	for _, name := range []string{"verbose", "log-level", "log-format", "cwd"} {
		_ = root.v.BindPFlag(name, pflags.Lookup(name))
	}
	root.v.SetEnvPrefix(envPrefix)
	root.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	root.v.AutomaticEnv()

	root.cmd = cmd
	root.addSubCommands()

	return root
}

func (r *RootCommand) persistentPreRunE(cmd *cobra.Command, _ []string) error {
	r.logger = logger.New(logger.Config{
		Level:  r.v.GetString("log-level"),
		Format: r.v.GetString("log-format"),
		Output: cmd.ErrOrStderr(),
	})
	return nil
}

func (r *RootCommand) addSubCommands() {
	r.cmd.AddCommand(NewRootDirCommand(r))
	r.cmd.AddCommand(NewCheckCommand(r))
	r.cmd.AddCommand(NewMoveCommand(r))
}

func (r *RootCommand) Command() *cobra.Command { return r.cmd }

// Verbose reports whether failures should be shown with their cause chain.
func (r *RootCommand) Verbose() bool { return r.v.GetBool("verbose") }

// Logger returns the configured logger, or a discarding one before the
// commands have run.
func (r *RootCommand) Logger() *slog.Logger {
	if r.logger == nil {
		return logger.Discard()
	}
	return r.logger
}

func (r *RootCommand) SetOutput(out, errOut io.Writer) {
	r.cmd.SetOut(out)
	r.cmd.SetErr(errOut)
}

func (r *RootCommand) SetArgs(args []string) { r.cmd.SetArgs(args) }

func (r *RootCommand) Execute() error { return r.cmd.Execute() }

// workDir returns the absolute directory commands resolve paths against.
func (r *RootCommand) workDir() (string, error) {
	dir := r.v.GetString("cwd")
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	return filepath.Abs(dir)
}

// workspace is a loaded project: its root, config and validated graph.
type workspace struct {
	wd    string
	root  string
	cfg   *config.Config
	graph *graph.Graph
}

func (r *RootCommand) loadWorkspace() (*workspace, error) {
	wd, err := r.workDir()
	if err != nil {
		return nil, err
	}
	root, err := project.FindRoot(wd)
	if err != nil {
		return nil, err
	}
	log := r.Logger().With("root", root)

	cfg, err := config.Load(project.ConfigPath(root))
	if err != nil {
		return nil, err
	}
	remote, ok, err := cfg.DefaultRemote()
	if err != nil {
		return nil, err
	}
	if ok {
		log.Debug("default remote resolved", "remote", remote.Name, "scheme", remote.Scheme())
	}

	stages, err := stagefile.LoadAll(root)
	if err != nil {
		return nil, err
	}
	log.Debug("stage files loaded", "count", len(stages))

	g, err := graph.Build(stages)
	if err != nil {
		return nil, err
	}

	return &workspace{wd: wd, root: root, cfg: cfg, graph: g}, nil
}

// rel converts a path given on the command line into a root-relative path.
func (w *workspace) rel(p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(w.wd, p)
	}
	rel, err := filepath.Rel(w.root, p)
	if err != nil {
		return "", fmt.Errorf("path %q: %w", p, err)
	}
	return rel, nil
}
