package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/next-trace/scg-pipeline-error/internal/graph"
	"github.com/next-trace/scg-pipeline-error/internal/project"
)

func NewRootDirCommand(r *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "root",
		Short: "Print the project root directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wd, err := r.workDir()
			if err != nil {
				return err
			}
			root, err := project.FindRoot(wd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), root)
			return nil
		},
	}
}

func NewCheckCommand(r *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "check [outputs...]",
		Short: "Validate the stage graph, optionally requiring the given outputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := graph.CheckArguments(args); err != nil {
				return err
			}

			ws, err := r.loadWorkspace()
			if err != nil {
				return err
			}

			for _, arg := range args {
				rel, err := ws.rel(arg)
				if err != nil {
					return err
				}
				if _, ok := ws.graph.StageFor(rel); !ok {
					return fmt.Errorf("%s: %w", arg, graph.ErrOutputNotFound)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok (%d stages)\n", ws.graph.Len())
			return nil
		},
	}
}

func NewMoveCommand(r *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "move <src> <dst>",
		Short: "Check whether an output can be moved and show the resulting stage file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := graph.CheckArguments(args); err != nil {
				return err
			}

			ws, err := r.loadWorkspace()
			if err != nil {
				return err
			}
			src, err := ws.rel(args[0])
			if err != nil {
				return err
			}
			dst, err := ws.rel(args[1])
			if err != nil {
				return err
			}

			moved, err := ws.graph.Move(src, dst)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (stage file %s)\n", src, dst, moved.Path)
			return nil
		},
	}
}
