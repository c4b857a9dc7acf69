// Command pipecheck validates the stage graph of a pipeline project.
package main

import (
	"os"

	"github.com/next-trace/scg-pipeline-error/internal/cli"
	"github.com/next-trace/scg-pipeline-error/internal/report"
)

func main() {
	root := cli.NewRootCommand()
	err := root.Execute()

	rep := report.New(os.Stderr,
		report.WithVerbose(root.Verbose()),
		report.WithLogger(root.Logger()),
	)
	os.Exit(rep.Report(err))
}
