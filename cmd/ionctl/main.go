package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ionenergy/ionctl/internal/cli"
	"github.com/ionenergy/ionctl/internal/pages"
	"github.com/ionenergy/ionctl/pkg/version"
)

// Exit codes beyond the generic failure.
const (
	exitRejected = 2
	exitNotFound = 3
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	root.SilenceErrors = true
	root.SilenceUsage = true
	return root.Execute()
}

// exitCode maps an error to the process exit status: 2 when the backend
// rejected a save or a report, 3 when a record was not found, 1 otherwise.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, pages.ErrSaveFailed), errors.Is(err, cli.ErrReport):
		return exitRejected
	case errors.Is(err, cli.ErrNotFound):
		return exitNotFound
	default:
		return 1
	}
}
