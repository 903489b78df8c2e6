package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		fmt.Fprintf(cmd.ErrOrStderr(), "An error occurred, exiting with code %d\n", exitErr.code)
		return exitStatus(exitErr.code)
	}
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}
	return 1
}

// exitStatus maps a failure mask onto a process exit status. Masks that do not
// fit in a byte saturate so that no failure exits with 0.
func exitStatus(mask int) int {
	return min(mask, 255)
}

// exitError carries the batch failure mask to the process exit status.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}
