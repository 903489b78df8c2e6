package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Executor runs one argument vector to completion and returns whatever the
// process wrote to stderr.
type Executor interface {
	Run(ctx context.Context, argv []string) (stderr []byte, err error)
}

// ExecExecutor runs commands as child processes with stdin closed and stdout
// discarded.
type ExecExecutor struct{}

func (ExecExecutor) Run(ctx context.Context, argv []string) ([]byte, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec
	// Stdin and Stdout stay nil so they are attached to the null device.
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stderr.Bytes(), fmt.Errorf("%s: %w", argv[0], err)
	}
	return stderr.Bytes(), nil
}

// ExitCode extracts the process exit status from err, or -1 when err does not
// come from an exited process.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// DecodeOutput converts captured process output to text, dropping byte
// sequences that are not valid UTF-8.
func DecodeOutput(raw []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(raw), ""))
}
