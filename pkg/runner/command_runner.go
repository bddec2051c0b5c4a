package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// ErrCommandNotFound is returned when the requested executable is not on PATH.
var ErrCommandNotFound = errors.New("command not found")

// CommandResult captures the stdout and stderr collected during an external command execution.
// Both fields contain the complete output from the command, including any output produced
// before an error occurred.
type CommandResult struct {
	Stdout string
	Stderr string
}

// CommandRunner executes external commands while capturing their output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string) (CommandResult, error)
}

// ExecCommandRunner runs executables through os/exec.
// Stderr is mirrored to the configured writer so long-running commands show progress.
type ExecCommandRunner struct {
	stderr io.Writer
}

// NewExecCommandRunner creates a runner that mirrors the child's stderr to the given writer.
// A nil writer discards the mirrored stream; it is still captured in the result.
func NewExecCommandRunner(stderr io.Writer) *ExecCommandRunner {
	if stderr == nil {
		stderr = io.Discard
	}

	return &ExecCommandRunner{stderr: stderr}
}

// Run executes name with args and waits for it to exit or for ctx to be cancelled.
//
// Returns the captured output and any error from command execution.
func (r *ExecCommandRunner) Run(
	ctx context.Context,
	name string,
	args []string,
) (CommandResult, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return CommandResult{}, fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}

	var outBuf, errBuf bytes.Buffer

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &outBuf
	cmd.Stderr = io.MultiWriter(&errBuf, r.stderr)

	execErr := cmd.Run()

	result := CommandResult{
		Stdout: outBuf.String(),
		Stderr: errBuf.String(),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("command %s interrupted: %w", name, ctxErr)
	}

	if execErr != nil {
		return result, fmt.Errorf("command execution failed: %w", execErr)
	}

	return result, nil
}
