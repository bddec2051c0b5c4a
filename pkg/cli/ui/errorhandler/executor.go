// Package errorhandler runs the root command and turns whatever cobra wrote
// to stderr into the message of the returned error.
package errorhandler

import (
	"bytes"
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// Executor runs a command with its error stream captured.
type Executor struct{}

// NewExecutor returns an Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute runs cmd with ctx. On failure it returns a *CommandError whose
// message is the captured stderr, cleaned by Normalize, and whose cause is
// the error cobra returned.
func (e *Executor) Execute(ctx context.Context, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var captured bytes.Buffer

	previous := cmd.ErrOrStderr()

	cmd.SetErr(&captured)
	defer cmd.SetErr(previous)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	return &CommandError{message: Normalize(captured.String()), cause: err}
}

// CommandError pairs cobra's stderr output with the underlying error.
type CommandError struct {
	message string
	cause   error
}

// Error prefers the captured message and appends the cause unless the
// message already contains it.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message == "":
		return e.cause.Error()
	case strings.Contains(e.message, e.cause.Error()):
		return e.message
	default:
		return e.message + ": " + e.cause.Error()
	}
}

// Unwrap returns the cobra error.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// Normalize trims raw and drops cobra's "Error: " prefix from the first
// line. Later lines, such as the usage hint, are kept.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	first, rest, found := strings.Cut(trimmed, "\n")
	first = strings.TrimPrefix(strings.TrimSpace(first), "Error: ")

	if !found {
		return first
	}

	return first + "\n" + rest
}
