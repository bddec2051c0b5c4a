package runner_test

import (
	"bytes"
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/devantler-tech/r2g2/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestExecCommandRunner_RunCapturesOutput(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	var mirror bytes.Buffer

	cmdRunner := runner.NewExecCommandRunner(&mirror)

	res, err := cmdRunner.Run(
		context.Background(),
		"sh",
		[]string{"-c", "echo hello; echo detail >&2"},
	)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Equal(t, "detail\n", res.Stderr)
	assert.Equal(t, "detail\n", mirror.String())
}

func TestExecCommandRunner_RunReturnsError(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	cmdRunner := runner.NewExecCommandRunner(nil)

	res, err := cmdRunner.Run(
		context.Background(),
		"sh",
		[]string{"-c", "echo partial; echo broken >&2; exit 3"},
	)
	require.ErrorContains(t, err, "command execution failed")
	assert.Equal(t, "partial\n", res.Stdout)
	assert.Equal(t, "broken\n", res.Stderr)
}

func TestExecCommandRunner_RunMissingBinary(t *testing.T) {
	t.Parallel()

	cmdRunner := runner.NewExecCommandRunner(nil)

	_, err := cmdRunner.Run(context.Background(), "r2g2-definitely-not-installed", nil)
	require.ErrorIs(t, err, runner.ErrCommandNotFound)
}

func TestExecCommandRunner_RunHonoursContext(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	cmdRunner := runner.NewExecCommandRunner(nil)

	_, err := cmdRunner.Run(ctx, "sh", []string{"-c", "sleep 5"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
