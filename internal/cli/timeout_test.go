package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeoutCommand_TaskWins(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTimeoutCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"500ms", "10ms"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "completed within budget")
}

func TestTimeoutCommand_BudgetWins(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTimeoutCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"30ms", "10s"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "timed out")
}

func TestTimeoutCommand_InvalidBudget(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTimeoutCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"soon", "1s"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "E002")
}

func TestTimeoutCommand_ZeroTaskRejected(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTimeoutCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"1s", "0s"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "must be positive")
}

func TestParsePositiveDuration(t *testing.T) {
	d, err := parsePositiveDuration("budget", "250ms")
	require.NoError(t, err)
	assert.Equal(t, "250ms", d.String())

	_, err = parsePositiveDuration("budget", "-1s")
	assert.ErrorContains(t, err, "must be positive")

	_, err = parsePositiveDuration("budget", "nope")
	assert.ErrorContains(t, err, "invalid budget")
}
