package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmate/backend/internal/config"
	"github.com/taskmate/backend/internal/engine"
	"github.com/taskmate/backend/internal/search"
	"github.com/taskmate/backend/internal/task"
)

// runCLI executes the root command against a private data directory.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	jsonOutput = false
	verbose = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.ConfigFileEnv, "")
	t.Setenv("TASKMATE_DATA_DIR", t.TempDir())
	t.Setenv("TASKMATE_STORAGE_BACKEND", "file")
	t.Setenv("TASKMATE_TOP_K", "")
	t.Setenv("TASKMATE_MIN_SCORE", "")
}

func TestCLIFlow(t *testing.T) {
	setupEnv(t)

	out, err := runCLI(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks yet")

	for _, d := range []string{"Buy milk and eggs", "Buy eggs and bread", "Write quarterly report"} {
		out, err = runCLI(t, "add", d, "--priority", "high")
		require.NoError(t, err)
		assert.Contains(t, out, d+" - Priority: high")
	}

	out, err = runCLI(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "  1. Buy milk and eggs - Priority: high")
	assert.Contains(t, out, "  3. Write quarterly report - Priority: high")

	out, err = runCLI(t, "similar", "1")
	require.NoError(t, err)
	assert.Equal(t, engine.RecommendationHeader+"\n1: Buy eggs and bread (Similarity: 0.54)\n", out)

	out, err = runCLI(t, "similar", "1", "--json")
	require.NoError(t, err)
	var resp SimilarOutput
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 1, resp.Source.Number)
	require.Len(t, resp.Similar, 1)
	assert.Equal(t, 2, resp.Similar[0].Number)

	out, err = runCLI(t, "search", "quarterly")
	require.NoError(t, err)
	assert.Contains(t, out, "3. Write quarterly report")

	out, err = runCLI(t, "remove", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed task 3")

	_, err = runCLI(t, "remove", "9")
	assert.ErrorIs(t, err, engine.ErrTaskNotFound)
	assert.Equal(t, ExitNotFound, exitCode(err))
}

func TestCLISimilarNotEnoughTasks(t *testing.T) {
	setupEnv(t)

	_, err := runCLI(t, "add", "Buy milk", "--priority", "low")
	require.NoError(t, err)

	out, err := runCLI(t, "similar", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Not enough tasks to compare")
}

func TestCLIUnknownBackend(t *testing.T) {
	setupEnv(t)
	t.Setenv("TASKMATE_STORAGE_BACKEND", "xlsx")

	_, err := runCLI(t, "list")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, exitCode(err))
}

func TestParseNumber(t *testing.T) {
	index, err := parseNumber("3")
	require.NoError(t, err)
	assert.Equal(t, 2, index)

	for _, arg := range []string{"0", "-1", "two"} {
		_, err := parseNumber(arg)
		assert.Equal(t, ExitDataError, exitCode(err), arg)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{nil, ExitSuccess},
		{errors.New("boom"), ExitError},
		{fmt.Errorf("index 4: %w", engine.ErrTaskNotFound), ExitNotFound},
		{fmt.Errorf("bad: %w", task.ErrInvalidTask), ExitDataError},
		{fmt.Errorf("bad: %w", search.ErrInvalidInput), ExitDataError},
		{&exitError{code: ExitConfigError, err: errors.New("config")}, ExitConfigError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, exitCode(tt.err), "%v", tt.err)
	}
}
