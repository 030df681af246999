package main

import (
	"errors"

	"github.com/taskmate/backend/internal/engine"
	"github.com/taskmate/backend/internal/search"
	"github.com/taskmate/backend/internal/task"
)

const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (runtime failure)
	ExitConfigError = 2 // Configuration error (bad config file, unknown backend)
	ExitDataError   = 3 // Data error (invalid task, malformed input, unreadable task list)
	ExitNotFound    = 4 // No task at the given index
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	var ee *exitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &ee):
		return ee.code
	case errors.Is(err, engine.ErrTaskNotFound):
		return ExitNotFound
	case errors.Is(err, task.ErrInvalidTask), errors.Is(err, search.ErrInvalidInput):
		return ExitDataError
	default:
		return ExitError
	}
}
