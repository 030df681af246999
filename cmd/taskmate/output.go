package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/taskmate/backend/internal/engine"
	"github.com/taskmate/backend/internal/task"
)

// TaskOutput is the JSON shape of one task. Number is the 1-based position
// used on the command line.
type TaskOutput struct {
	Number      int       `json:"number"`
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
}

type MatchOutput struct {
	TaskOutput
	Score float64 `json:"score"`
}

type SimilarOutput struct {
	Source  TaskOutput    `json:"source"`
	Similar []MatchOutput `json:"similar"`
	Total   int           `json:"total"`
}

func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func taskOutput(index int, t task.Task) TaskOutput {
	return TaskOutput{
		Number:      index + 1,
		ID:          t.ID,
		Description: t.Description,
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt,
	}
}

func matchOutputs(recs []engine.Recommendation) []MatchOutput {
	out := make([]MatchOutput, len(recs))
	for i, rec := range recs {
		out[i] = MatchOutput{TaskOutput: taskOutput(rec.Index, rec.Task), Score: rec.Score}
	}
	return out
}

func printTaskLine(w io.Writer, index int, t task.Task) {
	age := ""
	if !t.CreatedAt.IsZero() {
		age = " (" + humanize.Time(t.CreatedAt) + ")"
	}
	fmt.Fprintf(w, "%3d. %s%s\n", index+1, t.String(), age)
}

// parseNumber converts a 1-based task number argument to a list index.
func parseNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, &exitError{code: ExitDataError, err: fmt.Errorf("task number must be a positive integer, got %q", arg)}
	}
	return n - 1, nil
}
