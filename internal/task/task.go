// Package task defines the task list entry shared by storage, engine and the
// user-facing surfaces.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrInvalidTask is returned when a task is missing its description or
// priority, or its description is not valid UTF-8.
var ErrInvalidTask = errors.New("invalid task")

// Task is one entry of the personal task list. Priority is an opaque
// display value.
type Task struct {
	ID          int       `json:"id" yaml:"id"`
	Description string    `json:"description" yaml:"description"`
	Priority    string    `json:"priority" yaml:"priority"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// New validates the fields and returns a task with the given ID.
func New(id int, description, priority string, now time.Time) (Task, error) {
	description = strings.TrimSpace(description)
	priority = strings.TrimSpace(priority)
	if description == "" {
		return Task{}, fmt.Errorf("description is required: %w", ErrInvalidTask)
	}
	if !utf8.ValidString(description) {
		return Task{}, fmt.Errorf("description is not valid UTF-8: %w", ErrInvalidTask)
	}
	if priority == "" {
		return Task{}, fmt.Errorf("priority is required: %w", ErrInvalidTask)
	}
	return Task{
		ID:          id,
		Description: description,
		Priority:    priority,
		CreatedAt:   now,
	}, nil
}

// String renders the task the way list views show it.
func (t Task) String() string {
	return fmt.Sprintf("%s - Priority: %s", t.Description, t.Priority)
}

// NextID returns one more than the largest ID in tasks, or 1 for an empty
// list.
func NextID(tasks []Task) int {
	highest := 0
	for _, t := range tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest + 1
}

// Descriptions returns the descriptions of tasks in list order.
func Descriptions(tasks []Task) []string {
	docs := make([]string, len(tasks))
	for i, t := range tasks {
		docs[i] = t.Description
	}
	return docs
}
