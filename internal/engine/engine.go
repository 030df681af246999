package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/taskmate/backend/internal/config"
	"github.com/taskmate/backend/internal/search"
	"github.com/taskmate/backend/internal/storage"
	"github.com/taskmate/backend/internal/task"
)

// ErrTaskNotFound is returned for a list index with no task behind it.
var ErrTaskNotFound = errors.New("task not found")

// Engine owns the task list and answers similar-task requests against it
type Engine struct {
	Config  *config.Config
	Logger  *logrus.Entry
	Storage storage.TaskStorage

	// State
	tasks []task.Task
	mu    sync.RWMutex
	now   func() time.Time

	// Stats
	Stats EngineStats
}

type EngineStats struct {
	Recommendations int64
	Searches        int64
	StartTime       time.Time
}

// Options caps and filters a ranking request.
type Options struct {
	TopK     int
	MinScore float64
}

// Recommendation is a ranked task with its position in the list.
type Recommendation struct {
	Index int       `json:"index"`
	Task  task.Task `json:"task"`
	Score float64   `json:"score"`
}

func NewEngine(cfg *config.Config, logger *logrus.Entry, store storage.TaskStorage) (*Engine, error) {
	if logger == nil {
		logger = logrus.WithField("component", "engine")
	}

	tasks, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	logger.WithField("count", len(tasks)).Info("Loaded task list")

	return &Engine{
		Config:  cfg,
		Logger:  logger,
		Storage: store,
		tasks:   tasks,
		now:     time.Now,
		Stats:   EngineStats{StartTime: time.Now()},
	}, nil
}

// DefaultOptions returns the configured ranking options.
func (e *Engine) DefaultOptions() Options {
	return Options{
		TopK:     e.Config.Recommend.TopK,
		MinScore: e.Config.Recommend.MinScore,
	}
}

// List returns a copy of the task list in display order.
func (e *Engine) List() []task.Task {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]task.Task(nil), e.tasks...)
}

// Len returns the number of tasks.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.tasks)
}

// Get returns the task at index.
func (e *Engine) Get(index int) (task.Task, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if index < 0 || index >= len(e.tasks) {
		return task.Task{}, fmt.Errorf("index %d: %w", index, ErrTaskNotFound)
	}
	return e.tasks[index], nil
}

// Add appends a task, persists the list and returns the task with the index
// it was stored at.
func (e *Engine) Add(description, priority string) (task.Task, int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := task.New(task.NextID(e.tasks), description, priority, e.now())
	if err != nil {
		return task.Task{}, -1, err
	}

	index := len(e.tasks)
	updated := append(append(make([]task.Task, 0, index+1), e.tasks...), t)
	if err := e.Storage.Save(updated); err != nil {
		return task.Task{}, -1, fmt.Errorf("saving tasks: %w", err)
	}
	e.tasks = updated

	e.Logger.WithFields(logrus.Fields{"id": t.ID, "index": index, "priority": t.Priority}).Info("Task added")
	return t, index, nil
}

// Remove deletes the task at index and persists the list. Later tasks shift
// down by one.
func (e *Engine) Remove(index int) (task.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.tasks) {
		return task.Task{}, fmt.Errorf("index %d: %w", index, ErrTaskNotFound)
	}
	removed := e.tasks[index]

	updated := make([]task.Task, 0, len(e.tasks)-1)
	updated = append(updated, e.tasks[:index]...)
	updated = append(updated, e.tasks[index+1:]...)
	if err := e.Storage.Save(updated); err != nil {
		return task.Task{}, fmt.Errorf("saving tasks: %w", err)
	}
	e.tasks = updated

	e.Logger.WithField("id", removed.ID).Info("Task removed")
	return removed, nil
}

// Recommend ranks the other tasks by description similarity to the task at
// index. The term-weight matrix is rebuilt from the current list on every
// call. Fewer than two tasks, or no task above the cutoff, yields an empty
// result.
func (e *Engine) Recommend(index int, opts Options) ([]Recommendation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	tasks := e.List()
	if index < 0 || index >= len(tasks) {
		return nil, fmt.Errorf("index %d: %w", index, ErrTaskNotFound)
	}

	m, err := search.Vectorize(task.Descriptions(tasks))
	if err != nil {
		return nil, fmt.Errorf("vectorizing tasks: %w", err)
	}

	matches, err := search.Rank(m, index, opts.TopK, opts.MinScore)
	if err != nil {
		return nil, fmt.Errorf("ranking tasks: %w", err)
	}

	e.mu.Lock()
	e.Stats.Recommendations++
	e.mu.Unlock()

	e.Logger.WithFields(logrus.Fields{
		"index":      index,
		"corpus":     len(tasks),
		"vocabulary": len(m.Vocabulary),
		"matches":    len(matches),
	}).Debug("Recommendation computed")

	return toRecommendations(tasks, matches), nil
}

// Search ranks every task against free text.
func (e *Engine) Search(query string, opts Options) ([]Recommendation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty query: %w", search.ErrInvalidInput)
	}

	tasks := e.List()
	m, err := search.Vectorize(task.Descriptions(tasks))
	if err != nil {
		return nil, fmt.Errorf("vectorizing tasks: %w", err)
	}
	matches := search.Search(m, query, opts.TopK, opts.MinScore)

	e.mu.Lock()
	e.Stats.Searches++
	e.mu.Unlock()

	return toRecommendations(tasks, matches), nil
}

// Snapshot returns a copy of the engine statistics.
func (e *Engine) Snapshot() EngineStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.Stats
}

func (o Options) validate() error {
	if o.TopK < 0 {
		return fmt.Errorf("top_k must be >= 0, got %d: %w", o.TopK, search.ErrInvalidInput)
	}
	if math.IsNaN(o.MinScore) {
		return fmt.Errorf("min_score is NaN: %w", search.ErrInvalidInput)
	}
	return nil
}

func toRecommendations(tasks []task.Task, matches []search.Match) []Recommendation {
	recs := make([]Recommendation, len(matches))
	for i, match := range matches {
		recs[i] = Recommendation{
			Index: match.Index,
			Task:  tasks[match.Index],
			Score: match.Score,
		}
	}
	return recs
}
