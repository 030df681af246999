package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/taskmate/backend/internal/task"
)

// TasksFile is the name of the JSON document FileStorage keeps in its
// directory.
const TasksFile = "tasks.json"

// TaskStorage defines the interface for persisting the task list. The whole
// list is written on every save.
type TaskStorage interface {
	Load() ([]task.Task, error)
	Save(tasks []task.Task) error
	Close() error
}

// FileStorage implements TaskStorage using a JSON file on the local file system
type FileStorage struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFileStorage creates a new file-based storage
func NewFileStorage(baseDir string) (*FileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStorage{
		baseDir: baseDir,
	}, nil
}

// Path returns the location of the tasks document.
func (fs *FileStorage) Path() string {
	return filepath.Join(fs.baseDir, TasksFile)
}

// Load reads the task list from disk. A missing file is an empty list.
func (fs *FileStorage) Load() ([]task.Task, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	data, err := os.ReadFile(fs.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []task.Task{}, nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tasks: %w", err)
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

// Save writes the task list through a temp file and rename.
func (fs *FileStorage) Save(tasks []task.Task) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	tmp := fs.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, fs.Path()); err != nil {
		return fmt.Errorf("failed to replace tasks file: %w", err)
	}

	return nil
}

// Close is a no-op for file storage
func (fs *FileStorage) Close() error {
	return nil
}
