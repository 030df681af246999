// Package storage persists the task list.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/taskmate/backend/internal/config"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	SQLiteFile = "tasks.db"
)

// Open returns the TaskStorage selected by cfg.
func Open(cfg config.StorageConfig, logger *logrus.Entry) (TaskStorage, error) {
	switch cfg.Backend {
	case BackendFile, "":
		fs, err := NewFileStorage(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case BackendSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
		db, err := NewSQLiteStorage(filepath.Join(cfg.DataDir, SQLiteFile), logger)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
