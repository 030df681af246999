package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/taskmate/backend/internal/task"
)

// SQLiteStorage implements TaskStorage on a SQLite database. Row order is
// kept in the position column so list indices survive a round trip.
type SQLiteStorage struct {
	db     *sql.DB
	logger *logrus.Entry
}

// NewSQLiteStorage opens or creates a SQLite database at path.
func NewSQLiteStorage(path string, logger *logrus.Entry) (*SQLiteStorage, error) {
	if logger == nil {
		logger = logrus.WithField("component", "sqlite_storage")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.WithField("path", path).Debug("Opened task database")
	return &SQLiteStorage{db: db, logger: logger}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS tasks (
			position INTEGER PRIMARY KEY,
			id INTEGER NOT NULL,
			description TEXT NOT NULL,
			priority TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Load returns all tasks in list order.
func (s *SQLiteStorage) Load() ([]task.Task, error) {
	rows, err := s.db.Query(`SELECT id, description, priority, created_at FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		var (
			t         task.Task
			createdAt string
		)
		if err := rows.Scan(&t.ID, &t.Description, &t.Priority, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		if t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at of task %d: %w", t.ID, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// Save replaces the stored list with tasks in a single transaction.
func (s *SQLiteStorage) Save(tasks []task.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks"); err != nil {
		return fmt.Errorf("clearing tasks table: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO tasks (position, id, description, priority, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		if _, err := stmt.Exec(i, t.ID, t.Description, t.Priority, t.CreatedAt.UTC().Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("inserting task %d: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing tasks: %w", err)
	}
	s.logger.WithField("count", len(tasks)).Debug("Saved tasks")
	return nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
