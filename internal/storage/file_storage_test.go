package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmate/backend/internal/config"
	"github.com/taskmate/backend/internal/storage"
	"github.com/taskmate/backend/internal/task"
)

func sampleTasks() []task.Task {
	created := time.Date(2026, 3, 15, 9, 30, 0, 123, time.UTC)
	return []task.Task{
		{ID: 1, Description: "Buy milk and eggs", Priority: "high", CreatedAt: created},
		{ID: 4, Description: "Write quarterly report", Priority: "low", CreatedAt: created.Add(time.Hour)},
		{ID: 2, Description: "", Priority: "medium", CreatedAt: created.Add(2 * time.Hour)},
	}
}

func TestFileStorage(t *testing.T) {
	tmpDir := t.TempDir()

	fs, err := storage.NewFileStorage(tmpDir)
	require.NoError(t, err)

	tasks := sampleTasks()
	require.NoError(t, fs.Save(tasks))

	_, err = os.Stat(filepath.Join(tmpDir, storage.TasksFile))
	assert.NoError(t, err)

	loaded, err := fs.Load()
	require.NoError(t, err)
	require.Len(t, loaded, len(tasks))
	for i := range tasks {
		assert.Equal(t, tasks[i].ID, loaded[i].ID)
		assert.Equal(t, tasks[i].Description, loaded[i].Description)
		assert.Equal(t, tasks[i].Priority, loaded[i].Priority)
		assert.True(t, tasks[i].CreatedAt.Equal(loaded[i].CreatedAt))
	}
	assert.NoError(t, fs.Close())
}

func TestFileStorageMissingFileIsEmpty(t *testing.T) {
	fs, err := storage.NewFileStorage(filepath.Join(t.TempDir(), "nested", "dir"))
	require.NoError(t, err)

	tasks, err := fs.Load()
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestFileStorageCorruptFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, storage.TasksFile), []byte("{not json"), 0644))

	fs, err := storage.NewFileStorage(tmpDir)
	require.NoError(t, err)

	_, err = fs.Load()
	assert.Error(t, err)
}

func TestFileStorageSaveEmpty(t *testing.T) {
	fs, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.Save(sampleTasks()))
	require.NoError(t, fs.Save(nil))

	tasks, err := fs.Load()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestOpenBackends(t *testing.T) {
	logger := logrus.New().WithField("test", "storage")

	for _, backend := range []string{storage.BackendFile, storage.BackendSQLite, ""} {
		t.Run("backend="+backend, func(t *testing.T) {
			st, err := storage.Open(config.StorageConfig{Backend: backend, DataDir: t.TempDir()}, logger)
			require.NoError(t, err)
			defer st.Close()

			require.NoError(t, st.Save(sampleTasks()))
			loaded, err := st.Load()
			require.NoError(t, err)
			assert.Len(t, loaded, 3)
		})
	}

	_, err := storage.Open(config.StorageConfig{Backend: "xlsx", DataDir: t.TempDir()}, logger)
	assert.Error(t, err)
}
