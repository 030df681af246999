package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmate/backend/internal/storage"
)

func openTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	db, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteStorageRoundTrip(t *testing.T) {
	db := openTestDB(t)

	empty, err := db.Load()
	require.NoError(t, err)
	assert.Empty(t, empty)

	tasks := sampleTasks()
	require.NoError(t, db.Save(tasks))

	loaded, err := db.Load()
	require.NoError(t, err)
	require.Len(t, loaded, len(tasks))
	for i := range tasks {
		assert.Equal(t, tasks[i].ID, loaded[i].ID, "position %d", i)
		assert.Equal(t, tasks[i].Description, loaded[i].Description)
		assert.Equal(t, tasks[i].Priority, loaded[i].Priority)
		assert.True(t, tasks[i].CreatedAt.Equal(loaded[i].CreatedAt))
	}
}

func TestSQLiteStorageSaveReplaces(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Save(sampleTasks()))
	require.NoError(t, db.Save(sampleTasks()[1:2]))

	loaded, err := db.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 4, loaded[0].ID)
}

func TestSQLiteStorageReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")

	db, err := storage.NewSQLiteStorage(path, nil)
	require.NoError(t, err)
	require.NoError(t, db.Save(sampleTasks()))
	require.NoError(t, db.Close())

	db, err = storage.NewSQLiteStorage(path, nil)
	require.NoError(t, err)
	defer db.Close()

	loaded, err := db.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 3)
}
