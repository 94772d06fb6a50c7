package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/locqa/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()

		var recordCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&recordCount)
		require.NoError(t, err)

		var metaCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM meta").Scan(&metaCount)
		require.NoError(t, err)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		db := sqlite.NewDB(dbPath)
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()
		var journalMode string
		err = db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})
}

func TestDB_OpenReadOnly(t *testing.T) {
	t.Parallel()

	t.Run("reads existing data and rejects writes", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "read only.db")
		rw := sqlite.NewDB(path)
		require.NoError(t, rw.Open())
		_, err := rw.ExecContext(ctx, "INSERT INTO meta (dimension, count) VALUES (3, 0)")
		require.NoError(t, err)
		_, err = rw.ExecContext(ctx, "PRAGMA journal_mode = DELETE")
		require.NoError(t, err)
		require.NoError(t, rw.Close())

		db := sqlite.NewDB(path)
		require.NoError(t, db.OpenReadOnly())
		defer db.Close()

		var dim int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT dimension FROM meta").Scan(&dim))
		assert.Equal(t, 3, dim)

		_, err = db.ExecContext(ctx, "INSERT INTO meta (dimension, count) VALUES (1, 1)")
		assert.Error(t, err)
	})

	t.Run("does not create a missing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing.db")
		db := sqlite.NewDB(path)

		err := db.OpenReadOnly()

		require.Error(t, err)
		assert.NoFileExists(t, path)
	})
}
