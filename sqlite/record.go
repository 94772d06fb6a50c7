package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fwojciec/locqa"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ locqa.RecordStore = (*RecordStore)(nil)

// RecordStore implements locqa.RecordStore as a single SQLite file.
//
// Persist builds the database under a temporary name and links it into
// place, so the artifact at path is either absent or complete. Load never
// writes to the artifact.
type RecordStore struct {
	path string
}

// NewRecordStore creates a RecordStore backed by the file at path.
func NewRecordStore(path string) *RecordStore {
	return &RecordStore{path: path}
}

// Path returns the artifact path.
func (s *RecordStore) Path() string {
	return s.path
}

// Exists reports whether the artifact file is present.
func (s *RecordStore) Exists(ctx context.Context) (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Persist writes every record to a temporary database and publishes it at
// the artifact path with a hard link, which fails if the path exists. The
// first writer wins; later writers discard their temporary file.
func (s *RecordStore) Persist(ctx context.Context, store *locqa.Store) error {
	if store == nil {
		return locqa.Errorf(locqa.EINVALID, "store required")
	}

	tmp := fmt.Sprintf("%s.%s.tmp", s.path, uuid.New().String())
	defer removeDatabase(tmp)
	if err := writeStore(ctx, tmp, store); err != nil {
		return fmt.Errorf("write store: %w", err)
	}

	err := os.Link(tmp, s.path)
	switch {
	case err == nil, errors.Is(err, fs.ErrExist):
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("publish store: %w", err)
	}

	// Filesystems without hard links fall back to check then rename.
	exists, err := s.Exists(ctx)
	if err != nil || exists {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename store: %w", err)
	}
	return nil
}

// Load reads all records in insertion order.
func (s *RecordStore) Load(ctx context.Context) (*locqa.Store, error) {
	exists, err := s.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, locqa.Errorf(locqa.ENOTFOUND, "store %q does not exist", s.path)
	}

	db := NewDB(s.path)
	if err := db.OpenReadOnly(); err != nil {
		return nil, locqa.Errorf(locqa.ECORRUPT, "cannot open store %q: %v", s.path, err)
	}
	defer db.Close()

	var dim, count int
	err = db.QueryRowContext(ctx, "SELECT dimension, count FROM meta").Scan(&dim, &count)
	if err == sql.ErrNoRows {
		return nil, locqa.Errorf(locqa.ECORRUPT, "store %q has no metadata", s.path)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, locqa.Errorf(locqa.ECORRUPT, "cannot read store %q metadata: %v", s.path, err)
	}

	rows, err := db.QueryContext(ctx, "SELECT id, context, embedding FROM records ORDER BY id ASC")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, locqa.Errorf(locqa.ECORRUPT, "cannot read store %q records: %v", s.path, err)
	}
	defer rows.Close()

	records := make([]*locqa.Record, 0, count)
	for rows.Next() {
		var r locqa.Record
		var blob []byte
		if err := rows.Scan(&r.ID, &r.Context, &blob); err != nil {
			return nil, err
		}
		if r.Vector, err = decodeVector(blob, dim); err != nil {
			return nil, locqa.Errorf(locqa.ECORRUPT, "record %d: %s", r.ID, locqa.ErrorMessage(err))
		}
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(records) != count {
		return nil, locqa.Errorf(locqa.ECORRUPT, "store has %d records, metadata says %d", len(records), count)
	}

	store, err := locqa.NewStore(records)
	if err != nil {
		return nil, locqa.Errorf(locqa.ECORRUPT, "%s", locqa.ErrorMessage(err))
	}
	return store, nil
}

// writeStore creates a standalone database at path holding store.
func writeStore(ctx context.Context, path string, store *locqa.Store) error {
	db := NewDB(path)
	if err := db.Open(); err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "INSERT INTO meta (dimension, count) VALUES (?, ?)",
		store.Dimension(), store.Len()); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO records (id, context, embedding) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range store.Records() {
		if _, err := stmt.ExecContext(ctx, i+1, r.Context, encodeVector(r.Vector)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	// Leave WAL so the file is self-contained before it is renamed.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = DELETE"); err != nil {
		return err
	}
	return db.Close()
}

// removeDatabase removes a database file and its WAL side files.
func removeDatabase(path string) {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		_ = os.Remove(p)
	}
}
