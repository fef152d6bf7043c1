package store

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database holding folders, workspaces, entries,
// users and shared links. All access goes through parameterized statements.
type Store struct {
	db          *sql.DB
	lockTimeout time.Duration
}

type Options struct {
	// LockTimeout bounds how long a statement retries on SQLITE_BUSY.
	// Zero disables retrying.
	LockTimeout time.Duration
}

func Open(path string) (*Store, error) {
	return OpenWithOptions(path, Options{LockTimeout: 5 * time.Second})
}

func OpenWithOptions(path string, opts Options) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, lockTimeout: opts.LockTimeout}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return err
	}
	version, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}
	if version != schemaVersion {
		return s.setSchemaVersion(ctx, schemaVersion)
	}
	return nil
}

func (s *Store) schemaVersion(ctx context.Context) (int, error) {
	var v int
	err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return v, nil
}

func (s *Store) setSchemaVersion(ctx context.Context, v int) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, "INSERT INTO schema_version(version) VALUES(?)", v)
	return err
}
