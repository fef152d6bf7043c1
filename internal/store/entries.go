package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type Entry struct {
	ID        int64
	Heading   string
	Body      string
	Workspace string
	FolderID  *int64
	Trash     bool
	Created   time.Time
	Updated   time.Time
}

func (s *Store) CreateEntry(ctx context.Context, heading, body, workspace string, folderID *int64) (int64, error) {
	if heading == "" {
		return 0, &ValidationError{Field: "heading", Rule: "must not be empty"}
	}
	if err := s.checkWorkspace(ctx, workspace); err != nil {
		return 0, err
	}
	now := time.Now().Unix()
	res, err := s.execContext(ctx,
		"INSERT INTO entries(heading, body, workspace, folder_id, trash, created, updated) VALUES(?, ?, ?, ?, 0, ?, ?)",
		heading, body, workspace, folderID, now, now)
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) EntryByID(ctx context.Context, id int64) (*Entry, error) {
	var e Entry
	var trash int
	var created, updated int64
	err := s.queryRowContext(ctx,
		"SELECT id, heading, body, workspace, folder_id, trash, created, updated FROM entries WHERE id=?", id).
		Scan(&e.ID, &e.Heading, &e.Body, &e.Workspace, &e.FolderID, &trash, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("entry by id: %w", err)
	}
	e.Trash = trash != 0
	e.Created = time.Unix(created, 0)
	e.Updated = time.Unix(updated, 0)
	return &e, nil
}

// EntriesInFolder lists non-trashed entries directly inside a folder,
// ordered by heading.
func (s *Store) EntriesInFolder(ctx context.Context, folderID int64) ([]Entry, error) {
	rows, err := s.queryContext(ctx,
		"SELECT id, heading, body, workspace, folder_id, trash, created, updated FROM entries WHERE folder_id=? AND trash=0 ORDER BY heading COLLATE NOCASE",
		folderID)
	if err != nil {
		return nil, fmt.Errorf("entries in folder: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var trash int
		var created, updated int64
		if err := rows.Scan(&e.ID, &e.Heading, &e.Body, &e.Workspace, &e.FolderID, &trash, &created, &updated); err != nil {
			return nil, err
		}
		e.Trash = trash != 0
		e.Created = time.Unix(created, 0)
		e.Updated = time.Unix(updated, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
