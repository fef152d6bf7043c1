package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// maxFolderDepth caps upward parent-chain walks. A chain longer than this is
// treated as corrupt and the path truncates instead of looping.
const maxFolderDepth = 50

// ResolvePath walks a slash-delimited path segment by segment within a
// workspace and returns the leaf folder id. Any missing segment yields
// ErrNotFound; nothing is ever created.
func (s *Store) ResolvePath(ctx context.Context, workspace, path string) (int64, error) {
	segments := splitFolderPath(path)
	if len(segments) == 0 {
		return 0, ErrNotFound
	}
	var parent *int64
	var id int64
	for _, segment := range segments {
		found := false
		var err error
		id, found, err = s.folderIDByName(ctx, workspace, segment, parent)
		if err != nil {
			return 0, err
		}
		if !found {
			return 0, ErrNotFound
		}
		parent = &id
	}
	return id, nil
}

// ComputePath builds the /-joined ancestor path for a folder by walking
// parent pointers upward. The walk is iterative and depth-capped so a
// corrupt cyclic chain truncates rather than spinning.
func (s *Store) ComputePath(ctx context.Context, id int64) (string, error) {
	return s.computePathMemo(ctx, id, nil)
}

func (s *Store) computePathMemo(ctx context.Context, id int64, memo map[int64]string) (string, error) {
	if memo != nil {
		if path, ok := memo[id]; ok {
			return path, nil
		}
	}
	var parts []string
	current := id
	for depth := 0; depth < maxFolderDepth; depth++ {
		var name string
		var parent *int64
		err := s.queryRowContext(ctx,
			"SELECT name, parent_id FROM folders WHERE id=?", current).Scan(&name, &parent)
		if errors.Is(err, sql.ErrNoRows) {
			if current == id {
				return "", ErrNotFound
			}
			// Dangling parent pointer; stop with what we have.
			break
		}
		if err != nil {
			return "", fmt.Errorf("compute path: %w", err)
		}
		parts = append(parts, name)
		if parent == nil {
			break
		}
		if memo != nil {
			if prefix, ok := memo[*parent]; ok {
				parts = append(parts, prefix)
				break
			}
		}
		current = *parent
	}
	for l, r := 0, len(parts)-1; l < r; l, r = l+1, r-1 {
		parts[l], parts[r] = parts[r], parts[l]
	}
	path := strings.Join(parts, "/")
	if memo != nil {
		memo[id] = path
	}
	return path, nil
}

// CreateFolderPath creates the folders named by path inside workspace in one
// transaction. Every segment is validated before anything is inserted.
// Existing non-final segments are reused as parents; a pre-existing final
// segment is a conflict. With createParents off, the first missing non-final
// segment aborts the call.
func (s *Store) CreateFolderPath(ctx context.Context, workspace, path string, createParents bool) (*CreatedFolder, error) {
	segments := splitFolderPath(path)
	if len(segments) == 0 {
		return nil, &ValidationError{Field: "folder path", Rule: "must contain at least one segment"}
	}
	for _, segment := range segments {
		if verr := validateFolderName(segment); verr != nil {
			return nil, verr
		}
	}
	if err := s.checkWorkspace(ctx, workspace); err != nil {
		return nil, err
	}

	tx, txStart, err := s.beginTx(ctx, "folder-create-path")
	if err != nil {
		return nil, err
	}
	defer func() {
		if tx != nil {
			s.rollbackTx(tx, "folder-create-path", txStart)
		}
	}()

	var parent *int64
	var created []CreatedParent
	var leafID int64
	for i, segment := range segments {
		last := i == len(segments)-1
		existing, found, err := s.folderIDByNameTx(ctx, tx, workspace, segment, parent)
		if err != nil {
			return nil, err
		}
		if found {
			if last {
				return nil, &ConflictError{Name: segment, ExistingID: existing}
			}
			parent = &existing
			continue
		}
		if !last && !createParents {
			return nil, &MissingParentError{Segment: segment}
		}
		res, err := s.execContextTx(ctx, tx,
			"INSERT INTO folders(name, workspace, parent_id, created) VALUES(?, ?, ?, ?)",
			segment, workspace, parent, time.Now().Unix())
		if err != nil {
			return nil, fmt.Errorf("insert folder: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		if !last {
			created = append(created, CreatedParent{ID: id, Name: segment, ParentID: parent})
		}
		leafID = id
		parent = &id
	}

	if err := s.commitTx(tx, "folder-create-path", txStart); err != nil {
		return nil, err
	}
	tx = nil

	fullPath, err := s.ComputePath(ctx, leafID)
	if err != nil {
		return nil, err
	}
	var parentID *int64
	if len(segments) > 1 || len(created) > 0 {
		f, err := s.FolderByID(ctx, leafID)
		if err != nil {
			return nil, err
		}
		parentID = f.ParentID
	}
	slog.Debug("folder path created", "workspace", workspace, "path", fullPath, "created_parents", len(created))
	return &CreatedFolder{
		ID:             leafID,
		Name:           segments[len(segments)-1],
		Workspace:      workspace,
		ParentID:       parentID,
		Path:           fullPath,
		CreatedParents: created,
	}, nil
}
