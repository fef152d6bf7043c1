package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type Folder struct {
	ID        int64
	Name      string
	Workspace string
	ParentID  *int64
	Created   time.Time
}

// CreatedFolder is the result of a folder creation: the leaf folder with its
// computed path, plus any ancestors this call auto-created.
type CreatedFolder struct {
	ID             int64
	Name           string
	Workspace      string
	ParentID       *int64
	Path           string
	CreatedParents []CreatedParent
}

type CreatedParent struct {
	ID       int64
	Name     string
	ParentID *int64
}

// ParentRef names a parent folder either directly by id or by a path to
// resolve. The zero value means the workspace root.
type ParentRef struct {
	ID   *int64
	Path string
}

// FolderByID returns the folder row or ErrNotFound.
func (s *Store) FolderByID(ctx context.Context, id int64) (*Folder, error) {
	var f Folder
	var created int64
	err := s.queryRowContext(ctx,
		"SELECT id, name, workspace, parent_id, created FROM folders WHERE id=?", id).
		Scan(&f.ID, &f.Name, &f.Workspace, &f.ParentID, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("folder by id: %w", err)
	}
	f.Created = time.Unix(created, 0)
	return &f, nil
}

// folderIDByName looks up a folder named name directly under parent within
// workspace. parent == nil means the workspace root. Returns 0, sql.ErrNoRows
// semantics folded into found=false.
func (s *Store) folderIDByName(ctx context.Context, workspace, name string, parent *int64) (int64, bool, error) {
	var id int64
	var err error
	if parent == nil {
		err = s.queryRowContext(ctx,
			"SELECT id FROM folders WHERE name=? AND workspace=? AND parent_id IS NULL",
			name, workspace).Scan(&id)
	} else {
		err = s.queryRowContext(ctx,
			"SELECT id FROM folders WHERE name=? AND workspace=? AND parent_id=?",
			name, workspace, *parent).Scan(&id)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("folder lookup: %w", err)
	}
	return id, true, nil
}

func (s *Store) folderIDByNameTx(ctx context.Context, tx *sql.Tx, workspace, name string, parent *int64) (int64, bool, error) {
	var id int64
	var err error
	if parent == nil {
		err = s.queryRowContextTx(ctx, tx,
			"SELECT id FROM folders WHERE name=? AND workspace=? AND parent_id IS NULL",
			name, workspace).Scan(&id)
	} else {
		err = s.queryRowContextTx(ctx, tx,
			"SELECT id FROM folders WHERE name=? AND workspace=? AND parent_id=?",
			name, workspace, *parent).Scan(&id)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("folder lookup: %w", err)
	}
	return id, true, nil
}

// CreateFolder creates a single folder under the given parent. The parent may
// be referenced by id (validated to belong to the same workspace) or by a
// path resolved first; the zero ParentRef targets the workspace root.
func (s *Store) CreateFolder(ctx context.Context, workspace, name string, parent ParentRef) (*CreatedFolder, error) {
	if verr := validateFolderName(name); verr != nil {
		return nil, verr
	}
	if err := s.checkWorkspace(ctx, workspace); err != nil {
		return nil, err
	}

	var parentID *int64
	switch {
	case parent.ID != nil:
		pf, err := s.FolderByID(ctx, *parent.ID)
		if err != nil {
			return nil, err
		}
		if pf.Workspace != workspace {
			return nil, ErrNotFound
		}
		parentID = parent.ID
	case parent.Path != "":
		id, err := s.ResolvePath(ctx, workspace, parent.Path)
		if err != nil {
			return nil, err
		}
		parentID = &id
	}

	if existing, found, err := s.folderIDByName(ctx, workspace, name, parentID); err != nil {
		return nil, err
	} else if found {
		return nil, &ConflictError{Name: name, ExistingID: existing}
	}

	id, err := s.insertFolder(ctx, workspace, name, parentID)
	if err != nil {
		return nil, err
	}
	path, err := s.ComputePath(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CreatedFolder{
		ID:        id,
		Name:      name,
		Workspace: workspace,
		ParentID:  parentID,
		Path:      path,
	}, nil
}

func (s *Store) insertFolder(ctx context.Context, workspace, name string, parent *int64) (int64, error) {
	res, err := s.execContext(ctx,
		"INSERT INTO folders(name, workspace, parent_id, created) VALUES(?, ?, ?, ?)",
		name, workspace, parent, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("insert folder: %w", err)
	}
	return res.LastInsertId()
}

// DeleteFolderRow removes one folder row by id. Used by the cleanup tool;
// it does not touch children or entries.
func (s *Store) DeleteFolderRow(ctx context.Context, id int64) (bool, error) {
	res, err := s.execContext(ctx, "DELETE FROM folders WHERE id=?", id)
	if err != nil {
		return false, fmt.Errorf("delete folder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) checkWorkspace(ctx context.Context, workspace string) error {
	// The empty workspace is the unscoped sentinel and needs no row.
	if workspace == "" {
		return nil
	}
	ok, err := s.WorkspaceExists(ctx, workspace)
	if err != nil {
		return err
	}
	if !ok {
		return ErrWorkspaceNotFound
	}
	return nil
}
