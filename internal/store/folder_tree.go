package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// FolderListItem is one row of the flat listing, annotated with its full path.
type FolderListItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id"`
	Path     string `json:"path"`
}

// FolderNode is one node of the hierarchical listing.
type FolderNode struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	ParentID *int64        `json:"parent_id"`
	Path     string        `json:"path"`
	Children []*FolderNode `json:"children"`
}

func (s *Store) workspaceFolders(ctx context.Context, workspace string) ([]Folder, error) {
	rows, err := s.queryContext(ctx,
		"SELECT id, name, workspace, parent_id, created FROM folders WHERE workspace=?", workspace)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []Folder
	for rows.Next() {
		var f Folder
		var created int64
		if err := rows.Scan(&f.ID, &f.Name, &f.Workspace, &f.ParentID, &created); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		f.Created = time.Unix(created, 0)
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return folders, nil
}

// ListFoldersFlat returns every folder in the workspace annotated with its
// full path, sorted case-insensitively by path. Path order, not name order:
// a flat listing reads top to bottom like a file tree printout.
func (s *Store) ListFoldersFlat(ctx context.Context, workspace string) ([]FolderListItem, error) {
	if err := s.checkWorkspace(ctx, workspace); err != nil {
		return nil, err
	}
	folders, err := s.workspaceFolders(ctx, workspace)
	if err != nil {
		return nil, err
	}
	memo := make(map[int64]string, len(folders))
	items := make([]FolderListItem, 0, len(folders))
	for _, f := range folders {
		path, err := s.computePathMemo(ctx, f.ID, memo)
		if err != nil {
			return nil, err
		}
		items = append(items, FolderListItem{ID: f.ID, Name: f.Name, ParentID: f.ParentID, Path: path})
	}
	sort.SliceStable(items, func(a, b int) bool {
		return strings.ToLower(items[a].Path) < strings.ToLower(items[b].Path)
	})
	return items, nil
}

// ListFoldersTree returns the workspace folders as a forest. Siblings at every
// level sort case-insensitively by name.
func (s *Store) ListFoldersTree(ctx context.Context, workspace string) ([]*FolderNode, error) {
	if err := s.checkWorkspace(ctx, workspace); err != nil {
		return nil, err
	}
	folders, err := s.workspaceFolders(ctx, workspace)
	if err != nil {
		return nil, err
	}

	nodes := make(map[int64]*FolderNode, len(folders))
	memo := make(map[int64]string, len(folders))
	for _, f := range folders {
		path, err := s.computePathMemo(ctx, f.ID, memo)
		if err != nil {
			return nil, err
		}
		nodes[f.ID] = &FolderNode{
			ID:       f.ID,
			Name:     f.Name,
			ParentID: f.ParentID,
			Path:     path,
			Children: []*FolderNode{},
		}
	}

	var roots []*FolderNode
	for _, f := range folders {
		node := nodes[f.ID]
		// parent_id 0 is a real id, only NULL means root.
		if f.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*f.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		} else {
			// Orphaned by a cross-workspace or deleted parent; surface at root
			// rather than dropping it.
			roots = append(roots, node)
		}
	}

	sortNodes(roots)
	for _, node := range nodes {
		sortNodes(node.Children)
	}
	return roots, nil
}

func sortNodes(nodes []*FolderNode) {
	sort.SliceStable(nodes, func(a, b int) bool {
		return strings.ToLower(nodes[a].Name) < strings.ToLower(nodes[b].Name)
	})
}
