package store

import (
	"context"
	"fmt"
	"time"
)

func (s *Store) CreateWorkspace(ctx context.Context, name string) error {
	if name == "" {
		return &ValidationError{Field: "workspace", Rule: "must not be empty"}
	}
	_, err := s.execContext(ctx,
		"INSERT INTO workspaces(name, created) VALUES(?, ?) ON CONFLICT(name) DO NOTHING",
		name, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	return nil
}

func (s *Store) WorkspaceExists(ctx context.Context, name string) (bool, error) {
	var n int
	err := s.queryRowContext(ctx,
		"SELECT COUNT(1) FROM workspaces WHERE name=?", name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("workspace exists: %w", err)
	}
	return n > 0, nil
}

func (s *Store) ListWorkspaces(ctx context.Context) ([]string, error) {
	rows, err := s.queryContext(ctx, "SELECT name FROM workspaces ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DeleteSetting removes one settings row by exact key match.
func (s *Store) DeleteSetting(ctx context.Context, key string) (bool, error) {
	res, err := s.execContext(ctx, "DELETE FROM settings WHERE key=?", key)
	if err != nil {
		return false, fmt.Errorf("delete setting: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ReassignEntriesWorkspace moves every entry from one workspace to another
// and returns the number of rows touched.
func (s *Store) ReassignEntriesWorkspace(ctx context.Context, from, to string) (int64, error) {
	res, err := s.execContext(ctx,
		"UPDATE entries SET workspace=? WHERE workspace=?", to, from)
	if err != nil {
		return 0, fmt.Errorf("reassign entries: %w", err)
	}
	return res.RowsAffected()
}
