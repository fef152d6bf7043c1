// Package userdata owns the per-user on-disk subtree: the SQLite database
// file, entry and attachment directories, and zip backups of all three.
package userdata

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	DatabaseDir    = "database"
	EntriesDir     = "entries"
	AttachmentsDir = "attachments"
	BackupsDir     = "backups"

	DatabaseFile = "poznote.db"
)

var subdirs = []string{DatabaseDir, EntriesDir, AttachmentsDir, BackupsDir}

// Manager scopes all filesystem operations to one user's subtree
// <base>/users/<id>. No path derived from caller input may escape it.
type Manager struct {
	base   string
	userID int64
	loc    *time.Location
}

func New(base string, userID int64, loc *time.Location) *Manager {
	if loc == nil {
		loc = time.UTC
	}
	return &Manager{base: base, userID: userID, loc: loc}
}

// Root returns the user's subtree root.
func (m *Manager) Root() string {
	return filepath.Join(m.base, "users", strconv.FormatInt(m.userID, 10))
}

func (m *Manager) dir(name string) string {
	return filepath.Join(m.Root(), name)
}

// DatabasePath is the location of the user's database file.
func (m *Manager) DatabasePath() string {
	return filepath.Join(m.dir(DatabaseDir), DatabaseFile)
}

// EnsureLayout creates the four subtree directories. Calling it on an
// existing layout is a no-op.
func (m *Manager) EnsureLayout() error {
	for _, sub := range subdirs {
		if err := os.MkdirAll(m.dir(sub), 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", sub, err)
		}
	}
	return nil
}

// Stats reports byte usage per area. Missing files and directories count as
// zero rather than failing, so Stats works on a half-provisioned subtree.
type Stats struct {
	Database    int64 `json:"database"`
	Entries     int64 `json:"entries"`
	Attachments int64 `json:"attachments"`
	Backups     int64 `json:"backups"`
	Total       int64 `json:"total"`
}

func (m *Manager) Stats() (Stats, error) {
	var st Stats
	if info, err := os.Stat(m.DatabasePath()); err == nil {
		st.Database = info.Size()
	}
	var err error
	if st.Entries, err = dirSize(m.dir(EntriesDir)); err != nil {
		return Stats{}, err
	}
	if st.Attachments, err = dirSize(m.dir(AttachmentsDir)); err != nil {
		return Stats{}, err
	}
	if st.Backups, err = dirSize(m.dir(BackupsDir)); err != nil {
		return Stats{}, err
	}
	st.Total = st.Database + st.Entries + st.Attachments + st.Backups
	return st, nil
}

func dirSize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return 0, fmt.Errorf("walk %s: %w", root, err)
	}
	return total, nil
}

// DeleteAll removes the entire subtree. The walk is best effort: a failure
// partway through leaves a partially deleted subtree behind. An absent
// subtree is already the desired state and returns nil.
func (m *Manager) DeleteAll() error {
	root := m.Root()
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil
	}
	if err := os.RemoveAll(root); err != nil {
		return fmt.Errorf("delete user data: %w", err)
	}
	return nil
}
