package userdata

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	pfs "poznote/internal/storage/fs"
)

// Backup names are minted with this timestamp layout so lexical order equals
// chronological order.
const backupTimeLayout = "2006-01-02_15-04-05"

// backupNamePattern gates every caller-supplied backup name before the
// filesystem is touched. Anything else could smuggle a path.
var backupNamePattern = regexp.MustCompile(`^backup_[A-Za-z0-9_-]+\.zip$`)

var (
	ErrBadBackupName  = errors.New("invalid backup name")
	ErrBackupNotFound = errors.New("backup not found")
	ErrUnsafeArchive  = errors.New("archive member escapes user directory")
)

type Backup struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	Created time.Time `json:"created"`
}

// CreateBackup packs the database file (when present) and the full entries
// and attachments trees into one timestamp-named zip under backups/.
func (m *Manager) CreateBackup() (Backup, error) {
	if err := m.EnsureLayout(); err != nil {
		return Backup{}, err
	}
	name := "backup_" + time.Now().In(m.loc).Format(backupTimeLayout) + ".zip"
	path := filepath.Join(m.dir(BackupsDir), name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return Backup{}, fmt.Errorf("open backup archive: %w", err)
	}
	zw := zip.NewWriter(f)

	fail := func(err error) (Backup, error) {
		zw.Close()
		f.Close()
		os.Remove(path)
		return Backup{}, err
	}

	if data, err := os.ReadFile(m.DatabasePath()); err == nil {
		w, err := zw.Create(DatabaseDir + "/" + DatabaseFile)
		if err != nil {
			return fail(fmt.Errorf("archive database: %w", err))
		}
		if _, err := w.Write(data); err != nil {
			return fail(fmt.Errorf("archive database: %w", err))
		}
	} else if !os.IsNotExist(err) {
		return fail(fmt.Errorf("read database: %w", err))
	}

	for _, sub := range []string{EntriesDir, AttachmentsDir} {
		if err := addDirToZip(zw, m.dir(sub), sub); err != nil {
			return fail(err)
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		os.Remove(path)
		return Backup{}, fmt.Errorf("finalize backup: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return Backup{}, fmt.Errorf("finalize backup: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Backup{}, err
	}
	slog.Info("backup created", "user_id", m.userID, "name", name, "size", info.Size())
	return Backup{Name: name, Path: path, Size: info.Size(), Created: info.ModTime()}, nil
}

func addDirToZip(zw *zip.Writer, root, prefix string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(prefix + "/" + filepath.ToSlash(rel))
		if err != nil {
			return fmt.Errorf("archive %s: %w", rel, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}
		_, err = w.Write(data)
		return err
	})
}

// ListBackups returns the archives under backups/, newest-named last.
func (m *Manager) ListBackups() ([]Backup, error) {
	dir := m.dir(BackupsDir)
	items, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	var backups []Backup
	for _, item := range items {
		if item.IsDir() || !backupNamePattern.MatchString(item.Name()) {
			continue
		}
		info, err := item.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Backup{
			Name:    item.Name(),
			Path:    filepath.Join(dir, item.Name()),
			Size:    info.Size(),
			Created: info.ModTime(),
		})
	}
	sort.Slice(backups, func(a, b int) bool { return backups[a].Name < backups[b].Name })
	return backups, nil
}

// DeleteBackup removes one archive by name. The name must match the backup
// filename pattern exactly; anything else is rejected before any filesystem
// access.
func (m *Manager) DeleteBackup(name string) error {
	if !backupNamePattern.MatchString(name) {
		return ErrBadBackupName
	}
	path := filepath.Join(m.dir(BackupsDir), name)
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return ErrBackupNotFound
	}
	if err != nil {
		return fmt.Errorf("delete backup: %w", err)
	}
	return nil
}

// RestoreBackup extracts an archive into the user subtree. With replace set,
// the entries and attachments directories are cleared first; the database
// file is only overwritten when the archive carries a database/ member.
// Every member path is containment-checked before extraction.
func (m *Manager) RestoreBackup(path string, replace bool) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ErrBackupNotFound
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open backup archive: %w", err)
	}
	defer zr.Close()

	root := m.Root()
	// Validate the whole archive before writing anything.
	for _, member := range zr.File {
		if _, err := pfs.JoinWithinBase(root, member.Name); err != nil {
			return fmt.Errorf("%w: %s", ErrUnsafeArchive, member.Name)
		}
	}

	if replace {
		for _, sub := range []string{EntriesDir, AttachmentsDir} {
			if err := clearDir(m.dir(sub)); err != nil {
				return err
			}
		}
	}
	if err := m.EnsureLayout(); err != nil {
		return err
	}

	for _, member := range zr.File {
		if err := m.extractMember(root, member); err != nil {
			return err
		}
	}
	slog.Info("backup restored", "user_id", m.userID, "archive", filepath.Base(path), "replace", replace)
	return nil
}

func (m *Manager) extractMember(root string, member *zip.File) error {
	target, err := pfs.JoinWithinBase(root, member.Name)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnsafeArchive, member.Name)
	}
	if strings.HasSuffix(member.Name, "/") {
		return os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	rc, err := member.Open()
	if err != nil {
		return fmt.Errorf("extract %s: %w", member.Name, err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return fmt.Errorf("extract %s: %w", member.Name, err)
	}
	return pfs.WriteFileAtomic(target, data, 0o644)
}

// clearDir empties a directory without removing the directory itself.
func clearDir(dir string) error {
	items, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := os.RemoveAll(filepath.Join(dir, item.Name())); err != nil {
			return fmt.Errorf("clear %s: %w", dir, err)
		}
	}
	return nil
}
