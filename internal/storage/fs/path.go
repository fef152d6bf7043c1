package fs

import (
	"errors"
	"path/filepath"
	"strings"
)

var ErrUnsafePath = errors.New("unsafe path")

// JoinWithinBase joins rel under base and verifies the result stays inside
// base. Archive member names and other user-supplied relative paths must go
// through this before touching the filesystem.
func JoinWithinBase(base, rel string) (string, error) {
	if strings.ContainsRune(rel, 0) {
		return "", ErrUnsafePath
	}
	rel = strings.ReplaceAll(rel, "\\", "/")
	if strings.HasPrefix(rel, "/") {
		return "", ErrUnsafePath
	}
	full := filepath.Join(base, filepath.FromSlash(rel))
	back, err := filepath.Rel(base, full)
	if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", ErrUnsafePath
	}
	return full, nil
}
