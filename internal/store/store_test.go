package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "poznote.sqlite"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("init store: %v", err)
	}
	return s
}

func mustWorkspace(t *testing.T, s *Store, name string) {
	t.Helper()
	if err := s.CreateWorkspace(context.Background(), name); err != nil {
		t.Fatalf("create workspace %s: %v", name, err)
	}
}
