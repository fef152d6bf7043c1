package store

import (
	"context"
	"testing"
)

func TestFlatAndTreeOrderingDiffer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustWorkspace(t, s, "main")

	for _, path := range []string{"Zebra", "Apple", "Apple/Inner"} {
		if _, err := s.CreateFolderPath(ctx, "main", path, true); err != nil {
			t.Fatalf("create %s: %v", path, err)
		}
	}

	flat, err := s.ListFoldersFlat(ctx, "main")
	if err != nil {
		t.Fatalf("flat list: %v", err)
	}
	gotPaths := make([]string, len(flat))
	for i, item := range flat {
		gotPaths[i] = item.Path
	}
	wantPaths := []string{"Apple", "Apple/Inner", "Zebra"}
	for i := range wantPaths {
		if gotPaths[i] != wantPaths[i] {
			t.Fatalf("flat order mismatch: got %v want %v", gotPaths, wantPaths)
		}
	}

	tree, err := s.ListFoldersTree(ctx, "main")
	if err != nil {
		t.Fatalf("tree list: %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(tree))
	}
	if tree[0].Name != "Apple" || tree[1].Name != "Zebra" {
		t.Fatalf("root order mismatch: %s, %s", tree[0].Name, tree[1].Name)
	}
	if len(tree[0].Children) != 1 || tree[0].Children[0].Name != "Inner" {
		t.Fatalf("expected Inner nested under Apple")
	}
	if tree[0].Children[0].Path != "Apple/Inner" {
		t.Fatalf("expected child path Apple/Inner, got %q", tree[0].Children[0].Path)
	}
	if len(tree[1].Children) != 0 {
		t.Fatalf("expected Zebra to have no children")
	}
}

func TestTreeSortIsCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustWorkspace(t, s, "main")

	for _, name := range []string{"banana", "Apricot", "cherry", "Blueberry"} {
		if _, err := s.CreateFolderPath(ctx, "main", name, true); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	tree, err := s.ListFoldersTree(ctx, "main")
	if err != nil {
		t.Fatalf("tree list: %v", err)
	}
	want := []string{"Apricot", "banana", "Blueberry", "cherry"}
	for i, node := range tree {
		if node.Name != want[i] {
			t.Fatalf("sort mismatch at %d: got %s want %s", i, node.Name, want[i])
		}
	}
}

func TestEmptyWorkspaceListing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustWorkspace(t, s, "empty")

	flat, err := s.ListFoldersFlat(ctx, "empty")
	if err != nil {
		t.Fatalf("flat list: %v", err)
	}
	if len(flat) != 0 {
		t.Fatalf("expected empty flat list, got %d", len(flat))
	}
	tree, err := s.ListFoldersTree(ctx, "empty")
	if err != nil {
		t.Fatalf("tree list: %v", err)
	}
	if len(tree) != 0 {
		t.Fatalf("expected empty tree, got %d", len(tree))
	}
}

func TestListingIsWorkspaceScoped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustWorkspace(t, s, "one")
	mustWorkspace(t, s, "two")

	if _, err := s.CreateFolderPath(ctx, "one", "OnlyInOne", true); err != nil {
		t.Fatalf("create: %v", err)
	}
	flat, err := s.ListFoldersFlat(ctx, "two")
	if err != nil {
		t.Fatalf("flat list: %v", err)
	}
	if len(flat) != 0 {
		t.Fatalf("expected workspace two to be empty, got %d", len(flat))
	}
}
