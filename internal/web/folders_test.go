package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"poznote/internal/config"
	"poznote/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "poznote.sqlite"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.Init(context.Background()); err != nil {
		t.Fatalf("init store: %v", err)
	}
	cfg := config.Config{DataPath: dir, AuthDisabled: true}
	return NewServer(cfg, st), st
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestCreateFolderEndpoint(t *testing.T) {
	srv, st := newTestServer(t)
	if err := st.CreateWorkspace(context.Background(), "main"); err != nil {
		t.Fatalf("create workspace: %v", err)
	}

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/folders", map[string]any{
		"workspace":      "main",
		"folder_path":    "Projects/Go",
		"create_parents": true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("expected success, got %v", body)
	}
	folder := body["folder"].(map[string]any)
	if folder["path"] != "Projects/Go" {
		t.Fatalf("expected path Projects/Go, got %v", folder["path"])
	}
	parents := body["created_parents"].([]any)
	if len(parents) != 1 {
		t.Fatalf("expected 1 created parent, got %d", len(parents))
	}
}

func TestCreateFolderEndpointStatusMapping(t *testing.T) {
	srv, st := newTestServer(t)
	ctx := context.Background()
	if err := st.CreateWorkspace(ctx, "main"); err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	created, err := st.CreateFolderPath(ctx, "main", "Existing", true)
	if err != nil {
		t.Fatalf("seed folder: %v", err)
	}

	cases := []struct {
		name string
		body map[string]any
		want int
	}{
		{"validation", map[string]any{"workspace": "main", "folder_path": "Bad:Name"}, http.StatusBadRequest},
		{"reserved", map[string]any{"workspace": "main", "folder_path": "Trash"}, http.StatusBadRequest},
		{"missing body fields", map[string]any{"workspace": "main"}, http.StatusBadRequest},
		{"workspace 404", map[string]any{"workspace": "ghost", "folder_path": "A"}, http.StatusNotFound},
		{"missing parent", map[string]any{"workspace": "main", "folder_path": "No/Deep", "create_parents": false}, http.StatusNotFound},
		{"conflict", map[string]any{"workspace": "main", "folder_path": "Existing"}, http.StatusConflict},
	}
	for _, tc := range cases {
		rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/folders", tc.body)
		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d: %s", tc.name, tc.want, rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		if body["success"] != false {
			t.Fatalf("%s: expected success=false, got %v", tc.name, body)
		}
		if body["error"] == "" {
			t.Fatalf("%s: expected error message", tc.name)
		}
	}

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/folders", map[string]any{
		"workspace": "main", "folder_path": "Existing",
	})
	body := decodeBody(t, rec)
	if int64(body["existing_id"].(float64)) != created.ID {
		t.Fatalf("expected existing_id %d, got %v", created.ID, body["existing_id"])
	}
}

func TestListFoldersEndpoint(t *testing.T) {
	srv, st := newTestServer(t)
	ctx := context.Background()
	if err := st.CreateWorkspace(ctx, "main"); err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	for _, path := range []string{"Zebra", "Apple", "Apple/Inner"} {
		if _, err := st.CreateFolderPath(ctx, "main", path, true); err != nil {
			t.Fatalf("seed %s: %v", path, err)
		}
	}

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/folders?workspace=main", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("flat list: expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	folders := body["folders"].([]any)
	if len(folders) != 3 {
		t.Fatalf("expected 3 folders, got %d", len(folders))
	}
	first := folders[0].(map[string]any)
	if first["path"] != "Apple" {
		t.Fatalf("expected flat order to start with Apple, got %v", first["path"])
	}

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/folders?workspace=main&hierarchical=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("tree list: expected 200, got %d", rec.Code)
	}
	body = decodeBody(t, rec)
	roots := body["folders"].([]any)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	apple := roots[0].(map[string]any)
	if apple["name"] != "Apple" {
		t.Fatalf("expected first root Apple, got %v", apple["name"])
	}
	children := apple["children"].([]any)
	if len(children) != 1 {
		t.Fatalf("expected Apple to have one child, got %d", len(children))
	}

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/folders?workspace=ghost", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown workspace, got %d", rec.Code)
	}
}
