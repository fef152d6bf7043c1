package web

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestSharedLinkEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/shared-links", map[string]any{
		"token": "tok-a", "user_id": 1, "target_type": "note", "target_id": 5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// A different owner gets a conflict without learning anything.
	rec = doJSON(t, h, http.MethodPost, "/api/shared-links", map[string]any{
		"token": "tok-a", "user_id": 2, "target_type": "note", "target_id": 5,
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("steal attempt: expected 409, got %d", rec.Code)
	}
	if body := rec.Body.String(); strings.Contains(body, "user") && strings.Contains(body, "1") && strings.Contains(body, "target") {
		t.Fatalf("conflict response leaks existing claim: %s", body)
	}

	// Identical retry succeeds.
	rec = doJSON(t, h, http.MethodPost, "/api/shared-links", map[string]any{
		"token": "tok-a", "user_id": 1, "target_type": "note", "target_id": 5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("idempotent retry: expected 201, got %d", rec.Code)
	}

	// Empty token mints one.
	rec = doJSON(t, h, http.MethodPost, "/api/shared-links", map[string]any{
		"user_id": 3, "target_type": "folder", "target_id": 9,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("mint: expected 201, got %d", rec.Code)
	}
	minted := decodeBody(t, rec)["token"].(string)
	if minted == "" {
		t.Fatalf("expected minted token")
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/shared-links/tok-a", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unregister: expected 200, got %d", rec.Code)
	}
	// Unregistering an absent token succeeds too.
	rec = doJSON(t, h, http.MethodDelete, "/api/shared-links/tok-a", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unregister absent: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/shared-links", map[string]any{
		"token": "tok-b", "user_id": 1, "target_type": "workspace", "target_id": 1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad target type: expected 400, got %d", rec.Code)
	}
}

func TestSharePage(t *testing.T) {
	srv, st := newTestServer(t)
	ctx := context.Background()
	h := srv.Handler()

	entryID, err := st.CreateEntry(ctx, "Shared note", "# Hello\n\nSome *markdown*.", "", nil)
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if err := st.RegisterSharedLink(ctx, "pub-1", 1, "note", entryID); err != nil {
		t.Fatalf("register link: %v", err)
	}

	rec := doJSON(t, h, http.MethodGet, "/share/pub-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("share page: expected 200, got %d", rec.Code)
	}
	page := rec.Body.String()
	if !strings.Contains(page, "Shared note") {
		t.Fatalf("share page missing heading: %s", page)
	}
	if !strings.Contains(page, "<em>markdown</em>") {
		t.Fatalf("markdown body not rendered: %s", page)
	}

	rec = doJSON(t, h, http.MethodGet, "/share/unknown", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown token: expected 404, got %d", rec.Code)
	}
}

func TestSharedFolderPage(t *testing.T) {
	srv, st := newTestServer(t)
	ctx := context.Background()
	h := srv.Handler()

	folder, err := st.CreateFolderPath(ctx, "", "Public Stuff", true)
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	if _, err := st.CreateEntry(ctx, "Inside", "body", "", &folder.ID); err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if err := st.RegisterSharedLink(ctx, "pub-f", 1, "folder", folder.ID); err != nil {
		t.Fatalf("register link: %v", err)
	}

	rec := doJSON(t, h, http.MethodGet, "/share/pub-f", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("folder share page: expected 200, got %d", rec.Code)
	}
	page := rec.Body.String()
	if !strings.Contains(page, "Public Stuff") || !strings.Contains(page, "Inside") {
		t.Fatalf("folder share page incomplete: %s", page)
	}
}
