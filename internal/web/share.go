package web

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"

	"poznote/internal/store"
)

var mdRenderer = goldmark.New()

// handleShare serves the public page for a shared-link token. Note targets
// render their markdown body; folder targets list the folder's entries.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	token := strings.TrimPrefix(r.URL.Path, "/share/")
	if token == "" || strings.Contains(token, "/") {
		http.NotFound(w, r)
		return
	}
	link, err := s.st.SharedLinkByToken(r.Context(), token)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	switch link.TargetType {
	case store.ShareTargetNote:
		s.renderSharedNote(w, r, link.TargetID)
	case store.ShareTargetFolder:
		s.renderSharedFolder(w, r, link.TargetID)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) renderSharedNote(w http.ResponseWriter, r *http.Request, entryID int64) {
	entry, err := s.st.EntryByID(r.Context(), entryID)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if entry.Trash {
		http.NotFound(w, r)
		return
	}

	var body bytes.Buffer
	if err := mdRenderer.Convert([]byte(entry.Body), &body); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!doctype html>\n<html><head><title>%s</title></head><body>\n<h1>%s</h1>\n%s</body></html>\n",
		html.EscapeString(entry.Heading), html.EscapeString(entry.Heading), body.String())
}

func (s *Server) renderSharedFolder(w http.ResponseWriter, r *http.Request, folderID int64) {
	folder, err := s.st.FolderByID(r.Context(), folderID)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	entries, err := s.st.EntriesInFolder(r.Context(), folderID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var list strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&list, "<li>%s</li>\n", html.EscapeString(e.Heading))
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!doctype html>\n<html><head><title>%s</title></head><body>\n<h1>%s</h1>\n<ul>\n%s</ul>\n</body></html>\n",
		html.EscapeString(folder.Name), html.EscapeString(folder.Name), list.String())
}
