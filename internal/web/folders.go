package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"poznote/internal/store"
)

type createFolderRequest struct {
	Workspace      string `json:"workspace"`
	FolderPath     string `json:"folder_path"`
	FolderName     string `json:"folder_name"`
	ParentFolderID *int64 `json:"parent_folder_id"`
	ParentFolder   string `json:"parent_folder"`
	CreateParents  bool   `json:"create_parents"`
}

type folderPayload struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Workspace string `json:"workspace"`
	ParentID  *int64 `json:"parent_id"`
	Path      string `json:"path"`
}

func (s *Server) handleFolders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateFolder(w, r)
	case http.MethodGet:
		s.handleListFolders(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var req createFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var created *store.CreatedFolder
	var err error
	switch {
	case req.FolderPath != "":
		created, err = s.st.CreateFolderPath(r.Context(), req.Workspace, req.FolderPath, req.CreateParents)
	case req.FolderName != "":
		created, err = s.st.CreateFolder(r.Context(), req.Workspace, req.FolderName, store.ParentRef{
			ID:   req.ParentFolderID,
			Path: req.ParentFolder,
		})
	default:
		writeError(w, http.StatusBadRequest, "folder_path or folder_name required")
		return
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}

	parents := make([]map[string]any, 0, len(created.CreatedParents))
	for _, p := range created.CreatedParents {
		parents = append(parents, map[string]any{
			"id":        p.ID,
			"name":      p.Name,
			"parent_id": p.ParentID,
		})
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"folder": folderPayload{
			ID:        created.ID,
			Name:      created.Name,
			Workspace: created.Workspace,
			ParentID:  created.ParentID,
			Path:      created.Path,
		},
		"created_parents": parents,
	})
}

func (s *Server) handleListFolders(w http.ResponseWriter, r *http.Request) {
	workspace := strings.TrimSpace(r.URL.Query().Get("workspace"))
	hierarchical := r.URL.Query().Get("hierarchical") == "1" ||
		strings.EqualFold(r.URL.Query().Get("hierarchical"), "true")

	if hierarchical {
		tree, err := s.st.ListFoldersTree(r.Context(), workspace)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if tree == nil {
			tree = []*store.FolderNode{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "folders": tree})
		return
	}
	flat, err := s.st.ListFoldersFlat(r.Context(), workspace)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if flat == nil {
		flat = []store.FolderListItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "folders": flat})
}
