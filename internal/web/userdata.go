package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"poznote/internal/storage/userdata"
)

func (s *Server) userManager(userID int64) *userdata.Manager {
	return userdata.New(s.cfg.DataPath, userID, s.cfg.Location())
}

// handleUserData routes /api/users/{id}/{data|storage|backups...}.
func (s *Server) handleUserData(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/users/")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) < 2 || parts[0] == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	mgr := s.userManager(userID)

	switch {
	case parts[1] == "data":
		s.handleUserDataLifecycle(w, r, mgr)
	case parts[1] == "storage":
		s.handleUserStorage(w, r, mgr)
	case parts[1] == "backups" || strings.HasPrefix(parts[1], "backups/"):
		s.handleUserBackups(w, r, mgr, strings.TrimPrefix(parts[1], "backups"))
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) handleUserDataLifecycle(w http.ResponseWriter, r *http.Request, mgr *userdata.Manager) {
	switch r.Method {
	case http.MethodPost:
		if err := mgr.EnsureLayout(); err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"success": true})
	case http.MethodDelete:
		if err := mgr.DeleteAll(); err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleUserStorage(w http.ResponseWriter, r *http.Request, mgr *userdata.Manager) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	stats, err := mgr.Stats()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "storage": stats})
}

type backupPayload struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	Created string `json:"created"`
}

func (s *Server) handleUserBackups(w http.ResponseWriter, r *http.Request, mgr *userdata.Manager, rest string) {
	rest = strings.TrimPrefix(rest, "/")
	switch {
	case rest == "":
		switch r.Method {
		case http.MethodPost:
			backup, err := mgr.CreateBackup()
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, map[string]any{
				"success": true,
				"backup":  toBackupPayload(backup),
			})
		case http.MethodGet:
			backups, err := mgr.ListBackups()
			if err != nil {
				writeStoreError(w, err)
				return
			}
			payloads := make([]backupPayload, 0, len(backups))
			for _, b := range backups {
				payloads = append(payloads, toBackupPayload(b))
			}
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "backups": payloads})
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case strings.HasSuffix(rest, "/restore"):
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		name := strings.TrimSuffix(rest, "/restore")
		var req struct {
			Replace bool `json:"replace"`
		}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}
		backups, err := mgr.ListBackups()
		if err != nil {
			writeStoreError(w, err)
			return
		}
		var path string
		for _, b := range backups {
			if b.Name == name {
				path = b.Path
				break
			}
		}
		if path == "" {
			writeError(w, http.StatusNotFound, "backup not found")
			return
		}
		if err := mgr.RestoreBackup(path, req.Replace); err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	default:
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if err := mgr.DeleteBackup(rest); err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

func toBackupPayload(b userdata.Backup) backupPayload {
	return backupPayload{
		Name:    b.Name,
		Size:    b.Size,
		Created: b.Created.Format(time.RFC3339),
	}
}
