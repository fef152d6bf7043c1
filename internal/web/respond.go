package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"poznote/internal/store"
	"poznote/internal/storage/userdata"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}

// writeStoreError maps the store error taxonomy to HTTP statuses. Unknown
// errors are logged in full and surfaced as a generic 500: raw storage
// error text never reaches the client.
func writeStoreError(w http.ResponseWriter, err error) {
	var verr *store.ValidationError
	var cerr *store.ConflictError
	var merr *store.MissingParentError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.As(err, &merr):
		writeError(w, http.StatusNotFound, merr.Error())
	case errors.As(err, &cerr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":     false,
			"error":       cerr.Error(),
			"existing_id": cerr.ExistingID,
		})
	case errors.Is(err, store.ErrWorkspaceNotFound):
		writeError(w, http.StatusNotFound, "workspace not found")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrTokenTaken):
		writeError(w, http.StatusConflict, "token already in use")
	case errors.Is(err, userdata.ErrBadBackupName):
		writeError(w, http.StatusBadRequest, "invalid backup name")
	case errors.Is(err, userdata.ErrBackupNotFound):
		writeError(w, http.StatusNotFound, "backup not found")
	case errors.Is(err, userdata.ErrUnsafeArchive):
		writeError(w, http.StatusBadRequest, "archive contains unsafe member paths")
	default:
		slog.Error("storage failure", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
