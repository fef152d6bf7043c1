package web

import (
	"encoding/json"
	"net/http"
	"strings"
)

type registerLinkRequest struct {
	Token      string `json:"token"`
	UserID     int64  `json:"user_id"`
	TargetType string `json:"target_type"`
	TargetID   int64  `json:"target_id"`
}

func (s *Server) handleSharedLinks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req registerLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token := req.Token
	if token == "" {
		minted, err := s.st.MintSharedLink(r.Context(), req.UserID, req.TargetType, req.TargetID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		token = minted
	} else if err := s.st.RegisterSharedLink(r.Context(), token, req.UserID, req.TargetType, req.TargetID); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "token": token})
}

func (s *Server) handleSharedLinkToken(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.URL.Path, "/api/shared-links/")
	if token == "" || strings.Contains(token, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := s.st.UnregisterSharedLink(r.Context(), token); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
