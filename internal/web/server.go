package web

import (
	"net/http"

	"poznote/internal/config"
	"poznote/internal/store"
)

type Server struct {
	cfg config.Config
	st  *store.Store
	mux *http.ServeMux
}

func NewServer(cfg config.Config, st *store.Store) *Server {
	s := &Server{
		cfg: cfg,
		st:  st,
		mux: http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	if s.cfg.AuthDisabled {
		return s.mux
	}
	return s.authMiddleware(s.mux)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/folders", s.handleFolders)
	s.mux.HandleFunc("/api/shared-links", s.handleSharedLinks)
	s.mux.HandleFunc("/api/shared-links/", s.handleSharedLinkToken)
	s.mux.HandleFunc("/api/users/", s.handleUserData)
	s.mux.HandleFunc("/share/", s.handleShare)
}
