package web

import (
	"errors"
	"net/http"
	"strings"

	"poznote/internal/auth"
	"poznote/internal/store"
)

// authMiddleware gates the API behind HTTP Basic auth against the users
// table. Share pages stay public: that is the point of a shared link.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/share/") {
			next.ServeHTTP(w, r)
			return
		}
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="poznote"`)
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		user, err := s.st.UserByName(r.Context(), username)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				w.Header().Set("WWW-Authenticate", `Basic realm="poznote"`)
				writeError(w, http.StatusUnauthorized, "invalid credentials")
				return
			}
			writeStoreError(w, err)
			return
		}
		if !auth.VerifyPassword(user.PasswordHash, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="poznote"`)
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		next.ServeHTTP(w, r)
	})
}
