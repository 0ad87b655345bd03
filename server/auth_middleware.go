package server

import "net/http"

// RequireSessionAuth guards routes that must only be reachable with an
// authenticated login session, such as the admin settings endpoints.
func (s *Server) RequireSessionAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			account, _ := currentIdentity(r)
			if !account.IsAuthenticated() {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}
}
