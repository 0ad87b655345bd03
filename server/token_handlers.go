package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// settingsPayload mirrors the client-side settings update the CMS front end
// consumes: {"user": {"access_token": <token|null>}}.
type settingsPayload struct {
	User userSettings `json:"user"`
}

type userSettings struct {
	AccessToken *string `json:"access_token"`
}

// RefreshTokenHandler unconditionally regenerates the caller's access token
// and reports the new value. Anonymous callers receive a null token and
// cause no side effects; clients must treat that as "not logged in", not as
// an error.
func (s *Server) RefreshTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var accessToken *string

		account, sessionKey := currentIdentity(r)
		// Only refresh the token if the user is logged in.
		if account.IsAuthenticated() {
			refreshed, err := s.tokens.RefreshAccessToken(r.Context(), account, sessionKey)
			if err != nil {
				log.Error().Err(err).Int64("uid", account.UID()).Msg("failed to refresh access token")
				respondError(w, http.StatusInternalServerError, "failed to refresh access token")
				return
			}
			accessToken = &refreshed
		}

		respondJSON(w, http.StatusOK, settingsPayload{User: userSettings{AccessToken: accessToken}})
	}
}

// RefreshPageHandler serves a minimal page with the refresh action, kept for
// parity with the CMS module's /jwt-js/refresh page.
func (s *Server) RefreshPageHandler() http.HandlerFunc {
	page := []byte(`<!DOCTYPE html>
<html>
<body>
<a href="` + RouteRefreshAccessToken + `" class="use-ajax">Refresh token</a>
</body>
</html>
`)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}
