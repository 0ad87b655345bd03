package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// statusRecorder captures the status code written by the wrapped handler so
// the response hook can act on it after the fact.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// TokenIssueMiddleware is the response hook: after the wrapped handler has
// produced its response, it hands the status and the request's account to
// the lifecycle manager, which issues or refreshes the session token only
// for successful authenticated responses. Failures here never alter the
// response already sent; they are logged and the next response retries.
func (s *Server) TokenIssueMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		account, sessionKey := currentIdentity(r)
		if err := s.tokens.OnAuthenticatedResponse(r.Context(), rec.status, account, sessionKey); err != nil {
			log.Error().Err(err).Msg("failed to issue session access token")
		}
	}
}
