package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// One week, in minutes. A longer window defeats the point of refreshing.
const maxExpiryMinutes = 10080

type expirySettings struct {
	ExpiryMinutes int `json:"expiry_minutes"`
}

// ExpirySettingsGetHandler reports the configured token expiry.
func (s *Server) ExpirySettingsGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minutes, err := s.expiry.ExpiryMinutes(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to read expiry setting")
			respondError(w, http.StatusInternalServerError, "failed to read expiry setting")
			return
		}
		respondJSON(w, http.StatusOK, expirySettings{ExpiryMinutes: minutes})
	}
}

// ExpirySettingsPostHandler updates the token expiry setting. The new value
// applies to the next issued token; tokens already issued keep their
// embedded expiry.
func (s *Server) ExpirySettingsPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req expirySettings
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid settings payload")
			return
		}
		if req.ExpiryMinutes < 1 || req.ExpiryMinutes > maxExpiryMinutes {
			respondError(w, http.StatusBadRequest, "expiry_minutes must be between 1 and 10080")
			return
		}

		if err := s.expiry.SetExpiryMinutes(r.Context(), req.ExpiryMinutes); err != nil {
			log.Error().Err(err).Msg("failed to save expiry setting")
			respondError(w, http.StatusInternalServerError, "failed to save expiry setting")
			return
		}
		respondJSON(w, http.StatusOK, req)
	}
}
