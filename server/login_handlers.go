package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cmskit/jwt-session/identity"
	"github.com/cmskit/jwt-session/server/loginsession"
	"github.com/google/uuid"
)

type loginRequest struct {
	Email string `json:"email"`
	UID   int64  `json:"uid"`
}

type loginResponse struct {
	CurrentUser currentUser `json:"current_user"`
}

type currentUser struct {
	UID   int64  `json:"uid"`
	Email string `json:"email"`
}

// LoginHandler establishes the login session the token store is keyed by.
// Credential verification is owned by the CMS in front of this service; this
// handler only records the already-authenticated identity. The response hook
// wrapping this route issues the access token once the 200 response is
// produced.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid login payload")
			return
		}
		if req.Email == "" || req.UID <= 0 {
			respondError(w, http.StatusBadRequest, "email and uid are required")
			return
		}

		sessionID := uuid.New().String()
		if err := s.sessions.Upsert(sessionID, loginsession.Session{
			Email:     req.Email,
			UID:       req.UID,
			CreatedAt: time.Now(),
		}); err != nil {
			respondError(w, http.StatusInternalServerError, "failed to create session")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		// Swap the request identity so the response hook sees the account
		// that just logged in.
		if ri, ok := identity.FromContext(r.Context()); ok {
			ri.Set(identity.StaticAccount{AccountEmail: req.Email, AccountUID: req.UID}, sessionID)
		}

		respondJSON(w, http.StatusOK, loginResponse{CurrentUser: currentUser{UID: req.UID, Email: req.Email}})
	}
}

// LogoutHandler tears down the login session. The stored token entry dies
// with the session key; there is nothing to revoke server-side.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			_ = s.sessions.Delete(cookie.Value)
		}

		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
	}
}
