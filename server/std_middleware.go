package server

import (
	"net/http"

	"github.com/cmskit/jwt-session/identity"
	"github.com/rs/zerolog/log"
)

func ChainMiddleware(routeFunction http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	chainedHandler := routeFunction
	// Apply middleware in reverse order
	for i := len(mw) - 1; i >= 0; i-- {
		chainedHandler = mw[i](chainedHandler)
	}
	return chainedHandler
}

func (s *Server) APIMiddleware() []func(http.HandlerFunc) http.HandlerFunc {
	return []func(http.HandlerFunc) http.HandlerFunc{
		s.LoggingMiddleware,
		s.RecoverMiddleware,
		s.IdentityMiddleware,
	}
}

func (s *Server) LoggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.env != "DEV" {
			next(w, r)
			return
		}
		log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("request")
		next(w, r)
	}
}

func (s *Server) RecoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panicked")
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next(w, r)
	}
}

// IdentityMiddleware installs a mutable identity slot on the request context
// and primes it from the session cookie, if one is present. Handlers that
// establish a session mid-request (login) update the slot so downstream
// middleware sees the authenticated account.
func (s *Server) IdentityMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ri := identity.NewRequestIdentity()
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			if session, err := s.sessions.Get(cookie.Value); err == nil {
				ri.Set(identity.StaticAccount{
					AccountEmail: session.Email,
					AccountUID:   session.UID,
				}, session.SessionID)
			}
		}
		next(w, r.WithContext(identity.WithRequestIdentity(r.Context(), ri)))
	}
}

// currentIdentity returns the request's account and session key.
func currentIdentity(r *http.Request) (identity.Account, string) {
	if ri, ok := identity.FromContext(r.Context()); ok {
		return ri.Account()
	}
	return identity.Anonymous(), ""
}
