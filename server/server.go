// Package server is the thin HTTP surface over the token lifecycle: the
// response hook that issues tokens after a successful login, the explicit
// refresh endpoint, and the admin endpoint for the expiry setting.
package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cmskit/jwt-session/internal/config"
	"github.com/cmskit/jwt-session/lifecycle"
	"github.com/cmskit/jwt-session/server/loginsession"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env    string // Environment (e.g., "DEV", "production")
	mux    *http.ServeMux
	routes []string
	config config.Config

	tokens   *lifecycle.Manager
	expiry   config.ExpirySource
	sessions loginsession.Repo
}

func New(cfg config.Config, tokens *lifecycle.Manager, expiry config.ExpirySource, sessions loginsession.Repo) (*Server, error) {
	if tokens == nil {
		return nil, fmt.Errorf("[Server New] lifecycle manager is required")
	}
	if expiry == nil {
		return nil, fmt.Errorf("[Server New] expiry source is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("[Server New] login session repo is required")
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		tokens:   tokens,
		expiry:   expiry,
		sessions: sessions,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Debug().Str("method", parts[0]).Str("path", parts[1]).Msg("route registered")
		} else {
			log.Debug().Str("path", parts[0]).Msg("route registered")
		}
	}
}
