package server

func (s *Server) initRoutes() {
	// LOGIN
	// The login route carries the response hook so a fresh token lands in
	// the store as part of handling a successful login response.
	s.RegisterRouteHandler("POST "+RouteUserLogin, ChainMiddleware(s.LoginHandler(), append(s.APIMiddleware(), s.TokenIssueMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteUserLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))

	// TOKEN
	s.RegisterRouteHandler("POST "+RouteRefreshAccessToken, ChainMiddleware(s.RefreshTokenHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteRefreshPage, ChainMiddleware(s.RefreshPageHandler(), s.APIMiddleware()...))

	// ADMIN
	s.RegisterRouteHandler("GET "+RouteAdminExpiry, ChainMiddleware(s.ExpirySettingsGetHandler(), append(s.APIMiddleware(), s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RouteAdminExpiry, ChainMiddleware(s.ExpirySettingsPostHandler(), append(s.APIMiddleware(), s.RequireSessionAuth())...))
}
