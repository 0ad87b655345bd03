package server

// Route paths exposed by the service.
const (
	RouteUserLogin  = "/user/login"
	RouteUserLogout = "/user/logout"

	RouteRefreshAccessToken = "/jwt/refresh-access-token"
	RouteRefreshPage        = "/jwt/refresh"

	RouteAdminExpiry = "/admin/config/jwt-expiry"
)

// SessionCookieName carries the CMS login session ID.
const SessionCookieName = "session_id"
