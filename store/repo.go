// Package store persists the current access token per user session. The
// store holds exactly one entry per session, overwritten on regeneration.
// Expiry is never evaluated here; the lifecycle manager decides validity by
// decoding the token.
package store

import "context"

// AccessTokenKey is the fixed logical key the token is stored under within a
// session's private store.
const AccessTokenKey = "jwt_access_token"

// Repo is the per-session token store. Callers must never read or write for
// anonymous sessions. There is no compare-and-swap: concurrent regenerations
// for the same session are resolved last-writer-wins.
type Repo interface {
	// Get returns the stored token for a session, or ErrNotFound.
	Get(ctx context.Context, sessionKey string) (string, error)

	// Set stores the token for a session, overwriting any previous value.
	Set(ctx context.Context, sessionKey string, accessToken string) error
}
