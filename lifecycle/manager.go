// Package lifecycle orchestrates the access token state machine for a user
// session: generate on first authenticated response, lazily detect expiry by
// re-decoding the cached token, regenerate when the decode fails, and force
// a refresh on demand.
package lifecycle

import (
	"context"
	"net/http"
	"time"

	"github.com/cmskit/jwt-session/claims"
	"github.com/cmskit/jwt-session/identity"
	"github.com/cmskit/jwt-session/internal/config"
	"github.com/cmskit/jwt-session/store"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Codec signs and validates access tokens. Decode must fail for expired,
// malformed, and tampered tokens alike.
type Codec interface {
	Encode(cs claims.ClaimSet) (string, error)
	Decode(tokenStr string) (claims.ClaimSet, error)
}

// Manager owns generate/check/refresh orchestration for session tokens.
type Manager struct {
	codec   Codec
	tokens  store.Repo
	expiry  config.ExpirySource
	nowFunc func() time.Time
	logger  zerolog.Logger
}

// ManagerOption modifies a Manager.
type ManagerOption func(*Manager)

// WithNowFunc sets the now time function (primarily for testing)
func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// New initializes a Manager with its collaborators. All dependencies are
// passed explicitly; there is no service discovery.
func New(codec Codec, tokens store.Repo, expiry config.ExpirySource, options ...ManagerOption) (*Manager, error) {
	if codec == nil {
		return nil, errors.New("[lifecycle.New] codec is required")
	}
	if tokens == nil {
		return nil, errors.New("[lifecycle.New] token store is required")
	}
	if expiry == nil {
		return nil, errors.New("[lifecycle.New] expiry source is required")
	}

	m := &Manager{
		codec:   codec,
		tokens:  tokens,
		expiry:  expiry,
		nowFunc: time.Now,
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// OnAuthenticatedResponse runs after a response has been produced. For a
// successful (200) response belonging to an authenticated account it ensures
// the session holds a valid token: a missing, expired, or otherwise
// undecodable stored token is silently replaced, a valid one is left
// byte-for-byte untouched. Error responses and anonymous accounts are
// ignored entirely, never causing a store write.
func (m *Manager) OnAuthenticatedResponse(ctx context.Context, statusCode int, account identity.Account, sessionKey string) error {
	if statusCode != http.StatusOK {
		return nil
	}
	if account == nil || !account.IsAuthenticated() {
		return nil
	}

	current, err := m.tokens.Get(ctx, sessionKey)
	if err == nil && !m.IsAccessTokenExpired(current) {
		return nil
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return errors.Wrap(err, "[OnAuthenticatedResponse] failed to read stored token")
	}

	m.logger.Debug().Int64("uid", account.UID()).Msg("regenerating session access token")
	if _, err := m.generateAndStore(ctx, account, sessionKey); err != nil {
		return errors.Wrap(err, "[OnAuthenticatedResponse] failed to regenerate token")
	}
	return nil
}

// RefreshAccessToken unconditionally regenerates the session's token and
// returns the new value, regardless of whether the stored one is still
// valid. For anonymous accounts it is a safe no-op returning an empty token;
// callers must treat an absent token as "user not logged in".
func (m *Manager) RefreshAccessToken(ctx context.Context, account identity.Account, sessionKey string) (string, error) {
	if account == nil || !account.IsAuthenticated() {
		return "", nil
	}

	accessToken, err := m.generateAndStore(ctx, account, sessionKey)
	if err != nil {
		return "", errors.Wrap(err, "[RefreshAccessToken] failed to refresh token")
	}
	return accessToken, nil
}

// IsAccessTokenExpired reports whether the token should be replaced. Any
// decode failure counts: genuine expiry, corruption, and tampering are
// deliberately conflated into the single "needs regeneration" signal.
func (m *Manager) IsAccessTokenExpired(accessToken string) bool {
	_, err := m.codec.Decode(accessToken)
	return err != nil
}

// generateAndStore builds a fresh claim set, signs it, and overwrites the
// session's stored token. Standard claims run before domain claims so
// identity claims can never be shadowed.
func (m *Manager) generateAndStore(ctx context.Context, account identity.Account, sessionKey string) (string, error) {
	builder := claims.NewBuilder(
		claims.StandardClaims(m.expiry, m.nowFunc),
		claims.DomainClaims(account),
	)
	cs, err := builder.Build(ctx)
	if err != nil {
		return "", err
	}

	accessToken, err := m.codec.Encode(cs)
	if err != nil {
		// Signing failures are fatal: there is no fallback to an
		// unsigned or default token.
		return "", err
	}

	if err := m.tokens.Set(ctx, sessionKey, accessToken); err != nil {
		return "", err
	}
	return accessToken, nil
}
