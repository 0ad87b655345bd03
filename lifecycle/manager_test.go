package lifecycle_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/cmskit/jwt-session/claims"
	"github.com/cmskit/jwt-session/identity"
	"github.com/cmskit/jwt-session/internal/config"
	"github.com/cmskit/jwt-session/lifecycle"
	"github.com/cmskit/jwt-session/store"
	"github.com/cmskit/jwt-session/store/repofake"
	"github.com/cmskit/jwt-session/token"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const (
	secretStr      = "0123456789abcdef"
	testSessionKey = "session-1"
	testUserEmail  = "john.doe@example.com"
	testUserID     = int64(42)
)

// testFixture holds all test dependencies
type testFixture struct {
	now     time.Time
	repo    *repofake.FakeTokenRepo
	expiry  *config.MemoryExpirySource
	codec   *token.Codec
	manager *lifecycle.Manager
	account identity.Account
}

// setupTestFixture creates a manager over fake collaborators with a
// controllable clock shared by token generation and validation.
func setupTestFixture(t *testing.T, expiryMinutes int) *testFixture {
	t.Helper()

	f := &testFixture{
		now:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		repo:    repofake.NewFakeTokenRepo(),
		expiry:  config.NewMemoryExpirySource(expiryMinutes),
		account: identity.StaticAccount{AccountEmail: testUserEmail, AccountUID: testUserID},
	}

	signer, err := token.NewHMACSigner(secretStr)
	require.NoError(t, err)
	codec, err := token.NewCodec(signer, token.WithNowFunc(func() time.Time { return f.now }))
	require.NoError(t, err)
	f.codec = codec

	manager, err := lifecycle.New(codec, f.repo, f.expiry, lifecycle.WithNowFunc(func() time.Time { return f.now }))
	require.NoError(t, err)
	f.manager = manager

	return f
}

func (f *testFixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func TestLoginResponseStoresDecodableToken(t *testing.T) {
	f := setupTestFixture(t, 5)
	ctx := context.Background()

	err := f.manager.OnAuthenticatedResponse(ctx, http.StatusOK, f.account, testSessionKey)
	require.NoError(t, err)

	stored, err := f.repo.Get(ctx, testSessionKey)
	require.NoError(t, err)
	require.False(t, f.manager.IsAccessTokenExpired(stored))

	cs, err := f.codec.Decode(stored)
	require.NoError(t, err)

	iat, ok := cs.Get("iat")
	require.True(t, ok)
	require.Equal(t, f.now.Unix(), iat)

	exp, ok := cs.Get("exp")
	require.True(t, ok)
	require.Equal(t, f.now.Add(5*time.Minute).Unix(), exp)

	email, ok := cs.GetPath([]string{"drupal", "email"})
	require.True(t, ok)
	require.Equal(t, testUserEmail, email)

	uid, ok := cs.GetPath([]string{"drupal", "uid"})
	require.True(t, ok)
	require.Equal(t, testUserID, uid)
}

func TestValidStoredTokenLeftUntouched(t *testing.T) {
	f := setupTestFixture(t, 5)
	ctx := context.Background()

	require.NoError(t, f.manager.OnAuthenticatedResponse(ctx, http.StatusOK, f.account, testSessionKey))
	first, err := f.repo.Get(ctx, testSessionKey)
	require.NoError(t, err)

	// A second successful response with a still-valid token must not
	// regenerate: the stored value stays byte-for-byte identical.
	require.NoError(t, f.manager.OnAuthenticatedResponse(ctx, http.StatusOK, f.account, testSessionKey))
	second, err := f.repo.Get(ctx, testSessionKey)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestExpiredStoredTokenIsRegenerated(t *testing.T) {
	f := setupTestFixture(t, 5)
	ctx := context.Background()

	require.NoError(t, f.manager.OnAuthenticatedResponse(ctx, http.StatusOK, f.account, testSessionKey))
	first, err := f.repo.Get(ctx, testSessionKey)
	require.NoError(t, err)

	f.advance(6 * time.Minute)
	require.True(t, f.manager.IsAccessTokenExpired(first))

	require.NoError(t, f.manager.OnAuthenticatedResponse(ctx, http.StatusOK, f.account, testSessionKey))
	second, err := f.repo.Get(ctx, testSessionKey)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
	require.False(t, f.manager.IsAccessTokenExpired(second))
}

func TestCorruptStoredTokenIsRegenerated(t *testing.T) {
	f := setupTestFixture(t, 5)
	ctx := context.Background()

	require.NoError(t, f.repo.Set(ctx, testSessionKey, "garbage"))

	require.NoError(t, f.manager.OnAuthenticatedResponse(ctx, http.StatusOK, f.account, testSessionKey))
	stored, err := f.repo.Get(ctx, testSessionKey)
	require.NoError(t, err)
	require.NotEqual(t, "garbage", stored)
	require.False(t, f.manager.IsAccessTokenExpired(stored))
}

func TestErrorResponseNeverTouchesStore(t *testing.T) {
	f := setupTestFixture(t, 5)
	ctx := context.Background()

	require.NoError(t, f.manager.OnAuthenticatedResponse(ctx, http.StatusInternalServerError, f.account, testSessionKey))
	require.Equal(t, 0, f.repo.Len())

	_, err := f.repo.Get(ctx, testSessionKey)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAnonymousAccountNeverTouchesStore(t *testing.T) {
	f := setupTestFixture(t, 5)
	ctx := context.Background()

	require.NoError(t, f.manager.OnAuthenticatedResponse(ctx, http.StatusOK, identity.Anonymous(), testSessionKey))
	require.NoError(t, f.manager.OnAuthenticatedResponse(ctx, http.StatusOK, nil, testSessionKey))
	require.Equal(t, 0, f.repo.Len())
}

func TestRefreshWithNoPriorTokenStoresAndReturns(t *testing.T) {
	f := setupTestFixture(t, 5)
	ctx := context.Background()

	accessToken, err := f.manager.RefreshAccessToken(ctx, f.account, testSessionKey)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)

	stored, err := f.repo.Get(ctx, testSessionKey)
	require.NoError(t, err)
	require.Equal(t, accessToken, stored)

	_, err = f.codec.Decode(accessToken)
	require.NoError(t, err)
}

func TestRefreshOverwritesValidToken(t *testing.T) {
	f := setupTestFixture(t, 5)
	ctx := context.Background()

	require.NoError(t, f.manager.OnAuthenticatedResponse(ctx, http.StatusOK, f.account, testSessionKey))
	first, err := f.repo.Get(ctx, testSessionKey)
	require.NoError(t, err)

	// Refresh bypasses the validity check even though the stored token has
	// not expired yet.
	f.advance(time.Second)
	refreshed, err := f.manager.RefreshAccessToken(ctx, f.account, testSessionKey)
	require.NoError(t, err)
	require.NotEqual(t, first, refreshed)

	stored, err := f.repo.Get(ctx, testSessionKey)
	require.NoError(t, err)
	require.Equal(t, refreshed, stored)
}

func TestRefreshForAnonymousAccountIsSafeNoOp(t *testing.T) {
	f := setupTestFixture(t, 5)
	ctx := context.Background()

	accessToken, err := f.manager.RefreshAccessToken(ctx, identity.Anonymous(), testSessionKey)
	require.NoError(t, err)
	require.Empty(t, accessToken)
	require.Equal(t, 0, f.repo.Len())
}

func TestSigningFailurePropagates(t *testing.T) {
	f := setupTestFixture(t, 5)
	ctx := context.Background()

	manager, err := lifecycle.New(failingCodec{}, f.repo, f.expiry)
	require.NoError(t, err)

	_, err = manager.RefreshAccessToken(ctx, f.account, testSessionKey)
	require.Error(t, err)
	require.Equal(t, 0, f.repo.Len())

	err = manager.OnAuthenticatedResponse(ctx, http.StatusOK, f.account, testSessionKey)
	require.Error(t, err)
	require.Equal(t, 0, f.repo.Len())
}

func TestNewValidatesDependencies(t *testing.T) {
	f := setupTestFixture(t, 5)

	_, err := lifecycle.New(nil, f.repo, f.expiry)
	require.Error(t, err)
	_, err = lifecycle.New(f.codec, nil, f.expiry)
	require.Error(t, err)
	_, err = lifecycle.New(f.codec, f.repo, nil)
	require.Error(t, err)
}

// failingCodec simulates a misconfigured signing key.
type failingCodec struct{}

func (failingCodec) Encode(claims.ClaimSet) (string, error) {
	return "", errors.New("signing key misconfigured")
}

func (failingCodec) Decode(string) (claims.ClaimSet, error) {
	return nil, errors.New("signing key misconfigured")
}
