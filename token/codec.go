// Package token encodes claim sets into signed JWT strings and decodes them
// back, rejecting expired, malformed, or tampered tokens.
package token

import (
	"time"

	"github.com/cmskit/jwt-session/claims"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Codec signs claim sets and validates signed tokens with a single Signer.
type Codec struct {
	signer  Signer
	nowFunc func() time.Time
}

// CodecOption modifies a Codec.
type CodecOption func(*Codec)

// WithNowFunc sets the time source used when validating exp (primarily for
// testing expiry boundaries).
func WithNowFunc(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowFunc = now
	}
}

// NewCodec creates a codec around the given signer.
func NewCodec(signer Signer, options ...CodecOption) (*Codec, error) {
	if signer == nil {
		return nil, errors.New("[NewCodec] signer is required")
	}
	c := &Codec{
		signer:  signer,
		nowFunc: NowTimeFunc,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Encode signs the claim set and returns the token string. A signing failure
// is fatal to the operation; there is no fallback to an unsigned token.
func (c *Codec) Encode(cs claims.ClaimSet) (string, error) {
	signedToken, err := c.signer.Sign(cs.ToMapClaims())
	if err != nil {
		return "", errors.Wrap(err, "[Encode] failed to sign claim set")
	}
	return signedToken, nil
}

// Decode parses and validates a token string, returning its claim set. Any
// validation failure, an expired exp included, is reported as an error
// wrapping ErrTokenRejected.
//
// Expiry boundary: golang-jwt accepts a token strictly before exp and
// rejects it once the current time reaches exp.
func (c *Codec) Decode(tokenStr string) (claims.ClaimSet, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{c.signer.GetSigningMethod().Alg()}),
		jwt.WithTimeFunc(c.nowFunc),
	)

	parsed, err := parser.ParseWithClaims(tokenStr, jwt.MapClaims{}, c.signer.GetVerificationKey)
	if err != nil {
		return nil, errors.Wrap(ErrTokenRejected, err.Error())
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenRejected
	}

	return claims.FromMapClaims(mc), nil
}
