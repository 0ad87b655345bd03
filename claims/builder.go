package claims

import (
	"context"
	"time"

	"github.com/cmskit/jwt-session/identity"
	"github.com/cmskit/jwt-session/internal/config"
	"github.com/pkg/errors"
)

// Contributor adds claims to a set under construction. Contributors run in
// registration order and later contributors win on key collision, replacing
// the priority numbers of the event-subscriber dispatch this pipeline grew
// out of.
type Contributor func(ctx context.Context, cs ClaimSet) error

// Builder assembles a claim set by running an ordered pipeline of
// contributors.
type Builder struct {
	contributors []Contributor
}

// NewBuilder creates a builder with the given contributor pipeline.
func NewBuilder(contributors ...Contributor) *Builder {
	return &Builder{contributors: contributors}
}

// Build runs the pipeline and returns the assembled claim set. The first
// contributor error aborts the build.
func (b *Builder) Build(ctx context.Context) (ClaimSet, error) {
	cs := New()
	for _, contribute := range b.contributors {
		staged := New()
		if err := contribute(ctx, staged); err != nil {
			return nil, errors.Wrap(err, "[Build] claim contributor failed")
		}
		cs.Merge(staged)
	}
	return cs, nil
}

// StandardClaims contributes iat and, when a positive expiry is configured,
// exp = iat + expiry minutes. Expiry is read from the source at build time so
// setting changes apply to the next issued token without migrating tokens
// already in flight.
func StandardClaims(expiry config.ExpirySource, now func() time.Time) Contributor {
	if now == nil {
		now = time.Now
	}
	return func(ctx context.Context, cs ClaimSet) error {
		issuedAt := now()
		cs.Set("iat", issuedAt.Unix())

		minutes, err := expiry.ExpiryMinutes(ctx)
		if err != nil {
			return errors.Wrap(err, "[StandardClaims] failed to read expiry setting")
		}
		if minutes > 0 {
			cs.Set("exp", issuedAt.Add(time.Duration(minutes)*time.Minute).Unix())
		}
		return nil
	}
}

// DomainClaims contributes the drupal.email and drupal.uid claims for the
// authenticated account. It must only run for authenticated accounts;
// anonymous accounts produce an error rather than a token with empty
// identity claims.
func DomainClaims(account identity.Account) Contributor {
	return func(_ context.Context, cs ClaimSet) error {
		if account == nil || !account.IsAuthenticated() {
			return ErrAnonymousAccount
		}
		cs.SetPath([]string{"drupal", "email"}, account.Email())
		cs.SetPath([]string{"drupal", "uid"}, account.UID())
		return nil
	}
}
