// Package redisrepo is the Redis-backed session token store used when the
// service runs more than one instance behind a shared session layer.
package redisrepo

import (
	"context"
	"fmt"

	"github.com/cmskit/jwt-session/store"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var _ store.Repo = (*Repo)(nil)

// Repo stores one access token per session key in Redis. Keys carry no TTL;
// the session layer owns entry lifetime and the lifecycle manager owns
// validity.
type Repo struct {
	client redis.UniversalClient
}

// New creates a Redis-backed token store.
func New(client redis.UniversalClient) *Repo {
	return &Repo{client: client}
}

func tokenKey(sessionKey string) string {
	return fmt.Sprintf("jwtsession:token:%s:%s", sessionKey, store.AccessTokenKey)
}

func (r *Repo) Get(ctx context.Context, sessionKey string) (string, error) {
	accessToken, err := r.client.Get(ctx, tokenKey(sessionKey)).Result()
	if err == redis.Nil {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "[Get] redis read failed")
	}
	return accessToken, nil
}

func (r *Repo) Set(ctx context.Context, sessionKey string, accessToken string) error {
	if err := r.client.Set(ctx, tokenKey(sessionKey), accessToken, 0).Err(); err != nil {
		return errors.Wrap(err, "[Set] redis write failed")
	}
	return nil
}
