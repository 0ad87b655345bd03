package repofake

import (
	"context"
	"sync"

	"github.com/cmskit/jwt-session/store"
)

var _ store.Repo = (*FakeTokenRepo)(nil)

// FakeTokenRepo is an in-memory session token store for tests and
// single-process deployments.
type FakeTokenRepo struct {
	tokens map[string]string
	lock   sync.RWMutex
}

// NewFakeTokenRepo creates an empty in-memory token store.
func NewFakeTokenRepo() *FakeTokenRepo {
	return &FakeTokenRepo{
		tokens: make(map[string]string),
	}
}

func (tr *FakeTokenRepo) Get(_ context.Context, sessionKey string) (string, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	accessToken, ok := tr.tokens[sessionKey]
	if !ok {
		return "", store.ErrNotFound
	}
	return accessToken, nil
}

func (tr *FakeTokenRepo) Set(_ context.Context, sessionKey string, accessToken string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	tr.tokens[sessionKey] = accessToken
	return nil
}

// Len reports how many sessions currently hold a token.
func (tr *FakeTokenRepo) Len() int {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	return len(tr.tokens)
}
