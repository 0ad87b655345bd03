package identity

import (
	"context"
	"sync"
)

type contextKey struct{}

// RequestIdentity is a mutable per-request identity slot. The response hook
// installs one before the handler runs; a login handler that establishes a
// session mid-request deposits the authenticated account here so the hook
// sees it after the handler returns, the same way the CMS swaps the current
// user on its account proxy.
type RequestIdentity struct {
	mu         sync.RWMutex
	account    Account
	sessionKey string
}

// NewRequestIdentity returns a slot holding the anonymous account.
func NewRequestIdentity() *RequestIdentity {
	return &RequestIdentity{account: Anonymous()}
}

// Set replaces the current account and the session key the token store is
// scoped by.
func (ri *RequestIdentity) Set(account Account, sessionKey string) {
	ri.mu.Lock()
	defer ri.mu.Unlock()
	if account == nil {
		account = Anonymous()
	}
	ri.account = account
	ri.sessionKey = sessionKey
}

// Account returns the current account and session key.
func (ri *RequestIdentity) Account() (Account, string) {
	ri.mu.RLock()
	defer ri.mu.RUnlock()
	return ri.account, ri.sessionKey
}

// WithRequestIdentity attaches the identity slot to a context.
func WithRequestIdentity(ctx context.Context, ri *RequestIdentity) context.Context {
	return context.WithValue(ctx, contextKey{}, ri)
}

// FromContext returns the identity slot attached to the context, if any.
func FromContext(ctx context.Context) (*RequestIdentity, bool) {
	ri, ok := ctx.Value(contextKey{}).(*RequestIdentity)
	return ri, ok
}
