package config

import (
	"context"
	"sync"
)

// DefaultExpiryMinutes is the expiry applied when no value has been
// configured. Issued tokens stay short-lived rather than living forever.
const DefaultExpiryMinutes = 1

// ExpirySource is the persisted "expiry time" setting behind the admin form.
// ExpiryMinutes is read at claim-build time, so a changed setting applies to
// the next issued token; tokens already issued keep their embedded exp.
type ExpirySource interface {
	ExpiryMinutes(ctx context.Context) (int, error)
	SetExpiryMinutes(ctx context.Context, minutes int) error
}

// MemoryExpirySource keeps the expiry setting in memory.
type MemoryExpirySource struct {
	mu      sync.RWMutex
	minutes int
	set     bool
}

var _ ExpirySource = (*MemoryExpirySource)(nil)

// NewMemoryExpirySource creates an unconfigured in-memory source. A seed
// value of zero or less means "unconfigured" and falls back to
// DefaultExpiryMinutes.
func NewMemoryExpirySource(seedMinutes int) *MemoryExpirySource {
	s := &MemoryExpirySource{}
	if seedMinutes > 0 {
		s.minutes = seedMinutes
		s.set = true
	}
	return s
}

func (s *MemoryExpirySource) ExpiryMinutes(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return DefaultExpiryMinutes, nil
	}
	return s.minutes, nil
}

func (s *MemoryExpirySource) SetExpiryMinutes(_ context.Context, minutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minutes = minutes
	s.set = true
	return nil
}
