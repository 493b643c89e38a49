package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gamedata-wiki/core/catalog"
	"gamedata-wiki/core/i18n"
)

// ErrNotLoaded is returned before the first successful load.
var ErrNotLoaded = errors.New("session not loaded")

// Session is an immutable snapshot of loaded data.
type Session struct {
	Version  string
	Bundle   *catalog.Bundle
	Catalog  *i18n.Catalog
	LoadedAt time.Time
}

// LoadFunc builds a new session.
type LoadFunc func(ctx context.Context) (*Session, error)

// Holder publishes the current session.
type Holder struct {
	current atomic.Pointer[Session]
	load    LoadFunc
	mu      sync.Mutex
}

// NewHolder creates a holder that builds sessions with load.
func NewHolder(load LoadFunc) *Holder {
	return &Holder{load: load}
}

// Current returns the published session.
func (h *Holder) Current() (*Session, error) {
	s := h.current.Load()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s, nil
}

// Get returns the published session, loading it on first use.
func (h *Holder) Get(ctx context.Context) (*Session, error) {
	if s := h.current.Load(); s != nil {
		return s, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if s := h.current.Load(); s != nil {
		return s, nil
	}
	return h.reloadLocked(ctx)
}

// Reload builds a fresh session and publishes it. On failure the previous
// session stays in place.
func (h *Holder) Reload(ctx context.Context) (*Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reloadLocked(ctx)
}

func (h *Holder) reloadLocked(ctx context.Context) (*Session, error) {
	s, err := h.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if s.LoadedAt.IsZero() {
		s.LoadedAt = time.Now()
	}
	h.current.Store(s)
	return s, nil
}

// Set publishes s as is.
func (h *Holder) Set(s *Session) {
	h.current.Store(s)
}
