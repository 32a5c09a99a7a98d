// Package mock provides an in-memory mock implementation of [speech.Engine]
// for use in unit tests.
//
// Registered handlers are retained and can be fired by the test to simulate
// phrase boundaries.
package mock

import (
	"context"
	"sync"

	"github.com/MrWong99/quiesce/internal/modes"
	"github.com/MrWong99/quiesce/internal/speech"
)

// Compile-time interface assertion.
var _ speech.Engine = (*Engine)(nil)

// Engine is a mock implementation of [speech.Engine].
type Engine struct {
	mu   sync.Mutex
	pre  []speech.Handler
	post []speech.Handler
}

// RegisterPrePhrase retains h.
func (e *Engine) RegisterPrePhrase(h speech.Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pre = append(e.pre, h)
}

// RegisterPostPhrase retains h.
func (e *Engine) RegisterPostPhrase(h speech.Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.post = append(e.post, h)
}

// PreCount returns the number of registered pre-phrase handlers.
func (e *Engine) PreCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pre)
}

// PostCount returns the number of registered post-phrase handlers.
func (e *Engine) PostCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.post)
}

// FirePre invokes all pre-phrase handlers in registration order.
func (e *Engine) FirePre(ctx context.Context, m modes.Set) {
	e.mu.Lock()
	hs := append([]speech.Handler(nil), e.pre...)
	e.mu.Unlock()
	for _, h := range hs {
		h(ctx, m)
	}
}

// FirePost invokes all post-phrase handlers in registration order.
func (e *Engine) FirePost(ctx context.Context, m modes.Set) {
	e.mu.Lock()
	hs := append([]speech.Handler(nil), e.post...)
	e.mu.Unlock()
	for _, h := range hs {
		h(ctx, m)
	}
}

// FirePhrase simulates one full phrase: pre then post with the same modes.
func (e *Engine) FirePhrase(ctx context.Context, m modes.Set) {
	e.FirePre(ctx, m)
	e.FirePost(ctx, m)
}
