// Package mock provides an in-memory mock implementation of [keys.Presser]
// for use in unit tests.
//
// The mock records every key event in order. It is safe for concurrent use.
package mock

import (
	"sync"

	"github.com/MrWong99/quiesce/internal/keys"
)

// Compile-time interface assertion.
var _ keys.Presser = (*Presser)(nil)

// Presser is a mock implementation of [keys.Presser]. Events accumulate as
// "tap:<key>", "down:<key>", and "up:<key>" strings in call order. The Err
// field, when non-nil, is returned by every method (events are still
// recorded).
type Presser struct {
	mu sync.Mutex

	// Err is returned by all methods when non-nil.
	Err error

	// Events records every key event in order.
	Events []string
}

func (p *Presser) record(kind, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, kind+":"+key)
	return p.Err
}

// Tap records "tap:<key>".
func (p *Presser) Tap(key string) error { return p.record("tap", key) }

// Down records "down:<key>".
func (p *Presser) Down(key string) error { return p.record("down", key) }

// Up records "up:<key>".
func (p *Presser) Up(key string) error { return p.record("up", key) }

// Recorded returns a copy of the event log.
func (p *Presser) Recorded() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.Events))
	copy(out, p.Events)
	return out
}
