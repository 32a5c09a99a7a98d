// Package speech defines the contract between Quiesce and the external
// dictation engine.
//
// The engine owns recognition and keystroke emission; Quiesce only hooks its
// phrase boundaries. Handlers must tolerate being called when there is
// nothing to do — gating is their job, not the engine's.
package speech

import (
	"context"

	"github.com/MrWong99/quiesce/internal/modes"
)

// Handler is invoked at a phrase boundary with the engine's active modes at
// that instant.
type Handler func(ctx context.Context, m modes.Set)

// Engine is implemented by the dictation front-end. Pre-phrase handlers run
// before recognized text is acted upon; post-phrase handlers run immediately
// after the phrase's keystrokes have been issued. The engine calls handlers
// sequentially: one phrase's callbacks complete before the next phrase's
// begin.
type Engine interface {
	RegisterPrePhrase(h Handler)
	RegisterPostPhrase(h Handler)
}
