// Package mock provides an in-memory mock implementation of [tts.Speaker]
// for use in unit tests.
package mock

import (
	"sync"

	"github.com/MrWong99/quiesce/internal/tts"
)

// Compile-time interface assertion.
var _ tts.Speaker = (*Speaker)(nil)

// SpeakCall records the arguments of one Speak invocation.
type SpeakCall struct {
	Text      string
	Interrupt bool
}

// Speaker is a mock implementation of [tts.Speaker]. The Err field controls
// the return value; Calls accumulates invocations.
type Speaker struct {
	mu sync.Mutex

	// Err is returned by Speak when non-nil.
	Err error

	// Calls records every Speak invocation in order.
	Calls []SpeakCall
}

// Speak records the call and returns Err.
func (s *Speaker) Speak(text string, interrupt bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, SpeakCall{Text: text, Interrupt: interrupt})
	return s.Err
}

// CallCount returns how many dispatches were recorded.
func (s *Speaker) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

// Last returns the most recent call, or a zero value if none.
func (s *Speaker) Last() SpeakCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Calls) == 0 {
		return SpeakCall{}
	}
	return s.Calls[len(s.Calls)-1]
}
