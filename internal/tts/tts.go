// Package tts routes text-to-speech dispatch between the screen reader's own
// synthesizer and a fallback speaker owned by the dictation host.
//
// Speech rendering itself lives with the collaborators; this package only
// decides where a dispatch goes and reports the outcome.
package tts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MrWong99/quiesce/internal/nvda"
	"github.com/MrWong99/quiesce/internal/observe"
)

// Speaker dispatches text to a speech engine. interrupt asks the engine to
// cut off in-progress speech first; engines that handle interruption
// themselves may ignore it.
type Speaker interface {
	Speak(text string, interrupt bool) error
}

// ReaderSpeaker speaks through NVDA's own synthesizer via the controller
// client. NVDA manages interruption itself, so the flag is ignored.
type ReaderSpeaker struct {
	client nvda.Client
}

// NewReaderSpeaker returns a [ReaderSpeaker] backed by client.
func NewReaderSpeaker(client nvda.Client) *ReaderSpeaker {
	return &ReaderSpeaker{client: client}
}

// Speak dispatches text to NVDA.
func (s *ReaderSpeaker) Speak(text string, _ bool) error {
	return s.client.Speak(text)
}

// Router sends speech to the reader when configured to, and to the fallback
// speaker otherwise. It is safe for concurrent use when its speakers are.
type Router struct {
	viaReader bool
	reader    Speaker
	fallback  Speaker
	met       *observe.Metrics
}

// NewRouter builds a [Router]. viaReader selects the reader path; met may be
// nil to disable metrics.
func NewRouter(viaReader bool, reader, fallback Speaker, met *observe.Metrics) *Router {
	return &Router{viaReader: viaReader, reader: reader, fallback: fallback, met: met}
}

// Speak routes one dispatch. Routing to a nil speaker is an error so that a
// misconfigured route is visible rather than silently dropped.
func (r *Router) Speak(text string, interrupt bool) error {
	route, sp := "fallback", r.fallback
	if r.viaReader {
		route, sp = "reader", r.reader
	}

	var err error
	if sp == nil {
		err = fmt.Errorf("tts: no %s speaker configured", route)
	} else {
		err = sp.Speak(text, interrupt)
	}

	if r.met != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		r.met.RecordSpeechDispatch(context.Background(), route, status)
	}
	return err
}

// Say speaks a short status announcement, interrupting current speech.
// Failures are logged and swallowed; announcements are best effort.
func (r *Router) Say(text string) {
	if err := r.Speak(text, true); err != nil && !errors.Is(err, nvda.ErrUnsupported) {
		slog.Warn("tts announcement failed", "err", err)
	}
}
