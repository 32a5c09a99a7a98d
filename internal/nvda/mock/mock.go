// Package mock provides an in-memory mock implementation of [nvda.Client]
// for use in unit tests.
//
// Return values are configured via exported fields; calls are recorded. It is
// safe for concurrent use.
package mock

import (
	"sync"

	"github.com/MrWong99/quiesce/internal/nvda"
)

// Compile-time interface assertion.
var _ nvda.Client = (*Client)(nil)

// Client is a mock implementation of [nvda.Client].
type Client struct {
	mu sync.Mutex

	// RunningResult is returned by Running.
	RunningResult bool

	// StatusResult is returned by StatusCode.
	StatusResult int32

	// SpeakErr, CancelErr, and BrailleErr control the dispatch methods.
	SpeakErr   error
	CancelErr  error
	BrailleErr error

	// Spoken and Brailled accumulate dispatched text; CancelCalls counts
	// CancelSpeech invocations.
	Spoken      []string
	Brailled    []string
	CancelCalls int
}

// Running returns RunningResult.
func (c *Client) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.RunningResult
}

// StatusCode returns StatusResult.
func (c *Client) StatusCode() int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.StatusResult
}

// Speak records text and returns SpeakErr.
func (c *Client) Speak(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Spoken = append(c.Spoken, text)
	return c.SpeakErr
}

// CancelSpeech counts the call and returns CancelErr.
func (c *Client) CancelSpeech() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CancelCalls++
	return c.CancelErr
}

// Braille records text and returns BrailleErr.
func (c *Client) Braille(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Brailled = append(c.Brailled, text)
	return c.BrailleErr
}
