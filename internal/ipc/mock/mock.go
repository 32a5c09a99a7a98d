// Package mock provides an in-memory mock implementation of [ipc.Commander]
// for use in unit tests.
//
// The mock records every batch it is asked to send and allows the test to
// configure replies via exported fields. It is safe for concurrent use.
package mock

import (
	"context"
	"sync"

	"github.com/MrWong99/quiesce/internal/ipc"
)

// Compile-time interface assertion.
var _ ipc.Commander = (*Commander)(nil)

// Commander is a mock implementation of [ipc.Commander].
//
// Replies are taken from the Results field when set; otherwise each command
// in the batch is acknowledged with a Result whose Value is "ok". The Err
// field, when non-nil, is returned instead and no Results are produced.
type Commander struct {
	mu sync.Mutex

	// Results is returned verbatim by SendCommands when non-nil.
	Results []ipc.Result

	// Err is returned by SendCommands when non-nil.
	Err error

	// Calls accumulates one entry per SendCommands invocation, each a copy
	// of the batch that was passed in.
	Calls [][]ipc.Command
}

// SendCommands records the batch and returns the configured reply.
func (c *Commander) SendCommands(_ context.Context, cmds []ipc.Command) ([]ipc.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	batch := make([]ipc.Command, len(cmds))
	copy(batch, cmds)
	c.Calls = append(c.Calls, batch)

	if c.Err != nil {
		return nil, c.Err
	}
	if c.Results != nil {
		return c.Results, nil
	}
	acks := make([]ipc.Result, len(cmds))
	for i, cmd := range cmds {
		acks[i] = ipc.Result{Command: cmd, Value: "ok"}
	}
	return acks, nil
}

// CallCount returns how many batches have been sent.
func (c *Commander) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Calls)
}

// LastCall returns the most recently sent batch, or nil if none.
func (c *Commander) LastCall() []ipc.Command {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Calls) == 0 {
		return nil
	}
	return c.Calls[len(c.Calls)-1]
}
