// Package ipc defines the command vocabulary and transport contract used to
// drive the reader-side addon.
//
// Three reader behaviors can be suppressed while dictated keystrokes are being
// typed: speech-interrupt-on-character, speak-typed-words, and
// speak-typed-characters. Each behavior has a query/disable/enable command
// triad sharing the same behavior suffix. The transport itself is an external
// collaborator; this package only specifies the [Commander] interface and the
// command names it carries.
package ipc

import (
	"context"
	"fmt"
	"strings"
)

// Command names one query or action command understood by the reader-side
// addon.
type Command string

// Commands for the three suppressible behaviors. Queries report the
// behavior's current boolean state; disable/enable commands flip it and
// reply with an acknowledgement.
const (
	GetSpeechInterruptForCharacters Command = "getSpeechInterruptForCharacters"
	GetSpeakTypedWords              Command = "getSpeakTypedWords"
	GetSpeakTypedCharacters         Command = "getSpeakTypedCharacters"

	DisableSpeechInterruptForCharacters Command = "disableSpeechInterruptForCharacters"
	DisableSpeakTypedWords              Command = "disableSpeakTypedWords"
	DisableSpeakTypedCharacters         Command = "disableSpeakTypedCharacters"

	EnableSpeechInterruptForCharacters Command = "enableSpeechInterruptForCharacters"
	EnableSpeakTypedWords              Command = "enableSpeakTypedWords"
	EnableSpeakTypedCharacters         Command = "enableSpeakTypedCharacters"
)

// Debug asks the reader-side addon to emit a diagnostic reply. Used by the
// addon self-test only; never part of a suppression batch.
const Debug Command = "debug"

// Queries lists the three query commands in protocol order. The order is
// significant: re-enable batches are replayed in discovery order, which is
// this order filtered down to the behaviors that were found enabled.
var Queries = []Command{
	GetSpeechInterruptForCharacters,
	GetSpeakTypedWords,
	GetSpeakTypedCharacters,
}

// Disables lists the three disable commands, matching [Queries] position for
// position.
var Disables = []Command{
	DisableSpeechInterruptForCharacters,
	DisableSpeakTypedWords,
	DisableSpeakTypedCharacters,
}

// enableFor rewrites a query command to the enable command for the same
// behavior. This is the only rewrite used when building a re-enable batch.
var enableFor = map[Command]Command{
	GetSpeechInterruptForCharacters: EnableSpeechInterruptForCharacters,
	GetSpeakTypedWords:              EnableSpeakTypedWords,
	GetSpeakTypedCharacters:         EnableSpeakTypedCharacters,
}

// EnableFor returns the enable-form counterpart of the query command q.
// The second return is false when q is not a query command (action
// acknowledgements in a batch reply land here and are skipped by callers).
func EnableFor(q Command) (Command, bool) {
	en, ok := enableFor[q]
	return en, ok
}

// ValidateTable checks the query→enable rewrite table for completeness: every
// query in [Queries] must have an enable counterpart with the same behavior
// suffix. Run once at startup; a failure indicates a programming error in
// this package.
func ValidateTable() error {
	for _, q := range Queries {
		en, ok := enableFor[q]
		if !ok {
			return fmt.Errorf("ipc: query %q has no enable counterpart", q)
		}
		suffix, ok := strings.CutPrefix(string(q), "get")
		if !ok {
			return fmt.Errorf("ipc: query %q does not start with \"get\"", q)
		}
		if string(en) != "enable"+suffix {
			return fmt.Errorf("ipc: query %q maps to %q, want %q", q, en, "enable"+suffix)
		}
	}
	if len(enableFor) != len(Queries) {
		return fmt.Errorf("ipc: rewrite table has %d entries, want %d", len(enableFor), len(Queries))
	}
	return nil
}

// Result is one command's reply within a batch. For query commands Value is
// the behavior's boolean state; for action commands it is an acknowledgement
// that consumers ignore.
type Result struct {
	Command Command
	Value   any
}

// Truthy interprets the result value as a boolean. Transports that decode
// replies from JSON deliver numbers as float64, so numeric and string forms
// are accepted alongside plain bools. Anything unrecognised is false.
func (r Result) Truthy() bool {
	switch v := r.Value.(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return false
	}
}

// Commander sends an ordered batch of commands to the reader-side addon and
// returns one [Result] per command, in the same order. Implementations
// execute commands strictly in the given order but need not make the batch
// atomic; per-command failures are a transport concern. A non-nil error means
// the batch as a whole could not be delivered.
type Commander interface {
	SendCommands(ctx context.Context, cmds []Command) ([]Result, error)
}
