// Package keys abstracts key-press emission toward the OS input layer.
//
// The dictation host owns the actual key synthesis; this package only defines
// the [Presser] contract consumed by the rest of Quiesce, plus the modifier
// chord helper used to drive screen-reader shortcuts.
package keys

import (
	"errors"
	"fmt"
	"time"
)

// Presser emits key events. Key names use the dictation host's vocabulary
// (e.g. "insert", "enter", "ctrl-alt-n" for a combined tap).
type Presser interface {
	// Tap presses and releases key.
	Tap(key string) error

	// Down holds key until a matching Up.
	Down(key string) error

	// Up releases a held key.
	Up(key string) error
}

// Timing between chord key events. The reader needs the modifier settled
// before the keypress registers as a command, and a short gap before release.
const (
	modSettleDelay = 50 * time.Millisecond
	releaseDelay   = 10 * time.Millisecond
)

// Chord taps key while holding mod: mod down, 50ms, key, 10ms, mod up.
// The modifier is released even when the tap fails, so a transport error
// cannot leave a stuck modifier behind; all errors are joined.
func Chord(p Presser, mod, key string) error {
	if err := p.Down(mod); err != nil {
		return fmt.Errorf("keys: hold %q: %w", mod, err)
	}
	time.Sleep(modSettleDelay)

	tapErr := p.Tap(key)
	time.Sleep(releaseDelay)

	upErr := p.Up(mod)
	if tapErr != nil {
		tapErr = fmt.Errorf("keys: tap %q: %w", key, tapErr)
	}
	if upErr != nil {
		upErr = fmt.Errorf("keys: release %q: %w", mod, upErr)
	}
	return errors.Join(tapErr, upErr)
}
