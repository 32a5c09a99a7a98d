package nvda

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrWong99/quiesce/internal/cron"
	"github.com/MrWong99/quiesce/internal/ipc"
	"github.com/MrWong99/quiesce/internal/keys"
)

// Announcer speaks short status announcements to the user. Errors are the
// implementation's concern; announcements are best effort.
type Announcer interface {
	Say(text string)
}

// DefaultModifierKey is the conventional NVDA modifier.
const DefaultModifierKey = "insert"

// quitConfirmDelay is how long to wait before confirming NVDA's quit dialog.
// The deferred press keeps phrase callbacks usable while NVDA is shutting
// down.
const quitConfirmDelay = 2 * time.Second

// ActionsConfig configures [NewActions]. Client, Presser, and Voice are
// required; Commander is optional and only needed for the addon self-test.
type ActionsConfig struct {
	Client      Client
	Presser     keys.Presser
	Voice       Announcer
	Commander   ipc.Commander
	ModifierKey string
}

// Actions drives NVDA lifecycle operations through simulated keystrokes:
// toggling, restarting, and the modifier chord, plus controller/addon
// self-tests.
type Actions struct {
	client Client
	press  keys.Presser
	voice  Announcer
	cmd    ipc.Commander
	modKey string

	// Scheduling and sleeping are injectable for tests.
	after func(time.Duration, func()) *cron.Task
	sleep func(time.Duration)
}

// NewActions validates cfg and returns an [Actions]. A zero ModifierKey
// defaults to [DefaultModifierKey].
func NewActions(cfg ActionsConfig) (*Actions, error) {
	if cfg.Client == nil {
		return nil, errors.New("nvda: actions require a Client")
	}
	if cfg.Presser == nil {
		return nil, errors.New("nvda: actions require a Presser")
	}
	if cfg.Voice == nil {
		return nil, errors.New("nvda: actions require a Voice")
	}
	mod := cfg.ModifierKey
	if mod == "" {
		mod = DefaultModifierKey
	}
	return &Actions{
		client: cfg.Client,
		press:  cfg.Presser,
		voice:  cfg.Voice,
		cmd:    cfg.Commander,
		modKey: mod,
		after:  cron.After,
		sleep:  time.Sleep,
	}, nil
}

// ModPress taps key while holding the NVDA modifier.
func (a *Actions) ModPress(key string) error {
	return keys.Chord(a.press, a.modKey, key)
}

// Toggle starts NVDA when it is not running and quits it otherwise. Quitting
// opens NVDA's confirmation dialog, which is confirmed by a deferred Enter.
func (a *Actions) Toggle() error {
	if !a.client.Running() {
		if err := a.press.Tap("ctrl-alt-n"); err != nil {
			return fmt.Errorf("nvda: start shortcut: %w", err)
		}
		a.voice.Say("Turning NVDA on")
		return nil
	}

	if err := a.ModPress("q"); err != nil {
		return fmt.Errorf("nvda: quit chord: %w", err)
	}
	a.voice.Say("Turning NVDA off")
	a.after(quitConfirmDelay, func() { _ = a.press.Tap("enter") })
	return nil
}

// Restart quits NVDA and selects the restart option in its confirmation
// dialog. No-op when NVDA is not running.
func (a *Actions) Restart() error {
	if !a.client.Running() {
		return nil
	}
	if err := a.ModPress("q"); err != nil {
		return fmt.Errorf("nvda: quit chord: %w", err)
	}
	// Give the dialog time to appear before moving to the restart option.
	a.sleep(500 * time.Millisecond)
	if err := a.press.Tap("down"); err != nil {
		return fmt.Errorf("nvda: select restart: %w", err)
	}
	a.after(quitConfirmDelay, func() { _ = a.press.Tap("enter") })
	a.voice.Say("Restarting NVDA")
	return nil
}

// TestController announces the raw controller client status code.
func (a *Actions) TestController() {
	a.voice.Say(fmt.Sprintf("Controller client value is: %d", a.client.StatusCode()))
}

// TestAddon sends the debug command to the reader-side addon and announces
// success. Requires a Commander.
func (a *Actions) TestAddon(ctx context.Context) error {
	if a.cmd == nil {
		return errors.New("nvda: no command transport configured")
	}
	if _, err := a.cmd.SendCommands(ctx, []ipc.Command{ipc.Debug}); err != nil {
		return fmt.Errorf("nvda: addon self-test: %w", err)
	}
	a.voice.Say("Success testing reader addon")
	return nil
}
