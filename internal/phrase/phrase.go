// Package phrase implements the phrase-boundary interrupt-suppression
// coordinator.
//
// The screen reader interrupts its own speech whenever it sees a key press.
// That behavior fights dictation: every recognized utterance is typed as a
// burst of synthetic keystrokes, clipping whatever the reader was announcing.
// The [Coordinator] disables the reader's interrupt-on-typing behaviors at
// the start of each phrase and restores, after the last keystroke has had
// time to land, exactly the behaviors that were enabled beforehand.
//
// Both entry points are best effort and never return an error to the
// dictation flow: when the reader is unreachable, dictation is asleep, the
// addon protocol is unsupported, or the command transport fails, the phrase
// simply proceeds without suppression.
package phrase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/MrWong99/quiesce/internal/cron"
	"github.com/MrWong99/quiesce/internal/ipc"
	"github.com/MrWong99/quiesce/internal/modes"
	"github.com/MrWong99/quiesce/internal/observe"
)

// DefaultRestoreDelay is how long after phrase end the re-enable batch is
// sent. Nothing signals "the last keystroke has been fully processed by the
// OS input layer", so this is an empirical debounce, not a guarantee.
const DefaultRestoreDelay = 400 * time.Millisecond

// Scheduler runs fn once, d after the call, without blocking the caller.
// The returned cancel stops a still-pending run and reports whether it did.
type Scheduler func(d time.Duration, fn func()) (cancel func() bool)

// CronScheduler is the production [Scheduler], backed by [cron.After].
func CronScheduler(d time.Duration, fn func()) func() bool {
	return cron.After(d, fn).Stop
}

// State is the coordinator's position in the phrase cycle.
type State int

const (
	// StateIdle means no phrase is in flight. A deferred restore may still
	// be pending from the previous phrase.
	StateIdle State = iota

	// StateSuppressing means the suppression batch for the current phrase
	// was sent and its restore has not been scheduled yet.
	StateSuppressing
)

// String returns the human-readable name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSuppressing:
		return "suppressing"
	default:
		return "unknown"
	}
}

// Config holds the collaborators and tuning knobs for a [Coordinator].
type Config struct {
	// Probe reports whether the screen reader is reachable. Required.
	Probe func() bool

	// Marker reports whether the reader-side addon supports the
	// query/disable command protocol. Required.
	Marker func() bool

	// Commander delivers command batches to the reader-side addon. Required.
	Commander ipc.Commander

	// Scheduler defers the re-enable batch. Default: [CronScheduler].
	Scheduler Scheduler

	// RestoreDelay overrides [DefaultRestoreDelay] when positive.
	RestoreDelay time.Duration

	// Metrics records coordination outcomes. May be nil.
	Metrics *observe.Metrics
}

// Coordinator owns the process-lifetime suppression state and drives the two
// phrase-boundary events. Construct one per process with [New] and hand it to
// the dictation engine's callback registration.
//
// The dictation engine invokes PhraseStarted and PhraseEnded strictly
// sequentially; the mutex exists for State readers (health checks) and for
// the deferred restore handoff, not because the event path is concurrent.
type Coordinator struct {
	probe  func() bool
	marker func() bool
	cmd    ipc.Commander
	after  Scheduler
	delay  time.Duration
	met    *observe.Metrics

	mu            sync.Mutex
	startSent     bool
	pending       []ipc.Command
	cancelRestore func() bool
}

// New validates cfg and returns a [Coordinator] in [StateIdle]. The command
// rewrite table is validated here so an incomplete triad fails at startup,
// not mid-phrase.
func New(cfg Config) (*Coordinator, error) {
	if err := ipc.ValidateTable(); err != nil {
		return nil, err
	}
	if cfg.Probe == nil {
		return nil, errors.New("phrase: coordinator requires a Probe")
	}
	if cfg.Marker == nil {
		return nil, errors.New("phrase: coordinator requires a Marker")
	}
	if cfg.Commander == nil {
		return nil, errors.New("phrase: coordinator requires a Commander")
	}
	c := &Coordinator{
		probe:  cfg.Probe,
		marker: cfg.Marker,
		cmd:    cfg.Commander,
		after:  cfg.Scheduler,
		delay:  cfg.RestoreDelay,
		met:    cfg.Metrics,
	}
	if c.after == nil {
		c.after = CronScheduler
	}
	if c.delay <= 0 {
		c.delay = DefaultRestoreDelay
	}
	return c, nil
}

// State returns the coordinator's current [State].
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.startSent {
		return StateSuppressing
	}
	return StateIdle
}

// skip records one gated-out phrase event.
func (c *Coordinator) skip(ctx context.Context, event, reason string) {
	slog.Debug("phrase event gated out", "event", event, "reason", reason)
	if c.met != nil {
		c.met.RecordGateSkip(ctx, event, reason)
	}
}

// PhraseStarted queries and disables the reader's interrupt-on-typing
// behaviors before the phrase's keystrokes are typed. The queries run before
// the disables in a single ordered batch, so the recorded "was enabled" state
// reflects the true pre-suppression settings. Query results that came back
// enabled are kept, in reply order, as the re-enable list for PhraseEnded.
//
// A transport failure leaves all coordinator state untouched.
func (c *Coordinator) PhraseStarted(ctx context.Context, m modes.Set) {
	switch {
	case !c.probe():
		c.skip(ctx, "start", "not-running")
		return
	case m.Sleeping():
		c.skip(ctx, "start", "sleep")
		return
	case !c.marker():
		c.skip(ctx, "start", "no-marker")
		return
	}

	batch := make([]ipc.Command, 0, len(ipc.Queries)+len(ipc.Disables))
	batch = append(batch, ipc.Queries...)
	batch = append(batch, ipc.Disables...)

	results, err := c.cmd.SendCommands(ctx, batch)
	if err != nil {
		slog.Warn("suppression batch failed", "err", err)
		if c.met != nil {
			c.met.RecordCommandError(ctx, "start")
		}
		return
	}

	var pending []ipc.Command
	for _, r := range results {
		en, ok := ipc.EnableFor(r.Command)
		if !ok || !r.Truthy() {
			// Disable acks, and behaviors that were already off.
			continue
		}
		pending = append(pending, en)
	}

	c.mu.Lock()
	if c.cancelRestore != nil {
		// The previous phrase's restore has not fired yet. Let it run and
		// it would re-enable behaviors this phrase just disabled.
		c.cancelRestore()
		c.cancelRestore = nil
	}
	c.pending = pending
	c.startSent = true
	c.mu.Unlock()

	if c.met != nil {
		c.met.Suppressions.Add(ctx, 1)
	}
	slog.Debug("interrupt suppression applied", "reenable_count", len(pending))
}

// PhraseEnded schedules the deferred re-enable batch for whatever
// PhraseStarted found enabled, then clears the suppression state.
//
// Sleep mode does not abort restoration when suppression was already applied:
// falling asleep mid-phrase must still restore the user's settings. The
// startSent flag is reset synchronously on every gate pass — whether or not
// anything was scheduled — so a later phrase end during sleep sees no
// suppression pending and aborts.
//
// The scheduled action sends a snapshot captured here; it never reads live
// coordinator state, so a following phrase cannot leak its own re-enable list
// into an older timer.
func (c *Coordinator) PhraseEnded(ctx context.Context, m modes.Set) {
	if !c.probe() {
		c.skip(ctx, "end", "not-running")
		return
	}
	c.mu.Lock()
	startSent := c.startSent
	c.mu.Unlock()
	if m.Sleeping() && !startSent {
		c.skip(ctx, "end", "sleep")
		return
	}
	if !c.marker() {
		c.skip(ctx, "end", "no-marker")
		return
	}

	c.mu.Lock()
	snapshot := c.pending
	c.pending = nil
	c.startSent = false

	scheduled := false
	if len(snapshot) > 0 {
		cmds := snapshot
		c.cancelRestore = c.after(c.delay, func() {
			if _, err := c.cmd.SendCommands(context.Background(), cmds); err != nil {
				slog.Warn("re-enable batch failed", "err", err)
				if c.met != nil {
					c.met.RecordCommandError(context.Background(), "restore")
				}
			}
		})
		scheduled = true
	}
	c.mu.Unlock()

	if scheduled {
		if c.met != nil {
			c.met.RestoresScheduled.Add(ctx, 1)
		}
		slog.Debug("re-enable batch scheduled", "delay", c.delay, "commands", len(snapshot))
	}
}
