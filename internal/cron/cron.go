// Package cron provides lightweight one-shot and interval timers for
// fire-and-forget background work.
//
// [After] schedules a function to run once after a delay without blocking the
// caller; [Every] runs a function repeatedly at a fixed interval. Both return
// a [Task] whose Stop method cancels work that has not yet fired. Scheduled
// functions run on their own goroutine, never on the caller's.
package cron

import (
	"sync"
	"time"
)

// Task is a handle to a scheduled function. It is safe for concurrent use.
type Task struct {
	mu      sync.Mutex
	stopped bool
	timer   *time.Timer
	done    chan struct{}
}

// Stop cancels the task. For one-shot tasks it reports whether the cancel
// happened before the function fired; once the function has started running
// Stop cannot interrupt it. Stop is idempotent.
func (t *Task) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	if t.done != nil {
		close(t.done)
	}
	if t.timer != nil {
		return t.timer.Stop()
	}
	return true
}

// After schedules fn to run once, d after the call. The returned [Task] can
// cancel it while it is still pending.
func After(d time.Duration, fn func()) *Task {
	t := &Task{}
	t.timer = time.AfterFunc(d, fn)
	return t
}

// Every runs fn repeatedly with d between invocations, starting one interval
// from now. The ticker goroutine exits when the returned [Task] is stopped.
// fn must return promptly; a slow fn delays subsequent ticks.
func Every(d time.Duration, fn func()) *Task {
	t := &Task{done: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(d)
		defer ticker.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	return t
}
