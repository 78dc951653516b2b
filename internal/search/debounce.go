// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"sync"
	"time"
)

// =============================================================================
// TRAILING-EDGE DEBOUNCER
// =============================================================================

// DebounceDelay is the quiet interval after the last keystroke before a
// search value commits.
const DebounceDelay = 200 * time.Millisecond

// Debouncer delivers the most recent input value to a callback once input
// has been quiet for the configured delay. Each new input supersedes the
// pending one and restarts the timer. After Stop, no further delivery
// happens, even for an already-scheduled timer.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(string)
	timer   *time.Timer
	latest  string
	stopped bool
}

// NewDebouncer creates a debouncer delivering to fn. A non-positive delay
// falls back to DebounceDelay.
func NewDebouncer(delay time.Duration, fn func(string)) *Debouncer {
	if delay <= 0 {
		delay = DebounceDelay
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Input records a keystroke's value and restarts the quiet-interval timer.
func (d *Debouncer) Input(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.latest = value
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Flush commits the pending value immediately, if a timer is pending.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	pending := d.timer != nil && d.timer.Stop()
	d.timer = nil
	value := d.latest
	stopped := d.stopped
	d.mu.Unlock()

	if pending && !stopped {
		d.fn(value)
	}
}

// Stop cancels any pending delivery permanently. Required on teardown so
// a stale commit cannot land after the owner is gone.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// fire runs on the timer goroutine.
func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	value := d.latest
	d.mu.Unlock()

	d.fn(value)
}
