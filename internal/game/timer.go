package game

import "time"

// Timer is a repeating countdown advanced by the frame step.
// The zero value is stopped.
type Timer struct {
	period    time.Duration
	remaining time.Duration
	running   bool
}

// Start (re)arms the timer with the given period, dropping any pending progress.
// A non-positive period leaves the timer stopped.
func (t *Timer) Start(period time.Duration) {
	t.period = period
	t.remaining = period
	t.running = period > 0
}

// Stop cancels the timer.
func (t *Timer) Stop() {
	t.running = false
	t.remaining = 0
}

// Running reports whether the timer is armed.
func (t *Timer) Running() bool {
	return t.running
}

// Period returns the period the timer was last started with.
func (t *Timer) Period() time.Duration {
	return t.period
}

// Remaining returns the time left until the next fire.
func (t *Timer) Remaining() time.Duration {
	return t.remaining
}

// Advance moves the timer forward by dt and returns how many times it fired.
func (t *Timer) Advance(dt time.Duration) int {
	if !t.running || dt <= 0 {
		return 0
	}
	fired := 0
	t.remaining -= dt
	for t.remaining <= 0 {
		fired++
		t.remaining += t.period
	}
	return fired
}
