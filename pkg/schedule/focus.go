package schedule

import (
	"fmt"
	"time"
)

// DefaultFocus is one pomodoro.
const DefaultFocus = 25 * time.Minute

// Focus is a pausable countdown advanced one second per Tick.
type Focus struct {
	length    time.Duration
	remaining time.Duration
	running   bool
}

// NewFocus creates a paused countdown of length d.
func NewFocus(d time.Duration) *Focus {
	if d <= 0 {
		d = DefaultFocus
	}
	return &Focus{length: d, remaining: d}
}

// Running reports whether the countdown is active.
func (f *Focus) Running() bool { return f.running }

// Remaining is the time left.
func (f *Focus) Remaining() time.Duration { return f.remaining }

// Toggle starts or pauses. Starting a finished countdown restarts it.
func (f *Focus) Toggle() {
	if !f.running && f.remaining <= 0 {
		f.remaining = f.length
	}
	f.running = !f.running
}

// Reset stops and rewinds to the full length.
func (f *Focus) Reset() {
	f.running = false
	f.remaining = f.length
}

// Tick advances a running countdown by one second and reports whether it
// just reached zero.
func (f *Focus) Tick() bool {
	if !f.running {
		return false
	}
	f.remaining -= time.Second
	if f.remaining > 0 {
		return false
	}
	f.remaining = 0
	f.running = false
	return true
}

// String renders MM:SS.
func (f *Focus) String() string {
	secs := int(f.remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
