package engine

import "time"

// Clock is the time source used for tick pacing.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock uses the wall clock and blocks in time.Sleep.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep blocks for d. It cannot be interrupted.
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }
