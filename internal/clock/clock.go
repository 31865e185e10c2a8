// Package clock abstracts the time operations used by notification expiry
// and delayed navigation so tests can control time deterministically.
// Production code injects Real(); tests inject Fake().
package clock

import "time"

// Clock is the subset of the time package the planner depends on.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc calls f once d has elapsed and returns a Timer that can
	// cancel the pending call.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc call.
type Timer interface {
	// Stop prevents the call from happening. It returns false if the call
	// already happened or the timer was already stopped.
	Stop() bool
}

type realClock struct{}

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
