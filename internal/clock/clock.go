// Package clock abstracts timer scheduling so debounce and expiry can be
// driven by a fake clock in tests.
package clock

import "time"

// Timer is a scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports false when the timer already
	// fired or was stopped.
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Real returns a Clock backed by time.AfterFunc.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
