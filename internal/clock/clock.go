// Package clock abstracts time so recognizers can be driven deterministically.
package clock

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock reports the current time and schedules callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Inline is implemented by clocks whose callbacks run on the goroutine
// that advances them, never on a goroutine of their own.
type Inline interface {
	Inline() bool
}

// Real is the wall clock.
type Real struct{}

// Now returns time.Now.
func (Real) Now() time.Time {
	return time.Now()
}

// AfterFunc wraps time.AfterFunc.
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
