package refresh

import "time"

// Clock schedules callbacks. It exists so tests can drive time by hand.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending callback.
type Timer interface {
	// Stop prevents the callback from running. It reports false if the
	// callback already ran or was stopped.
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns a Clock backed by package time.
func RealClock() Clock { return realClock{} }
