// Package schedule provides the timing primitives page engines run on.
//
// Every callback handed to a Scheduler runs on the scheduler's single
// logical thread, one at a time, to completion. Engines therefore never
// lock: they rely on the scheduler never re-entering them.
package schedule

import "time"

// Cancel stops a scheduled callback. It is idempotent, and once it returns
// the callback will not run again.
type Cancel func()

// Scheduler offers the three timing primitives the engines need.
type Scheduler interface {
	// After runs fn once, d from now.
	After(d time.Duration, fn func()) Cancel
	// Every runs fn every d until cancelled.
	Every(d time.Duration, fn func()) Cancel
	// EachFrame runs fn on every animation frame until cancelled.
	EachFrame(fn func()) Cancel
}

// Nop is a Cancel that does nothing.
func Nop() {}
