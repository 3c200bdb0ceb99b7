// Package models defines data structures and domain types.
package models

import "time"

// IntervalKind identifies the device state an interval covers.
type IntervalKind int

const (
	// IntervalScreen marks a span during which the display was on.
	IntervalScreen IntervalKind = iota
	// IntervalSleep marks a span spent in a sleep power state.
	IntervalSleep
)

// String returns the string representation of the IntervalKind.
func (k IntervalKind) String() string {
	switch k {
	case IntervalScreen:
		return "Screen"
	case IntervalSleep:
		return "Sleep"
	default:
		return "Unknown"
	}
}

// Interval represents a span of a device state reconstructed from the
// power log. End is the zero time while the interval is still open.
type Interval struct {
	Kind           IntervalKind
	Start          time.Time
	End            time.Time
	BatteryAtStart int
	BatteryAtEnd   int
}

// Open reports whether the interval has no recorded end.
func (iv Interval) Open() bool {
	return iv.End.IsZero()
}

// Duration returns the interval length. Open intervals are measured up
// to now.
func (iv Interval) Duration(now time.Time) time.Duration {
	end := iv.End
	if iv.Open() {
		end = now
	}
	if end.Before(iv.Start) {
		return 0
	}
	return end.Sub(iv.Start)
}

// Drain returns the percentage points lost over the interval and
// whether the value is known. Drain is only known for closed intervals,
// where both battery readings were recorded.
func (iv Interval) Drain() (int, bool) {
	if iv.Open() {
		return 0, false
	}
	return iv.BatteryAtStart - iv.BatteryAtEnd, true
}
