package models

import (
	"fmt"
	"time"
)

// Summary is the result of one power log analysis: cumulative screen-on
// time and average drain rates since the last detected charge.
//
// When the log carried no charge event, ChargeDetected is false and
// LastChargeTime is the start of the fallback 24-hour window.
type Summary struct {
	ScreenOnHours   int
	ScreenOnMinutes int

	// Average battery drain in percentage points per hour, 0 when no
	// closed interval of the kind fell inside the window.
	ScreenDrainPerHour float64
	SleepDrainPerHour  float64

	LastChargeTime  time.Time
	LastChargeLevel int
	ChargeDetected  bool

	// CurrentLevel is the last battery percentage seen in the log.
	CurrentLevel int

	// Intervals holds every reconstructed interval, in log order, for
	// display. Aggregates above only cover those inside the window.
	Intervals []Interval

	GeneratedAt time.Time
}

// ScreenOnText formats the screen-on total as "1h 30m".
func (s Summary) ScreenOnText() string {
	return fmt.Sprintf("%dh %dm", s.ScreenOnHours, s.ScreenOnMinutes)
}

// TimeSinceCharge returns how long ago the reference charge was.
func (s Summary) TimeSinceCharge(now time.Time) time.Duration {
	if now.Before(s.LastChargeTime) {
		return 0
	}
	return now.Sub(s.LastChargeTime)
}

// EstimatedRemaining projects how long the current battery level would
// last at the observed screen drain rate. The second return value is
// false when no projection is possible.
func (s Summary) EstimatedRemaining() (time.Duration, bool) {
	if s.ScreenDrainPerHour <= 0 || s.CurrentLevel <= 0 {
		return 0, false
	}
	hours := float64(s.CurrentLevel) / s.ScreenDrainPerHour
	return time.Duration(hours * float64(time.Hour)), true
}

// HasData reports whether the analysis saw anything usable. A false
// value means the log was empty or unreadable, which is rendered as a
// hint rather than an error: the analyzer cannot tell the two apart.
func (s Summary) HasData() bool {
	return s.ChargeDetected || len(s.Intervals) > 0
}
