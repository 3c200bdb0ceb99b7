package powerlog

import (
	"sort"
	"strings"
	"time"

	"batglance/internal/models"
)

const (
	// chargeJumpThreshold is the minimum rise in percentage points,
	// against the immediately preceding known level, treated as a
	// charge even without an AC marker.
	chargeJumpThreshold = 5

	// fallbackLookback bounds the aggregation window when the log
	// carries no charge event at all.
	fallbackLookback = 24 * time.Hour

	// initialBatteryLevel is assumed until the log says otherwise.
	initialBatteryLevel = 100
)

// Analyzer turns raw power log text into a Summary. It holds no state
// between calls; the clock is a field so tests can pin "now".
type Analyzer struct {
	now func() time.Time
}

// New creates an Analyzer using the wall clock.
func New() *Analyzer {
	return &Analyzer{now: time.Now}
}

// scanState is the accumulator threaded through the line scan.
//
// Open intervals are tracked by an explicit index per kind. A start
// marker arriving while an interval of that kind is already open does
// not close it: the earlier interval stays open in the list and is
// later aggregated with "now" as its implicit end. Only the most
// recently opened interval can be closed by an end marker.
type scanState struct {
	level      int
	darkWake   bool
	lastCharge *models.ChargeEvent

	intervals  []models.Interval
	openScreen int
	openSleep  int
}

func newScanState() *scanState {
	return &scanState{
		level:      initialBatteryLevel,
		openScreen: -1,
		openSleep:  -1,
	}
}

// observe folds one timestamped line into the state. Battery level and
// charge detection run first so interval boundaries capture the level
// reported on the same line.
func (st *scanState) observe(line string, ts time.Time) {
	st.observeBattery(line, ts)
	st.observeWake(line, ts)
	st.observeDisplay(line, ts)
	st.observeSleepEntry(line, ts)
}

// observeBattery updates the running battery level and records charge
// events. The >5-point jump heuristic and the AC marker can both fire;
// the later write wins, matching the log-order semantics of the scan.
func (st *scanState) observeBattery(line string, ts time.Time) {
	if level, ok := parseBatteryLevel(line); ok {
		if level > st.level+chargeJumpThreshold {
			st.lastCharge = &models.ChargeEvent{Timestamp: ts, Level: level}
		}
		st.level = level
	}
	if hasACMarker(line) {
		st.lastCharge = &models.ChargeEvent{Timestamp: ts, Level: st.level}
	}
}

// observeWake maintains the dark-wake flag and closes the open sleep
// interval on a user-visible wake. Dark wakes are system-initiated and
// neither end a sleep interval nor allow screen intervals to start.
func (st *scanState) observeWake(line string, ts time.Time) {
	if strings.Contains(line, markerDarkWake) {
		st.darkWake = true
		return
	}
	if strings.Contains(line, markerWake) {
		st.darkWake = false
		st.close(&st.openSleep, ts)
	}
}

// observeDisplay opens a screen interval on "display on" (unless in a
// dark wake) and closes the open one on "display off".
func (st *scanState) observeDisplay(line string, ts time.Time) {
	switch {
	case strings.Contains(line, markerDisplayOn):
		if !st.darkWake {
			st.open(models.IntervalScreen, &st.openScreen, ts)
		}
	case strings.Contains(line, markerDisplayOff):
		st.close(&st.openScreen, ts)
	}
}

// observeSleepEntry opens a sleep interval.
func (st *scanState) observeSleepEntry(line string, ts time.Time) {
	if strings.Contains(line, markerSleepEntry) {
		st.open(models.IntervalSleep, &st.openSleep, ts)
	}
}

func (st *scanState) open(kind models.IntervalKind, openIdx *int, ts time.Time) {
	st.intervals = append(st.intervals, models.Interval{
		Kind:           kind,
		Start:          ts,
		BatteryAtStart: st.level,
	})
	*openIdx = len(st.intervals) - 1
}

func (st *scanState) close(openIdx *int, ts time.Time) {
	if *openIdx < 0 {
		return
	}
	iv := &st.intervals[*openIdx]
	if iv.Open() {
		iv.End = ts
		iv.BatteryAtEnd = st.level
	}
	*openIdx = -1
}

// Analyze reconstructs intervals and charge events from raw log text
// and aggregates them into a Summary. It is total over all inputs:
// malformed lines are skipped and an empty log yields zeroed stats
// with the 24-hour fallback window.
func (a *Analyzer) Analyze(raw string) models.Summary {
	now := a.now()

	st := newScanState()
	for _, line := range strings.Split(raw, "\n") {
		ts, ok := parseTimestamp(line)
		if !ok {
			continue
		}
		st.observe(line, ts)
	}

	refTime := now.Add(-fallbackLookback)
	refLevel := initialBatteryLevel
	detected := false
	if st.lastCharge != nil {
		refTime = st.lastCharge.Timestamp
		refLevel = st.lastCharge.Level
		detected = true
	}

	screenTotal, screenDrain := aggregate(st.intervals, models.IntervalScreen, refTime, now)
	sleepTotal, sleepDrain := aggregate(st.intervals, models.IntervalSleep, refTime, now)

	intervals := make([]models.Interval, len(st.intervals))
	copy(intervals, st.intervals)
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})

	return models.Summary{
		ScreenOnHours:      int(screenTotal / time.Hour),
		ScreenOnMinutes:    int(screenTotal/time.Minute) % 60,
		ScreenDrainPerHour: drainRate(screenDrain, screenTotal),
		SleepDrainPerHour:  drainRate(sleepDrain, sleepTotal),
		LastChargeTime:     refTime,
		LastChargeLevel:    refLevel,
		ChargeDetected:     detected,
		CurrentLevel:       st.level,
		Intervals:          intervals,
		GeneratedAt:        now,
	}
}

// aggregate sums duration and known drain for intervals of one kind
// starting at or after the reference time. Open intervals count toward
// the duration with "now" as their implicit end, but their drain is
// unknown and contributes nothing.
func aggregate(intervals []models.Interval, kind models.IntervalKind, ref, now time.Time) (time.Duration, int) {
	var total time.Duration
	var drain int
	for _, iv := range intervals {
		if iv.Kind != kind || iv.Start.Before(ref) {
			continue
		}
		total += iv.Duration(now)
		if d, ok := iv.Drain(); ok {
			drain += d
		}
	}
	return total, drain
}

// drainRate converts an accumulated drain over a total duration into
// percentage points per hour, guarding the zero-duration case.
func drainRate(drain int, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return float64(drain) / total.Hours()
}
