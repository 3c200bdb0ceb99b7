package powerlog

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"batglance/internal/models"
)

// fixedNow pins the analyzer clock so aggregation of open intervals
// and the fallback window are deterministic.
func fixedNow(t *testing.T, value string) func() time.Time {
	t.Helper()
	ts, err := time.Parse(timeLayout, value)
	if err != nil {
		t.Fatalf("bad fixed time %q: %v", value, err)
	}
	return func() time.Time { return ts }
}

func newTestAnalyzer(t *testing.T, now string) *Analyzer {
	t.Helper()
	return &Analyzer{now: fixedNow(t, now)}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAnalyzer_EmptyInput(t *testing.T) {
	a := newTestAnalyzer(t, "2024-01-15 12:00:00 +0000")

	got := a.Analyze("")

	if got.ScreenOnHours != 0 || got.ScreenOnMinutes != 0 {
		t.Errorf("screen time = %dh %dm, want 0h 0m", got.ScreenOnHours, got.ScreenOnMinutes)
	}
	if got.ScreenDrainPerHour != 0 || got.SleepDrainPerHour != 0 {
		t.Errorf("drain rates = %v/%v, want 0/0", got.ScreenDrainPerHour, got.SleepDrainPerHour)
	}
	if got.LastChargeLevel != 100 {
		t.Errorf("LastChargeLevel = %d, want 100", got.LastChargeLevel)
	}
	if got.ChargeDetected {
		t.Error("ChargeDetected = true, want false")
	}
	wantRef := a.now().Add(-24 * time.Hour)
	if !got.LastChargeTime.Equal(wantRef) {
		t.Errorf("LastChargeTime = %v, want %v", got.LastChargeTime, wantRef)
	}
}

func TestAnalyzer_ScreenIntervalWithCharge(t *testing.T) {
	a := newTestAnalyzer(t, "2024-01-15 12:00:00 +0000")

	raw := strings.Join([]string{
		"2024-01-15 10:00:00 +0000 Now using AC - Using AC (Charge: 50)",
		"2024-01-15 10:00:00 +0000 Notification Display is turned on",
		"2024-01-15 11:30:00 +0000 Notification (Charge: 40) Display is turned off",
	}, "\n")

	got := a.Analyze(raw)

	if got.ScreenOnHours != 1 || got.ScreenOnMinutes != 30 {
		t.Errorf("screen time = %dh %dm, want 1h 30m", got.ScreenOnHours, got.ScreenOnMinutes)
	}
	if want := 10.0 / 1.5; !almostEqual(got.ScreenDrainPerHour, want) {
		t.Errorf("ScreenDrainPerHour = %v, want %v", got.ScreenDrainPerHour, want)
	}
	if got.LastChargeLevel != 50 {
		t.Errorf("LastChargeLevel = %d, want 50", got.LastChargeLevel)
	}
	if !got.ChargeDetected {
		t.Error("ChargeDetected = false, want true")
	}
}

func TestAnalyzer_DarkWakeSuppressesScreenInterval(t *testing.T) {
	a := newTestAnalyzer(t, "2024-01-15 12:00:00 +0000")

	raw := strings.Join([]string{
		"2024-01-15 10:00:00 +0000 DarkWake DarkWake from Deep Idle [CDN] due to SMC.OutboxNotEmpty",
		"2024-01-15 10:00:30 +0000 Notification Display is turned on",
		"2024-01-15 10:05:00 +0000 Wake Wake from Deep Idle [CDNVA]",
		"2024-01-15 10:10:00 +0000 Notification Display is turned on",
		"2024-01-15 10:40:00 +0000 Notification Display is turned off",
	}, "\n")

	got := a.Analyze(raw)

	if got.ScreenOnHours != 0 || got.ScreenOnMinutes != 30 {
		t.Errorf("screen time = %dh %dm, want 0h 30m", got.ScreenOnHours, got.ScreenOnMinutes)
	}

	screens := 0
	for _, iv := range got.Intervals {
		if iv.Kind == models.IntervalScreen {
			screens++
		}
	}
	if screens != 1 {
		t.Errorf("screen interval count = %d, want 1 (dark-wake start suppressed)", screens)
	}
}

func TestAnalyzer_OpenIntervalCountsToNow(t *testing.T) {
	a := newTestAnalyzer(t, "2024-01-15 12:00:00 +0000")

	raw := "2024-01-15 10:00:00 +0000 Notification Display is turned on"

	got := a.Analyze(raw)

	if got.ScreenOnHours != 2 || got.ScreenOnMinutes != 0 {
		t.Errorf("screen time = %dh %dm, want 2h 0m", got.ScreenOnHours, got.ScreenOnMinutes)
	}
	// Drain of an open interval is unknown, so the rate stays zero.
	if got.ScreenDrainPerHour != 0 {
		t.Errorf("ScreenDrainPerHour = %v, want 0", got.ScreenDrainPerHour)
	}
}

func TestAnalyzer_Idempotent(t *testing.T) {
	a := newTestAnalyzer(t, "2024-01-15 12:00:00 +0000")

	raw := strings.Join([]string{
		"2024-01-15 09:00:00 +0000 Now using AC - Using AC (Charge: 90)",
		"2024-01-15 09:30:00 +0000 Notification Display is turned on",
		"2024-01-15 10:15:00 +0000 Notification (Charge: 84) Display is turned off",
		"2024-01-15 10:16:00 +0000 Sleep Entering Sleep state",
		"2024-01-15 11:00:00 +0000 Wake Wake from Standby (Charge: 83)",
	}, "\n")

	first := a.Analyze(raw)
	second := a.Analyze(raw)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Analyze not idempotent:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestAnalyzer_BatteryJumpDetectsCharge(t *testing.T) {
	a := newTestAnalyzer(t, "2024-01-15 12:00:00 +0000")

	raw := strings.Join([]string{
		"2024-01-15 09:00:00 +0000 Summary (Charge: 20)",
		"2024-01-15 09:30:00 +0000 Summary (Charge: 30)",
	}, "\n")

	got := a.Analyze(raw)

	if !got.ChargeDetected {
		t.Fatal("ChargeDetected = false, want true (jump from 20 to 30)")
	}
	if got.LastChargeLevel != 30 {
		t.Errorf("LastChargeLevel = %d, want 30", got.LastChargeLevel)
	}
	want := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	if !got.LastChargeTime.Equal(want) {
		t.Errorf("LastChargeTime = %v, want %v", got.LastChargeTime, want)
	}
}

func TestAnalyzer_SmallRiseIsNotACharge(t *testing.T) {
	a := newTestAnalyzer(t, "2024-01-15 12:00:00 +0000")

	raw := strings.Join([]string{
		"2024-01-15 09:00:00 +0000 Summary (Charge: 20)",
		"2024-01-15 09:30:00 +0000 Summary (Charge: 24)",
	}, "\n")

	if got := a.Analyze(raw); got.ChargeDetected {
		t.Errorf("ChargeDetected = true for a 4-point rise, want false")
	}
}

func TestAnalyzer_LaterChargeDetectionWins(t *testing.T) {
	a := newTestAnalyzer(t, "2024-01-15 12:00:00 +0000")

	// A jump charge at 09:30 followed by an AC marker at 10:00 with a
	// lower level: the later detection overwrites the earlier one.
	raw := strings.Join([]string{
		"2024-01-15 09:00:00 +0000 Summary (Charge: 20)",
		"2024-01-15 09:30:00 +0000 Summary (Charge: 60)",
		"2024-01-15 10:00:00 +0000 Summary (Charge: 58) Using AC",
	}, "\n")

	got := a.Analyze(raw)

	if got.LastChargeLevel != 58 {
		t.Errorf("LastChargeLevel = %d, want 58 (last write wins)", got.LastChargeLevel)
	}
	want := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	if !got.LastChargeTime.Equal(want) {
		t.Errorf("LastChargeTime = %v, want %v", got.LastChargeTime, want)
	}
}

func TestAnalyzer_RepeatedStartLeavesEarlierIntervalOpen(t *testing.T) {
	a := newTestAnalyzer(t, "2024-01-15 12:00:00 +0000")

	raw := strings.Join([]string{
		"2024-01-15 10:00:00 +0000 Notification Display is turned on",
		"2024-01-15 10:30:00 +0000 Notification Display is turned on",
		"2024-01-15 11:00:00 +0000 Notification Display is turned off",
	}, "\n")

	got := a.Analyze(raw)

	// The first interval dangles open until "now" (2h), the second is
	// closed at 11:00 (30m).
	if got.ScreenOnHours != 2 || got.ScreenOnMinutes != 30 {
		t.Errorf("screen time = %dh %dm, want 2h 30m", got.ScreenOnHours, got.ScreenOnMinutes)
	}
}

func TestAnalyzer_SleepInterval(t *testing.T) {
	a := newTestAnalyzer(t, "2024-01-15 12:00:00 +0000")

	raw := strings.Join([]string{
		"2024-01-15 01:00:00 +0000 Sleep Entering Sleep state (Charge: 80)",
		"2024-01-15 05:00:00 +0000 Wake Wake from Standby (Charge: 72)",
	}, "\n")

	got := a.Analyze(raw)

	if want := 8.0 / 4.0; !almostEqual(got.SleepDrainPerHour, want) {
		t.Errorf("SleepDrainPerHour = %v, want %v", got.SleepDrainPerHour, want)
	}
	if got.ScreenDrainPerHour != 0 {
		t.Errorf("ScreenDrainPerHour = %v, want 0", got.ScreenDrainPerHour)
	}
}

func TestAnalyzer_IntervalsBeforeChargeExcluded(t *testing.T) {
	a := newTestAnalyzer(t, "2024-01-15 12:00:00 +0000")

	raw := strings.Join([]string{
		"2024-01-15 08:00:00 +0000 Notification Display is turned on",
		"2024-01-15 08:30:00 +0000 Notification Display is turned off",
		"2024-01-15 09:00:00 +0000 Now using AC - Using AC (Charge: 95)",
		"2024-01-15 09:30:00 +0000 Notification Display is turned on",
		"2024-01-15 10:30:00 +0000 Notification Display is turned off",
	}, "\n")

	got := a.Analyze(raw)

	if got.ScreenOnHours != 1 || got.ScreenOnMinutes != 0 {
		t.Errorf("screen time = %dh %dm, want 1h 0m (pre-charge interval excluded)", got.ScreenOnHours, got.ScreenOnMinutes)
	}
	// The excluded interval is still reported for display.
	if len(got.Intervals) != 2 {
		t.Errorf("len(Intervals) = %d, want 2", len(got.Intervals))
	}
}

func TestAnalyzer_LinesWithoutTimestampSkipped(t *testing.T) {
	a := newTestAnalyzer(t, "2024-01-15 12:00:00 +0000")

	raw := strings.Join([]string{
		"Display is turned on",
		"Charge: 10",
		"Using AC",
		"Total Sleep/Wakes since boot: 14",
	}, "\n")

	got := a.Analyze(raw)

	if len(got.Intervals) != 0 {
		t.Errorf("len(Intervals) = %d, want 0", len(got.Intervals))
	}
	if got.ChargeDetected {
		t.Error("ChargeDetected = true, want false (no timestamped lines)")
	}
	if got.CurrentLevel != 100 {
		t.Errorf("CurrentLevel = %d, want 100", got.CurrentLevel)
	}
}
