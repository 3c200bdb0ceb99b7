package models

import (
	"testing"
	"time"
)

func TestSummary_ScreenOnText(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		want    string
	}{
		{"Zero", Summary{}, "0h 0m"},
		{"HoursAndMinutes", Summary{ScreenOnHours: 1, ScreenOnMinutes: 30}, "1h 30m"},
		{"MinutesOnly", Summary{ScreenOnMinutes: 5}, "0h 5m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.summary.ScreenOnText(); got != tt.want {
				t.Errorf("Summary.ScreenOnText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummary_TimeSinceCharge(t *testing.T) {
	charge := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	s := Summary{LastChargeTime: charge}

	if got := s.TimeSinceCharge(charge.Add(2 * time.Hour)); got != 2*time.Hour {
		t.Errorf("TimeSinceCharge() = %v, want 2h", got)
	}
	if got := s.TimeSinceCharge(charge.Add(-time.Minute)); got != 0 {
		t.Errorf("TimeSinceCharge() before charge = %v, want 0", got)
	}
}

func TestSummary_EstimatedRemaining(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		want    time.Duration
		ok      bool
	}{
		{
			name:    "Projectable",
			summary: Summary{CurrentLevel: 50, ScreenDrainPerHour: 10},
			want:    5 * time.Hour,
			ok:      true,
		},
		{
			name:    "NoDrainRate",
			summary: Summary{CurrentLevel: 50},
			ok:      false,
		},
		{
			name:    "EmptyBattery",
			summary: Summary{CurrentLevel: 0, ScreenDrainPerHour: 10},
			ok:      false,
		},
		{
			name:    "NegativeRate",
			summary: Summary{CurrentLevel: 50, ScreenDrainPerHour: -3},
			ok:      false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.summary.EstimatedRemaining()
			if ok != tt.ok {
				t.Fatalf("EstimatedRemaining() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("EstimatedRemaining() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummary_HasData(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		want    bool
	}{
		{"Empty", Summary{}, false},
		{"ChargeOnly", Summary{ChargeDetected: true}, true},
		{"IntervalsOnly", Summary{Intervals: []Interval{{}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.summary.HasData(); got != tt.want {
				t.Errorf("Summary.HasData() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScreenDrainSeries(t *testing.T) {
	if got := ScreenDrainSeries(nil); got != nil {
		t.Errorf("ScreenDrainSeries(nil) = %v, want nil", got)
	}

	snaps := []Snapshot{
		{Summary: Summary{ScreenDrainPerHour: 5}},
		{Summary: Summary{ScreenDrainPerHour: 7.5}},
	}
	got := ScreenDrainSeries(snaps)
	if len(got) != 2 || got[0] != 5 || got[1] != 7.5 {
		t.Errorf("ScreenDrainSeries() = %v, want [5 7.5]", got)
	}
}
