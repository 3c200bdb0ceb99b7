package models

import "time"

// Snapshot captures a summary taken at a point in time during this
// session. Snapshots live only in memory; nothing persists across runs.
type Snapshot struct {
	TakenAt time.Time
	Summary Summary
}

// ScreenDrainSeries extracts the screen drain rate from a slice of
// snapshots, oldest first, for charting.
func ScreenDrainSeries(snapshots []Snapshot) []float64 {
	if len(snapshots) == 0 {
		return nil
	}
	series := make([]float64, len(snapshots))
	for i, snap := range snapshots {
		series[i] = snap.Summary.ScreenDrainPerHour
	}
	return series
}

// SleepDrainSeries extracts the sleep drain rate from a slice of
// snapshots, oldest first, for charting.
func SleepDrainSeries(snapshots []Snapshot) []float64 {
	if len(snapshots) == 0 {
		return nil
	}
	series := make([]float64, len(snapshots))
	for i, snap := range snapshots {
		series[i] = snap.Summary.SleepDrainPerHour
	}
	return series
}

// LevelSeries extracts the battery level from a slice of snapshots,
// oldest first, for charting.
func LevelSeries(snapshots []Snapshot) []float64 {
	if len(snapshots) == 0 {
		return nil
	}
	series := make([]float64, len(snapshots))
	for i, snap := range snapshots {
		series[i] = float64(snap.Summary.CurrentLevel)
	}
	return series
}
