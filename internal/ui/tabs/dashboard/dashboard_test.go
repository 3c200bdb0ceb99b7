package dashboard

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"batglance/internal/app"
	"batglance/internal/models"
)

func sampleSnapshot() *models.Snapshot {
	return &models.Snapshot{
		TakenAt: time.Now(),
		Summary: models.Summary{
			ScreenOnHours:      1,
			ScreenOnMinutes:    30,
			ScreenDrainPerHour: 12.5,
			SleepDrainPerHour:  1.2,
			LastChargeTime:     time.Now().Add(-2 * time.Hour),
			LastChargeLevel:    95,
			ChargeDetected:     true,
			CurrentLevel:       70,
			Intervals: []models.Interval{
				{Kind: models.IntervalScreen, Start: time.Now().Add(-time.Hour)},
			},
			GeneratedAt: time.Now(),
		},
	}
}

func TestNew(t *testing.T) {
	state := app.NewState()
	m := New(state)
	if m == nil {
		t.Fatal("New returned nil")
	}
}

func TestModel_Init(t *testing.T) {
	state := app.NewState()
	m := New(state)
	if m.Init() == nil {
		t.Error("Init returned nil")
	}
}

func TestModel_View_Loading(t *testing.T) {
	state := app.NewState()
	m := New(state)
	m.SetSize(80, 24)

	view := m.View()
	if view == "" {
		t.Error("View returned empty string while loading")
	}
}

func TestModel_View_Empty(t *testing.T) {
	state := app.NewState()
	state.SetLoading("initial", false)
	m := New(state)
	m.SetSize(80, 24)

	view := m.View()
	if !strings.Contains(view, "No power events") {
		t.Error("View should show the empty-log hint")
	}
}

func TestModel_View_WithSummary(t *testing.T) {
	state := app.NewState()
	state.SetSnapshot(sampleSnapshot())
	m := New(state)
	m.SetSize(80, 40)

	view := m.View()
	if !strings.Contains(view, "1h 30m") {
		t.Error("View should show the screen-on total")
	}
	if !strings.Contains(view, "12.5%/h") {
		t.Error("View should show the screen drain rate")
	}
	if !strings.Contains(view, "70%") {
		t.Error("View should show the current battery level")
	}
}

func TestModel_View_FallbackWindow(t *testing.T) {
	state := app.NewState()
	snapshot := sampleSnapshot()
	snapshot.Summary.ChargeDetected = false
	state.SetSnapshot(snapshot)

	m := New(state)
	m.SetSize(80, 40)

	view := m.View()
	if !strings.Contains(view, "last 24h") {
		t.Error("View should mention the fallback window when no charge was found")
	}
}

func TestModel_SetSize(t *testing.T) {
	state := app.NewState()
	m := New(state)
	m.SetSize(100, 50)
	if m.width != 100 || m.height != 50 {
		t.Error("SetSize should store dimensions")
	}
}

func TestModel_Help(t *testing.T) {
	state := app.NewState()
	m := New(state)
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}

func TestModel_KeyBindings(t *testing.T) {
	state := app.NewState()
	m := New(state)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{90 * time.Minute, "1h 30m"},
		{-time.Minute, "0h 00m"},
		{26 * time.Hour, "1d 02h"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
