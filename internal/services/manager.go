// Package services provides service orchestration for the TUI.
package services

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"batglance/internal/config"
	"batglance/internal/models"
	"batglance/internal/pmset"
	"batglance/internal/services/power"
)

type (
	// SummaryUpdatedEvent is emitted when a fresh drain summary is
	// available.
	SummaryUpdatedEvent struct {
		Snapshot *models.Snapshot
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (SummaryUpdatedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()          {}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	power       *power.Service
	source      pmset.Source
	eventChan   chan ServiceEvent
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) *Manager {
	m := &Manager{
		eventChan: make(chan ServiceEvent, 100),
		stopChan:  make(chan struct{}),
	}

	m.source = pmset.NewSource(cfg)

	powerConfig := power.DefaultConfig()
	powerConfig.RefreshInterval = cfg.RefreshInterval
	powerConfig.HistorySize = cfg.HistorySize
	powerConfig.Notify = cfg.Notify
	powerConfig.DrainAlert = cfg.DrainAlertThreshold

	m.power = power.New(m.source, powerConfig)

	go m.routeEvents()

	return m
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.power.Events():
			m.handlePowerEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

// handlePowerEvent converts and broadcasts power events. A source
// error still carries a snapshot (analyzed from an empty log), so both
// events are broadcast in that case.
func (m *Manager) handlePowerEvent(event power.Event) {
	switch event.Type {
	case power.EventSummaryUpdated:
		m.broadcast(SummaryUpdatedEvent{Snapshot: event.Snapshot})

	case power.EventSourceError:
		m.broadcast(ErrorEvent{Service: "power", Error: event.Error})
		m.broadcast(SummaryUpdatedEvent{Snapshot: event.Snapshot})
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	select {
	case m.eventChan <- event:
	default:
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// CurrentSnapshot returns the most recent snapshot, or nil before the
// first refresh completed.
func (m *Manager) CurrentSnapshot() *models.Snapshot {
	return m.power.CurrentSnapshot()
}

// History returns the in-session snapshot history, oldest first.
func (m *Manager) History() []models.Snapshot {
	return m.power.History()
}

// RefreshNow forces a synchronous refresh of the drain summary.
func (m *Manager) RefreshNow() models.Snapshot {
	return m.power.RefreshNow()
}

// SourceDescription reports where the power log comes from.
func (m *Manager) SourceDescription() string {
	return m.source.Describe()
}

// Power returns the power service.
func (m *Manager) Power() *power.Service {
	return m.power
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	close(m.stopChan)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	return m.power.Close()
}
