// Package power polls the power log source, runs the analyzer and
// publishes drain summaries to the rest of the application.
package power

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gen2brain/beeep"

	"batglance/internal/logger"
	"batglance/internal/models"
	"batglance/internal/pmset"
	"batglance/internal/powerlog"
)

// Event represents a power service event.
type Event struct {
	Type     EventType
	Snapshot *models.Snapshot
	Error    error
}

// EventType defines the type of power event.
type EventType int

const (
	// EventSummaryUpdated indicates a fresh analysis is available.
	EventSummaryUpdated EventType = iota
	// EventSourceError indicates the log source failed; the snapshot
	// attached to the event was analyzed from an empty log.
	EventSourceError
)

// Config holds configuration for the power service.
type Config struct {
	RefreshInterval time.Duration
	HistorySize     int
	Notify          bool
	DrainAlert      float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		RefreshInterval: 15 * time.Minute,
		HistorySize:     96,
		Notify:          true,
		DrainAlert:      20,
	}
}

// readTimeout bounds one pmset invocation.
const readTimeout = 30 * time.Second

// Service manages the refresh schedule and the snapshot history.
type Service struct {
	mu       sync.RWMutex
	source   pmset.Source
	analyzer *powerlog.Analyzer
	config   Config

	current *models.Snapshot
	history []models.Snapshot

	// Notification bookkeeping: the charge event already announced and
	// whether the drain alert has fired since last dropping below the
	// threshold.
	seenCharge   time.Time
	primed       bool
	drainAlerted bool

	eventChan chan Event
	stopChan  chan struct{}

	watcher  *fsnotify.Watcher
	debounce *time.Timer
}

// New creates a power service and starts its refresh schedule. When the
// source is file-backed the file is also watched, so edits to a saved
// log trigger a re-analysis between ticks.
func New(source pmset.Source, config Config) *Service {
	if config.RefreshInterval <= 0 {
		config = DefaultConfig()
	}
	if config.HistorySize < 1 {
		config.HistorySize = DefaultConfig().HistorySize
	}

	s := &Service{
		source:    source,
		analyzer:  powerlog.New(),
		config:    config,
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
	}

	if fs, ok := source.(*pmset.FileSource); ok {
		if err := s.startWatcher(fs.Path()); err != nil {
			logger.Warn("log file watcher unavailable", "path", fs.Path(), "error", err)
		}
	}

	go s.pollLoop()

	return s
}

// Events returns the event channel.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// CurrentSnapshot returns the latest snapshot, or nil before the first
// refresh completed.
func (s *Service) CurrentSnapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// History returns a copy of the in-session snapshot history, oldest
// first.
func (s *Service) History() []models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]models.Snapshot, len(s.history))
	copy(history, s.history)
	return history
}

// RefreshNow forces a synchronous refresh and returns the resulting
// snapshot.
func (s *Service) RefreshNow() models.Snapshot {
	return s.refresh()
}

// pollLoop runs one immediate refresh and then refreshes on the
// configured interval until the service is closed.
func (s *Service) pollLoop() {
	s.refresh()

	ticker := time.NewTicker(s.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refresh()
		case <-s.stopChan:
			return
		}
	}
}

// refresh reads the log, analyzes it and publishes the result. A
// failed read degrades to analyzing an empty log, so a summary always
// exists even when pmset is unavailable.
func (s *Service) refresh() models.Snapshot {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	raw, readErr := s.source.Read(ctx)
	if readErr != nil {
		logger.Warn("power log unavailable, analyzing empty log",
			"source", s.source.Describe(), "error", readErr)
		raw = ""
	}

	summary := s.analyzer.Analyze(raw)
	snapshot := models.Snapshot{TakenAt: time.Now(), Summary: summary}

	s.mu.Lock()
	s.current = &snapshot
	s.history = append(s.history, snapshot)
	if len(s.history) > s.config.HistorySize {
		s.history = s.history[len(s.history)-s.config.HistorySize:]
	}
	s.mu.Unlock()

	s.checkNotifications(summary)

	eventType := EventSummaryUpdated
	if readErr != nil {
		eventType = EventSourceError
	}
	s.sendEvent(Event{Type: eventType, Snapshot: &snapshot, Error: readErr})

	return snapshot
}

// checkNotifications raises desktop notifications for newly observed
// charge events and for the screen drain rate crossing the alert
// threshold. The first refresh only primes the charge bookkeeping so a
// charge that predates this session is not announced.
func (s *Service) checkNotifications(summary models.Summary) {
	s.mu.Lock()
	primed := s.primed
	s.primed = true

	newCharge := summary.ChargeDetected && summary.LastChargeTime.After(s.seenCharge)
	if summary.ChargeDetected {
		s.seenCharge = summary.LastChargeTime
	}

	crossed := summary.ScreenDrainPerHour >= s.config.DrainAlert && !s.drainAlerted
	s.drainAlerted = summary.ScreenDrainPerHour >= s.config.DrainAlert
	s.mu.Unlock()

	if !s.config.Notify || !primed {
		return
	}

	if newCharge {
		body := fmt.Sprintf("Charged to %d%% at %s",
			summary.LastChargeLevel, summary.LastChargeTime.Format("15:04"))
		if err := beeep.Notify("Battery charged", body, ""); err != nil {
			logger.Debug("notification failed", "error", err)
		}
	}

	if s.config.DrainAlert > 0 && crossed {
		body := fmt.Sprintf("Screen drain at %.1f%%/h since last charge", summary.ScreenDrainPerHour)
		if err := beeep.Notify("High battery drain", body, ""); err != nil {
			logger.Debug("notification failed", "error", err)
		}
	}
}

// sendEvent delivers an event without blocking the refresh path.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
	}
}

// startWatcher watches the directory of the saved log file, so the
// file being replaced atomically is still observed.
func (s *Service) startWatcher(path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	s.watcher = watcher
	go s.watchLoop(watcher, filepath.Base(path))
	return nil
}

// watchLoop debounces file events into refreshes. It uses the watcher
// it was started with rather than re-reading s.watcher, which Close
// sets to nil concurrently.
func (s *Service) watchLoop(watcher *fsnotify.Watcher, base string) {
	const debounceInterval = 250 * time.Millisecond

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				s.mu.Lock()
				if s.debounce != nil {
					s.debounce.Stop()
				}
				s.debounce = time.AfterFunc(debounceInterval, func() { s.refresh() })
				s.mu.Unlock()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("log file watcher error", "error", err)

		case <-s.stopChan:
			return
		}
	}
}

// Close stops the refresh schedule and the file watcher.
func (s *Service) Close() error {
	close(s.stopChan)

	s.mu.Lock()
	if s.debounce != nil {
		s.debounce.Stop()
	}
	watcher := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if watcher != nil {
		return watcher.Close()
	}
	return nil
}
