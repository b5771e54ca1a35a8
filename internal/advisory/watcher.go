package advisory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Shoxx1211/Mzansipass/internal/ledger"
	"github.com/Shoxx1211/Mzansipass/internal/logger"
)

// AlertSource feeds the watcher with the live transit alerts.
type AlertSource interface {
	Alerts() []ledger.TransitAlert
}

// Watcher polls the alert feed while trips are open. When a delay
// alert with a severity keyword matches an open trip's provider, it
// asks the advisory service for a journey update once per (trip,
// alert) pair and keeps the latest update for the caller to poll.
// It reads ledger state but never mutates it.
type Watcher struct {
	feed     AlertSource
	svc      Service
	interval time.Duration

	mu      sync.Mutex
	open    map[string]ledger.Trip
	seen    map[string]map[string]bool
	updates map[string]JourneyUpdate
}

func NewWatcher(feed AlertSource, svc Service, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Watcher{
		feed:     feed,
		svc:      svc,
		interval: interval,
		open:     make(map[string]ledger.Trip),
		seen:     make(map[string]map[string]bool),
		updates:  make(map[string]JourneyUpdate),
	}
}

// Start runs the polling loop until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	logger.Info("Trip disruption watcher started")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Trip disruption watcher stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// Track registers an open trip for disruption monitoring.
func (w *Watcher) Track(trip ledger.Trip) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.open[trip.ID] = trip
	if w.seen[trip.ID] == nil {
		w.seen[trip.ID] = make(map[string]bool)
	}
}

// Untrack drops a trip (and its cached update) once it is closed or
// abandoned.
func (w *Watcher) Untrack(tripID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.open, tripID)
	delete(w.seen, tripID)
	delete(w.updates, tripID)
}

// Update returns the latest advisory for an open trip, if any.
func (w *Watcher) Update(tripID string) (JourneyUpdate, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	update, ok := w.updates[tripID]
	return update, ok
}

type pendingAdvisory struct {
	trip  ledger.Trip
	alert ledger.TransitAlert
}

// sweep matches open trips against the current feed. Advisory calls
// happen outside the watcher lock.
func (w *Watcher) sweep(ctx context.Context) {
	alerts := w.feed.Alerts()

	w.mu.Lock()
	var pending []pendingAdvisory
	for _, trip := range w.open {
		for _, alert := range alerts {
			if !disrupts(trip, alert) || w.seen[trip.ID][alert.ID] {
				continue
			}
			w.seen[trip.ID][alert.ID] = true
			pending = append(pending, pendingAdvisory{trip: trip, alert: alert})
		}
	}
	w.mu.Unlock()

	for _, p := range pending {
		update, err := w.svc.JourneyUpdate(ctx, p.trip, p.alert)
		if err != nil {
			// the service already degrades internally; a hard error
			// here just skips this alert
			logger.Errorf("journey update for trip %s failed: %v", p.trip.ID, err)
			continue
		}
		w.mu.Lock()
		if _, stillOpen := w.open[p.trip.ID]; stillOpen {
			w.updates[p.trip.ID] = update
		}
		w.mu.Unlock()
		logger.Info("Journey advisory issued", "trip_id", p.trip.ID, "alert_id", p.alert.ID)
	}
}

var severityKeywords = []string{"major", "severe", "significant", "suspended", "cancelled"}

// disrupts reports whether an alert is a severe delay on the trip's
// provider.
func disrupts(trip ledger.Trip, alert ledger.TransitAlert) bool {
	if alert.Provider != trip.Provider || alert.Category != ledger.CategoryDelay {
		return false
	}
	text := strings.ToLower(alert.Title + " " + alert.Description)
	for _, keyword := range severityKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
