package store

import (
	"path/filepath"
	"sort"
	"sync"
	"time"

	"trend-screener/internal/models"
)

// RecentAlert pairs a symbol with its latest alert record.
type RecentAlert struct {
	Symbol    string                 `json:"symbol"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details"`
}

// AlertStats summarizes the alert history.
type AlertStats struct {
	SymbolsAlerted int
	AlertsSent     int
	AlertsLast24H  int
	MostAlerted    []SymbolCount
}

// SymbolCount is a symbol with its cumulative alert count.
type SymbolCount struct {
	Symbol string
	Count  int
}

// AlertGate deduplicates notifications per symbol with a cooldown. The
// history is a JSON map document; records only leave it through an explicit
// retention sweep.
type AlertGate struct {
	path     string
	cooldown time.Duration
	mu       sync.Mutex
	now      func() time.Time
}

// NewAlertGate creates an alert gate rooted at dataDir.
func NewAlertGate(dataDir string, cooldown time.Duration) *AlertGate {
	return &AlertGate{
		path:     filepath.Join(dataDir, "alert_history.json"),
		cooldown: cooldown,
		now:      time.Now,
	}
}

// ShouldAlert reports whether a notification for symbol is due: no record
// exists, or the cooldown has fully elapsed since the last one.
func (g *AlertGate) ShouldAlert(symbol string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	history := g.loadLocked()
	rec, ok := history[symbol]
	if !ok {
		return true
	}
	return g.now().Sub(rec.LastAlert) > g.cooldown
}

// RecordAlert upserts the record for symbol: count incremented (starting at
// 1), timestamp set to now, details replaced.
func (g *AlertGate) RecordAlert(symbol string, details map[string]interface{}) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	history := g.loadLocked()
	rec := history[symbol]
	rec.AlertCount++
	rec.LastAlert = g.now()
	rec.Details = details
	history[symbol] = rec

	return writeJSONAtomic(g.path, history)
}

// RecentAlerts returns alerts sent within the trailing window, most recent
// first.
func (g *AlertGate) RecentAlerts(window time.Duration) []RecentAlert {
	g.mu.Lock()
	defer g.mu.Unlock()

	cutoff := g.now().Add(-window)
	var recent []RecentAlert
	for symbol, rec := range g.loadLocked() {
		if rec.LastAlert.After(cutoff) {
			recent = append(recent, RecentAlert{
				Symbol:    symbol,
				Timestamp: rec.LastAlert,
				Details:   rec.Details,
			})
		}
	}

	sort.Slice(recent, func(i, j int) bool {
		return recent[i].Timestamp.After(recent[j].Timestamp)
	})
	return recent
}

// PruneOlderThan removes records whose last alert is older than the cutoff
// and returns the removed count.
func (g *AlertGate) PruneOlderThan(days int) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	history := g.loadLocked()
	cutoff := g.now().AddDate(0, 0, -days)

	kept := make(map[string]models.AlertRecord, len(history))
	for symbol, rec := range history {
		if rec.LastAlert.After(cutoff) {
			kept[symbol] = rec
		}
	}

	removed := len(history) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := writeJSONAtomic(g.path, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// Stats aggregates totals over the whole history.
func (g *AlertGate) Stats() AlertStats {
	recent := g.RecentAlerts(24 * time.Hour)

	g.mu.Lock()
	defer g.mu.Unlock()

	history := g.loadLocked()
	stats := AlertStats{
		SymbolsAlerted: len(history),
		AlertsLast24H:  len(recent),
	}

	for symbol, rec := range history {
		stats.AlertsSent += rec.AlertCount
		stats.MostAlerted = append(stats.MostAlerted, SymbolCount{Symbol: symbol, Count: rec.AlertCount})
	}
	sort.Slice(stats.MostAlerted, func(i, j int) bool {
		if stats.MostAlerted[i].Count != stats.MostAlerted[j].Count {
			return stats.MostAlerted[i].Count > stats.MostAlerted[j].Count
		}
		return stats.MostAlerted[i].Symbol < stats.MostAlerted[j].Symbol
	})
	if len(stats.MostAlerted) > 5 {
		stats.MostAlerted = stats.MostAlerted[:5]
	}
	return stats
}

func (g *AlertGate) loadLocked() map[string]models.AlertRecord {
	history := make(map[string]models.AlertRecord)
	if err := readJSON(g.path, &history); err != nil {
		return make(map[string]models.AlertRecord)
	}
	return history
}
