package store

import (
	"testing"
	"time"
)

func newGateAt(t *testing.T, cooldown time.Duration, now *time.Time) *AlertGate {
	t.Helper()
	g := NewAlertGate(t.TempDir(), cooldown)
	g.now = func() time.Time { return *now }
	return g
}

func TestAlertCooldown(t *testing.T) {
	now := time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC)
	g := newGateAt(t, 24*time.Hour, &now)

	if !g.ShouldAlert("RELIANCE") {
		t.Error("first alert should be allowed")
	}
	if err := g.RecordAlert("RELIANCE", map[string]interface{}{"price": 2500.0}); err != nil {
		t.Fatal(err)
	}

	now = now.Add(time.Hour)
	if g.ShouldAlert("RELIANCE") {
		t.Error("alert inside the cooldown should be suppressed")
	}
	if !g.ShouldAlert("TCS") {
		t.Error("cooldown is per symbol")
	}

	// Exactly at the cooldown boundary is still suppressed.
	now = now.Add(23 * time.Hour)
	if g.ShouldAlert("RELIANCE") {
		t.Error("alert at exactly the cooldown should be suppressed")
	}

	now = now.Add(time.Minute)
	if !g.ShouldAlert("RELIANCE") {
		t.Error("alert past the cooldown should be allowed")
	}
}

func TestAlertRecordCounts(t *testing.T) {
	now := time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC)
	g := newGateAt(t, time.Hour, &now)

	for i := 0; i < 3; i++ {
		if err := g.RecordAlert("INFY", map[string]interface{}{"round": i}); err != nil {
			t.Fatal(err)
		}
		now = now.Add(2 * time.Hour)
	}

	stats := g.Stats()
	if stats.SymbolsAlerted != 1 {
		t.Errorf("SymbolsAlerted = %d", stats.SymbolsAlerted)
	}
	if stats.AlertsSent != 3 {
		t.Errorf("AlertsSent = %d, want 3", stats.AlertsSent)
	}
	if len(stats.MostAlerted) != 1 || stats.MostAlerted[0].Count != 3 {
		t.Errorf("MostAlerted = %+v", stats.MostAlerted)
	}
}

func TestRecentAlertsOrdering(t *testing.T) {
	now := time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC)
	g := newGateAt(t, time.Hour, &now)

	g.RecordAlert("OLD", nil)
	now = now.Add(10 * time.Hour)
	g.RecordAlert("MID", nil)
	now = now.Add(10 * time.Hour)
	g.RecordAlert("NEW", nil)

	recent := g.RecentAlerts(24 * time.Hour)
	if len(recent) != 3 {
		t.Fatalf("recent = %+v, want 3", recent)
	}
	if recent[0].Symbol != "NEW" || recent[2].Symbol != "OLD" {
		t.Errorf("recent order = %v %v %v, want newest first", recent[0].Symbol, recent[1].Symbol, recent[2].Symbol)
	}

	// A narrow window drops the oldest.
	recent = g.RecentAlerts(12 * time.Hour)
	if len(recent) != 2 {
		t.Errorf("windowed recent = %+v, want 2", recent)
	}
}

func TestPruneOlderThan(t *testing.T) {
	now := time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC)
	g := newGateAt(t, time.Hour, &now)

	g.RecordAlert("STALE", nil)
	now = now.Add(40 * 24 * time.Hour)
	g.RecordAlert("FRESH", nil)

	removed, err := g.PruneOlderThan(30)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	if !g.ShouldAlert("STALE") {
		t.Error("pruned symbol should alert again")
	}
	if g.ShouldAlert("FRESH") {
		t.Error("fresh record must survive the prune")
	}

	// Second prune finds nothing.
	removed, err = g.PruneOlderThan(30)
	if err != nil || removed != 0 {
		t.Errorf("second prune = %d, %v; want 0, nil", removed, err)
	}
}
