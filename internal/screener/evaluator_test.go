package screener

import (
	"testing"
	"time"

	"trend-screener/internal/errors"
	"trend-screener/internal/models"
)

func fp(v float64) *float64 { return &v }

// stageTwoSnapshot satisfies all nine criteria.
func stageTwoSnapshot() models.PriceSnapshot {
	return models.PriceSnapshot{
		Symbol:         "RELIANCE",
		Name:           "Reliance Industries",
		Price:          110,
		SMA50:          fp(100),
		SMA150:         fp(95),
		SMA200:         fp(90),
		SMA200Lookback: fp(88),
		High52W:        120,
		Low52W:         80,
		Sessions:       250,
	}
}

func TestEvaluateFullPass(t *testing.T) {
	e := NewEvaluator(DefaultThresholds())

	r, err := e.Evaluate(stageTwoSnapshot())
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}

	if r.Score != models.NumCriteria {
		t.Errorf("Score = %d, want %d; criteria = %v", r.Score, models.NumCriteria, r.Criteria)
	}
	if !r.PassesAll {
		t.Error("PassesAll = false for a full pass")
	}
	if r.Metrics.PctAboveLow52W != 37.5 {
		t.Errorf("PctAboveLow52W = %v, want 37.5", r.Metrics.PctAboveLow52W)
	}
	if r.Metrics.PctFromHigh52W != 8.33 {
		t.Errorf("PctFromHigh52W = %v, want 8.33 (rounded)", r.Metrics.PctFromHigh52W)
	}
}

func TestEvaluateInsufficientHistory(t *testing.T) {
	e := NewEvaluator(DefaultThresholds())

	snap := stageTwoSnapshot()
	snap.Sessions = 199
	if _, err := e.Evaluate(snap); !errors.Is(err, errors.ErrInsufficientData) {
		t.Errorf("Evaluate(199 sessions) = %v, want ErrInsufficientData", err)
	}

	snap = stageTwoSnapshot()
	snap.SMA200 = nil
	if _, err := e.Evaluate(snap); !errors.Is(err, errors.ErrInsufficientData) {
		t.Errorf("Evaluate(nil SMA200) = %v, want ErrInsufficientData", err)
	}
}

func TestEvaluateMissingLookbackFailsTrendOnly(t *testing.T) {
	e := NewEvaluator(DefaultThresholds())

	snap := stageTwoSnapshot()
	snap.SMA200Lookback = nil

	r, err := e.Evaluate(snap)
	if err != nil {
		t.Fatalf("missing lookback must not be an error, got %v", err)
	}
	if r.Criteria[models.SMA200TrendingUp] {
		t.Error("SMA200TrendingUp = true with no lookback value")
	}
	if r.Score != models.NumCriteria-1 {
		t.Errorf("Score = %d, want %d", r.Score, models.NumCriteria-1)
	}
	if r.PassesAll {
		t.Error("PassesAll = true with a failed criterion")
	}
}

func TestEvaluateStrictComparisons(t *testing.T) {
	e := NewEvaluator(DefaultThresholds())

	// Exact ties fail the moving-average criteria.
	snap := stageTwoSnapshot()
	snap.Price = *snap.SMA50
	r, err := e.Evaluate(snap)
	if err != nil {
		t.Fatal(err)
	}
	if r.Criteria[models.PriceAboveSMA50] {
		t.Error("price == SMA50 should fail the strict comparison")
	}

	snap = stageTwoSnapshot()
	snap.SMA200Lookback = fp(*snap.SMA200)
	r, _ = e.Evaluate(snap)
	if r.Criteria[models.SMA200TrendingUp] {
		t.Error("flat 200 SMA should not count as trending up")
	}
}

func TestEvaluateInclusiveThresholds(t *testing.T) {
	e := NewEvaluator(DefaultThresholds())

	// Exactly 30% above the 52-week low passes.
	snap := stageTwoSnapshot()
	snap.Price = 104
	snap.Low52W = 80
	r, err := e.Evaluate(snap)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Criteria[models.AboveLow52W] {
		t.Error("exactly 30%% above the low should pass")
	}

	// Exactly 25% off the 52-week high passes.
	snap = stageTwoSnapshot()
	snap.Price = 90
	snap.High52W = 120
	r, _ = e.Evaluate(snap)
	if !r.Criteria[models.NearHigh52W] {
		t.Error("exactly 25%% from the high should pass")
	}

	// Just past the cutoff fails.
	snap = stageTwoSnapshot()
	snap.Price = 89
	snap.High52W = 120
	r, _ = e.Evaluate(snap)
	if r.Criteria[models.NearHigh52W] {
		t.Error("25.8%% from the high should fail")
	}
}

func TestEvaluateCustomThresholds(t *testing.T) {
	e := NewEvaluator(Thresholds{MinPctAboveLow52W: 50, MaxPctFromHigh52W: 5, TrendLookback: 22})

	r, err := e.Evaluate(stageTwoSnapshot())
	if err != nil {
		t.Fatal(err)
	}
	// 37.5% above the low fails a 50% floor.
	if r.Criteria[models.AboveLow52W] {
		t.Error("AboveLow52W should fail the tightened threshold")
	}
	// 8.33% off the high fails a 5% ceiling.
	if r.Criteria[models.NearHigh52W] {
		t.Error("NearHigh52W should fail the tightened threshold")
	}
}

func TestSummarize(t *testing.T) {
	r := models.CriteriaResult{Symbol: "TCS", Name: "Tata Consultancy", Price: 3500, Score: 9}
	at := time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC)

	s := Summarize(r, at)
	if s.Symbol != "TCS" || s.Score != 9 || !s.FoundAt.Equal(at) {
		t.Errorf("Summarize() = %+v", s)
	}
}
