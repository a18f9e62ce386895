// Package screener implements Mark Minervini's trend template: nine pass/fail
// criteria identifying a stock in a sustained Stage 2 uptrend.
package screener

import (
	"math"
	"time"

	"trend-screener/internal/errors"
	"trend-screener/internal/models"
)

// MinSessions is the trading history required before a snapshot is usable.
const MinSessions = 200

// Thresholds parameterize the two percentage criteria and the SMA trend
// lookback window.
type Thresholds struct {
	MinPctAboveLow52W float64 // criterion 8, inclusive
	MaxPctFromHigh52W float64 // criterion 9, inclusive
	TrendLookback     int     // sessions, criterion 4
}

// DefaultThresholds returns Minervini's published thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinPctAboveLow52W: 30,
		MaxPctFromHigh52W: 25,
		TrendLookback:     22,
	}
}

// Evaluator turns a price snapshot into a nine-criteria verdict. It holds no
// state and is safe for concurrent use.
type Evaluator struct {
	thresholds Thresholds
}

// NewEvaluator creates an evaluator with the given thresholds. Zero-valued
// fields fall back to the defaults.
func NewEvaluator(t Thresholds) *Evaluator {
	def := DefaultThresholds()
	if t.MinPctAboveLow52W == 0 {
		t.MinPctAboveLow52W = def.MinPctAboveLow52W
	}
	if t.MaxPctFromHigh52W == 0 {
		t.MaxPctFromHigh52W = def.MaxPctFromHigh52W
	}
	if t.TrendLookback <= 0 {
		t.TrendLookback = def.TrendLookback
	}
	return &Evaluator{thresholds: t}
}

// Evaluate checks a snapshot against the trend template. It fails with
// ErrInsufficientData when the history is shorter than MinSessions or any
// moving average is missing. Criterion 4 (200-day SMA trending up) evaluates
// to false, not an error, when the lookback value is unavailable.
func (e *Evaluator) Evaluate(snap models.PriceSnapshot) (models.CriteriaResult, error) {
	if snap.Sessions < MinSessions {
		return models.CriteriaResult{}, errors.Wrapf(errors.ErrInsufficientData,
			"%s: %d sessions, need %d", snap.Symbol, snap.Sessions, MinSessions)
	}
	if snap.SMA50 == nil || snap.SMA150 == nil || snap.SMA200 == nil {
		return models.CriteriaResult{}, errors.Wrapf(errors.ErrInsufficientData,
			"%s: missing moving average", snap.Symbol)
	}

	sma50, sma150, sma200 := *snap.SMA50, *snap.SMA150, *snap.SMA200
	price := snap.Price

	// Comparisons use unrounded percentages; Metrics carries the rounded
	// values for display.
	pctAboveLow := (price - snap.Low52W) / snap.Low52W * 100
	pctFromHigh := (snap.High52W - price) / snap.High52W * 100

	var criteria [models.NumCriteria]bool
	criteria[models.PriceAboveSMA150] = price > sma150
	criteria[models.PriceAboveSMA200] = price > sma200
	criteria[models.SMA150AboveSMA200] = sma150 > sma200
	criteria[models.SMA200TrendingUp] = snap.SMA200Lookback != nil && sma200 > *snap.SMA200Lookback
	criteria[models.SMA50AboveSMA150] = sma50 > sma150
	criteria[models.SMA50AboveSMA200] = sma50 > sma200
	criteria[models.PriceAboveSMA50] = price > sma50
	criteria[models.AboveLow52W] = pctAboveLow >= e.thresholds.MinPctAboveLow52W
	criteria[models.NearHigh52W] = pctFromHigh <= e.thresholds.MaxPctFromHigh52W

	score := 0
	for _, passed := range criteria {
		if passed {
			score++
		}
	}

	return models.CriteriaResult{
		Symbol:    snap.Symbol,
		Name:      snap.Name,
		Price:     price,
		Criteria:  criteria,
		Score:     score,
		PassesAll: score == models.NumCriteria,
		Metrics: models.CriteriaMetrics{
			Price:          price,
			SMA50:          sma50,
			SMA150:         sma150,
			SMA200:         sma200,
			High52W:        snap.High52W,
			Low52W:         snap.Low52W,
			PctAboveLow52W: round2(pctAboveLow),
			PctFromHigh52W: round2(pctFromHigh),
			Volume:         snap.Volume,
			AvgVolume20D:   snap.AvgVolume20D,
		},
	}, nil
}

// Summarize condenses a verdict into the persisted stock record.
func Summarize(r models.CriteriaResult, foundAt time.Time) models.StockSummary {
	return models.StockSummary{
		Symbol:  r.Symbol,
		Name:    r.Name,
		Price:   r.Price,
		Score:   r.Score,
		FoundAt: foundAt,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
