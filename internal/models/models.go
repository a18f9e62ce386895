// Package models provides domain models for the scan service.
package models

import (
	"time"
)

// ScanType identifies a symbol universe for a scan run.
type ScanType string

const (
	// ScanQuick covers a small slice of the index for fast feedback.
	ScanQuick ScanType = "quick"
	// ScanFull covers the Nifty 500 universe.
	ScanFull ScanType = "full"
	// ScanAll covers every listed symbol we know about.
	ScanAll ScanType = "all"
)

// Valid reports whether t is one of the known scan types.
func (t ScanType) Valid() bool {
	switch t {
	case ScanQuick, ScanFull, ScanAll:
		return true
	}
	return false
}

// PriceSnapshot is a single symbol's price picture as of one point in time.
// The moving averages are nil when the underlying history is too short to
// compute them. Sessions counts the trading sessions of history behind the
// snapshot.
type PriceSnapshot struct {
	Symbol         string     `json:"symbol"`
	Name           string     `json:"name"`
	Price          float64    `json:"current_price"`
	SMA50          *float64   `json:"sma_50"`
	SMA150         *float64   `json:"sma_150"`
	SMA200         *float64   `json:"sma_200"`
	SMA200Lookback *float64   `json:"sma_200_lookback"` // SMA200 one lookback window ago, nil when unknown
	High52W        float64    `json:"week_52_high"`
	Low52W         float64    `json:"week_52_low"`
	Volume         int64      `json:"volume"`
	AvgVolume20D   int64      `json:"avg_volume_20d"`
	Sessions       int        `json:"sessions"`
	AsOf           time.Time  `json:"timestamp"`
}

// NumCriteria is the size of the trend template.
const NumCriteria = 9

// Criterion indexes the trend template criteria. The order is fixed and
// externally observable: persisted output and notifications list criteria
// in this order.
type Criterion int

const (
	PriceAboveSMA150 Criterion = iota
	PriceAboveSMA200
	SMA150AboveSMA200
	SMA200TrendingUp
	SMA50AboveSMA150
	SMA50AboveSMA200
	PriceAboveSMA50
	AboveLow52W
	NearHigh52W
)

var criterionNames = [NumCriteria]string{
	"price above 150-day SMA",
	"price above 200-day SMA",
	"150-day SMA above 200-day SMA",
	"200-day SMA trending up",
	"50-day SMA above 150-day SMA",
	"50-day SMA above 200-day SMA",
	"price above 50-day SMA",
	"price 30% above 52-week low",
	"price within 25% of 52-week high",
}

// String returns the human-readable criterion name.
func (c Criterion) String() string {
	if c < 0 || c >= NumCriteria {
		return "unknown"
	}
	return criterionNames[c]
}

// CriteriaMetrics carries the numbers behind a verdict, for display.
// Percentages are rounded to two decimals; the evaluator compares the
// unrounded values.
type CriteriaMetrics struct {
	Price          float64 `json:"current_price"`
	SMA50          float64 `json:"sma_50"`
	SMA150         float64 `json:"sma_150"`
	SMA200         float64 `json:"sma_200"`
	High52W        float64 `json:"week_52_high"`
	Low52W         float64 `json:"week_52_low"`
	PctAboveLow52W float64 `json:"pct_above_52w_low"`
	PctFromHigh52W float64 `json:"pct_from_52w_high"`
	Volume         int64   `json:"volume"`
	AvgVolume20D   int64   `json:"avg_volume_20d"`
}

// CriteriaResult is the verdict for one symbol. Criteria holds the nine
// booleans in template order, Score counts the passes and PassesAll holds
// iff Score == NumCriteria.
type CriteriaResult struct {
	Symbol    string             `json:"symbol"`
	Name      string             `json:"name"`
	Price     float64            `json:"current_price"`
	Criteria  [NumCriteria]bool  `json:"criteria"`
	Score     int                `json:"score"`
	PassesAll bool               `json:"passes_all"`
	Metrics   CriteriaMetrics    `json:"metrics"`
}

// StockSummary is the persisted condensation of a qualifying CriteriaResult.
type StockSummary struct {
	Symbol  string    `json:"symbol"`
	Name    string    `json:"name"`
	Price   float64   `json:"price"`
	Score   int       `json:"score"`
	FoundAt time.Time `json:"found_at"`
}

// ScanCheckpoint is the persisted cursor of the active scan. It is written
// before each chunk is evaluated and deleted on normal completion, so a crash
// loses at most one chunk of re-evaluated work.
type ScanCheckpoint struct {
	ScanType  ScanType  `json:"scan_type"`
	Offset    int       `json:"offset"`
	Total     int       `json:"total"`
	StartedAt time.Time `json:"started_at"`
	Recipient string    `json:"recipient"`
	Stopped   bool      `json:"stopped"`
}

// ScanResultSet is the persisted accumulator of qualifying stocks for the
// current scan type. Stocks is unique by symbol; CompletedAt is nil while
// the scan is running.
type ScanResultSet struct {
	ScanType     ScanType       `json:"scan_type"`
	Stocks       []StockSummary `json:"stocks"`
	CompletedAt  *time.Time     `json:"completed_at"`
	TotalScanned int            `json:"total_scanned"`
}

// AlertRecord tracks the notification history for one symbol.
type AlertRecord struct {
	LastAlert  time.Time      `json:"last_alert"`
	AlertCount int            `json:"alert_count"`
	Details    map[string]interface{} `json:"details"`
}

// ScanStatus names the orchestrator's externally visible state.
type ScanStatus string

const (
	StatusIdle      ScanStatus = "idle"
	StatusRunning   ScanStatus = "running"
	StatusPaused    ScanStatus = "paused"
	StatusCompleted ScanStatus = "completed"
)

// ScanProgress is the synchronous progress view over the persisted state.
type ScanProgress struct {
	Status   ScanStatus `json:"status"`
	ScanType ScanType   `json:"scan_type,omitempty"`
	Offset   int        `json:"offset"`
	Total    int        `json:"total"`
	Found    int        `json:"found"`
}
