package screener

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"trend-screener/internal/models"
)

// snapshotGen produces snapshots with enough history to evaluate, over a
// wide range of price and moving-average values.
func snapshotGen() gopter.Gen {
	return gopter.CombineGens(
		gen.Float64Range(1, 10000),  // price
		gen.Float64Range(1, 10000),  // sma50
		gen.Float64Range(1, 10000),  // sma150
		gen.Float64Range(1, 10000),  // sma200
		gen.Float64Range(1, 10000),  // sma200 lookback
		gen.Float64Range(1, 10000),  // low52w
		gen.Float64Range(1, 20000),  // high52w headroom
		gen.IntRange(200, 500),      // sessions
	).Map(func(vals []interface{}) models.PriceSnapshot {
		price := vals[0].(float64)
		low := vals[5].(float64)
		high := low + vals[6].(float64)
		f := func(v float64) *float64 { return &v }
		return models.PriceSnapshot{
			Symbol:         "PROP",
			Price:          price,
			SMA50:          f(vals[1].(float64)),
			SMA150:         f(vals[2].(float64)),
			SMA200:         f(vals[3].(float64)),
			SMA200Lookback: f(vals[4].(float64)),
			Low52W:         low,
			High52W:        high,
			Sessions:       vals[7].(int),
		}
	})
}

// Property: the score always equals the number of criteria that passed,
// stays within [0, 9], and PassesAll holds exactly at a full score.
func TestProperty_ScoreMatchesCriteria(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)
	e := NewEvaluator(DefaultThresholds())

	properties.Property("score equals passed criteria count", prop.ForAll(
		func(snap models.PriceSnapshot) bool {
			r, err := e.Evaluate(snap)
			if err != nil {
				return false
			}

			count := 0
			for _, passed := range r.Criteria {
				if passed {
					count++
				}
			}
			if r.Score != count {
				return false
			}
			if r.Score < 0 || r.Score > models.NumCriteria {
				return false
			}
			return r.PassesAll == (r.Score == models.NumCriteria)
		},
		snapshotGen(),
	))

	properties.TestingRun(t)
}

// Property: evaluation is deterministic for a given snapshot.
func TestProperty_EvaluateDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)
	e := NewEvaluator(DefaultThresholds())

	properties.Property("same snapshot yields same verdict", prop.ForAll(
		func(snap models.PriceSnapshot) bool {
			a, errA := e.Evaluate(snap)
			b, errB := e.Evaluate(snap)
			if (errA == nil) != (errB == nil) {
				return false
			}
			if errA != nil {
				return true
			}
			return a.Score == b.Score && a.Criteria == b.Criteria
		},
		snapshotGen(),
	))

	properties.TestingRun(t)
}
