package screener

// SMA returns the simple moving average of the trailing period closes, or nil
// when the series is too short.
func SMA(closes []float64, period int) *float64 {
	return smaEndingAt(closes, period, len(closes))
}

// SMAAgo returns the SMA as it stood ago sessions before the latest close, or
// nil when the series cannot cover both the window and the offset. An offset
// of 22 with a 200-day SMA needs 222 sessions of history.
func SMAAgo(closes []float64, period, ago int) *float64 {
	return smaEndingAt(closes, period, len(closes)-ago)
}

func smaEndingAt(closes []float64, period, end int) *float64 {
	if period <= 0 || end < period || end > len(closes) {
		return nil
	}
	var sum float64
	for _, c := range closes[end-period : end] {
		sum += c
	}
	v := sum / float64(period)
	return &v
}
