// Package notify delivers scan notifications to subscribers.
package notify

import (
	"context"
	"fmt"
	"strings"

	"trend-screener/internal/models"
)

// Sink sends a text notification to a recipient. Delivery is best-effort:
// the scan never retries a failed send.
type Sink interface {
	Send(ctx context.Context, recipient, text string) error
}

// Func adapts a plain function to the Sink interface.
type Func func(ctx context.Context, recipient, text string) error

// Send implements Sink.
func (f Func) Send(ctx context.Context, recipient, text string) error {
	return f(ctx, recipient, text)
}

// MultiSink fans a notification out to several sinks, returning the first
// error after trying all of them.
type MultiSink []Sink

// Send implements Sink.
func (m MultiSink) Send(ctx context.Context, recipient, text string) error {
	var firstErr error
	for _, s := range m {
		if err := s.Send(ctx, recipient, text); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// FormatScanStarted renders the scan kickoff message.
func FormatScanStarted(scanType models.ScanType, total, chunkSize int) string {
	return fmt.Sprintf("<b>Starting %s scan</b>\n\nTotal stocks: %d\nProcessing in chunks of %d\nResults saved automatically",
		scanName(scanType), total, chunkSize)
}

// FormatFound renders a per-find message.
func FormatFound(r models.CriteriaResult, scanned, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Found: %s</b>\n", r.Symbol)
	if r.Name != "" && r.Name != r.Symbol {
		fmt.Fprintf(&b, "%s\n", EscapeHTML(r.Name))
	}
	fmt.Fprintf(&b, "Price: %s | Score: %d/%d\n", FormatINR(r.Price), r.Score, models.NumCriteria)
	fmt.Fprintf(&b, "Progress: %d/%d", scanned, total)
	return b.String()
}

// FormatProgress renders the periodic progress message.
func FormatProgress(offset, total, found int) string {
	pct := 0.0
	if total > 0 {
		pct = float64(offset) / float64(total) * 100
	}
	return fmt.Sprintf("<b>Progress: %.1f%%</b>\nScanned: %d/%d\nFound: %d qualifying stocks",
		pct, offset, total, found)
}

// FormatStopped renders the cooperative-pause message.
func FormatStopped(offset, total, found int) string {
	return fmt.Sprintf("<b>Scan stopped</b>\n\nScanned: %d/%d\nFound: %d stocks\n\nResume to continue",
		offset, total, found)
}

// FormatCompleted renders the completion message.
func FormatCompleted(scanType models.ScanType, total, found int) string {
	return fmt.Sprintf("<b>%s scan complete</b>\n\nScanned: %d stocks\nFound: %d qualifying stocks",
		scanName(scanType), total, found)
}

// FormatVerdict renders the full per-criterion breakdown for one symbol.
func FormatVerdict(r models.CriteriaResult) string {
	var b strings.Builder
	status := "FAILS"
	if r.PassesAll {
		status = "PASSES"
	}
	fmt.Fprintf(&b, "<b>%s</b> - %s\n\n", r.Symbol, EscapeHTML(r.Name))
	fmt.Fprintf(&b, "<b>Score: %d/%d %s</b>\n\n", r.Score, models.NumCriteria, status)
	fmt.Fprintf(&b, "Price: %s\n", FormatINR(r.Price))
	fmt.Fprintf(&b, "50 SMA: %s | 150 SMA: %s | 200 SMA: %s\n",
		FormatINR(r.Metrics.SMA50), FormatINR(r.Metrics.SMA150), FormatINR(r.Metrics.SMA200))
	fmt.Fprintf(&b, "52W high: %s (%.1f%% away) | 52W low: %s (%.1f%% above)\n\n",
		FormatINR(r.Metrics.High52W), r.Metrics.PctFromHigh52W,
		FormatINR(r.Metrics.Low52W), r.Metrics.PctAboveLow52W)

	for i, passed := range r.Criteria {
		mark := "FAIL"
		if passed {
			mark = "PASS"
		}
		fmt.Fprintf(&b, "%s  %s\n", mark, models.Criterion(i).String())
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatINR formats a rupee amount with Indian digit grouping.
func FormatINR(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	formatted := formatIndianNumber(parts[0])

	result := "₹" + formatted + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// formatIndianNumber groups an integer string the Indian way: a group of
// three on the right, then groups of two.
func formatIndianNumber(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	s = s[:n-3]

	for len(s) > 0 {
		if len(s) >= 2 {
			result = s[len(s)-2:] + "," + result
			s = s[:len(s)-2]
		} else {
			result = s + "," + result
			s = ""
		}
	}

	return result
}

// EscapeHTML escapes characters that Telegram's HTML parse mode treats
// specially. Formatting helpers emit their own tags, so only dynamic
// values should pass through here.
func EscapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func scanName(t models.ScanType) string {
	switch t {
	case models.ScanQuick:
		return "Quick"
	case models.ScanFull:
		return "Nifty 500"
	case models.ScanAll:
		return "All NSE"
	default:
		return string(t)
	}
}
