package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"trend-screener/internal/models"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₹0.00"},
		{999.5, "₹999.50"},
		{1000, "₹1,000.00"},
		{123456.78, "₹1,23,456.78"},
		{12345678.9, "₹1,23,45,678.90"},
		{-1500, "-₹1,500.00"},
	}
	for _, tt := range tests {
		if got := FormatINR(tt.amount); got != tt.want {
			t.Errorf("FormatINR(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatProgress(t *testing.T) {
	msg := FormatProgress(150, 500, 3)
	if !strings.Contains(msg, "30.0%") {
		t.Errorf("progress message %q missing percentage", msg)
	}
	if !strings.Contains(msg, "150/500") {
		t.Errorf("progress message %q missing counts", msg)
	}

	if msg := FormatProgress(0, 0, 0); !strings.Contains(msg, "0.0%") {
		t.Errorf("empty universe progress = %q, want 0.0%%", msg)
	}
}

func TestFormatVerdict(t *testing.T) {
	sma50, sma150, sma200 := 100.0, 95.0, 90.0
	r := models.CriteriaResult{
		Symbol:    "RELIANCE",
		Name:      "M&M Ltd",
		Price:     110,
		Score:     9,
		PassesAll: true,
		Metrics: models.CriteriaMetrics{
			SMA50: sma50, SMA150: sma150, SMA200: sma200,
			High52W: 120, Low52W: 80,
			PctFromHigh52W: 8.33, PctAboveLow52W: 37.5,
		},
	}
	for i := range r.Criteria {
		r.Criteria[i] = true
	}

	msg := FormatVerdict(r)
	if !strings.Contains(msg, "PASSES") {
		t.Errorf("verdict %q missing PASSES", msg)
	}
	if !strings.Contains(msg, "M&amp;M") {
		t.Errorf("verdict %q does not escape the name", msg)
	}
	if strings.Count(msg, "PASS\n")+strings.Count(msg, "PASS ") < models.NumCriteria-1 {
		t.Errorf("verdict missing per-criterion lines:\n%s", msg)
	}
}

func TestMultiSink(t *testing.T) {
	var calls []string
	ok := Func(func(_ context.Context, recipient, text string) error {
		calls = append(calls, "ok:"+recipient)
		return nil
	})
	failing := Func(func(_ context.Context, recipient, text string) error {
		calls = append(calls, "fail:"+recipient)
		return errors.New("boom")
	})

	m := MultiSink{failing, ok}
	err := m.Send(context.Background(), "r", "text")
	if err == nil || err.Error() != "boom" {
		t.Errorf("MultiSink error = %v, want boom", err)
	}
	if len(calls) != 2 {
		t.Errorf("all sinks should be tried, got calls %v", calls)
	}
}

func TestRenderPlain(t *testing.T) {
	got := renderPlain("<b>Found: ACME</b>\nPrice: ₹100.00 &amp; more")
	if strings.Contains(got, "<b>") || strings.Contains(got, "</b>") {
		t.Errorf("renderPlain left tags in %q", got)
	}
	if !strings.Contains(got, "& more") {
		t.Errorf("renderPlain did not unescape entities: %q", got)
	}
}

func TestRenderPlainRoundTripsEscapedText(t *testing.T) {
	// A name containing literal entity text must survive the
	// escape-then-unescape round trip unchanged.
	for _, raw := range []string{"A&lt;B", "M&M <Holdings>", "a &amp; b"} {
		got := renderPlain(EscapeHTML(raw))
		if got != raw {
			t.Errorf("renderPlain(EscapeHTML(%q)) = %q", raw, got)
		}
	}
}
