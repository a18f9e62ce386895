package analyzer

import (
	"context"
	"strings"
	"testing"

	"trend-screener/internal/models"
)

type stubLLM struct {
	response string
	prompt   string
}

func (s *stubLLM) Complete(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.response, nil
}

func TestParseResponse(t *testing.T) {
	text := `ENTRY_LEVEL: ₹2,450 - ₹2,480
STOP_LOSS: ₹2,280
TARGET: ₹2,750
REASONING: Strong uptrend with price extended above all key moving averages.`

	levels := ParseResponse(text)
	if levels.EntryLevel != "₹2,450 - ₹2,480" {
		t.Errorf("EntryLevel = %q", levels.EntryLevel)
	}
	if levels.StopLoss != "₹2,280" {
		t.Errorf("StopLoss = %q", levels.StopLoss)
	}
	if levels.Target != "₹2,750" {
		t.Errorf("Target = %q", levels.Target)
	}
	if !strings.HasPrefix(levels.Reasoning, "Strong uptrend") {
		t.Errorf("Reasoning = %q", levels.Reasoning)
	}
}

func TestParseResponseGarbage(t *testing.T) {
	levels := ParseResponse("the model refused to answer")
	if levels.EntryLevel != "N/A" || levels.StopLoss != "N/A" || levels.Target != "N/A" {
		t.Errorf("garbage input should keep fallbacks, got %+v", levels)
	}
}

func TestAnalyzePromptContents(t *testing.T) {
	llm := &stubLLM{response: "ENTRY_LEVEL: ₹100\nSTOP_LOSS: ₹92\nTARGET: ₹115\nREASONING: ok"}
	a := New(llm)

	r := models.CriteriaResult{
		Symbol: "RELIANCE",
		Price:  2500,
		Metrics: models.CriteriaMetrics{
			SMA50: 2400, SMA150: 2300, SMA200: 2200,
			High52W: 2600, Low52W: 1800,
		},
	}

	levels, err := a.Analyze(context.Background(), r)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if levels.Target != "₹115" {
		t.Errorf("Target = %q", levels.Target)
	}

	for _, want := range []string{"RELIANCE", "₹2,500.00", "₹2,200.00", "ENTRY_LEVEL"} {
		if !strings.Contains(llm.prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestLevelsFormat(t *testing.T) {
	l := Levels{EntryLevel: "₹100 & up", StopLoss: "₹92", Target: "₹115", Reasoning: "ok"}
	out := l.Format()
	if !strings.Contains(out, "₹100 &amp; up") {
		t.Errorf("Format() should escape HTML, got %q", out)
	}
}
