// Package analyzer produces AI trading levels for stocks that clear the
// screen: an entry range, stop loss and first target with brief reasoning.
package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"trend-screener/internal/models"
	"trend-screener/internal/notify"
)

// LLMClient abstracts the chat completion call so tests can stub it.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAIClient implements LLMClient using the OpenAI API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates an OpenAI-backed LLM client.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Complete sends a prompt and returns the raw response text.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}
	return resp.Choices[0].Message.Content, nil
}

// Levels are the parsed trading levels for one stock. Fields fall back to
// N/A when the model's response cannot be parsed.
type Levels struct {
	EntryLevel string
	StopLoss   string
	Target     string
	Reasoning  string
}

// Analyzer turns a criteria result into trading levels.
type Analyzer struct {
	llm LLMClient
}

// New creates an Analyzer on top of an LLM client.
func New(llm LLMClient) *Analyzer {
	return &Analyzer{llm: llm}
}

// Analyze asks the model for entry, stop-loss and target levels.
func (a *Analyzer) Analyze(ctx context.Context, r models.CriteriaResult) (Levels, error) {
	text, err := a.llm.Complete(ctx, buildPrompt(r))
	if err != nil {
		return Levels{}, err
	}
	return ParseResponse(text), nil
}

// Commentary returns the levels rendered as a notification fragment.
// It satisfies the scan loop's optional commentator hook.
func (a *Analyzer) Commentary(ctx context.Context, r models.CriteriaResult) (string, error) {
	levels, err := a.Analyze(ctx, r)
	if err != nil {
		return "", err
	}
	return levels.Format(), nil
}

func buildPrompt(r models.CriteriaResult) string {
	return fmt.Sprintf(`You are a technical stock analyst specializing in Indian NSE stocks. Analyze this stock and provide actionable trading levels.

Stock: %s
Current Price: %s
50-day SMA: %s
150-day SMA: %s
200-day SMA: %s
52-Week High: %s
52-Week Low: %s

Based on this technical data and Mark Minervini's SEPA methodology, provide:
1. ENTRY_LEVEL: Recommended entry price or range for buying
2. STOP_LOSS: Stop-loss level (typically 7-10%% below entry or below key support)
3. TARGET: First profit target (based on risk-reward or resistance)
4. REASONING: Brief 2-3 sentence explanation of your analysis

Format your response EXACTLY like this (use ₹ symbol for prices):
ENTRY_LEVEL: ₹XXXX - ₹XXXX
STOP_LOSS: ₹XXXX
TARGET: ₹XXXX
REASONING: Your brief analysis here.`,
		r.Symbol,
		notify.FormatINR(r.Price),
		notify.FormatINR(r.Metrics.SMA50),
		notify.FormatINR(r.Metrics.SMA150),
		notify.FormatINR(r.Metrics.SMA200),
		notify.FormatINR(r.Metrics.High52W),
		notify.FormatINR(r.Metrics.Low52W))
}

// ParseResponse extracts the labeled levels from the model's reply.
// Unrecognized sections keep their fallback values.
func ParseResponse(text string) Levels {
	levels := Levels{
		EntryLevel: "N/A",
		StopLoss:   "N/A",
		Target:     "N/A",
		Reasoning:  "Unable to parse AI response",
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "ENTRY_LEVEL:"):
			levels.EntryLevel = strings.TrimSpace(strings.TrimPrefix(line, "ENTRY_LEVEL:"))
		case strings.HasPrefix(line, "STOP_LOSS:"):
			levels.StopLoss = strings.TrimSpace(strings.TrimPrefix(line, "STOP_LOSS:"))
		case strings.HasPrefix(line, "TARGET:"):
			levels.Target = strings.TrimSpace(strings.TrimPrefix(line, "TARGET:"))
		case strings.HasPrefix(line, "REASONING:"):
			levels.Reasoning = strings.TrimSpace(strings.TrimPrefix(line, "REASONING:"))
		}
	}
	return levels
}

// Format renders levels as a Telegram HTML fragment.
func (l Levels) Format() string {
	var b strings.Builder
	b.WriteString("<b>AI Trading Levels</b>\n")
	fmt.Fprintf(&b, "Entry: %s\n", notify.EscapeHTML(l.EntryLevel))
	fmt.Fprintf(&b, "Stop loss: %s\n", notify.EscapeHTML(l.StopLoss))
	fmt.Fprintf(&b, "Target: %s\n", notify.EscapeHTML(l.Target))
	fmt.Fprintf(&b, "\n%s", notify.EscapeHTML(l.Reasoning))
	return b.String()
}
