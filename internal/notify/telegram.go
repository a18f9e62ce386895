package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultTelegramAPI = "https://api.telegram.org"

// TelegramSink sends messages through the Telegram Bot API using HTML
// parse mode. The recipient passed to Send is a chat ID; an empty
// recipient falls back to the configured default chat IDs.
type TelegramSink struct {
	botToken       string
	defaultChatIDs []string
	baseURL        string
	client         *http.Client
}

// TelegramOption customizes a TelegramSink.
type TelegramOption func(*TelegramSink)

// WithBaseURL overrides the Telegram API base URL. Used in tests.
func WithBaseURL(url string) TelegramOption {
	return func(t *TelegramSink) {
		t.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) TelegramOption {
	return func(t *TelegramSink) {
		t.client = c
	}
}

// NewTelegramSink creates a TelegramSink for the given bot token and
// default chat IDs.
func NewTelegramSink(botToken string, defaultChatIDs []string, opts ...TelegramOption) *TelegramSink {
	t := &TelegramSink{
		botToken:       botToken,
		defaultChatIDs: defaultChatIDs,
		baseURL:        defaultTelegramAPI,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Enabled reports whether the sink has a usable bot token.
func (t *TelegramSink) Enabled() bool {
	return t.botToken != ""
}

// Send implements Sink. When recipient is empty the message goes to every
// configured default chat ID.
func (t *TelegramSink) Send(ctx context.Context, recipient, text string) error {
	if !t.Enabled() {
		return nil
	}

	chatIDs := t.defaultChatIDs
	if recipient != "" {
		chatIDs = []string{recipient}
	}

	var errs []string
	for _, chatID := range chatIDs {
		if err := t.sendMessage(ctx, chatID, text); err != nil {
			errs = append(errs, fmt.Sprintf("chat %s: %v", chatID, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("telegram send failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (t *TelegramSink) sendMessage(ctx context.Context, chatID, text string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)

	payload := map[string]interface{}{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling telegram payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}
	return nil
}
