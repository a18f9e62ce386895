package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Trend Screener Configuration

[scan]
# Symbols evaluated per chunk
chunk_size = 30
# Pause between chunks, to respect provider rate limits
chunk_interval = "5s"
# Send a progress notification every N chunks
progress_every = 5
# Minimum criteria score (out of 9) for a stock to qualify
min_score = 9
# Universe slice used by the quick scan
quick_size = 50
# CSV with the broader all-stocks universe (symbol,name per line)
universe_csv = ""

[screener]
# Stock must be at least this far above its 52-week low (percent)
min_pct_above_52w_low = 30.0
# Stock must be within this distance of its 52-week high (percent)
max_pct_from_52w_high = 25.0
# Sessions to look back when testing the 200-day SMA trend
trend_lookback = 22

[provider]
# Suffix appended to symbols for Yahoo Finance (NSE)
exchange_suffix = ".NS"
# Snapshot cache lifetime
cache_ttl = "1h"
# Bounded retries for provider calls
max_retries = 3
retry_delay = "1s"

[alerts]
# Hours before re-alerting for the same symbol
cooldown_hours = 24
# Days to keep alert history before pruning
retention_days = 30

[telegram]
enabled = false
bot_token = ""
chat_ids = []

[server]
# HTTP health/trigger listen address
addr = ":10000"

[analyzer]
# Attach AI entry/stop/target commentary to alerts
enabled = false
model = "gpt-4o"
`

const credentialsTemplate = `# Trend Screener Credentials
# Keep this file private (chmod 600).

[openai]
api_key = ""
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0o644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}
	return nil
}

func createTemplateCredentials(configDir string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "credentials.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(credentialsTemplate), 0o600); err != nil {
		return fmt.Errorf("writing credentials template: %w", err)
	}
	return nil
}
