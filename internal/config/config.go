// Package config provides configuration management for the scan service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Scan        ScanConfig        `mapstructure:"scan"`
	Screener    ScreenerConfig    `mapstructure:"screener"`
	Provider    ProviderConfig    `mapstructure:"provider"`
	Alerts      AlertConfig       `mapstructure:"alerts"`
	Telegram    TelegramConfig    `mapstructure:"telegram"`
	Server      ServerConfig      `mapstructure:"server"`
	Analyzer    AnalyzerConfig    `mapstructure:"analyzer"`
	DataDir     string            `mapstructure:"data_dir"`
	Credentials Credentials       `mapstructure:"-"` // loaded separately
}

// ScanConfig holds scan orchestration settings.
type ScanConfig struct {
	ChunkSize     int           `mapstructure:"chunk_size"`
	ChunkInterval time.Duration `mapstructure:"chunk_interval"`
	ProgressEvery int           `mapstructure:"progress_every"`
	MinScore      int           `mapstructure:"min_score"`
	QuickSize     int           `mapstructure:"quick_size"`
	UniverseCSV   string        `mapstructure:"universe_csv"`
}

// ScreenerConfig holds trend template thresholds.
type ScreenerConfig struct {
	MinPctAboveLow52W float64 `mapstructure:"min_pct_above_52w_low"`
	MaxPctFromHigh52W float64 `mapstructure:"max_pct_from_52w_high"`
	TrendLookback     int     `mapstructure:"trend_lookback"`
}

// ProviderConfig holds market data provider settings.
type ProviderConfig struct {
	ExchangeSuffix string        `mapstructure:"exchange_suffix"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelay     time.Duration `mapstructure:"retry_delay"`
}

// AlertConfig holds alert gating settings.
type AlertConfig struct {
	CooldownHours int `mapstructure:"cooldown_hours"`
	RetentionDays int `mapstructure:"retention_days"`
}

// TelegramConfig holds Telegram notification settings.
type TelegramConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	BotToken string   `mapstructure:"bot_token"`
	ChatIDs  []string `mapstructure:"chat_ids"`
}

// ServerConfig holds the HTTP trigger/health server settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// AnalyzerConfig holds AI commentary settings.
type AnalyzerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// Credentials holds API credentials.
type Credentials struct {
	OpenAI OpenAICredentials `mapstructure:"openai"`
}

// OpenAICredentials holds OpenAI API credentials.
type OpenAICredentials struct {
	APIKey string `mapstructure:"api_key"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/trend-screener"
	}
	return filepath.Join(home, ".config", "trend-screener")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(configDir, "data")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, target *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		if err := createTemplateConfig(configDir); err != nil {
			return err
		}
	}

	return v.Unmarshal(target)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createTemplateCredentials(configDir)
		}
		return err
	}

	return v.Unmarshal(creds)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("scan.chunk_size", 30)
	v.SetDefault("scan.chunk_interval", 5*time.Second)
	v.SetDefault("scan.progress_every", 5)
	v.SetDefault("scan.min_score", 9)
	v.SetDefault("scan.quick_size", 50)

	v.SetDefault("screener.min_pct_above_52w_low", 30.0)
	v.SetDefault("screener.max_pct_from_52w_high", 25.0)
	v.SetDefault("screener.trend_lookback", 22)

	v.SetDefault("provider.exchange_suffix", ".NS")
	v.SetDefault("provider.cache_ttl", time.Hour)
	v.SetDefault("provider.max_retries", 3)
	v.SetDefault("provider.retry_delay", time.Second)

	v.SetDefault("alerts.cooldown_hours", 24)
	v.SetDefault("alerts.retention_days", 30)

	v.SetDefault("server.addr", ":10000")

	v.SetDefault("analyzer.enabled", false)
	v.SetDefault("analyzer.model", "gpt-4o")
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
		cfg.Telegram.Enabled = true
	}
	if v := os.Getenv("TELEGRAM_CHAT_IDS"); v != "" {
		cfg.Telegram.ChatIDs = strings.Split(v, ",")
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Credentials.OpenAI.APIKey = v
	}
	if v := os.Getenv("SCANNER_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Scan.ChunkSize <= 0 {
		return fmt.Errorf("scan.chunk_size must be positive")
	}
	if c.Scan.MinScore < 0 || c.Scan.MinScore > 9 {
		return fmt.Errorf("scan.min_score must be between 0 and 9")
	}
	if c.Scan.ProgressEvery <= 0 {
		return fmt.Errorf("scan.progress_every must be positive")
	}
	if c.Screener.MinPctAboveLow52W < 0 {
		return fmt.Errorf("screener.min_pct_above_52w_low must be non-negative")
	}
	if c.Screener.MaxPctFromHigh52W < 0 || c.Screener.MaxPctFromHigh52W > 100 {
		return fmt.Errorf("screener.max_pct_from_52w_high must be between 0 and 100")
	}
	if c.Screener.TrendLookback <= 0 {
		return fmt.Errorf("screener.trend_lookback must be positive")
	}
	if c.Alerts.CooldownHours < 0 {
		return fmt.Errorf("alerts.cooldown_hours must be non-negative")
	}
	return nil
}

// Cooldown returns the alert cooldown as a duration.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.Alerts.CooldownHours) * time.Hour
}
