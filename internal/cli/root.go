package cli

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"trend-screener/internal/analyzer"
	"trend-screener/internal/config"
	"trend-screener/internal/logging"
	"trend-screener/internal/notify"
	"trend-screener/internal/provider"
	"trend-screener/internal/scan"
	"trend-screener/internal/screener"
	"trend-screener/internal/store"
	"trend-screener/internal/universe"
	"trend-screener/pkg/utils"
)

// Version information
const Version = "0.1.0"

// App holds the application dependencies shared by the commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger

	Universe  *universe.Source
	Provider  provider.DataProvider
	Evaluator *screener.Evaluator
	Alerts    *store.AlertGate
	Archive   *store.ScanArchive // nil when the archive db cannot be opened
	Analyzer  *analyzer.Analyzer // nil without an OpenAI key
	Sink      notify.Sink
}

// NewRootCmd creates the root command with all subcommands wired.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{Config: cfg, Logger: logger}

	app.Universe = universe.NewSource(cfg.Scan.UniverseCSV, cfg.Scan.QuickSize, logger)
	app.Evaluator = screener.NewEvaluator(screener.Thresholds{
		MinPctAboveLow52W: cfg.Screener.MinPctAboveLow52W,
		MaxPctFromHigh52W: cfg.Screener.MaxPctFromHigh52W,
		TrendLookback:     cfg.Screener.TrendLookback,
	})
	app.Alerts = store.NewAlertGate(cfg.DataDir, cfg.Cooldown())

	cache, err := provider.NewSnapshotCache(filepath.Join(cfg.DataDir, "cache"), cfg.Provider.CacheTTL)
	if err != nil {
		logger.Warn().Err(err).Msg("snapshot cache unavailable, fetching uncached")
		cache = nil
	}
	retry := utils.DefaultRetryConfig()
	if cfg.Provider.MaxRetries > 0 {
		retry.MaxAttempts = cfg.Provider.MaxRetries
	}
	if cfg.Provider.RetryDelay > 0 {
		retry.InitialDelay = cfg.Provider.RetryDelay
	}
	app.Provider = provider.NewYahooProvider(provider.YahooConfig{
		ExchangeSuffix: cfg.Provider.ExchangeSuffix,
		TrendLookback:  cfg.Screener.TrendLookback,
		Retry:          retry,
	}, cache, logger)

	archive, err := store.NewScanArchive(filepath.Join(cfg.DataDir, "archive.db"))
	if err != nil {
		logger.Warn().Err(err).Msg("scan archive unavailable, history disabled")
	} else {
		app.Archive = archive
	}

	sinks := notify.MultiSink{notify.NewTerminalSink()}
	if cfg.Telegram.Enabled && cfg.Telegram.BotToken != "" {
		sinks = append(sinks, notify.NewTelegramSink(cfg.Telegram.BotToken, cfg.Telegram.ChatIDs))
	}
	app.Sink = sinks

	if cfg.Analyzer.Enabled && cfg.Credentials.OpenAI.APIKey != "" {
		app.Analyzer = analyzer.New(analyzer.NewOpenAIClient(cfg.Credentials.OpenAI.APIKey, cfg.Analyzer.Model))
		logger.Debug().Str("model", cfg.Analyzer.Model).Msg("AI analyzer initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "screener",
		Short: "Trend Template Screener - NSE stock scanner",
		Long: `Trend Template Screener scans NSE stocks against Mark Minervini's
nine-point trend template and alerts on qualifying stocks.

Scans run in resumable chunks: progress survives restarts, and a stopped
scan continues where it left off.

Use 'screener help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/trend-screener)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newScanCmd(app))
	rootCmd.AddCommand(newCheckCmd(app))
	rootCmd.AddCommand(newProgressCmd(app))
	rootCmd.AddCommand(newStopCmd(app))
	rootCmd.AddCommand(newResumeCmd(app))
	rootCmd.AddCommand(newListCmd(app))
	rootCmd.AddCommand(newAlertsCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))
	rootCmd.AddCommand(newServeCmd(app))

	return rootCmd
}

// newOrchestrator builds a scan orchestrator from the app's dependencies.
// minScore, when positive, overrides the configured threshold.
func (app *App) newOrchestrator(minScore int) *scan.Orchestrator {
	opts := scan.Options{
		ChunkSize:     app.Config.Scan.ChunkSize,
		ChunkInterval: app.Config.Scan.ChunkInterval,
		ProgressEvery: app.Config.Scan.ProgressEvery,
		MinScore:      app.Config.Scan.MinScore,
	}
	if minScore > 0 {
		opts.MinScore = minScore
	}
	deps := scan.Deps{
		Provider:    app.Provider,
		Evaluator:   app.Evaluator,
		Checkpoints: store.NewCheckpointStore(app.Config.DataDir),
		Results:     store.NewResultStore(app.Config.DataDir),
		Alerts:      app.Alerts,
		Archive:     app.Archive,
		Sink:        app.Sink,
		Logger:      app.Logger,
	}
	if app.Analyzer != nil {
		deps.Commentator = app.Analyzer
	}
	return scan.NewOrchestrator(deps, opts)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
				return
			}
			output.Printf("Trend Template Screener v%s\n", Version)
		},
	}
}
