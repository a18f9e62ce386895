package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"trend-screener/internal/errors"
	"trend-screener/internal/models"
	"trend-screener/internal/notify"
)

func newScanCmd(app *App) *cobra.Command {
	var minScore int

	cmd := &cobra.Command{
		Use:   "scan [quick|full|all]",
		Short: "Run a trend template scan",
		Long: `Run a chunked scan over the chosen universe:

  quick  first slice of the built-in list, for a fast pass
  full   the complete built-in Nifty 500 list
  all    the broader CSV universe (falls back to the built-in list)

The scan checkpoints before every chunk. If it is interrupted, 'screener
resume' continues from the last checkpoint. A matching checkpoint also
makes 'scan' itself pick up where it left off.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scanType := models.ScanQuick
			if len(args) > 0 {
				scanType = models.ScanType(args[0])
			}
			if !scanType.Valid() {
				return fmt.Errorf("%w: %q (use quick, full or all)", errors.ErrInvalidScanType, args[0])
			}
			if minScore < 0 || minScore > models.NumCriteria {
				return fmt.Errorf("--min-score must be between 1 and %d (0 keeps the configured default)", models.NumCriteria)
			}

			symbols, err := app.Universe.Symbols(scanType)
			if err != nil {
				return err
			}

			output := NewOutput(cmd)
			if !output.IsJSON() {
				output.Bold("Scanning %d symbols (%s)", len(symbols), scanType)
			}

			orch := app.newOrchestrator(minScore)
			if err := orch.Run(cmd.Context(), scanType, symbols, ""); err != nil {
				if errors.Is(err, errors.ErrAlreadyRunning) {
					return fmt.Errorf("a scan is already running in this process")
				}
				return err
			}

			set, err := orch.Results()
			if err != nil {
				return err
			}
			return printResultSet(output, set)
		},
	}

	cmd.Flags().IntVar(&minScore, "min-score", 0,
		"minimum criteria score to qualify (1-9, default from config; lower to surface near-misses)")
	return cmd
}

func newProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show scan progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.newOrchestrator(0).Progress()
			if err != nil {
				return err
			}

			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(p)
			}

			switch p.Status {
			case models.StatusIdle:
				output.Println("No scan in progress.")
			case models.StatusCompleted:
				output.Success("Last scan completed: %d stocks found", p.Found)
			default:
				pct := 0.0
				if p.Total > 0 {
					pct = float64(p.Offset) / float64(p.Total) * 100
				}
				output.Bold("%s scan %s", p.ScanType, p.Status)
				output.Printf("Progress: %d/%d (%.1f%%)\n", p.Offset, p.Total, pct)
				output.Printf("Found so far: %d\n", p.Found)
			}
			return nil
		},
	}
}

func newStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Request the running scan to pause at the next chunk boundary",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.newOrchestrator(0).Stop(); err != nil {
				if errors.Is(err, errors.ErrNoCheckpoint) {
					return fmt.Errorf("no scan to stop")
				}
				return err
			}
			output.Success("Stop requested. The scan pauses after the current chunk.")
			return nil
		},
	}
}

func newResumeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resume <quick|full|all>",
		Short: "Resume a paused scan from its checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scanType := models.ScanType(args[0])
			if !scanType.Valid() {
				return fmt.Errorf("%w: %q", errors.ErrInvalidScanType, args[0])
			}

			symbols, err := app.Universe.Symbols(scanType)
			if err != nil {
				return err
			}

			output := NewOutput(cmd)
			orch := app.newOrchestrator(0)
			if err := orch.Resume(cmd.Context(), scanType, symbols); err != nil {
				switch {
				case errors.Is(err, errors.ErrNoCheckpoint):
					return fmt.Errorf("nothing to resume")
				case errors.Is(err, errors.ErrScanTypeMismatch):
					return fmt.Errorf("the paused scan is a different type; resume that one or start fresh")
				}
				return err
			}

			set, err := orch.Results()
			if err != nil {
				return err
			}
			return printResultSet(output, set)
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List qualifying stocks from the current scan",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := app.newOrchestrator(0).Results()
			if err != nil {
				return err
			}
			return printResultSet(NewOutput(cmd), set)
		},
	}
}

func printResultSet(output *Output, set models.ScanResultSet) error {
	if output.IsJSON() {
		return output.JSON(set)
	}

	if len(set.Stocks) == 0 {
		output.Println("No qualifying stocks.")
		return nil
	}

	output.Bold("%d qualifying stocks (%s scan)", len(set.Stocks), set.ScanType)
	for i, s := range set.Stocks {
		name := s.Name
		if name == "" {
			name = s.Symbol
		}
		output.Printf("%3d. %-12s %-28s %12s  %d/%d\n",
			i+1, s.Symbol, truncate(name, 28), notify.FormatINR(s.Price), s.Score, models.NumCriteria)
	}
	if set.CompletedAt != nil {
		output.Dim("Completed %s, %d symbols scanned",
			set.CompletedAt.Local().Format("2006-01-02 15:04"), set.TotalScanned)
	} else {
		output.Dim("Scan still in progress")
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
