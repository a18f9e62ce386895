package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"trend-screener/internal/models"
	"trend-screener/internal/notify"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [runID]",
		Short: "Browse archived scan runs",
		Long: `Without arguments, lists recently completed scan runs. With a run ID,
shows the qualifying stocks of that run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Archive == nil {
				return fmt.Errorf("scan archive is unavailable")
			}
			output := NewOutput(cmd)

			if len(args) == 1 {
				runID, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid run ID %q", args[0])
				}
				stocks, err := app.Archive.RunStocks(cmd.Context(), runID)
				if err != nil {
					return err
				}
				if output.IsJSON() {
					return output.JSON(stocks)
				}
				if len(stocks) == 0 {
					output.Printf("Run %d has no stocks.\n", runID)
					return nil
				}
				output.Bold("Run %d: %d stocks", runID, len(stocks))
				for _, s := range stocks {
					output.Printf("%-12s %12s  %d/%d\n",
						s.Symbol, notify.FormatINR(s.Price), s.Score, models.NumCriteria)
				}
				return nil
			}

			runs, err := app.Archive.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(runs)
			}
			if len(runs) == 0 {
				output.Println("No archived scans yet.")
				return nil
			}
			output.Bold("%-6s %-8s %-18s %8s %8s", "ID", "TYPE", "COMPLETED", "SCANNED", "FOUND")
			for _, r := range runs {
				output.Printf("%-6d %-8s %-18s %8d %8d\n",
					r.ID, r.ScanType, r.CompletedAt.Local().Format("2006-01-02 15:04"),
					r.TotalScanned, r.Found)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list")
	return cmd
}
