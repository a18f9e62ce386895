package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newAlertsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Inspect and maintain the alert history",
	}

	var hours int
	recent := &cobra.Command{
		Use:   "recent",
		Short: "Show recently alerted symbols, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			alerts := app.Alerts.RecentAlerts(time.Duration(hours) * time.Hour)

			if output.IsJSON() {
				return output.JSON(alerts)
			}
			if len(alerts) == 0 {
				output.Printf("No alerts in the last %dh.\n", hours)
				return nil
			}
			output.Bold("Alerts in the last %dh", hours)
			for _, a := range alerts {
				output.Printf("%-12s %s\n", a.Symbol, a.Timestamp.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
	recent.Flags().IntVar(&hours, "hours", 24, "lookback window in hours")
	cmd.AddCommand(recent)

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show alert totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			stats := app.Alerts.Stats()

			if output.IsJSON() {
				return output.JSON(stats)
			}
			output.Printf("Symbols alerted:  %d\n", stats.SymbolsAlerted)
			output.Printf("Alerts sent:      %d\n", stats.AlertsSent)
			output.Printf("Alerts last 24h:  %d\n", stats.AlertsLast24H)
			if len(stats.MostAlerted) > 0 {
				output.Println()
				output.Bold("Most alerted")
				for _, sc := range stats.MostAlerted {
					output.Printf("%-12s %d\n", sc.Symbol, sc.Count)
				}
			}
			return nil
		},
	})

	var days int
	prune := &cobra.Command{
		Use:   "prune",
		Short: "Remove alert records older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if days <= 0 {
				days = app.Config.Alerts.RetentionDays
			}
			removed, err := app.Alerts.PruneOlderThan(days)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]int{"removed": removed})
			}
			output.Success("Removed %d stale alert records (older than %d days)", removed, days)
			return nil
		},
	}
	prune.Flags().IntVar(&days, "days", 0, "retention in days (default from config)")
	cmd.AddCommand(prune)

	return cmd
}
