package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"trend-screener/internal/errors"
	"trend-screener/internal/models"
	"trend-screener/internal/notify"
)

func newCheckCmd(app *App) *cobra.Command {
	var analyze bool

	cmd := &cobra.Command{
		Use:   "check <symbol>",
		Short: "Evaluate one stock against the trend template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := strings.ToUpper(args[0])
			output := NewOutput(cmd)

			snap, err := app.Provider.FetchSnapshot(cmd.Context(), symbol)
			if err != nil {
				return err
			}

			result, err := app.Evaluator.Evaluate(snap)
			if err != nil {
				if errors.Is(err, errors.ErrInsufficientData) {
					output.Warn("%s: not enough trading history to evaluate", symbol)
					return nil
				}
				return err
			}

			if output.IsJSON() {
				return output.JSON(result)
			}
			printVerdict(output, result)

			if analyze {
				if app.Analyzer == nil {
					output.Warn("AI analysis requires analyzer.enabled and an OpenAI API key")
					return nil
				}
				levels, err := app.Analyzer.Analyze(cmd.Context(), result)
				if err != nil {
					output.Warn("AI analysis failed: %v", err)
					return nil
				}
				output.Println()
				output.Bold("AI Trading Levels")
				output.Printf("Entry:     %s\n", levels.EntryLevel)
				output.Printf("Stop loss: %s\n", levels.StopLoss)
				output.Printf("Target:    %s\n", levels.Target)
				output.Dim("%s", levels.Reasoning)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&analyze, "analyze", false, "ask the AI analyzer for entry/stop/target levels")
	return cmd
}

func printVerdict(output *Output, r models.CriteriaResult) {
	name := r.Name
	if name != "" && name != r.Symbol {
		output.Bold("%s - %s", r.Symbol, name)
	} else {
		output.Bold("%s", r.Symbol)
	}

	if r.PassesAll {
		output.Success("Score: %d/%d PASSES", r.Score, models.NumCriteria)
	} else {
		output.Fail("Score: %d/%d FAILS", r.Score, models.NumCriteria)
	}

	output.Println()
	output.Printf("Price:    %s\n", notify.FormatINR(r.Price))
	output.Printf("50 SMA:   %s\n", notify.FormatINR(r.Metrics.SMA50))
	output.Printf("150 SMA:  %s\n", notify.FormatINR(r.Metrics.SMA150))
	output.Printf("200 SMA:  %s\n", notify.FormatINR(r.Metrics.SMA200))
	output.Printf("52W high: %s (%.2f%% away)\n", notify.FormatINR(r.Metrics.High52W), r.Metrics.PctFromHigh52W)
	output.Printf("52W low:  %s (%.2f%% above)\n", notify.FormatINR(r.Metrics.Low52W), r.Metrics.PctAboveLow52W)
	output.Println()

	for i, passed := range r.Criteria {
		label := models.Criterion(i).String()
		if passed {
			output.Success("PASS  %s", label)
		} else {
			output.Fail("FAIL  %s", label)
		}
	}
}
