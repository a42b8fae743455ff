package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aiethics/selfcheck/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the result report of the last submission",
	RunE: func(cmd *cobra.Command, args []string) error {
		refresh, _ := cmd.Flags().GetBool("refresh")
		xlsxPath, _ := cmd.Flags().GetString("xlsx")

		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		state := report.NewLoader(e.client, e.store, e.logger.Named("report")).Load(cmd.Context(), refresh)
		if state.Error != "" {
			return errors.New(state.Error)
		}
		r := state.Result

		out := cmd.OutOrStdout()
		if state.FromCache {
			fmt.Fprintln(out, "(saved report; use --refresh to fetch again)")
		}
		fmt.Fprintf(out, "Overall: %s\n\n", r.TotalScore.ScoreRatioString)

		fmt.Fprintf(out, "%-24s  %7s  %7s\n", "Standard", "Score", "Percent")
		fmt.Fprintln(out, strings.Repeat("─", 42))
		norm := r.NormalizedScores()
		for i, s := range r.StandardScores {
			fmt.Fprintf(out, "%-24s  %7.1f  %6.0f%%\n", s.StandardName, s.Score, norm[i].Percent)
		}
		if sum, err := r.Summary(); err == nil && len(norm) > 0 {
			fmt.Fprintf(out, "\nmean %.0f%%  median %.0f%%  lowest %.0f%%  highest %.0f%%\n",
				sum.Mean, sum.Median, sum.Min, sum.Max)
		}

		if len(r.NoOrNotApplicable) > 0 {
			fmt.Fprintln(out, "\nNeeds review:")
			for _, f := range r.NoOrNotApplicable {
				fmt.Fprintf(out, "\n  %s\n", f.StandardName)
				for _, p := range f.QnaPairs {
					fmt.Fprintf(out, "    [%s] %s\n", p.Answer, p.Question)
				}
			}
		}

		if xlsxPath != "" {
			if err := writeXLSX(xlsxPath, r); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nWrote %s\n", xlsxPath)
		}
		return nil
	},
}

func writeXLSX(path string, r *report.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := report.ExportXLSX(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	reportCmd.Flags().Bool("refresh", false, "Fetch the report even if a saved copy exists")
	reportCmd.Flags().String("xlsx", "", "Also export the report to this .xlsx file")
}
