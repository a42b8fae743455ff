package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aiethics/selfcheck/internal/answers"
	"github.com/aiethics/selfcheck/internal/report"
	"github.com/aiethics/selfcheck/internal/submission"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit answers non-interactively",
	Example: "  selfcheck submit --answer 3=yes --answer 7=no --answer 9=na",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetStringArray("answer")
		m, err := parseAnswerFlags(raw)
		if err != nil {
			return err
		}

		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		sub := submission.New(e.client, e.store, e.logger.Named("submission"))
		o, err := sub.Submit(cmd.Context(), m)
		if err != nil {
			return err
		}
		if !o.OK() {
			return errors.New(o.Failed.Message)
		}
		// The saved report predates this submission.
		if err := report.NewLoader(e.client, e.store, nil).Invalidate(cmd.Context()); err != nil {
			e.logger.Warn("failed to drop cached result report", zap.Error(err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Submitted %d answers.\n", m.Len())
		return nil
	},
}

// parseAnswerFlags turns "ID=ANSWER" pairs into an answer map. Later pairs
// for the same ID overwrite earlier ones.
func parseAnswerFlags(pairs []string) (*answers.Map, error) {
	m := answers.NewMap()
	for _, p := range pairs {
		idStr, val, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("answer %q: expected ID=ANSWER", p)
		}
		id, err := strconv.Atoi(strings.TrimSpace(idStr))
		if err != nil {
			return nil, fmt.Errorf("answer %q: invalid question id: %w", p, err)
		}
		a, err := answers.Parse(val)
		if err != nil {
			return nil, fmt.Errorf("answer %q: %w", p, err)
		}
		m.Record(id, a)
	}
	return m, nil
}

func init() {
	submitCmd.Flags().StringArrayP("answer", "a", nil, "Answer as ID=yes|no|na (repeatable)")
}
