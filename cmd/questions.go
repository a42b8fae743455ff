package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aiethics/selfcheck/internal/questionnaire"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the diagnosis questions grouped by standard",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		state := questionnaire.NewLoader(e.client, e.logger.Named("questionnaire")).Load(cmd.Context())
		if state.Error != "" {
			return errors.New(state.Error)
		}

		out := cmd.OutOrStdout()
		if state.Empty() {
			fmt.Fprintln(out, "No questions available.")
			return nil
		}

		for _, st := range state.Standards {
			fmt.Fprintf(out, "\n%s\n", st.StandardName)
			fmt.Fprintln(out, strings.Repeat("─", 60))
			for _, q := range st.Questions {
				fmt.Fprintf(out, "%5d  %s\n", q.QuestionID, q.Question)
			}
		}
		fmt.Fprintf(out, "\n%d questions in %d standards\n", state.QuestionCount(), len(state.Standards))
		return nil
	},
}
