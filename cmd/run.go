package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aiethics/selfcheck/internal/app"
	"github.com/aiethics/selfcheck/internal/questionnaire"
	"github.com/aiethics/selfcheck/internal/report"
)

// runApp wires the services and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	exportDir, err := os.Getwd()
	if err != nil {
		exportDir = ""
	}

	e.logger.Info("starting interactive session")
	return app.Run(cmd.Context(), app.Options{
		Questions: questionnaire.NewLoader(e.client, e.logger.Named("questionnaire")),
		Sink:      e.client,
		Reports:   report.NewLoader(e.client, e.store, e.logger.Named("report")),
		Tokens:    e.store,
		ExportDir: exportDir,
		Logger:    e.logger.Named("submission"),
	})
}
