package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "selfcheck",
	Short: "AI ethics self-diagnosis client",
	Long: "selfcheck walks a developer through the AI ethics self-diagnosis checklist, " +
		"submits the answers and shows the scored report.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/selfcheck/config.yaml)")
	flags.String("base-url", "", "Diagnosis service URL (overrides SELFCHECK_BASE_URL)")
	flags.String("storage", "", "Storage backend: sqlite, sqlite:<path>, memory or redis://... (overrides SELFCHECK_STORAGE)")
	flags.String("log-file", "", "Diagnostic log file (overrides SELFCHECK_LOG_FILE)")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(mockServerCmd)
	rootCmd.AddCommand(versionCmd)
}
