package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aiethics/selfcheck/internal/storage"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the saved result report",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the saved result report",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.store.Remove(cmd.Context(), storage.KeyResultData); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved report cleared.")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}
