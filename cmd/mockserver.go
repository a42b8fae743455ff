package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aiethics/selfcheck/internal/devserver"
	"github.com/aiethics/selfcheck/internal/logging"
)

var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Run a local fake diagnosis service for development",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.MockAddr = addr
		}

		logger := logging.Nop()
		if cfg.Verbose {
			if logger, err = zap.NewDevelopment(); err != nil {
				return err
			}
		} else {
			gin.SetMode(gin.ReleaseMode)
		}
		defer logger.Sync()

		fmt.Fprintf(cmd.OutOrStdout(), "Serving %d standards on http://%s (Ctrl+C to stop)\n",
			len(devserver.DefaultBank()), cfg.MockAddr)
		srv := devserver.New(devserver.DefaultBank(), logger)
		return srv.ListenAndServe(cmd.Context(), cfg.MockAddr, cfg.ResultPath)
	},
}

func init() {
	mockServerCmd.Flags().String("addr", "", "Listen address (overrides SELFCHECK_MOCK_ADDR)")
}
