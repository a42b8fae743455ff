package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aiethics/selfcheck/internal/api"
	"github.com/aiethics/selfcheck/internal/config"
	"github.com/aiethics/selfcheck/internal/logging"
	"github.com/aiethics/selfcheck/internal/storage"
)

// env is the wiring shared by every command.
type env struct {
	cfg    config.Config
	logger *zap.Logger
	store  storage.Storage
	client *api.Client
}

// resolveConfig loads the config file, .env and environment, then applies
// command-line flags on top.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		cfg.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("storage"); v != "" {
		cfg.Storage = v
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		cfg.LogFile = v
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newEnv resolves config, opens the log file and storage, and builds the
// API client. Callers must Close the result.
func newEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	logPath := cfg.LogFile
	if logPath == "" {
		if logPath, err = logging.DefaultPath(); err != nil {
			return nil, fmt.Errorf("resolve log path: %w", err)
		}
	}
	logger, err := logging.New(logPath, cfg.Verbose)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cmd.Context(), cfg.Storage)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open storage: %w", err)
	}

	client := api.New(cfg.BaseURL,
		api.WithTimeout(cfg.Timeout),
		api.WithResultPath(cfg.ResultPath),
		api.WithLogger(logger.Named("api")))

	logger.Debug("environment ready",
		zap.String("base_url", cfg.BaseURL),
		zap.String("storage", cfg.Storage))
	return &env{cfg: cfg, logger: logger, store: store, client: client}, nil
}

// Close releases storage and flushes the log.
func (e *env) Close() error {
	err := e.store.Close()
	_ = e.logger.Sync()
	return err
}
