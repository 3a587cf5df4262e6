package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/taxberg/internal/api"
	"github.com/rgehrsitz/taxberg/internal/calculation"
	"github.com/rgehrsitz/taxberg/internal/config"
	"github.com/rgehrsitz/taxberg/internal/logging"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculation API over HTTP",
		Long: `Serve POST /api/calculate-tax and GET /healthz until interrupted.

Settings come from the environment (PORT, TAXBERG_LOG_LEVEL, TAXBERG_DEV,
TAXBERG_ALLOWED_ORIGIN), optionally loaded from an .env file first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			cfg, err := config.LoadServerConfig(envFile)
			if err != nil {
				return err
			}
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				if _, err := strconv.Atoi(port); err != nil {
					return fmt.Errorf("invalid --port %q: must be numeric", port)
				}
				cfg.Port = port
			}

			logger, err := logging.New(cfg.Development, cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			engine := calculation.NewCalculationEngine()
			engine.SetLogger(logger.Sugar())

			logger.Info("starting taxberg API",
				zap.String("version", version),
				zap.String("addr", cfg.Addr()),
				zap.Bool("development", cfg.Development))

			return api.NewServer(*cfg, engine, logger).Run(cmd.Context())
		},
	}
	cmd.Flags().String("port", "", "Port to listen on (overrides PORT)")
	cmd.Flags().String("env-file", ".env", "Environment file to load before reading settings")
	return cmd
}
