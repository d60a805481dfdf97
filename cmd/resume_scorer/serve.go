package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/logging"
	"github.com/jonathan/resume-scorer/internal/server"
)

type serveOptions struct {
	configPath string
	port       int
	logLevel   string
	verbose    bool
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes REST endpoints for scoring resumes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := serveSettings(cmd, opts)
			if err != nil {
				return err
			}
			return runServe(settings)
		},
	}

	cmd.Flags().IntVar(&opts.port, "port", config.Defaults().Port, "Port to listen on")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a JSON or YAML config file")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", config.Defaults().LogLevel, "Log level: debug, info, warn, error")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Human-readable console logs")

	return cmd
}

// serveSettings merges the config file with explicitly set flags.
func serveSettings(cmd *cobra.Command, opts *serveOptions) (config.Config, error) {
	settings, err := loadSettings(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if changed(cmd, "port") {
		settings.Port = opts.port
	}
	if changed(cmd, "log-level") {
		settings.LogLevel = opts.logLevel
	}
	if changed(cmd, "verbose") {
		settings.Verbose = opts.verbose
	}
	if err := settings.Validate(); err != nil {
		return config.Config{}, err
	}
	return settings, nil
}

func runServe(settings config.Config) error {
	logger, err := logging.New(settings.LogLevel, settings.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := server.ConfigFrom(settings, logger)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("configuration loaded",
		zap.Int("port", settings.Port),
		zap.Int("max_batch", settings.MaxBatch),
		zap.Int64("max_document_bytes", settings.MaxDocumentBytes),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
	)
	return srv.Start()
}
