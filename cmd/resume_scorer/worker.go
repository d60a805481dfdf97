package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/logging"
	"github.com/jonathan/resume-scorer/internal/queue"
	"github.com/jonathan/resume-scorer/internal/scoring"
)

type workerOptions struct {
	configPath  string
	amqpURL     string
	queueName   string
	resultQueue string
	prefetch    int
	verbose     bool
}

func newWorkerCmd() *cobra.Command {
	opts := &workerOptions{}
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Score resumes from a RabbitMQ queue",
		Long: `Consume scoring jobs ({"id": "...", "text": "..."}) from a durable RabbitMQ
queue and publish each result to the message's reply-to queue, or to the
result queue when none is set. The broker URL defaults to $AMQP_URL.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := workerSettings(cmd, opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWorker(ctx, settings)
		},
	}

	defaults := config.Defaults().Queue
	cmd.Flags().StringVar(&opts.amqpURL, "amqp-url", "", "RabbitMQ URL (default $AMQP_URL)")
	cmd.Flags().StringVar(&opts.queueName, "queue", defaults.Name, "Queue to consume jobs from")
	cmd.Flags().StringVar(&opts.resultQueue, "result-queue", defaults.ResultQueue, "Queue for results without a reply-to")
	cmd.Flags().IntVar(&opts.prefetch, "prefetch", defaults.Prefetch, "Unacknowledged deliveries held at once")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a JSON or YAML config file")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Human-readable console logs")

	return cmd
}

// workerSettings layers flags over $AMQP_URL over the config file.
func workerSettings(cmd *cobra.Command, opts *workerOptions) (config.Config, error) {
	settings, err := loadSettings(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if url := os.Getenv("AMQP_URL"); url != "" {
		settings.Queue.URL = url
	}
	if changed(cmd, "amqp-url") {
		settings.Queue.URL = opts.amqpURL
	}
	if changed(cmd, "queue") {
		settings.Queue.Name = opts.queueName
	}
	if changed(cmd, "result-queue") {
		settings.Queue.ResultQueue = opts.resultQueue
	}
	if changed(cmd, "prefetch") {
		settings.Queue.Prefetch = opts.prefetch
	}
	if changed(cmd, "verbose") {
		settings.Verbose = opts.verbose
	}
	if err := settings.Validate(); err != nil {
		return config.Config{}, err
	}
	if settings.Queue.URL == "" {
		return config.Config{}, errors.New("a RabbitMQ URL is required: set --amqp-url or AMQP_URL")
	}
	return settings, nil
}

func runWorker(ctx context.Context, settings config.Config) error {
	logger, err := logging.New(settings.LogLevel, settings.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	w, err := queue.NewWorker(queue.Config{
		URL:              settings.Queue.URL,
		Queue:            settings.Queue.Name,
		ResultQueue:      settings.Queue.ResultQueue,
		Workers:          settings.Concurrency,
		Prefetch:         settings.Queue.Prefetch,
		MaxDocumentBytes: settings.MaxDocumentBytes,
	}, scoring.NewEngine(), logger)
	if err != nil {
		return err
	}

	logger.Info("starting worker", zap.String("queue", settings.Queue.Name), zap.Int("prefetch", settings.Queue.Prefetch))
	return w.Run(ctx)
}
