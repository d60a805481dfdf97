package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/ingestion"
	"github.com/jonathan/resume-scorer/internal/logging"
	"github.com/jonathan/resume-scorer/internal/observability"
	"github.com/jonathan/resume-scorer/internal/schemas"
	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/types"
	"github.com/jonathan/resume-scorer/internal/watch"
)

const stdinSource = "-"

// newS3Client is replaced in tests.
var newS3Client = func(ctx context.Context) (ingestion.ObjectGetter, error) {
	return ingestion.NewS3Client(ctx)
}

type analyzeOptions struct {
	configPath  string
	format      string
	out         string
	concurrency int
	validate    bool
	verbose     bool
	watch       bool
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Score one or more plain-text resumes",
		Long: `Score plain-text resumes for ATS compatibility.

Reads each file argument, or standard input when no file (or "-") is given.
Arguments of the form s3://bucket/key are downloaded from S3 (credentials
from the AWS default chain; S3_ENDPOINT selects an S3-compatible store).

A single document is written as one JSON object; several documents as a
JSON array in argument order. --format text prints a boxed report instead.
--watch keeps running and rewrites the report whenever a file changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", config.FormatJSON, "Output format: json or text")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write output to this file instead of stdout")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", config.Defaults().Concurrency, "Documents scored at once")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "Validate every result against the AnalysisResult JSON Schema")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print document metadata and debug logs to stderr")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-score local files whenever they change")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a JSON or YAML config file")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions, args []string) error {
	settings, err := loadSettings(opts.configPath)
	if err != nil {
		return err
	}
	if changed(cmd, "format") {
		settings.Format = opts.format
	}
	if changed(cmd, "concurrency") {
		settings.Concurrency = opts.concurrency
	}
	if changed(cmd, "validate") {
		settings.ValidateOutput = opts.validate
	}
	if changed(cmd, "verbose") {
		settings.Verbose = opts.verbose
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	level := settings.LogLevel
	if settings.Verbose {
		level = "debug"
	}
	logger, err := logging.New(level, settings.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sources := args
	if len(sources) == 0 {
		sources = []string{stdinSource}
	}
	if opts.watch {
		if err := checkWatchable(sources); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	engine := scoring.NewEngine()
	report := func() error {
		docs, err := readDocuments(ctx, cmd.InOrStdin(), sources, settings.MaxDocumentBytes)
		if err != nil {
			return err
		}
		return scoreAndWrite(ctx, cmd, opts, settings, engine, logger, docs)
	}

	if err := report(); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(sources, watch.DefaultDebounce, logger)
	if err != nil {
		return err
	}
	logger.Info("watching for changes", zap.Strings("files", sources))

	return w.Run(ctx, func(path string) {
		logger.Debug("re-scoring after change", zap.String("path", path))
		if err := report(); err != nil {
			logger.Error("failed to re-score", zap.String("path", path), zap.Error(err))
		}
	})
}

// checkWatchable rejects sources that cannot be watched on the local disk.
func checkWatchable(sources []string) error {
	for _, src := range sources {
		if src == stdinSource {
			return errors.New("--watch needs file arguments, not standard input")
		}
		if ingestion.IsS3URI(src) {
			return fmt.Errorf("--watch cannot watch S3 objects: %s", src)
		}
	}
	return nil
}

// scoreAndWrite scores docs and renders them in the configured format.
func scoreAndWrite(ctx context.Context, cmd *cobra.Command, opts *analyzeOptions, settings config.Config, engine *scoring.Engine, logger *zap.Logger, docs []*ingestion.Document) error {
	if settings.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		for _, doc := range docs {
			printer.PrintMetadata(doc.Metadata)
		}
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}
	results, err := engine.AnalyzeBatch(ctx, texts, settings.Concurrency)
	if err != nil {
		return err
	}

	for i := range results {
		logger.Debug("document scored",
			zap.String("source", docs[i].Metadata.Source),
			zap.Int("overall_score", results[i].OverallScore),
			zap.Int("word_count", results[i].WordCount),
			zap.Int("recommendations", len(results[i].Recommendations)),
		)
		if settings.ValidateOutput {
			if err := schemas.ValidateResult(results[i]); err != nil {
				return fmt.Errorf("%s: result failed schema validation: %w", docs[i].Metadata.Source, err)
			}
		}
	}

	return writeResults(cmd.OutOrStdout(), opts.out, settings.Format, docs, results)
}

// readDocuments loads every source in order. "-" reads r, at most once, and
// s3:// URIs share one lazily created client.
func readDocuments(ctx context.Context, r io.Reader, sources []string, maxBytes int64) ([]*ingestion.Document, error) {
	docs := make([]*ingestion.Document, 0, len(sources))
	stdinUsed := false
	var s3Client ingestion.ObjectGetter
	for _, src := range sources {
		var (
			doc *ingestion.Document
			err error
		)
		if src == stdinSource {
			if stdinUsed {
				return nil, errors.New("standard input can only be read once")
			}
			stdinUsed = true
			doc, err = ingestion.Read(r, "stdin", maxBytes)
		} else if ingestion.IsS3URI(src) {
			if s3Client == nil {
				if s3Client, err = newS3Client(ctx); err != nil {
					return nil, err
				}
			}
			doc, err = ingestion.ReadS3(ctx, s3Client, src, maxBytes)
		} else {
			doc, err = ingestion.ReadFile(src, maxBytes)
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// writeResults renders results in format to outPath, or to stdout when outPath is empty.
func writeResults(stdout io.Writer, outPath, format string, docs []*ingestion.Document, results []types.AnalysisResult) error {
	w := stdout
	if outPath != "" {
		// Ensure output directory exists
		outputDir := filepath.Dir(outPath)
		if outputDir != "" && outputDir != "." {
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	switch format {
	case config.FormatText:
		printer := observability.NewPrinter(w)
		for i := range results {
			printer.PrintAnalysis(docs[i].Metadata.Source, &results[i])
		}
		return nil
	default:
		var payload any = results
		if len(results) == 1 {
			payload = results[0]
		}
		jsonBytes, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results to JSON: %w", err)
		}
		if _, err := fmt.Fprintln(w, string(jsonBytes)); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		return nil
	}
}
