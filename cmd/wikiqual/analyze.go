package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/wikiqual/wikiqual/internal/config"
	"github.com/wikiqual/wikiqual/internal/log"
	"github.com/wikiqual/wikiqual/internal/model"
	"github.com/wikiqual/wikiqual/internal/pipeline"
	"github.com/wikiqual/wikiqual/internal/redundancy"
	"github.com/wikiqual/wikiqual/internal/report"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [article.json...]",
		Short: "Score article documents against the quality axes",
		Long: `Analyze scores encyclopedia article documents and reports per-axis and
total quality scores.

Each document is the JSON form of the normalized article model: title,
full text, intro text, sections, templates, categories, image descriptors,
and link counts.

Examples:
  # Score a single article
  wikiqual analyze article.json

  # Score multiple articles concurrently
  wikiqual analyze a.json b.json c.json --batch 4

  # Score every document listed in a file (one path per line)
  wikiqual analyze --list articles.txt

  # Use a custom grammar rule file
  wikiqual analyze --rules rules.yml article.json

  # Output JSON report to a file
  wikiqual analyze --json --output report.json article.json

Configuration file (.wikiqual) example:
  ruleFile: rules.yml
  format: markdown
  batchSize: 8
  redundancyThreshold: 0.9`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	// Rule loading flags
	cmd.Flags().StringP("rules", "r", "",
		"Grammar rule file path (default: built-in rules)")
	cmd.Flags().String("cache-dir", "",
		"Rule cache directory (default: XDG cache directory)")
	cmd.Flags().Bool("no-cache", false,
		"Disable the rule cache")

	// Batch scoring flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent scorings")
	cmd.Flags().StringP("list", "l", "",
		"File listing article document paths, one per line")

	// Analysis tuning
	cmd.Flags().Float64("threshold", config.DefaultRedundancyThreshold,
		"Sentence similarity threshold for near-duplicate detection")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .wikiqual in current, XDG config, or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	verbose := getVerboseFlag(cmd)
	cfg.Verbose = verbose
	logger := log.NewLogger(os.Stderr, verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAnalyze(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Load settings from the config file first; flags win over it
	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently skip when no file is found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Flag values override file settings
	if cmd.Flags().Changed("rules") {
		cfg.RuleFile, err = cmd.Flags().GetString("rules")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("cache-dir") {
		cfg.CacheDir, err = cmd.Flags().GetString("cache-dir")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("no-cache") {
		cfg.NoCache, err = cmd.Flags().GetBool("no-cache")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("batch") {
		cfg.BatchSize, err = cmd.Flags().GetInt("batch")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("threshold") {
		cfg.RedundancyThreshold, err = cmd.Flags().GetFloat64("threshold")
		if err != nil {
			return nil, err
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	// Collect article paths: positional arguments plus the list file
	cfg.Articles = args

	listPath, err := cmd.Flags().GetString("list")
	if err != nil {
		return nil, err
	}
	if listPath != "" {
		listed, err := readArticleList(listPath)
		if err != nil {
			return nil, err
		}
		cfg.Articles = append(cfg.Articles, listed...)
	}

	return cfg, nil
}

// readArticleList reads article document paths from a file, one per line.
// Blank lines and lines starting with '#' are skipped.
func readArticleList(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open list file: %w", err)
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read list file: %w", err)
	}

	return paths, nil
}

// runAnalyze executes the scoring run.
func runAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting analysis",
		"articles", len(cfg.Articles),
		"ruleFile", cfg.RuleFile,
		"batchSize", cfg.BatchSize,
	)

	// Use batch processor for parallel scoring if multiple documents
	if len(cfg.Articles) > 1 && cfg.BatchSize > 1 {
		return runBatchAnalyze(ctx, cfg, logger)
	}

	// Single document or sequential scoring
	return runSequentialAnalyze(ctx, cfg, logger)
}

// runSequentialAnalyze scores documents one at a time.
func runSequentialAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	for _, path := range cfg.Articles {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p := createPipeline(cfg, logger)
		run := pipeline.NewRun(path)

		startTime := time.Now()

		// Execute the pipeline
		if err := p.Execute(ctx, run); err != nil {
			logger.Error("scoring failed", "article", path, "error", err)
			fmt.Fprintf(os.Stderr, "Scoring error for %s: %v\n", path, err)
			continue
		}

		elapsed := time.Since(startTime)
		logger.Debug("scoring finished", "article", path, "elapsed", elapsed)

		// Generate and output report
		if err := outputReport(cfg, run.Report); err != nil {
			logger.Error("report failed", "article", path, "error", err)
		}
	}

	return nil
}

// runBatchAnalyze scores multiple documents concurrently using BatchProcessor.
func runBatchAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	fmt.Printf("Starting batch analysis of %d articles (concurrency: %d)...\n\n",
		len(cfg.Articles), cfg.BatchSize)

	startTime := time.Now()

	// Create batch processor with pipeline factory
	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return createPipeline(cfg, logger)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	// Process with callback for streaming output
	var mu sync.Mutex
	err := bp.ProcessBatchWithCallback(ctx, cfg.Articles, func(run *pipeline.Run, index int) {
		mu.Lock()
		defer mu.Unlock()

		if run.Err != nil {
			fmt.Fprintf(os.Stderr, "[%d/%d] Scoring failed: %s: %v\n",
				index+1, len(cfg.Articles), run.ArticlePath, run.Err)
			return
		}

		fmt.Printf("[%d/%d] Scoring completed: %s\n", index+1, len(cfg.Articles), run.ArticlePath)

		// Generate and output report
		if err := outputReport(cfg, run.Report); err != nil {
			logger.Error("report failed", "article", run.ArticlePath, "error", err)
		}
	})

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch analysis completed in %s\n", elapsed.Round(time.Millisecond))

	return err
}

// createPipeline creates the default pipeline with the given configuration.
func createPipeline(cfg *config.Config, logger *slog.Logger) *pipeline.Pipeline {
	pipelineOpts := []pipeline.Option{
		pipeline.WithLogger(logger),
	}

	configOpts := []pipeline.DefaultPipelineOption{
		pipeline.WithPipelineRulePath(cfg.RuleFile),
		pipeline.WithPipelineCacheDir(cfg.RuleCacheDir()),
		pipeline.WithPipelineMaxArticleSize(cfg.MaxArticleSize),
		pipeline.WithPipelineRedundancyOptions(
			redundancy.WithThreshold(cfg.RedundancyThreshold),
		),
		pipeline.WithPipelineStepLogger(logger),
	}

	return pipeline.DefaultPipeline(pipelineOpts, configOpts...)
}

// outputReport outputs the quality report in the requested format.
func outputReport(cfg *config.Config, rep *model.Report) error {
	if rep == nil {
		return nil
	}

	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output (full report wrapped with version metadata)
	if cfg.JSONReport {
		writer := report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
		_, err := writer.Write(rep)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(rep)
		return err
	}

	// Human-readable report (default)
	writer := report.NewTextWriter(output, report.WithVerbose(cfg.Verbose))
	_, err := writer.Write(rep)
	return err
}
