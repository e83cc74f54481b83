package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/wikiqual/wikiqual/internal/analyzer"
	"github.com/wikiqual/wikiqual/internal/config"
	"github.com/wikiqual/wikiqual/internal/model"
	"github.com/wikiqual/wikiqual/internal/redundancy"
	"github.com/wikiqual/wikiqual/internal/rules"
	"github.com/wikiqual/wikiqual/internal/scoring"
)

// LoadArticleStep reads and decodes the article document for the run.
// The document is the JSON form of the normalized article model produced
// by an external extractor.
//
// Design decision: Loading is a separate step because:
// 1. It's the foundation every later step depends on
// 2. Batch runs can surface per-document load failures individually
// 3. Tests can skip it by pre-filling the run's Article
type LoadArticleStep struct {
	// maxSize limits the document size in bytes.
	maxSize int64

	// logger for structured logging.
	logger *slog.Logger
}

// LoadArticleStepOption configures a LoadArticleStep.
type LoadArticleStepOption func(*LoadArticleStep)

// WithArticleMaxSize sets the maximum article document size in bytes.
func WithArticleMaxSize(size int64) LoadArticleStepOption {
	return func(s *LoadArticleStep) {
		s.maxSize = size
	}
}

// WithArticleLogger sets a custom logger for the article load step.
func WithArticleLogger(logger *slog.Logger) LoadArticleStepOption {
	return func(s *LoadArticleStep) {
		s.logger = logger
	}
}

// NewLoadArticleStep creates a new article loading step.
func NewLoadArticleStep(opts ...LoadArticleStepOption) *LoadArticleStep {
	s := &LoadArticleStep{
		maxSize: config.DefaultMaxArticleSize,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *LoadArticleStep) Name() string {
	return "load_article"
}

// Do executes the article load step.
func (s *LoadArticleStep) Do(_ context.Context, run *Run) error {
	info, err := os.Stat(run.ArticlePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrArticleNotFound, run.ArticlePath)
		}
		return err
	}
	if s.maxSize > 0 && info.Size() > s.maxSize {
		return fmt.Errorf("%w: %s is %d bytes (limit %d)",
			ErrArticleTooLarge, run.ArticlePath, info.Size(), s.maxSize)
	}

	data, err := os.ReadFile(run.ArticlePath) //nolint:gosec // User-provided article path is intentional
	if err != nil {
		return err
	}

	var article model.Article
	if err := json.Unmarshal(data, &article); err != nil {
		return fmt.Errorf("decode article %s: %w", run.ArticlePath, err)
	}

	// Fall back to the file name when the document carries no title
	if article.Title == "" {
		base := filepath.Base(run.ArticlePath)
		article.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	run.Article = &article
	s.logger.Debug("article loaded",
		"path", run.ArticlePath,
		"title", article.Title,
		"length", article.Length(),
	)

	return nil
}

// LoadRulesStep loads the grammar rule set, optionally through the
// sqlite pull-through cache.
//
// Design decision: Rule loading is a separate step because:
// 1. Rule files are shared across a batch; each run still records what it used
// 2. A broken rule file can fall back to the built-in rules with
//    continue-on-error instead of aborting the run
// 3. The cache stays an explicit dependency rather than hidden global state
type LoadRulesStep struct {
	// rulePath is the YAML rule file path; empty selects the built-in rules.
	rulePath string

	// cacheDir is the sqlite cache directory; empty disables caching.
	cacheDir string

	// logger for structured logging.
	logger *slog.Logger
}

// LoadRulesStepOption configures a LoadRulesStep.
type LoadRulesStepOption func(*LoadRulesStep)

// WithRuleCacheDir sets the sqlite cache directory.
func WithRuleCacheDir(dir string) LoadRulesStepOption {
	return func(s *LoadRulesStep) {
		s.cacheDir = dir
	}
}

// WithRulesLogger sets a custom logger for the rule load step.
func WithRulesLogger(logger *slog.Logger) LoadRulesStepOption {
	return func(s *LoadRulesStep) {
		s.logger = logger
	}
}

// NewLoadRulesStep creates a new rule loading step for the given rule
// file path. An empty path selects the built-in default rules.
func NewLoadRulesStep(rulePath string, opts ...LoadRulesStepOption) *LoadRulesStep {
	s := &LoadRulesStep{
		rulePath: rulePath,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *LoadRulesStep) Name() string {
	return "load_rules"
}

// Do executes the rule load step.
func (s *LoadRulesStep) Do(ctx context.Context, run *Run) error {
	var cache *rules.Cache
	if s.cacheDir != "" && s.rulePath != "" {
		c, err := rules.OpenCache(s.cacheDir)
		if err != nil {
			// Cache failures never block a run; fall back to plain loading
			s.logger.Warn("rule cache unavailable",
				"dir", s.cacheDir,
				"error", err,
			)
		} else {
			cache = c
			defer func() {
				if err := cache.Close(); err != nil {
					s.logger.Warn("rule cache close failed", "error", err)
				}
			}()
		}
	}

	result, err := rules.LoadWithCache(ctx, s.rulePath, cache, s.logger)
	if err != nil {
		return err
	}

	run.Rules = result.Rules
	run.SkippedRules = result.Skipped
	s.logger.Debug("rules loaded",
		"path", s.rulePath,
		"rules", len(result.Rules),
		"skipped", result.Skipped,
	)

	return nil
}

// AnalyzeStep runs every axis analyzer over the loaded article.
//
// Design decision: Analysis is a single step rather than one step per
// axis because the coordinator already fans the axes out concurrently;
// the pipeline only needs the aggregate result.
type AnalyzeStep struct {
	// redundancyOpts tune the near-duplicate detector.
	redundancyOpts []redundancy.Option

	// logger for structured logging.
	logger *slog.Logger
}

// AnalyzeStepOption configures an AnalyzeStep.
type AnalyzeStepOption func(*AnalyzeStep)

// WithAnalyzeRedundancyOptions sets near-duplicate detector options.
func WithAnalyzeRedundancyOptions(opts ...redundancy.Option) AnalyzeStepOption {
	return func(s *AnalyzeStep) {
		s.redundancyOpts = opts
	}
}

// WithAnalyzeLogger sets a custom logger for the analyze step.
func WithAnalyzeLogger(logger *slog.Logger) AnalyzeStepOption {
	return func(s *AnalyzeStep) {
		s.logger = logger
	}
}

// NewAnalyzeStep creates a new analysis step.
func NewAnalyzeStep(opts ...AnalyzeStepOption) *AnalyzeStep {
	s := &AnalyzeStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do executes the analysis step.
func (s *AnalyzeStep) Do(ctx context.Context, run *Run) error {
	if run.Article == nil {
		return ErrNoLoadedArticle
	}

	coordinator := analyzer.NewCoordinator(
		analyzer.WithGrammarRules(run.Rules),
		analyzer.WithRedundancyOptions(s.redundancyOpts...),
		analyzer.WithLogger(s.logger),
	)

	results, err := coordinator.Analyze(ctx, run.Article)
	if err != nil {
		return err
	}

	run.Results = results
	s.logger.Debug("analysis completed",
		"title", run.Article.Title,
		"axes", len(results),
	)

	return nil
}

// ScoreStep aggregates the axis results into the final report.
type ScoreStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// ScoreStepOption configures a ScoreStep.
type ScoreStepOption func(*ScoreStep)

// WithScoreLogger sets a custom logger for the score step.
func WithScoreLogger(logger *slog.Logger) ScoreStepOption {
	return func(s *ScoreStep) {
		s.logger = logger
	}
}

// NewScoreStep creates a new scoring step.
func NewScoreStep(opts ...ScoreStepOption) *ScoreStep {
	s := &ScoreStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ScoreStep) Name() string {
	return "score"
}

// Do executes the scoring step.
func (s *ScoreStep) Do(_ context.Context, run *Run) error {
	if run.Article == nil {
		return ErrNoLoadedArticle
	}
	if run.Results == nil {
		return ErrNoAxisResults
	}

	engine := scoring.NewEngine(s.logger)
	report, err := engine.Calculate(run.Article.Title, run.Results)
	if err != nil {
		return err
	}

	run.Report = report
	s.logger.Info("scoring completed",
		"title", run.Article.Title,
		"total", report.Total,
		"tier", report.TierName,
	)

	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// RulePath is the YAML rule file path; empty selects the built-in rules.
	RulePath string

	// CacheDir is the sqlite rule cache directory; empty disables caching.
	CacheDir string

	// MaxArticleSize is the maximum article document size in bytes.
	MaxArticleSize int64

	// RedundancyOptions tune the near-duplicate detector.
	RedundancyOptions []redundancy.Option

	// Logger is passed to every step.
	Logger *slog.Logger
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineRulePath sets the rule file path for the pipeline.
func WithPipelineRulePath(path string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.RulePath = path
	}
}

// WithPipelineCacheDir sets the rule cache directory for the pipeline.
func WithPipelineCacheDir(dir string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.CacheDir = dir
	}
}

// WithPipelineMaxArticleSize sets the maximum article document size.
func WithPipelineMaxArticleSize(size int64) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.MaxArticleSize = size
	}
}

// WithPipelineRedundancyOptions sets near-duplicate detector options.
func WithPipelineRedundancyOptions(opts ...redundancy.Option) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.RedundancyOptions = opts
	}
}

// WithPipelineStepLogger sets the logger passed to every step.
func WithPipelineStepLogger(logger *slog.Logger) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Logger = logger
	}
}

// DefaultPipeline creates a pipeline with all default steps configured.
// This is the standard pipeline for scoring one article document.
//
// Design decision: We provide a default pipeline because:
// 1. Most users want the full run
// 2. Reduces boilerplate in CLI
// 3. Ensures consistent ordering
//
// The first variadic parameter accepts pipeline options (WithLogger, etc).
// The second accepts pipeline config options (WithPipelineRulePath, etc).
func DefaultPipeline(pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		MaxArticleSize: config.DefaultMaxArticleSize,
		Logger:         slog.Default(),
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	// Add steps in logical order
	p.AddSteps(
		NewLoadArticleStep(
			WithArticleMaxSize(cfg.MaxArticleSize),
			WithArticleLogger(cfg.Logger),
		),
		NewLoadRulesStep(cfg.RulePath,
			WithRuleCacheDir(cfg.CacheDir),
			WithRulesLogger(cfg.Logger),
		),
		NewAnalyzeStep(
			WithAnalyzeRedundancyOptions(cfg.RedundancyOptions...),
			WithAnalyzeLogger(cfg.Logger),
		),
		NewScoreStep(
			WithScoreLogger(cfg.Logger),
		),
	)

	return p
}
