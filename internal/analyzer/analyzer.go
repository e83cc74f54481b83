package analyzer

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wikiqual/wikiqual/internal/model"
	"github.com/wikiqual/wikiqual/internal/redundancy"
	"github.com/wikiqual/wikiqual/internal/rules"
)

// AxisAnalyzer defines the interface for individual axis analyzers.
// Each analyzer focuses on a single quality dimension of the article.
//
// Design decision: We use an interface rather than concrete types because:
//  1. Allows for easy extension with new axes
//  2. Enables testing with mock analyzers
//  3. The coordinator and the scoring engine only care about the shape
//     of the result, never about how an axis computed it
type AxisAnalyzer interface {
	// Name returns the axis name used as the result map key.
	Name() string

	// Max returns the axis score ceiling.
	Max() float64

	// Analyze evaluates the article along this axis. The article is
	// read-only; an empty FullText yields the axis's defined zero
	// result rather than an error.
	Analyze(ctx context.Context, article *model.Article) (model.AxisResult, error)
}

// Options configures the coordinator and the analyzers it registers.
type Options struct {
	// GrammarRules is the rule set applied by the language and grammar
	// axes. Defaults to the built-in rules.
	GrammarRules []rules.Rule

	// RedundancyOptions adjust the near-duplicate detector bounds.
	RedundancyOptions []redundancy.Option

	// Logger receives per-axis progress and skip warnings.
	Logger *slog.Logger
}

// DefaultOptions returns sensible default coordinator options.
func DefaultOptions() Options {
	return Options{
		GrammarRules: rules.DefaultRules(),
		Logger:       slog.Default(),
	}
}

// WithGrammarRules overrides the grammar rule set.
func WithGrammarRules(ruleList []rules.Rule) func(*Options) {
	return func(o *Options) { o.GrammarRules = ruleList }
}

// WithRedundancyOptions overrides the redundancy detector bounds.
func WithRedundancyOptions(opts ...redundancy.Option) func(*Options) {
	return func(o *Options) { o.RedundancyOptions = opts }
}

// WithLogger overrides the coordinator logger.
func WithLogger(logger *slog.Logger) func(*Options) {
	return func(o *Options) { o.Logger = logger }
}

// Coordinator runs every registered axis analyzer over one article and
// collects the results keyed by axis name.
//
// Design decision: We use a coordinator pattern rather than having the
// caller run analyzers independently because:
//  1. Axes are independent, so they fan out concurrently
//  2. Consistent context and cancellation handling in one place
//  3. The scoring engine receives one complete result map
type Coordinator struct {
	analyzers []AxisAnalyzer
	logger    *slog.Logger
}

// NewCoordinator creates a Coordinator with all built-in axis analyzers
// registered.
func NewCoordinator(opts ...func(*Options)) *Coordinator {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	c := &Coordinator{
		logger:    options.Logger,
		analyzers: make([]AxisAnalyzer, 0, 9),
	}

	detector := redundancy.NewDetector(options.RedundancyOptions...)

	c.Register(NewLanguageAnalyzer(options.GrammarRules, detector, options.Logger))
	c.Register(NewStructureAnalyzer())
	c.Register(NewReferenceAnalyzer())
	c.Register(NewMediaAnalyzer())
	c.Register(NewLinkAnalyzer())
	c.Register(NewGrammarAnalyzer(options.GrammarRules, options.Logger))
	c.Register(NewMaintenanceAnalyzer())
	c.Register(NewRevisionAnalyzer())
	c.Register(NewCrossProjectAnalyzer())

	return c
}

// Register adds an analyzer to the coordinator.
func (c *Coordinator) Register(analyzer AxisAnalyzer) {
	c.analyzers = append(c.analyzers, analyzer)
}

// Analyze runs every registered axis over the article concurrently and
// returns the results keyed by axis name. The first axis error cancels
// the remaining axes and is returned; in practice axes only fail on
// context cancellation.
func (c *Coordinator) Analyze(ctx context.Context, article *model.Article) (map[string]model.AxisResult, error) {
	results := make(map[string]model.AxisResult, len(c.analyzers))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, a := range c.analyzers {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			c.logger.Debug("running axis analyzer", "axis", a.Name())
			result, err := a.Analyze(ctx, article)
			if err != nil {
				return err
			}

			mu.Lock()
			results[a.Name()] = result
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
