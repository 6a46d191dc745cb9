// Package pipeline wires the fact-checking stages together.
//
// One run handles one script, synchronously through the stages: extract →
// auto-check → collect evidence → rank → verdict. Within a stage, claims are
// processed concurrently since no claim's outcome depends on another's.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jmertens/veracity/internal/autocheck"
	"github.com/jmertens/veracity/internal/cache"
	"github.com/jmertens/veracity/internal/evidence"
	"github.com/jmertens/veracity/internal/extract"
	"github.com/jmertens/veracity/internal/llm"
	"github.com/jmertens/veracity/internal/model"
	"github.com/jmertens/veracity/internal/store"
	"github.com/jmertens/veracity/internal/verdict"
)

// Pipeline runs the full claim lifecycle for a script
type Pipeline struct {
	extractor *extract.Extractor
	checker   *autocheck.Engine
	collector *evidence.Collector
	verdicts  *verdict.Engine
	logger    *zap.Logger
}

// Result is the outcome of one pipeline run
type Result struct {
	Claims   []model.Claim    // All persisted claims with their final statuses
	Evidence []model.Evidence // Ranked evidence, best first
}

// New builds a pipeline from configuration. The store must already have its
// schema initialized.
func New(st *store.Store, cfg *model.Config, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	classifier, err := llm.NewClassifier(cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}

	source, err := buildSource(cfg.Evidence)
	if err != nil {
		return nil, fmt.Errorf("build evidence source: %w", err)
	}

	var evCache cache.Cache
	if cfg.Evidence.CacheTTL > 0 {
		evCache = cache.NewMemoryCache(cfg.Evidence.CacheTTL, cfg.Evidence.CacheTTL)
	}

	return &Pipeline{
		extractor: extract.New(st, classifier, cfg.Extract, logger),
		checker:   autocheck.New(st, cfg.AutoCheck, logger),
		collector: evidence.NewCollector(st, source, evCache, cfg.Evidence, logger),
		verdicts:  verdict.New(st, logger),
		logger:    logger,
	}, nil
}

// NewWithComponents assembles a pipeline from pre-built stages; used by
// tests and callers that need custom sources or classifiers.
func NewWithComponents(ex *extract.Extractor, ac *autocheck.Engine, col *evidence.Collector, ve *verdict.Engine, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{extractor: ex, checker: ac, collector: col, verdicts: ve, logger: logger}
}

func buildSource(cfg model.EvidenceConfig) (evidence.Source, error) {
	switch cfg.Source {
	case "", "stub":
		return evidence.NewStubSource(0, 0), nil
	case "http":
		return evidence.NewHTTPSource(cfg)
	}
	return nil, fmt.Errorf("unknown evidence source %q", cfg.Source)
}

// Run processes one script end to end and returns the final claim statuses
// with the ranked evidence behind them.
func (p *Pipeline) Run(ctx context.Context, scriptText, scriptID string) (*Result, error) {
	claims, err := p.extractor.Extract(ctx, scriptText, scriptID)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	p.logger.Info("claims extracted",
		zap.String("script_id", scriptID),
		zap.Int("claims", len(claims)))

	if len(claims) == 0 {
		return &Result{}, nil
	}

	claims, err = p.checker.CheckClaims(ctx, claims)
	if err != nil {
		return nil, fmt.Errorf("auto-check: %w", err)
	}

	collected, err := p.collector.Collect(ctx, claims)
	if err != nil {
		return nil, fmt.Errorf("collect evidence: %w", err)
	}

	ranked := evidence.Rank(collected)

	claims, err = p.verdicts.Decide(ctx, claims, ranked)
	if err != nil {
		return nil, fmt.Errorf("verdict: %w", err)
	}

	return &Result{Claims: claims, Evidence: ranked}, nil
}
