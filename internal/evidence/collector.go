package evidence

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jmertens/veracity/internal/cache"
	"github.com/jmertens/veracity/internal/model"
	"github.com/jmertens/veracity/internal/store"
	"github.com/jmertens/veracity/internal/worker"
)

// Store is the persistence surface the collector needs
type Store interface {
	InsertEvidence(ctx context.Context, evidence []model.Evidence) error
}

// cachedRow is the claim-independent part of an evidence row. Caching is
// keyed on claim text, so rows are re-associated with the requesting claim
// on every hit.
type cachedRow struct {
	SourceURL     string           `json:"source_url"`
	SourceType    model.SourceType `json:"source_type"`
	SnapshotPath  string           `json:"snapshot_path,omitempty"`
	EvidenceScore float64          `json:"evidence_score"`
}

// Collector fetches evidence for batches of claims. Fetches run concurrently
// with a per-claim timeout; a failed or timed-out fetch yields zero evidence
// for that claim and never blocks the others. Only the final persistence
// write can fail the batch.
type Collector struct {
	store    Store
	source   Source
	cache    cache.Cache
	cacheTTL time.Duration
	pool     *worker.Pool
	timeout  time.Duration
	logger   *zap.Logger
}

// NewCollector creates a collector. A nil cache disables memoization.
func NewCollector(st Store, source Source, c cache.Cache, cfg model.EvidenceConfig, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Collector{
		store:    st,
		source:   source,
		cache:    c,
		cacheTTL: cfg.CacheTTL,
		pool:     worker.NewPool(cfg.Workers),
		timeout:  timeout,
		logger:   logger,
	}
}

// Collect fetches evidence for every claim, persists it and returns the rows
// in claim order.
func (c *Collector) Collect(ctx context.Context, claims []model.Claim) ([]model.Evidence, error) {
	perClaim := make([][]model.Evidence, len(claims))

	c.pool.Each(ctx, len(claims), func(ctx context.Context, i int) {
		perClaim[i] = c.collectOne(ctx, claims[i])
	})

	var all []model.Evidence
	for _, rows := range perClaim {
		all = append(all, rows...)
	}

	if err := c.store.InsertEvidence(ctx, all); err != nil {
		return nil, err
	}
	return all, nil
}

// collectOne fetches evidence for a single claim. Every failure mode maps to
// zero evidence: the downstream verdict then routes the claim to human
// review, which is the conservative outcome.
func (c *Collector) collectOne(ctx context.Context, claim model.Claim) []model.Evidence {
	if rows, ok := c.cacheLookup(claim); ok {
		return rows
	}

	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fetched, err := c.source.FetchEvidence(fetchCtx, claim)
	if err != nil {
		c.logger.Warn("evidence fetch failed, treating as no evidence",
			zap.String("claim_id", claim.ID),
			zap.Error(err))
		return nil
	}

	rows := c.materialize(claim, toCachedRows(fetched))
	c.cacheStore(claim, fetched)
	return rows
}

func (c *Collector) cacheLookup(claim model.Claim) ([]model.Evidence, bool) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return nil, false
	}
	raw, found := c.cache.Get(cache.Key(claim.Text))
	if !found {
		return nil, false
	}
	var cached []cachedRow
	if err := json.Unmarshal(raw, &cached); err != nil {
		_ = c.cache.Delete(cache.Key(claim.Text))
		return nil, false
	}
	return c.materialize(claim, cached), true
}

func (c *Collector) cacheStore(claim model.Claim, fetched []model.Evidence) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(toCachedRows(fetched))
	if err != nil {
		return
	}
	_ = c.cache.Set(cache.Key(claim.Text), raw, c.cacheTTL)
}

// materialize turns claim-independent rows into evidence owned by the claim
func (c *Collector) materialize(claim model.Claim, cached []cachedRow) []model.Evidence {
	now := time.Now().UTC()
	rows := make([]model.Evidence, 0, len(cached))
	for _, r := range cached {
		sourceType := r.SourceType
		if !sourceType.Valid() {
			sourceType = model.SourceNews
		}
		rows = append(rows, model.Evidence{
			ID:            uuid.NewString(),
			ClaimID:       claim.ID,
			SourceURL:     r.SourceURL,
			SourceType:    sourceType,
			FetchedAt:     now,
			SnapshotPath:  r.SnapshotPath,
			EvidenceScore: clampScore(r.EvidenceScore),
		})
	}
	return rows
}

func toCachedRows(fetched []model.Evidence) []cachedRow {
	rows := make([]cachedRow, 0, len(fetched))
	for _, ev := range fetched {
		rows = append(rows, cachedRow{
			SourceURL:     ev.SourceURL,
			SourceType:    ev.SourceType,
			SnapshotPath:  ev.SnapshotPath,
			EvidenceScore: ev.EvidenceScore,
		})
	}
	return rows
}

func clampScore(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Min(math.Max(score, 0), 100)
}

var _ Store = (*store.Store)(nil)
