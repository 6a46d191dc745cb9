// Package autocheck produces an initial score and routing decision for every
// newly extracted claim, without human involvement.
//
// Six independent scorers feed a weighted aggregate; override rules applied
// after the score can only tighten the outcome, never loosen it. A claim the
// engine cannot score with confidence always routes to human review rather
// than auto-approval.
package autocheck

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jmertens/veracity/internal/model"
	"github.com/jmertens/veracity/internal/store"
	"github.com/jmertens/veracity/internal/worker"
)

// Routing thresholds on the weighted aggregate. Scores in [50,80) and below
// 50 currently route identically; the 50 boundary is retained as the band
// edge operators tune.
const (
	autoApproveThreshold = 80
	lowerBandThreshold   = 50
)

// Store is the persistence surface the engine needs
type Store interface {
	UpdateClaims(ctx context.Context, claims []model.Claim) error
}

// Breakdown is the transparent per-scorer view of one assessment. All values
// except ToxicityRaw are on the [0,100] scale. ToxicityRaw is on [0,1] and
// inverted (higher means more toxic); it enters the weighted sum unrescaled,
// so the toxicity override, not the weight, is the effective safeguard.
type Breakdown struct {
	SourceMatch float64 `json:"source_match"`
	ClaimType   float64 `json:"claim_type"`
	Consistency float64 `json:"consistency"`
	Temporal    float64 `json:"temporal"`
	Hedging     float64 `json:"hedging"`
	ToxicityRaw float64 `json:"toxicity_raw"`
	Weighted    float64 `json:"weighted"`
}

// Assessment is the outcome of scoring one claim
type Assessment struct {
	Breakdown Breakdown
	Status    model.ClaimStatus
	Forced    bool   // An override rule fired
	ForcedBy  string // Which one ("toxicity" or "risk-keyword:<kw>")
}

// Engine scores batches of claims concurrently
type Engine struct {
	store  Store
	pool   *worker.Pool
	logger *zap.Logger
}

// New creates an auto-check engine
func New(st Store, cfg model.AutoCheckConfig, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store:  st,
		pool:   worker.NewPool(cfg.Workers),
		logger: logger,
	}
}

// Evaluate scores a single claim. Pure: no store access, no mutation of c.
func Evaluate(c model.Claim) (Assessment, error) {
	if strings.TrimSpace(c.Text) == "" {
		return Assessment{}, fmt.Errorf("claim %s: empty claim text", c.ID)
	}
	if !c.Type.Valid() {
		return Assessment{}, fmt.Errorf("claim %s: invalid claim type %q", c.ID, c.Type)
	}

	b := Breakdown{
		SourceMatch: scoreSourceMatch(c.Text),
		ClaimType:   scoreClaimType(c),
		Consistency: consistencyStubScore,
		Temporal:    temporalStubScore,
		Hedging:     scoreHedging(c.Text),
		ToxicityRaw: scoreToxicity(c.Text),
	}
	b.Weighted = weightSourceMatch*b.SourceMatch +
		weightClaimType*b.ClaimType +
		weightConsistency*b.Consistency +
		weightTemporal*b.Temporal +
		weightHedging*b.Hedging +
		weightToxicity*b.ToxicityRaw

	a := Assessment{Breakdown: b}
	switch {
	case b.Weighted >= autoApproveThreshold:
		a.Status = model.StatusAutoApproved
	case b.Weighted >= lowerBandThreshold:
		a.Status = model.StatusHumanReview
	default:
		a.Status = model.StatusHumanReview
	}

	// Overrides run after the score-based decision and can only force
	// review. Even a perfect aggregate does not bypass them.
	if b.ToxicityRaw > toxicityOverrideThreshold {
		a.Status = model.StatusHumanReview
		a.Forced = true
		a.ForcedBy = "toxicity"
	}
	if kw, found := riskKeywordIn(c.Text); found {
		a.Status = model.StatusHumanReview
		a.Forced = true
		a.ForcedBy = "risk-keyword:" + kw
	}

	return a, nil
}

// CheckClaims scores every claim in the batch concurrently, updates claim
// statuses in the store and returns the updated claims. Claims are processed
// independently: a single malformed claim is logged and passed through
// unchanged, never aborting the rest of the batch. Claims already locked by
// a human decision are left untouched. The engine never sets verdict_at;
// that is the verdict pass's marker.
func (e *Engine) CheckClaims(ctx context.Context, claims []model.Claim) ([]model.Claim, error) {
	out := make([]model.Claim, len(claims))
	copy(out, claims)

	assessed := make([]bool, len(claims))

	e.pool.Each(ctx, len(out), func(_ context.Context, i int) {
		if out[i].Status.Terminal() {
			return
		}
		a, err := Evaluate(out[i])
		if err != nil {
			e.logger.Warn("auto-check skipped claim",
				zap.String("claim_id", out[i].ID),
				zap.Error(err))
			return
		}
		if a.Forced {
			e.logger.Info("auto-check forced human review",
				zap.String("claim_id", out[i].ID),
				zap.String("reason", a.ForcedBy),
				zap.Float64("weighted_score", a.Breakdown.Weighted))
		}
		out[i].Status = a.Status
		assessed[i] = true
	})

	var updated []model.Claim
	for i := range out {
		if assessed[i] {
			updated = append(updated, out[i])
		}
	}
	if err := e.store.UpdateClaims(ctx, updated); err != nil {
		return nil, fmt.Errorf("persist auto-check results: %w", err)
	}
	return out, nil
}

var _ Store = (*store.Store)(nil)
