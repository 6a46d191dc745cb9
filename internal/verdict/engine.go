// Package verdict is the second-pass aggregation that grounds each claim's
// status in its collected evidence.
//
// Unlike auto-check, a verdict pass always stamps verdict_at: the timestamp
// is the authoritative "a verdict has run" marker, independent of whether
// the status changed. Both passes may move a claim between auto-approved and
// human-review as better evidence arrives; only a human decision locks it.
package verdict

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jmertens/veracity/internal/model"
	"github.com/jmertens/veracity/internal/store"
)

// A mean evidence score at or above this auto-approves the claim. Everything
// below, including claims with no evidence at all (mean 0), goes to human
// review; the sub-80 bands deliberately collapse to the same outcome.
const approveThreshold = 80

// Store is the persistence surface the engine needs
type Store interface {
	UpdateClaims(ctx context.Context, claims []model.Claim) error
}

// Engine issues evidence-grounded verdicts
type Engine struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// New creates a verdict engine
func New(st Store, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{store: st, logger: logger, now: time.Now}
}

// MeanScore returns the arithmetic mean of the evidence scores, 0 if none
func MeanScore(evidence []model.Evidence) float64 {
	if len(evidence) == 0 {
		return 0
	}
	var sum float64
	for _, ev := range evidence {
		sum += ev.EvidenceScore
	}
	return sum / float64(len(evidence))
}

// Decide computes a verdict for every claim from its evidence, persists the
// updated statuses and returns the updated claims. Claims locked by a human
// decision keep their status but are not restamped.
func (e *Engine) Decide(ctx context.Context, claims []model.Claim, evidence []model.Evidence) ([]model.Claim, error) {
	byClaim := make(map[string][]model.Evidence)
	for _, ev := range evidence {
		byClaim[ev.ClaimID] = append(byClaim[ev.ClaimID], ev)
	}

	now := e.now().UTC()
	out := make([]model.Claim, len(claims))
	copy(out, claims)

	var decided []model.Claim
	for i := range out {
		if out[i].Status.Terminal() {
			continue
		}

		mean := MeanScore(byClaim[out[i].ID])
		if mean >= approveThreshold {
			out[i].Status = model.StatusAutoApproved
		} else {
			out[i].Status = model.StatusHumanReview
		}

		stamp := now
		out[i].VerdictAt = &stamp
		decided = append(decided, out[i])

		e.logger.Debug("verdict issued",
			zap.String("claim_id", out[i].ID),
			zap.Float64("mean_evidence_score", mean),
			zap.Int("evidence_rows", len(byClaim[out[i].ID])),
			zap.String("status", string(out[i].Status)))
	}

	if err := e.store.UpdateClaims(ctx, decided); err != nil {
		return nil, fmt.Errorf("persist verdicts: %w", err)
	}
	return out, nil
}

var _ Store = (*store.Store)(nil)
