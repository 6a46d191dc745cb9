// Package review is the human-in-the-loop gateway of the pipeline.
//
// Claims in human-review wait here for a person to approve, edit or reject
// them. Every decision is appended to an immutable audit trail; the claim's
// status becomes terminal and no automatic pass touches it again.
package review

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jmertens/veracity/internal/model"
	"github.com/jmertens/veracity/internal/store"
)

// Store is the persistence surface the gateway needs
type Store interface {
	ClaimByID(ctx context.Context, id string) (*model.Claim, error)
	ClaimsByStatus(ctx context.Context, status model.ClaimStatus) ([]model.Claim, error)
	UpdateClaims(ctx context.Context, claims []model.Claim) error
	InsertReview(ctx context.Context, review model.Review) error
	InsertCorrection(ctx context.Context, c model.Correction) error
	ReviewsByClaim(ctx context.Context, claimID string) ([]model.Review, error)
}

// Gateway mediates human review decisions
type Gateway struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// New creates a review gateway
func New(st Store, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{store: st, logger: logger, now: time.Now}
}

// PendingReviews returns all claims currently waiting for a human decision
func (g *Gateway) PendingReviews(ctx context.Context) ([]model.Claim, error) {
	return g.store.ClaimsByStatus(ctx, model.StatusHumanReview)
}

// SubmitReview records a reviewer decision for the claim: a review row is
// appended to the audit trail and the claim moves to the terminal status the
// action maps to (approve→approved, edit→corrected, reject→rejected), with
// verdict_at updated. An unknown claim id is an explicit error, never a
// silent success.
func (g *Gateway) SubmitReview(ctx context.Context, claimID, reviewerID string, action model.ReviewAction, notes string) (*model.Claim, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("submit review: invalid action %q", action)
	}

	claim, err := g.store.ClaimByID(ctx, claimID)
	if err != nil {
		return nil, fmt.Errorf("submit review: %w", err)
	}

	now := g.now().UTC()
	rec := model.Review{
		ID:         uuid.NewString(),
		ClaimID:    claim.ID,
		ReviewerID: reviewerID,
		Action:     action,
		Notes:      notes,
		CreatedAt:  now,
	}
	if err := g.store.InsertReview(ctx, rec); err != nil {
		return nil, fmt.Errorf("submit review: %w", err)
	}

	claim.Status = action.ClaimStatus()
	claim.VerdictAt = &now
	if err := g.store.UpdateClaims(ctx, []model.Claim{*claim}); err != nil {
		return nil, fmt.Errorf("submit review: %w", err)
	}

	g.logger.Info("review submitted",
		zap.String("claim_id", claim.ID),
		zap.String("reviewer_id", reviewerID),
		zap.String("action", string(action)),
		zap.String("status", string(claim.Status)))

	return claim, nil
}

// SubmitCorrection issues a public correction against a claim. Whether an
// edit or reject decision warrants one is the caller's call; the gateway
// never creates corrections on its own.
func (g *Gateway) SubmitCorrection(ctx context.Context, videoID, claimID, text string) (*model.Correction, error) {
	if text == "" {
		return nil, fmt.Errorf("submit correction: empty correction text")
	}

	if _, err := g.store.ClaimByID(ctx, claimID); err != nil {
		return nil, fmt.Errorf("submit correction: %w", err)
	}

	c := model.Correction{
		ID:              uuid.NewString(),
		VideoID:         videoID,
		OriginalClaimID: claimID,
		Text:            text,
		PostedAt:        g.now().UTC(),
	}
	if err := g.store.InsertCorrection(ctx, c); err != nil {
		return nil, fmt.Errorf("submit correction: %w", err)
	}
	return &c, nil
}

// AuditTrail returns the full review history for a claim, oldest first
func (g *Gateway) AuditTrail(ctx context.Context, claimID string) ([]model.Review, error) {
	return g.store.ReviewsByClaim(ctx, claimID)
}

var _ Store = (*store.Store)(nil)
