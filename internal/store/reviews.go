package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmertens/veracity/internal/model"
)

// InsertReview appends one review row. Reviews form the audit trail and are
// immutable once written; there is deliberately no update or delete.
func (s *Store) InsertReview(ctx context.Context, review model.Review) error {
	if !review.Action.Valid() {
		return fmt.Errorf("insert review %s: invalid action %q", review.ID, review.Action)
	}

	var reviewer, notes any
	if review.ReviewerID != "" {
		reviewer = review.ReviewerID
	}
	if review.Notes != "" {
		notes = review.Notes
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (id, claim_id, reviewer_id, action, action_notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		review.ID, review.ClaimID, reviewer, string(review.Action), notes, review.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert review %s for claim %s: %w", review.ID, review.ClaimID, err)
	}
	return nil
}

// ReviewsByClaim returns the full audit trail for a claim, oldest first
func (s *Store) ReviewsByClaim(ctx context.Context, claimID string) ([]model.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, claim_id, reviewer_id, action, action_notes, created_at
		FROM reviews WHERE claim_id = ? ORDER BY created_at, id`, claimID)
	if err != nil {
		return nil, fmt.Errorf("query reviews for claim %s: %w", claimID, err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Review
	for rows.Next() {
		var r model.Review
		var action string
		var reviewer, notes sql.NullString
		if err := rows.Scan(&r.ID, &r.ClaimID, &reviewer, &action, &notes, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		r.Action = model.ReviewAction(action)
		r.ReviewerID = reviewer.String
		r.Notes = notes.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return out, nil
}

// InsertCorrection records a public correction against a published claim
func (s *Store) InsertCorrection(ctx context.Context, c model.Correction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO corrections (id, video_id, original_claim_id, correction_text, correction_posted_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.VideoID, c.OriginalClaimID, c.Text, c.PostedAt)
	if err != nil {
		return fmt.Errorf("insert correction %s: %w", c.ID, err)
	}
	return nil
}

// CorrectionsByClaim returns corrections issued against a claim
func (s *Store) CorrectionsByClaim(ctx context.Context, claimID string) ([]model.Correction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, video_id, original_claim_id, correction_text, correction_posted_at
		FROM corrections WHERE original_claim_id = ? ORDER BY correction_posted_at, id`, claimID)
	if err != nil {
		return nil, fmt.Errorf("query corrections for claim %s: %w", claimID, err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Correction
	for rows.Next() {
		var c model.Correction
		if err := rows.Scan(&c.ID, &c.VideoID, &c.OriginalClaimID, &c.Text, &c.PostedAt); err != nil {
			return nil, fmt.Errorf("scan correction: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate corrections: %w", err)
	}
	return out, nil
}
