package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmertens/veracity/internal/model"
)

const claimColumns = `id, script_id, claim_text, claim_type, extracted_at, nlp_confidence, status, verdict_at, sentence_idx`

// UpsertClaims bulk inserts or replaces claims by id inside a single
// transaction. Bookkeeping (updated_at) is refreshed on every write.
func (s *Store) UpsertClaims(ctx context.Context, claims []model.Claim) error {
	if len(claims) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO claims (`+claimColumns+`, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			script_id = excluded.script_id,
			claim_text = excluded.claim_text,
			claim_type = excluded.claim_type,
			extracted_at = excluded.extracted_at,
			nlp_confidence = excluded.nlp_confidence,
			status = excluded.status,
			verdict_at = excluded.verdict_at,
			sentence_idx = excluded.sentence_idx,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC()
	for _, c := range claims {
		if !c.Type.Valid() {
			return fmt.Errorf("upsert claim %s: invalid claim type %q", c.ID, c.Type)
		}
		if !c.Status.Valid() {
			return fmt.Errorf("upsert claim %s: invalid status %q", c.ID, c.Status)
		}
		if _, err := stmt.ExecContext(ctx,
			c.ID, c.ScriptID, c.Text, string(c.Type), c.ExtractedAt,
			c.NLPConfidence, string(c.Status), nullableTime(c.VerdictAt), c.Sentence, now,
		); err != nil {
			return fmt.Errorf("upsert claim %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

// UpdateClaims updates status and verdict bookkeeping for existing claims.
// Unknown ids are a hard error: updating a claim that was never extracted
// means the pipeline and the store have diverged.
func (s *Store) UpdateClaims(ctx context.Context, claims []model.Claim) error {
	if len(claims) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE claims SET status = ?, verdict_at = ?, updated_at = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("prepare update: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC()
	for _, c := range claims {
		if !c.Status.Valid() {
			return fmt.Errorf("update claim %s: invalid status %q", c.ID, c.Status)
		}
		res, err := stmt.ExecContext(ctx, string(c.Status), nullableTime(c.VerdictAt), now, c.ID)
		if err != nil {
			return fmt.Errorf("update claim %s: %w", c.ID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update claim %s: %w", c.ID, err)
		}
		if affected == 0 {
			return fmt.Errorf("update claim %s: %w", c.ID, ErrClaimNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update: %w", err)
	}
	return nil
}

// ClaimByID retrieves a single claim. Returns ErrClaimNotFound for unknown ids.
func (s *Store) ClaimByID(ctx context.Context, id string) (*model.Claim, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+claimColumns+` FROM claims WHERE id = ?`, id)

	c, err := scanClaim(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("claim %s: %w", id, ErrClaimNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get claim %s: %w", id, err)
	}
	return c, nil
}

// ClaimsByStatus returns all claims with exactly the given status, in
// extraction order so a snapshot is stable.
func (s *Store) ClaimsByStatus(ctx context.Context, status model.ClaimStatus) ([]model.Claim, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+claimColumns+` FROM claims WHERE status = ? ORDER BY extracted_at, sentence_idx, id`,
		string(status))
	if err != nil {
		return nil, fmt.Errorf("query claims by status: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectClaims(rows)
}

// ClaimsByScript returns all claims extracted from the given script
func (s *Store) ClaimsByScript(ctx context.Context, scriptID string) ([]model.Claim, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+claimColumns+` FROM claims WHERE script_id = ? ORDER BY sentence_idx, id`,
		scriptID)
	if err != nil {
		return nil, fmt.Errorf("query claims by script: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectClaims(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClaim(row rowScanner) (*model.Claim, error) {
	var c model.Claim
	var claimType, status string
	var verdictAt sql.NullTime

	err := row.Scan(&c.ID, &c.ScriptID, &c.Text, &claimType, &c.ExtractedAt,
		&c.NLPConfidence, &status, &verdictAt, &c.Sentence)
	if err != nil {
		return nil, err
	}

	c.Type = model.ClaimType(claimType)
	c.Status = model.ClaimStatus(status)
	if verdictAt.Valid {
		t := verdictAt.Time
		c.VerdictAt = &t
	}
	return &c, nil
}

func collectClaims(rows *sql.Rows) ([]model.Claim, error) {
	var claims []model.Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		claims = append(claims, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claims: %w", err)
	}
	return claims, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
