package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmertens/veracity/internal/model"
)

// InsertEvidence appends evidence rows in a single transaction. Evidence is
// never updated in place; a re-fetch produces new rows. A row referencing a
// nonexistent claim fails the whole batch (referential integrity).
func (s *Store) InsertEvidence(ctx context.Context, evidence []model.Evidence) error {
	if len(evidence) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin evidence insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO evidence (id, claim_id, source_url, source_type, fetch_timestamp, snapshot_path, evidence_score)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare evidence insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, ev := range evidence {
		if !ev.SourceType.Valid() {
			return fmt.Errorf("insert evidence %s: invalid source type %q", ev.ID, ev.SourceType)
		}
		var snapshot any
		if ev.SnapshotPath != "" {
			snapshot = ev.SnapshotPath
		}
		if _, err := stmt.ExecContext(ctx,
			ev.ID, ev.ClaimID, ev.SourceURL, string(ev.SourceType),
			ev.FetchedAt, snapshot, ev.EvidenceScore,
		); err != nil {
			return fmt.Errorf("insert evidence %s for claim %s: %w", ev.ID, ev.ClaimID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit evidence insert: %w", err)
	}
	return nil
}

// EvidenceByClaim returns all evidence rows for a claim, best score first
func (s *Store) EvidenceByClaim(ctx context.Context, claimID string) ([]model.Evidence, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, claim_id, source_url, source_type, fetch_timestamp, snapshot_path, evidence_score
		FROM evidence WHERE claim_id = ? ORDER BY evidence_score DESC, id`, claimID)
	if err != nil {
		return nil, fmt.Errorf("query evidence for claim %s: %w", claimID, err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Evidence
	for rows.Next() {
		var ev model.Evidence
		var sourceType string
		var snapshot sql.NullString
		if err := rows.Scan(&ev.ID, &ev.ClaimID, &ev.SourceURL, &sourceType,
			&ev.FetchedAt, &snapshot, &ev.EvidenceScore); err != nil {
			return nil, fmt.Errorf("scan evidence: %w", err)
		}
		ev.SourceType = model.SourceType(sourceType)
		ev.SnapshotPath = snapshot.String
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evidence: %w", err)
	}
	return out, nil
}
