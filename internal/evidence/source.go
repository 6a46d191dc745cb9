// Package evidence collects and ranks external sources for claims.
//
// The actual lookup lives behind the Source interface: the stub source is
// deterministic and network-free, the HTTP source queries a configurable
// search endpoint. The collector owns everything else: association with the
// originating claim, caching, timeouts, failure isolation and persistence.
package evidence

import (
	"context"
	"fmt"

	"github.com/jmertens/veracity/internal/model"
)

// Source produces candidate evidence for one claim. Implementations may
// leave ID, ClaimID and FetchedAt empty; the collector fills them in.
type Source interface {
	FetchEvidence(ctx context.Context, claim model.Claim) ([]model.Evidence, error)
}

// StubSource returns synthetic evidence without touching the network. It is
// the default source and the one used in tests.
type StubSource struct {
	PerClaim int     // Rows per claim; 0 means no evidence at all
	Score    float64 // Evidence score assigned to every row
}

// NewStubSource creates a stub source yielding perClaim rows at the given score
func NewStubSource(perClaim int, score float64) *StubSource {
	return &StubSource{PerClaim: perClaim, Score: score}
}

// FetchEvidence returns deterministic synthetic rows for the claim
func (s *StubSource) FetchEvidence(_ context.Context, claim model.Claim) ([]model.Evidence, error) {
	if s.PerClaim <= 0 {
		return nil, nil
	}

	rows := make([]model.Evidence, 0, s.PerClaim)
	for i := 0; i < s.PerClaim; i++ {
		rows = append(rows, model.Evidence{
			SourceURL:     fmt.Sprintf("https://factcheck.example/claims/%s/%d", claim.ID, i),
			SourceType:    model.SourceFactCheck,
			EvidenceScore: s.Score,
		})
	}
	return rows, nil
}

// FailingSource always errors; used in tests to exercise failure isolation
type FailingSource struct {
	Err error
}

// FetchEvidence returns the configured error
func (s *FailingSource) FetchEvidence(context.Context, model.Claim) ([]model.Evidence, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return nil, fmt.Errorf("evidence source unavailable")
}
