package verdict

import (
	"context"
	"testing"
	"time"

	"github.com/jmertens/veracity/internal/model"
)

type fakeStore struct {
	updated []model.Claim
}

func (f *fakeStore) UpdateClaims(_ context.Context, claims []model.Claim) error {
	f.updated = append(f.updated, claims...)
	return nil
}

func newTestEngine(st *fakeStore, at time.Time) *Engine {
	e := New(st, nil)
	e.now = func() time.Time { return at }
	return e
}

func TestMeanScore(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   float64
	}{
		{"no evidence", nil, 0},
		{"single", []float64{85}, 85},
		{"mixed", []float64{90, 70, 50}, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rows []model.Evidence
			for _, s := range tt.scores {
				rows = append(rows, model.Evidence{EvidenceScore: s})
			}
			if got := MeanScore(rows); got != tt.want {
				t.Errorf("MeanScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecideApprovesStrongEvidence(t *testing.T) {
	st := &fakeStore{}
	at := time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC)
	e := newTestEngine(st, at)

	claims := []model.Claim{{ID: "c1", Status: model.StatusHumanReview}}
	evidence := []model.Evidence{
		{ClaimID: "c1", EvidenceScore: 92},
		{ClaimID: "c1", EvidenceScore: 76},
	}

	out, err := e.Decide(context.Background(), claims, evidence)
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	// Mean 84 clears the threshold.
	if out[0].Status != model.StatusAutoApproved {
		t.Errorf("status = %s, want auto-approved", out[0].Status)
	}
	if out[0].VerdictAt == nil || !out[0].VerdictAt.Equal(at) {
		t.Errorf("verdict_at = %v, want %v", out[0].VerdictAt, at)
	}
	if len(st.updated) != 1 {
		t.Errorf("persisted %d claims, want 1", len(st.updated))
	}
}

func TestDecideNoEvidenceRoutesToReview(t *testing.T) {
	st := &fakeStore{}
	at := time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC)
	e := newTestEngine(st, at)

	claims := []model.Claim{{ID: "c1", Status: model.StatusAutoApproved}}

	out, err := e.Decide(context.Background(), claims, nil)
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if out[0].Status != model.StatusHumanReview {
		t.Errorf("status = %s, want human-review", out[0].Status)
	}
	// verdict_at is stamped even though the evidence was empty.
	if out[0].VerdictAt == nil {
		t.Error("verdict_at not set")
	}
}

func TestDecideStampsUnchangedStatus(t *testing.T) {
	st := &fakeStore{}
	at := time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC)
	e := newTestEngine(st, at)

	claims := []model.Claim{{ID: "c1", Status: model.StatusHumanReview}}
	evidence := []model.Evidence{{ClaimID: "c1", EvidenceScore: 40}}

	out, err := e.Decide(context.Background(), claims, evidence)
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	// Status stays human-review but the pass still leaves its marker.
	if out[0].Status != model.StatusHumanReview {
		t.Errorf("status = %s, want human-review", out[0].Status)
	}
	if out[0].VerdictAt == nil || !out[0].VerdictAt.Equal(at) {
		t.Errorf("verdict_at = %v, want %v", out[0].VerdictAt, at)
	}
}

func TestDecideSkipsHumanDecidedClaims(t *testing.T) {
	st := &fakeStore{}
	at := time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC)
	e := newTestEngine(st, at)

	locked := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	claims := []model.Claim{
		{ID: "c1", Status: model.StatusRejected, VerdictAt: &locked},
		{ID: "c2", Status: model.StatusHumanReview},
	}
	evidence := []model.Evidence{{ClaimID: "c1", EvidenceScore: 95}}

	out, err := e.Decide(context.Background(), claims, evidence)
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if out[0].Status != model.StatusRejected {
		t.Errorf("rejected claim reopened: %s", out[0].Status)
	}
	if !out[0].VerdictAt.Equal(locked) {
		t.Errorf("locked claim restamped: %v", out[0].VerdictAt)
	}
	if len(st.updated) != 1 || st.updated[0].ID != "c2" {
		t.Errorf("persisted %+v, want exactly c2", st.updated)
	}
}

func TestDecideBoundary(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(st, time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC))

	claims := []model.Claim{{ID: "c1", Status: model.StatusPending}}
	evidence := []model.Evidence{{ClaimID: "c1", EvidenceScore: 80}}

	out, err := e.Decide(context.Background(), claims, evidence)
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	// Exactly 80 approves; the threshold is inclusive.
	if out[0].Status != model.StatusAutoApproved {
		t.Errorf("status at mean 80 = %s, want auto-approved", out[0].Status)
	}
}
