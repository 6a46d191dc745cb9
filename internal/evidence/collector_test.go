package evidence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jmertens/veracity/internal/cache"
	"github.com/jmertens/veracity/internal/model"
)

type fakeStore struct {
	mu       sync.Mutex
	inserted []model.Evidence
	failWith error
}

func (f *fakeStore) InsertEvidence(_ context.Context, evidence []model.Evidence) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.inserted = append(f.inserted, evidence...)
	return nil
}

// countingSource wraps another source and counts fetches
type countingSource struct {
	mu      sync.Mutex
	inner   Source
	fetches int
}

func (s *countingSource) FetchEvidence(ctx context.Context, claim model.Claim) ([]model.Evidence, error) {
	s.mu.Lock()
	s.fetches++
	s.mu.Unlock()
	return s.inner.FetchEvidence(ctx, claim)
}

// slowSource blocks until its context expires
type slowSource struct{}

func (slowSource) FetchEvidence(ctx context.Context, _ model.Claim) ([]model.Evidence, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func testConfig() model.EvidenceConfig {
	cfg := model.DefaultConfig().Evidence
	cfg.Workers = 4
	return cfg
}

func TestCollectorHappyPath(t *testing.T) {
	st := &fakeStore{}
	c := NewCollector(st, NewStubSource(2, 85), nil, testConfig(), nil)

	claims := []model.Claim{
		{ID: "c1", Text: "erste Behauptung"},
		{ID: "c2", Text: "zweite Behauptung"},
	}

	rows, err := c.Collect(context.Background(), claims)
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	// Rows come back grouped in claim order.
	for i, want := range []string{"c1", "c1", "c2", "c2"} {
		if rows[i].ClaimID != want {
			t.Errorf("row %d claim = %s, want %s", i, rows[i].ClaimID, want)
		}
	}
	for i, ev := range rows {
		if ev.ID == "" {
			t.Errorf("row %d has no id", i)
		}
		if ev.FetchedAt.IsZero() {
			t.Errorf("row %d has no fetch timestamp", i)
		}
		if ev.EvidenceScore != 85 {
			t.Errorf("row %d score = %v, want 85", i, ev.EvidenceScore)
		}
	}
	if len(st.inserted) != 4 {
		t.Errorf("persisted %d rows, want 4", len(st.inserted))
	}
}

func TestCollectorFailureYieldsNoEvidence(t *testing.T) {
	st := &fakeStore{}
	c := NewCollector(st, &FailingSource{Err: errors.New("search backend down")}, nil, testConfig(), nil)

	rows, err := c.Collect(context.Background(), []model.Claim{{ID: "c1", Text: "eine Behauptung"}})
	if err != nil {
		t.Fatalf("fetch failure must not fail the batch: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}

func TestCollectorFailureIsolation(t *testing.T) {
	// One claim's source failure must not lose the other claim's evidence.
	st := &fakeStore{}
	src := &selectiveSource{failFor: "c1", inner: NewStubSource(1, 70)}
	c := NewCollector(st, src, nil, testConfig(), nil)

	claims := []model.Claim{
		{ID: "c1", Text: "kaputte Behauptung"},
		{ID: "c2", Text: "gute Behauptung"},
	}
	rows, err := c.Collect(context.Background(), claims)
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if len(rows) != 1 || rows[0].ClaimID != "c2" {
		t.Fatalf("got %+v, want exactly one row for c2", rows)
	}
}

type selectiveSource struct {
	failFor string
	inner   Source
}

func (s *selectiveSource) FetchEvidence(ctx context.Context, claim model.Claim) ([]model.Evidence, error) {
	if claim.ID == s.failFor {
		return nil, errors.New("fetch failed")
	}
	return s.inner.FetchEvidence(ctx, claim)
}

func TestCollectorTimeout(t *testing.T) {
	st := &fakeStore{}
	cfg := testConfig()
	cfg.Timeout = 20 * time.Millisecond
	c := NewCollector(st, slowSource{}, nil, cfg, nil)

	start := time.Now()
	rows, err := c.Collect(context.Background(), []model.Claim{{ID: "c1", Text: "langsame Behauptung"}})
	if err != nil {
		t.Fatalf("timeout must not fail the batch: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("collect took %v, timeout did not apply", elapsed)
	}
}

func TestCollectorCacheHit(t *testing.T) {
	st := &fakeStore{}
	mem := cache.NewMemoryCache(time.Minute, 0)
	src := &countingSource{inner: NewStubSource(2, 85)}
	cfg := testConfig()
	cfg.CacheTTL = time.Minute
	c := NewCollector(st, src, mem, cfg, nil)

	ctx := context.Background()
	text := "40% der Bürger unterstützen das Gesetz laut einer Studie"

	first, err := c.Collect(ctx, []model.Claim{{ID: "c1", Text: text}})
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	// Same text, different claim id. Must hit the cache and re-own the rows.
	second, err := c.Collect(ctx, []model.Claim{{ID: "c2", Text: text}})
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}

	if src.fetches != 1 {
		t.Errorf("source fetched %d times, want 1", src.fetches)
	}
	if len(second) != len(first) {
		t.Fatalf("cache hit returned %d rows, want %d", len(second), len(first))
	}
	for i, ev := range second {
		if ev.ClaimID != "c2" {
			t.Errorf("cached row %d owned by %s, want c2", i, ev.ClaimID)
		}
		if ev.ID == first[i].ID {
			t.Errorf("cached row %d reused the original row id", i)
		}
		if ev.SourceURL != first[i].SourceURL {
			t.Errorf("cached row %d url = %s, want %s", i, ev.SourceURL, first[i].SourceURL)
		}
	}
}

func TestCollectorScoreClamped(t *testing.T) {
	st := &fakeStore{}
	c := NewCollector(st, NewStubSource(1, 250), nil, testConfig(), nil)

	rows, err := c.Collect(context.Background(), []model.Claim{{ID: "c1", Text: "eine Behauptung"}})
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if len(rows) != 1 || rows[0].EvidenceScore != 100 {
		t.Errorf("got %+v, want one row clamped to score 100", rows)
	}
}

func TestCollectorPersistFailure(t *testing.T) {
	st := &fakeStore{failWith: errors.New("disk full")}
	c := NewCollector(st, NewStubSource(1, 85), nil, testConfig(), nil)

	if _, err := c.Collect(context.Background(), []model.Claim{{ID: "c1", Text: "eine Behauptung"}}); err == nil {
		t.Fatal("persistence failure must fail the batch")
	}
}
