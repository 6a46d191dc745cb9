package extract

import (
	"context"
	"testing"

	"github.com/jmertens/veracity/internal/model"
)

// fakeStore records upserted claims
type fakeStore struct {
	upserted []model.Claim
	failWith error
}

func (f *fakeStore) UpsertClaims(_ context.Context, claims []model.Claim) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.upserted = append(f.upserted, claims...)
	return nil
}

func TestExtractor_GermanScript(t *testing.T) {
	st := &fakeStore{}
	e := New(st, nil, model.DefaultConfig().Extract, nil)

	text := "Die Regierung plant eine Reform. 40% der Bürger unterstützen das Gesetz laut einer Studie. Wird die Reform 2025 umgesetzt?"

	claims, err := e.Extract(context.Background(), text, "script-1")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	// Sentence 3 is a prediction ("Wird") and must not be persisted.
	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(claims))
	}

	if claims[0].Type != model.ClaimTypeFact {
		t.Errorf("claim 0 type = %s, want fact", claims[0].Type)
	}
	if claims[1].Type != model.ClaimTypeStatistic {
		t.Errorf("claim 1 type = %s, want statistic", claims[1].Type)
	}

	for i, c := range claims {
		if c.Status != model.StatusPending {
			t.Errorf("claim %d status = %s, want pending", i, c.Status)
		}
		if c.NLPConfidence != 0.8 {
			t.Errorf("claim %d confidence = %v, want 0.8", i, c.NLPConfidence)
		}
		if c.ScriptID != "script-1" {
			t.Errorf("claim %d script id = %q", i, c.ScriptID)
		}
		if c.ID == "" {
			t.Errorf("claim %d has no id", i)
		}
		if c.ExtractedAt.IsZero() {
			t.Errorf("claim %d has no extraction timestamp", i)
		}
	}

	// Source-sentence order.
	if claims[0].Sentence != 0 || claims[1].Sentence != 1 {
		t.Errorf("sentence indexes = %d, %d; want 0, 1", claims[0].Sentence, claims[1].Sentence)
	}

	if len(st.upserted) != 2 {
		t.Errorf("persisted %d claims, want 2", len(st.upserted))
	}
}

func TestExtractor_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n\t"} {
		st := &fakeStore{}
		e := New(st, nil, model.DefaultConfig().Extract, nil)

		claims, err := e.Extract(context.Background(), text, "script-1")
		if err != nil {
			t.Fatalf("Extract(%q) returned error: %v", text, err)
		}
		if len(claims) != 0 {
			t.Errorf("Extract(%q) = %d claims, want 0", text, len(claims))
		}
	}
}

func TestExtractor_ShortSegmentsDropped(t *testing.T) {
	st := &fakeStore{}
	e := New(st, nil, model.DefaultConfig().Extract, nil)

	// "Ja." and "Gut!" are far below the minimum length.
	claims, err := e.Extract(context.Background(), "Ja. Gut! Die Inflation lag bei 3 Prozent im letzten Jahr.", "s")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}
	if claims[0].Type != model.ClaimTypeStatistic {
		t.Errorf("type = %s, want statistic", claims[0].Type)
	}
}

func TestExtractor_Deterministic(t *testing.T) {
	text := "Die Regierung plant eine Reform. 40% der Bürger unterstützen das Gesetz laut einer Studie. Wird die Reform 2025 umgesetzt?"

	first, err := (&fakeStore{}).extractWith(text)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := (&fakeStore{}).extractWith(text)
		if err != nil {
			t.Fatalf("extract: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("claim count changed between runs: %d vs %d", len(first), len(again))
		}
		for j := range again {
			if again[j].Type != first[j].Type {
				t.Errorf("claim %d type changed: %s vs %s", j, first[j].Type, again[j].Type)
			}
			if again[j].Text != first[j].Text {
				t.Errorf("claim %d text changed", j)
			}
		}
	}
}

func (f *fakeStore) extractWith(text string) ([]model.Claim, error) {
	e := New(f, nil, model.DefaultConfig().Extract, nil)
	return e.Extract(context.Background(), text, "script-1")
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"terminal punctuation", "Eins. Zwei! Drei?", []string{"Eins", "Zwei", "Drei"}},
		{"newlines", "Eins\nZwei\nDrei", []string{"Eins", "Zwei", "Drei"}},
		{"trailing text without terminator", "Eins. Zwei", []string{"Eins", "Zwei"}},
		{"empty", "", nil},
		{"whitespace only", "  \n  ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitSentences(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
