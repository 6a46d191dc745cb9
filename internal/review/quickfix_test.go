package review

import (
	"testing"

	"github.com/jmertens/veracity/internal/model"
)

func TestGenerateQuickFixesPrediction(t *testing.T) {
	claim := model.Claim{
		Type: model.ClaimTypePrediction,
		Text: "Die Reform wird 2025 umgesetzt",
	}

	fixes := GenerateQuickFixes(claim)
	want := "Experten halten es für möglich, dass die Reform wird 2025 umgesetzt"
	if fixes.Rewording != want {
		t.Errorf("Rewording = %q, want %q", fixes.Rewording, want)
	}
	// The year also triggers the attribution suggestion.
	if fixes.Attribution != "Laut offiziellen Angaben: Die Reform wird 2025 umgesetzt" {
		t.Errorf("Attribution = %q", fixes.Attribution)
	}
}

func TestGenerateQuickFixesQuantifier(t *testing.T) {
	claim := model.Claim{
		Type: model.ClaimTypeFact,
		Text: "Alle Experten sind sich einig",
	}

	fixes := GenerateQuickFixes(claim)
	want := "In vielen Fällen gilt: oft Experten sind sich einig"
	if fixes.Conditional != want {
		t.Errorf("Conditional = %q, want %q", fixes.Conditional, want)
	}
	if fixes.Rewording != "" || fixes.Attribution != "" {
		t.Errorf("unexpected extra suggestions: %+v", fixes)
	}
}

func TestGenerateQuickFixesNoSuggestions(t *testing.T) {
	claim := model.Claim{
		Type: model.ClaimTypeFact,
		Text: "Die Regierung plant eine Reform",
	}

	fixes := GenerateQuickFixes(claim)
	if !fixes.Empty() {
		t.Errorf("expected no suggestions, got %+v", fixes)
	}
}

func TestGenerateQuickFixesDoesNotMutate(t *testing.T) {
	claim := model.Claim{
		Type: model.ClaimTypeStatistic,
		Text: "40% stimmen immer zu",
	}
	before := claim

	_ = GenerateQuickFixes(claim)
	if claim != before {
		t.Error("GenerateQuickFixes mutated the claim")
	}
}
