package model

import "testing"

func TestClaimTypeCheckable(t *testing.T) {
	tests := []struct {
		typ  ClaimType
		want bool
	}{
		{ClaimTypeFact, true},
		{ClaimTypeStatistic, true},
		{ClaimTypeLegal, true},
		{ClaimTypeQuote, false},
		{ClaimTypePrediction, false},
	}
	for _, tt := range tests {
		if got := tt.typ.Checkable(); got != tt.want {
			t.Errorf("%s.Checkable() = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestClaimStatusTerminal(t *testing.T) {
	tests := []struct {
		status ClaimStatus
		want   bool
	}{
		{StatusPending, false},
		{StatusAutoApproved, false},
		{StatusHumanReview, false},
		{StatusApproved, true},
		{StatusRejected, true},
		{StatusCorrected, true},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestReviewActionClaimStatus(t *testing.T) {
	tests := []struct {
		action ReviewAction
		want   ClaimStatus
	}{
		{ActionApprove, StatusApproved},
		{ActionEdit, StatusCorrected},
		{ActionReject, StatusRejected},
	}
	for _, tt := range tests {
		if got := tt.action.ClaimStatus(); got != tt.want {
			t.Errorf("%s.ClaimStatus() = %s, want %s", tt.action, got, tt.want)
		}
		if !tt.action.ClaimStatus().Terminal() {
			t.Errorf("%s maps to non-terminal status", tt.action)
		}
	}
}

func TestInvalidEnumValues(t *testing.T) {
	if ClaimType("opinion").Valid() {
		t.Error("unknown claim type accepted")
	}
	if ClaimStatus("done").Valid() {
		t.Error("unknown status accepted")
	}
	if ReviewAction("defer").Valid() {
		t.Error("unknown action accepted")
	}
	if SourceType("blog").Valid() {
		t.Error("unknown source type accepted")
	}
}
