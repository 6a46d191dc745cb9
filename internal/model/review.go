package model

import "time"

// Review is a human reviewer's decision on a claim. Reviews are append-only:
// a claim accumulates one row per decision and only the most recent one
// determines its current status.
type Review struct {
	ID         string       `json:"id"`
	ClaimID    string       `json:"claim_id"`
	ReviewerID string       `json:"reviewer_id,omitempty"` // Empty until assigned
	Action     ReviewAction `json:"action"`
	Notes      string       `json:"action_notes,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// ReviewAction is the decision a reviewer takes on a claim
type ReviewAction string

const (
	ActionApprove ReviewAction = "approve"
	ActionEdit    ReviewAction = "edit"
	ActionReject  ReviewAction = "reject"
)

// Valid reports whether a belongs to the closed action set
func (a ReviewAction) Valid() bool {
	switch a {
	case ActionApprove, ActionEdit, ActionReject:
		return true
	}
	return false
}

// ClaimStatus maps the reviewer action to the terminal claim status it produces
func (a ReviewAction) ClaimStatus() ClaimStatus {
	switch a {
	case ActionApprove:
		return StatusApproved
	case ActionEdit:
		return StatusCorrected
	case ActionReject:
		return StatusRejected
	}
	return StatusHumanReview
}

// Correction is a public correction issued against a previously published claim
type Correction struct {
	ID              string    `json:"id"`
	VideoID         string    `json:"video_id"`
	OriginalClaimID string    `json:"original_claim_id"`
	Text            string    `json:"correction_text"`
	PostedAt        time.Time `json:"correction_posted_at"`
}

// QuickFixes are advisory text suggestions for softening or attributing a
// claim. They are never auto-applied; a human reviewer may take them or not.
type QuickFixes struct {
	Rewording   string `json:"rewording,omitempty"`   // Hedged rewording for prediction-type claims
	Attribution string `json:"attribution,omitempty"` // Source-attribution prefix for numeric claims
	Conditional string `json:"conditional,omitempty"` // Conditional softening for absolute quantifiers
}

// Empty reports whether no suggestion applies
func (q QuickFixes) Empty() bool {
	return q.Rewording == "" && q.Attribution == "" && q.Conditional == ""
}
