package model

import "time"

// Claim represents a single fact-checkable assertion extracted from script text
type Claim struct {
	ID            string      `json:"id"`                   // Opaque unique identifier, assigned at extraction
	ScriptID      string      `json:"script_id"`            // Originating script (caller-supplied, opaque)
	Text          string      `json:"claim_text"`           // Verbatim sentence
	Type          ClaimType   `json:"claim_type"`           // Classification of the assertion
	ExtractedAt   time.Time   `json:"extracted_at"`         // When the claim was extracted
	NLPConfidence float64     `json:"nlp_confidence"`       // Extraction classifier confidence in [0,1]
	Status        ClaimStatus `json:"status"`               // Current pipeline status
	VerdictAt     *time.Time  `json:"verdict_at,omitempty"` // Last time a verdict (automatic or human) was recorded
	Sentence      int         `json:"sentence,omitempty"`   // Sentence index in the source script (0-based)
}

// ClaimType categorizes the nature of the claim
type ClaimType string

const (
	ClaimTypeFact       ClaimType = "fact"       // Plain factual assertion (default)
	ClaimTypeStatistic  ClaimType = "statistic"  // Numeric/magnitude claims (percentages, currency, counts)
	ClaimTypeQuote      ClaimType = "quote"      // Quoted speech
	ClaimTypePrediction ClaimType = "prediction" // Future-tense or modal claims
	ClaimTypeLegal      ClaimType = "legal"      // Legal-domain claims (laws, regulations, directives)
)

// Valid reports whether t belongs to the closed claim type set
func (t ClaimType) Valid() bool {
	switch t {
	case ClaimTypeFact, ClaimTypeStatistic, ClaimTypeQuote, ClaimTypePrediction, ClaimTypeLegal:
		return true
	}
	return false
}

// Checkable reports whether claims of this type are persisted for
// fact-checking. Quotes and predictions are not independently verifiable
// assertions in this pipeline's model and never reach the store.
func (t ClaimType) Checkable() bool {
	switch t {
	case ClaimTypeFact, ClaimTypeStatistic, ClaimTypeLegal:
		return true
	}
	return false
}

// ClaimStatus is the pipeline state of a claim
type ClaimStatus string

const (
	StatusPending      ClaimStatus = "pending"       // Freshly extracted, not yet scored
	StatusAutoApproved ClaimStatus = "auto-approved" // Passed automatic checks
	StatusHumanReview  ClaimStatus = "human-review"  // Requires a human decision
	StatusApproved     ClaimStatus = "approved"      // Human-approved (terminal)
	StatusRejected     ClaimStatus = "rejected"      // Human-rejected (terminal)
	StatusCorrected    ClaimStatus = "corrected"     // Human-edited, correction issued (terminal)
)

// Valid reports whether s belongs to the closed status set
func (s ClaimStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAutoApproved, StatusHumanReview,
		StatusApproved, StatusRejected, StatusCorrected:
		return true
	}
	return false
}

// Terminal reports whether s is locked by a human decision. Auto-approved
// claims may still be moved back to human-review by a later verdict pass;
// human decisions are never revisited automatically.
func (s ClaimStatus) Terminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusCorrected:
		return true
	}
	return false
}
