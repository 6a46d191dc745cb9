package model

import "time"

// Evidence represents one external source discovered for or against a claim
type Evidence struct {
	ID            string     `json:"id"`
	ClaimID       string     `json:"claim_id"`                // Owning claim (many-to-one)
	SourceURL     string     `json:"source_url"`              // Full URL of the source
	SourceType    SourceType `json:"source_type"`             // Source classification
	FetchedAt     time.Time  `json:"fetch_timestamp"`         // When the source was fetched
	SnapshotPath  string     `json:"snapshot_path,omitempty"` // Archived copy of the source content, if any
	EvidenceScore float64    `json:"evidence_score"`          // Trust score in [0,100]
}

// SourceType classifies the kind of source backing a piece of evidence
type SourceType string

const (
	SourceGovernment   SourceType = "government"
	SourceNews         SourceType = "news"
	SourceAcademic     SourceType = "academic"
	SourceFactCheck    SourceType = "fact-check"
	SourceOfficialDoc  SourceType = "official_document"
	SourcePeerReviewed SourceType = "peer_reviewed"
)

// Valid reports whether t belongs to the closed source type set
func (t SourceType) Valid() bool {
	switch t {
	case SourceGovernment, SourceNews, SourceAcademic,
		SourceFactCheck, SourceOfficialDoc, SourcePeerReviewed:
		return true
	}
	return false
}
