package evidence

import (
	"sort"

	"github.com/jmertens/veracity/internal/model"
)

// Rank orders evidence by trustworthiness, best first. The sort is stable so
// rows with equal scores keep their fetch order.
//
// Contract for real source scorers feeding this: evidence_score is meant to
// be a weighted combination of source authority (40%), primary-vs-secondary
// directness (25%), recency (15%), cross-source consensus (10%) and
// quote-match quality (10%). Ranking consumes only the final number.
func Rank(evidence []model.Evidence) []model.Evidence {
	ranked := make([]model.Evidence, len(evidence))
	copy(ranked, evidence)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EvidenceScore > ranked[j].EvidenceScore
	})
	return ranked
}
