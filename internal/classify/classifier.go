// Package classify assigns a claim type to a sentence.
//
// The default implementation is a deterministic rule classifier with ordered
// pattern precedence. An LLM-backed implementation can be injected instead;
// both satisfy the same interface so the extractor does not care which one
// it is given.
package classify

import (
	"context"
	"regexp"
	"strings"

	"github.com/jmertens/veracity/internal/model"
)

// Classifier decides the claim type of a single sentence and reports the
// confidence of that decision in [0,1].
type Classifier interface {
	Classify(ctx context.Context, sentence string) (model.ClaimType, float64, error)
}

// RuleConfidence is the fixed confidence the rule classifier reports. It is
// a stand-in for a real classifier confidence; callers should not read more
// into it than "the rules matched".
const RuleConfidence = 0.8

// Scripts come in German and English, so every keyword table carries both.
var (
	// Numbers followed by a percent sign, currency symbol or magnitude word.
	statisticPattern = regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?\s*(?:%|€|\$|£|prozent|millionen?|milliarden?|million|billion|mio\.?|mrd\.?)`)

	legalPattern = regexp.MustCompile(`(?i)\b(?:law|laws|regulation|directive|constitution|statute|paragraph|section|gesetz|gesetze|gesetzes|verordnung|richtlinie|verfassung|paragraf)\b|§`)

	quotePattern = regexp.MustCompile("[\"“”„«»]|''")

	predictionPattern = regexp.MustCompile(`(?i)\b(?:will|would|could|might|wird|werden|würde|könnte|dürfte)\b`)
)

// RuleClassifier classifies sentences by ordered pattern precedence:
// statistic, then legal, then quote, then prediction, then fact. A sentence
// matching several rules takes the first, so "50% of the new regulation" is
// a statistic, not a legal claim.
type RuleClassifier struct{}

// NewRuleClassifier creates the deterministic rule-based classifier
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

// Classify applies the precedence rules. It never fails and ignores ctx;
// both exist to satisfy the Classifier contract shared with network-backed
// implementations.
func (c *RuleClassifier) Classify(_ context.Context, sentence string) (model.ClaimType, float64, error) {
	switch {
	case statisticPattern.MatchString(sentence):
		return model.ClaimTypeStatistic, RuleConfidence, nil
	case legalPattern.MatchString(sentence):
		return model.ClaimTypeLegal, RuleConfidence, nil
	case quotePattern.MatchString(sentence):
		return model.ClaimTypeQuote, RuleConfidence, nil
	case predictionPattern.MatchString(sentence):
		return model.ClaimTypePrediction, RuleConfidence, nil
	}
	return model.ClaimTypeFact, RuleConfidence, nil
}

// ContainsDigit reports whether the sentence carries any numeric content
func ContainsDigit(sentence string) bool {
	return strings.ContainsAny(sentence, "0123456789")
}

// ContainsLegalKeyword reports whether the sentence mentions the legal domain
func ContainsLegalKeyword(sentence string) bool {
	return legalPattern.MatchString(sentence)
}

// ContainsQuoteMarks reports whether the sentence carries quotation marks,
// straight or typographic
func ContainsQuoteMarks(sentence string) bool {
	return quotePattern.MatchString(sentence)
}
