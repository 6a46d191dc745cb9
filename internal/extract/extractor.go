// Package extract turns raw script text into persisted candidate claims.
package extract

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jmertens/veracity/internal/classify"
	"github.com/jmertens/veracity/internal/model"
	"github.com/jmertens/veracity/internal/store"
)

// Store is the persistence surface the extractor needs
type Store interface {
	UpsertClaims(ctx context.Context, claims []model.Claim) error
}

// Extractor splits script text into sentences, classifies each one and
// persists the fact-checkable subset as pending claims.
type Extractor struct {
	store      Store
	classifier classify.Classifier
	minLen     int
	confidence float64
	logger     *zap.Logger
}

// New creates an extractor. A nil classifier falls back to the rule
// classifier; a nil logger falls back to a no-op logger.
func New(st Store, classifier classify.Classifier, cfg model.ExtractConfig, logger *zap.Logger) *Extractor {
	if classifier == nil {
		classifier = classify.NewRuleClassifier()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	minLen := cfg.MinSentenceLen
	if minLen <= 0 {
		minLen = 10
	}
	confidence := cfg.Confidence
	if confidence <= 0 || confidence > 1 {
		confidence = classify.RuleConfidence
	}
	return &Extractor{
		store:      st,
		classifier: classifier,
		minLen:     minLen,
		confidence: confidence,
		logger:     logger,
	}
}

// Extract produces claims from scriptText in source-sentence order and
// persists them before returning. Quotes and predictions are classified but
// never persisted; they are not independently fact-checkable assertions in
// this pipeline's model. Empty or whitespace-only input yields an empty
// list, not an error.
func (e *Extractor) Extract(ctx context.Context, scriptText, scriptID string) ([]model.Claim, error) {
	segments := SplitSentences(scriptText)

	var claims []model.Claim
	now := time.Now().UTC()

	for idx, segment := range segments {
		if len(segment) < e.minLen {
			continue
		}

		claimType, confidence, err := e.classifier.Classify(ctx, segment)
		if err != nil {
			// A single bad segment never aborts the batch.
			e.logger.Warn("classify segment failed, skipping",
				zap.String("script_id", scriptID),
				zap.Int("sentence", idx),
				zap.Error(err))
			continue
		}
		if confidence <= 0 {
			confidence = e.confidence
		}

		if !claimType.Checkable() {
			continue
		}

		claims = append(claims, model.Claim{
			ID:            uuid.NewString(),
			ScriptID:      scriptID,
			Text:          segment,
			Type:          claimType,
			ExtractedAt:   now,
			NLPConfidence: confidence,
			Status:        model.StatusPending,
			Sentence:      idx,
		})
	}

	if err := e.store.UpsertClaims(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// SplitSentences splits text on sentence-terminal punctuation and newlines.
// Segments are trimmed; empty segments are dropped. Length filtering is the
// caller's job so the sentence indexes stay aligned with the source text.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		current.Reset()
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
	}

	for _, r := range text {
		switch r {
		case '.', '!', '?', '\n':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return sentences
}

var _ Store = (*store.Store)(nil)
