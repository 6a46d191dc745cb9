// Package llm provides an optional LLM-backed claim classifier.
//
// The rule classifier stays authoritative by default; an LLM provider is
// opt-in and degrades to the rules whenever the API misbehaves, so a flaky
// endpoint can never drop claims from the pipeline.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/jmertens/veracity/internal/classify"
	"github.com/jmertens/veracity/internal/model"
)

const classifyPrompt = `Classify the following video-script sentence into exactly one category.
Answer with a single word from: fact, statistic, quote, prediction, legal.

Sentence: %s`

// llmConfidence is reported for successful LLM classifications
const llmConfidence = 0.85

// Classifier implements classify.Classifier over an OpenAI-compatible API
type Classifier struct {
	client   *openai.Client
	model    string
	timeout  time.Duration
	fallback *classify.RuleClassifier
	logger   *zap.Logger
}

// NewClassifier builds a classifier from configuration. Provider "" returns
// the plain rule classifier. "openai" requires an API key; "ollama" talks to
// an OpenAI-compatible endpoint at BaseURL and needs no key.
func NewClassifier(cfg model.LLMConfig, logger *zap.Logger) (classify.Classifier, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Provider {
	case "":
		return classify.NewRuleClassifier(), nil
	case "openai", "ollama":
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}

	apiKey := cfg.APIKey
	if cfg.Provider == "openai" && apiKey == "" {
		return nil, fmt.Errorf("openai provider requires an API key")
	}
	if apiKey == "" {
		apiKey = "unused" // Ollama ignores the key but the client requires one
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Classifier{
		client:   openai.NewClientWithConfig(clientConfig),
		model:    modelName,
		timeout:  timeout,
		fallback: classify.NewRuleClassifier(),
		logger:   logger,
	}, nil
}

// Classify asks the model for a claim type. API errors and unparseable
// answers fall back to the rule classifier instead of failing.
func (c *Classifier) Classify(ctx context.Context, sentence string) (model.ClaimType, float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You classify sentences from video scripts. Answer with one word only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(classifyPrompt, sentence),
			},
		},
		MaxTokens:   4,
		Temperature: 0,
	})
	if err != nil {
		c.logger.Warn("llm classification failed, falling back to rules", zap.Error(err))
		return c.fallback.Classify(ctx, sentence)
	}

	if len(resp.Choices) == 0 {
		return c.fallback.Classify(ctx, sentence)
	}

	answer := strings.ToLower(strings.TrimSpace(resp.Choices[0].Message.Content))
	answer = strings.Trim(answer, ".\"' ")
	claimType := model.ClaimType(answer)
	if !claimType.Valid() {
		c.logger.Warn("llm returned unknown claim type, falling back to rules",
			zap.String("answer", answer))
		return c.fallback.Classify(ctx, sentence)
	}

	return claimType, llmConfidence, nil
}
