package model

import "time"

// Config is the full pipeline configuration. Components receive the slice of
// it they need at construction; there is no mutable global state.
type Config struct {
	Database  DatabaseConfig  `yaml:"database" mapstructure:"database"`
	Extract   ExtractConfig   `yaml:"extract" mapstructure:"extract"`
	AutoCheck AutoCheckConfig `yaml:"autocheck" mapstructure:"autocheck"`
	Evidence  EvidenceConfig  `yaml:"evidence" mapstructure:"evidence"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
}

// DatabaseConfig configures the claim store
type DatabaseConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // SQLite database file path
}

// ExtractConfig configures the claim extractor
type ExtractConfig struct {
	MinSentenceLen int     `yaml:"min_sentence_len" mapstructure:"min_sentence_len"` // Segments below this length are discarded
	Confidence     float64 `yaml:"confidence" mapstructure:"confidence"`             // Placeholder classifier confidence
}

// AutoCheckConfig configures the auto-check engine
type AutoCheckConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"` // Concurrent claim scorers
}

// EvidenceConfig configures evidence collection
type EvidenceConfig struct {
	Source        string        `yaml:"source" mapstructure:"source"`                   // "stub" or "http"
	SearchURL     string        `yaml:"search_url" mapstructure:"search_url"`           // Search endpoint template for the HTTP source (%s = query)
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`                 // Per-claim fetch timeout
	Workers       int           `yaml:"workers" mapstructure:"workers"`                 // Concurrent fetches
	RatePerSecond float64       `yaml:"rate_per_second" mapstructure:"rate_per_second"` // Per-domain request rate
	RateBurst     int           `yaml:"rate_burst" mapstructure:"rate_burst"`           // Per-domain burst size
	CacheTTL      time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`             // Evidence cache TTL (0 disables caching)
	MaxPerClaim   int           `yaml:"max_per_claim" mapstructure:"max_per_claim"`     // Cap on evidence rows per claim
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`           // HTTP User-Agent for the HTTP source
}

// LLMConfig configures the optional LLM-backed claim classifier.
// Disabled by default; the rule-based classifier is authoritative unless a
// provider is set.
type LLMConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // "openai", "ollama", or "" (disabled)
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"` // Custom endpoint (e.g. Ollama)
	Timeout  int    `yaml:"timeout" mapstructure:"timeout"`   // Seconds
}

// OutputConfig configures CLI output
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "", // Resolved to ~/.veracity/veracity.db when empty
		},
		Extract: ExtractConfig{
			MinSentenceLen: 10,
			Confidence:     0.8,
		},
		AutoCheck: AutoCheckConfig{
			Workers: 8,
		},
		Evidence: EvidenceConfig{
			Source:        "stub",
			Timeout:       10 * time.Second,
			Workers:       10,
			RatePerSecond: 2,
			RateBurst:     5,
			CacheTTL:      15 * time.Minute,
			MaxPerClaim:   5,
			UserAgent:     "Veracity/0.1 (+https://github.com/jmertens/veracity)",
		},
		LLM: LLMConfig{
			Provider: "",
			Timeout:  30,
		},
		Output: OutputConfig{},
	}
}
