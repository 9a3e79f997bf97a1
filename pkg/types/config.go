// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Provider identifies the hosted text-generation API.
type Provider string

const (
	ProviderGroq      Provider = "groq"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// QueueConfig holds settings for the topic queue.
type QueueConfig struct {
	// Path is the queue file. A .yaml or .yml suffix selects YAML; anything
	// else is read and written as a JSON array of strings.
	Path string `json:"path" yaml:"path"`
}

// DraftConfig holds settings for draft output.
type DraftConfig struct {
	// Dir is the directory drafts are written into (e.g. "drafts").
	Dir string `json:"dir" yaml:"dir"`
}

// GeneratorConfig holds settings for the article generator.
type GeneratorConfig struct {
	// Preset names a built-in prompt/model pairing (e.g. "deep-dive").
	Preset string `json:"preset" yaml:"preset"`

	// Provider selects the API: groq, openai, or anthropic. Empty means the
	// preset's provider.
	Provider Provider `json:"provider" yaml:"provider"`

	// Model overrides the preset's model identifier.
	Model string `json:"model" yaml:"model"`

	// BaseURL overrides the provider's API endpoint.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// PromptFile is an optional text/template file that replaces the
	// preset's prompt. The template receives {{.Topic}}.
	PromptFile string `json:"prompt_file,omitempty" yaml:"prompt_file,omitempty"`

	// APIKey is the bearer credential. Never written to disk.
	APIKey string `json:"-" yaml:"-"`

	// MaxTokens caps the completion length (0 leaves the provider default).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Timeout bounds the single outbound request.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// HistoryConfig holds settings for the draft history ledger.
type HistoryConfig struct {
	// Enabled turns recording on or off.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path"`
}

// Config groups the settings for one run.
type Config struct {
	Queue     QueueConfig     `json:"queue" yaml:"queue"`
	Drafts    DraftConfig     `json:"drafts" yaml:"drafts"`
	Generator GeneratorConfig `json:"generator" yaml:"generator"`
	History   HistoryConfig   `json:"history" yaml:"history"`
}
