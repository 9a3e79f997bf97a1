// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate asks a hosted text-generation service to write an
// article for one topic. One request is sent per call: no streaming, no
// multi-turn conversation, no retries.
package generate

import (
	"context"
	"fmt"
	"net/http"
	"text/template"
	"time"

	"github.com/akhsjain/tech-blogs/pkg/types"
)

const defaultTimeout = 2 * time.Minute

// Backend sends one prompt to a text-generation API and returns the
// completion verbatim. Implementations return *types.GenerationError when
// the service fails or its reply lacks the generated text.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator renders the prompt for a topic and delegates to a Backend.
type Generator struct {
	Backend  Backend
	Template *template.Template

	// Provider and Model describe the backend for logs and history.
	Provider types.Provider
	Model    string
}

// New builds a Generator from cfg. The preset supplies the template, the
// provider and the model; explicit cfg fields override it.
func New(cfg types.GeneratorConfig) (*Generator, error) {
	preset, err := LookupPreset(cfg.Preset)
	if err != nil {
		return nil, err
	}
	tmpl, err := ResolveTemplate(cfg)
	if err != nil {
		return nil, err
	}

	provider, model := Resolve(cfg, preset)
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key configured for provider %s", provider)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := &http.Client{Timeout: timeout}

	var backend Backend
	switch provider {
	case types.ProviderGroq, types.ProviderOpenAI:
		backend = NewOpenAIBackend(provider, cfg.APIKey, model, cfg.BaseURL, cfg.MaxTokens, client)
	case types.ProviderAnthropic:
		backend = &ClaudeBackend{
			APIKey:    cfg.APIKey,
			Model:     model,
			BaseURL:   cfg.BaseURL,
			MaxTokens: cfg.MaxTokens,
			Client:    client,
		}
	default:
		return nil, fmt.Errorf("unknown provider %q (valid: groq, openai, anthropic)", provider)
	}

	return &Generator{
		Backend:  backend,
		Template: tmpl,
		Provider: provider,
		Model:    model,
	}, nil
}

// Resolve returns the provider and model cfg selects, falling back to the
// preset's.
func Resolve(cfg types.GeneratorConfig, preset Preset) (types.Provider, string) {
	provider := cfg.Provider
	if provider == "" {
		provider = preset.Provider
	}
	model := cfg.Model
	if model == "" {
		model = preset.Model
	}
	return provider, model
}

// ResolveTemplate returns the prompt template cfg selects: the prompt file
// when set, otherwise the preset's template.
func ResolveTemplate(cfg types.GeneratorConfig) (*template.Template, error) {
	if cfg.PromptFile != "" {
		return LoadTemplate(cfg.PromptFile)
	}
	preset, err := LookupPreset(cfg.Preset)
	if err != nil {
		return nil, err
	}
	return preset.Template, nil
}

// Prompt returns the instruction that Generate would send for topic.
func (g *Generator) Prompt(topic types.Topic) (string, error) {
	return RenderPrompt(g.Template, topic)
}

// Generate returns article text for topic, unmodified.
func (g *Generator) Generate(ctx context.Context, topic types.Topic) (string, error) {
	prompt, err := g.Prompt(topic)
	if err != nil {
		return "", err
	}
	return g.Backend.Complete(ctx, prompt)
}
