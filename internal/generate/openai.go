// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/akhsjain/tech-blogs/pkg/types"
)

const (
	groqBaseURL   = "https://api.groq.com/openai/v1/"
	openAIBaseURL = "https://api.openai.com/v1/"
)

// OpenAIBackend calls an OpenAI-compatible chat completions endpoint. Groq
// serves the same API under its own base URL.
type OpenAIBackend struct {
	client    openai.Client
	provider  types.Provider
	model     string
	maxTokens int
}

// NewOpenAIBackend returns a backend for provider. An empty baseURL selects
// the provider's public endpoint. The client's built-in retries are off: a
// failed request fails the run.
func NewOpenAIBackend(provider types.Provider, apiKey, model, baseURL string, maxTokens int, hc *http.Client) *OpenAIBackend {
	if baseURL == "" {
		baseURL = groqBaseURL
		if provider == types.ProviderOpenAI {
			baseURL = openAIBaseURL
		}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	if hc != nil {
		opts = append(opts, option.WithHTTPClient(hc))
	}

	return &OpenAIBackend{
		client:    openai.NewClient(opts...),
		provider:  provider,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Complete sends prompt as a single user message.
func (b *OpenAIBackend) Complete(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if b.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(b.maxTokens))
	}

	// The body is captured raw so a reply that is not a chat completion
	// still reaches the caller as a diagnostic payload.
	var raw []byte
	_, err := b.client.Chat.Completions.New(ctx, params, option.WithResponseBodyInto(&raw))
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			payload := apiErr.RawJSON()
			if payload == "" {
				payload = string(apiErr.DumpResponse(true))
			}
			return "", &types.GenerationError{
				Payload: payload,
				Err:     fmt.Errorf("%s API returned %d", b.provider, apiErr.StatusCode),
			}
		}
		return "", &types.GenerationError{Payload: string(raw), Err: fmt.Errorf("calling %s API: %w", b.provider, err)}
	}

	var resp openai.ChatCompletion
	if !json.Valid(raw) {
		return "", &types.GenerationError{
			Payload: string(raw),
			Err:     fmt.Errorf("%s API reply is not JSON", b.provider),
		}
	}
	if err := resp.UnmarshalJSON(raw); err != nil {
		return "", &types.GenerationError{
			Payload: string(raw),
			Err:     fmt.Errorf("decoding %s API reply: %w", b.provider, err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &types.GenerationError{
			Payload: string(raw),
			Err:     fmt.Errorf("%s API reply has no choices", b.provider),
		}
	}
	msg := resp.Choices[0].Message
	if !msg.JSON.Content.Valid() {
		return "", &types.GenerationError{
			Payload: string(raw),
			Err:     fmt.Errorf("%s API reply has no message content", b.provider),
		}
	}
	return msg.Content, nil
}
