// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhsjain/tech-blogs/pkg/types"
)

// --- presets and prompts ---

func TestLookupPreset(t *testing.T) {
	p, err := LookupPreset("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPreset, p.Name)
	assert.Equal(t, "llama-3.1-8b-instant", p.Model)
	assert.Equal(t, types.ProviderGroq, p.Provider)

	p, err = LookupPreset("quick-read")
	require.NoError(t, err)
	assert.Equal(t, "llama-3.3-70b-versatile", p.Model)

	_, err = LookupPreset("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown preset "nope"`)
}

func TestPresetNames(t *testing.T) {
	assert.Equal(t, []string{"deep-dive", "quick-read"}, PresetNames())
}

func TestRenderPromptInsertsTopicOnly(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			p, err := LookupPreset(name)
			require.NoError(t, err)

			a, err := RenderPrompt(p.Template, "Caching")
			require.NoError(t, err)
			b, err := RenderPrompt(p.Template, "Sharding")
			require.NoError(t, err)

			assert.Contains(t, a, "Topic: Caching")
			assert.Equal(t, a, strings.Replace(b, "Topic: Sharding", "Topic: Caching", 1))
		})
	}
}

func TestRenderPromptDoesNotEscape(t *testing.T) {
	p, err := LookupPreset(DefaultPreset)
	require.NoError(t, err)

	got, err := RenderPrompt(p.Template, "Read <-> Write & Locks")
	require.NoError(t, err)
	assert.Contains(t, got, "Topic: Read <-> Write & Locks")
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompt.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("Write about {{.Topic}}."), 0o644))

	tmpl, err := LoadTemplate(path)
	require.NoError(t, err)
	got, err := RenderPrompt(tmpl, "Queues")
	require.NoError(t, err)
	assert.Equal(t, "Write about Queues.", got)

	_, err = LoadTemplate(filepath.Join(dir, "missing.tmpl"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.tmpl")
	require.NoError(t, os.WriteFile(bad, []byte("{{.Topic"), 0o644))
	_, err = LoadTemplate(bad)
	assert.Error(t, err)
}

// --- New ---

func TestNewAppliesPresetAndOverrides(t *testing.T) {
	g, err := New(types.GeneratorConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, types.ProviderGroq, g.Provider)
	assert.Equal(t, "llama-3.1-8b-instant", g.Model)
	assert.IsType(t, &OpenAIBackend{}, g.Backend)

	g, err = New(types.GeneratorConfig{
		APIKey:   "k",
		Preset:   "quick-read",
		Provider: types.ProviderAnthropic,
		Model:    "claude-sonnet-4-5",
	})
	require.NoError(t, err)
	assert.Equal(t, types.ProviderAnthropic, g.Provider)
	assert.Equal(t, "claude-sonnet-4-5", g.Model)
	assert.IsType(t, &ClaudeBackend{}, g.Backend)
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name   string
		cfg    types.GeneratorConfig
		errMsg string
	}{
		{name: "missing key", cfg: types.GeneratorConfig{}, errMsg: "no API key"},
		{name: "unknown provider", cfg: types.GeneratorConfig{APIKey: "k", Provider: "bard"}, errMsg: "unknown provider"},
		{name: "unknown preset", cfg: types.GeneratorConfig{APIKey: "k", Preset: "x"}, errMsg: "unknown preset"},
		{name: "missing prompt file", cfg: types.GeneratorConfig{APIKey: "k", PromptFile: "/does/not/exist"}, errMsg: "reading prompt template"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

// --- Generator ---

type recordingBackend struct {
	prompts []string
	reply   string
	err     error
}

func (r *recordingBackend) Complete(_ context.Context, prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	return r.reply, r.err
}

func TestGeneratorGenerate(t *testing.T) {
	p, err := LookupPreset(DefaultPreset)
	require.NoError(t, err)
	backend := &recordingBackend{reply: "  # Caching\n...\n\n"}
	g := &Generator{Backend: backend, Template: p.Template}

	got, err := g.Generate(context.Background(), "Caching")
	require.NoError(t, err)
	assert.Equal(t, "  # Caching\n...\n\n", got)
	require.Len(t, backend.prompts, 1)
	assert.Contains(t, backend.prompts[0], "Topic: Caching")
}

// --- OpenAI-compatible backend ---

func chatCompletionJSON(content string) string {
	msg, _ := json.Marshal(content)
	return `{"id":"chatcmpl-test","object":"chat.completion","created":1700000000,"model":"llama-3.1-8b-instant",` +
		`"choices":[{"index":0,"finish_reason":"stop","logprobs":null,"message":{"role":"assistant","content":` + string(msg) + `}}]}`
}

func TestOpenAIBackendComplete(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, chatCompletionJSON("# Caching\n..."))
	}))
	defer srv.Close()

	b := NewOpenAIBackend(types.ProviderGroq, "test-key", "llama-3.1-8b-instant", srv.URL+"/", 0, srv.Client())
	got, err := b.Complete(context.Background(), "Write about caching")
	require.NoError(t, err)

	assert.Equal(t, "# Caching\n...", got)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "llama-3.1-8b-instant", gotBody["model"])
	msgs, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	msg := msgs[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "Write about caching", msg["content"])
	_, hasStream := gotBody["stream"]
	assert.False(t, hasStream)
}

func TestOpenAIBackendNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"chatcmpl-empty","object":"chat.completion","created":1,"model":"m","choices":[]}`)
	}))
	defer srv.Close()

	b := NewOpenAIBackend(types.ProviderGroq, "k", "m", srv.URL+"/", 0, srv.Client())
	_, err := b.Complete(context.Background(), "p")

	var gerr *types.GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Contains(t, gerr.Error(), "no choices")
	assert.Contains(t, gerr.Payload, "chatcmpl-empty")
}

func TestOpenAIBackendMalformedReplyKeepsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, `<html>gateway hiccup</html>`)
	}))
	defer srv.Close()

	b := NewOpenAIBackend(types.ProviderGroq, "k", "m", srv.URL+"/", 0, srv.Client())
	_, err := b.Complete(context.Background(), "p")

	var gerr *types.GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, `<html>gateway hiccup</html>`, gerr.Payload)
	assert.Contains(t, gerr.Error(), "not JSON")
}

func TestOpenAIBackendMessageContent(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
		wantErr bool
	}{
		{name: "empty content returned as is", message: `{"role":"assistant","content":""}`, want: ""},
		{name: "missing content", message: `{"role":"assistant"}`, wantErr: true},
		{name: "null content", message: `{"role":"assistant","content":null}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"id":"chatcmpl-x","object":"chat.completion","created":1,"model":"m",` +
				`"choices":[{"index":0,"finish_reason":"stop","logprobs":null,"message":` + tt.message + `}]}`
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				io.WriteString(w, body)
			}))
			defer srv.Close()

			b := NewOpenAIBackend(types.ProviderGroq, "k", "m", srv.URL+"/", 0, srv.Client())
			got, err := b.Complete(context.Background(), "p")
			if tt.wantErr {
				var gerr *types.GenerationError
				require.ErrorAs(t, err, &gerr)
				assert.Contains(t, gerr.Error(), "no message content")
				assert.Equal(t, body, gerr.Payload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenAIBackendServiceError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":{"message":"model overloaded","type":"server_error"}}`)
	}))
	defer srv.Close()

	b := NewOpenAIBackend(types.ProviderGroq, "k", "m", srv.URL+"/", 0, srv.Client())
	_, err := b.Complete(context.Background(), "p")

	var gerr *types.GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Contains(t, gerr.Error(), "500")
	assert.Equal(t, 1, calls, "no retries")
}

func TestOpenAIBackendTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL + "/"
	srv.Close()

	b := NewOpenAIBackend(types.ProviderGroq, "k", "m", url, 0, nil)
	_, err := b.Complete(context.Background(), "p")

	var gerr *types.GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Empty(t, gerr.Payload)
}

// --- Claude backend ---

func TestClaudeBackendEmptyTextBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"content":[{"type":"text","text":""}]}`)
	}))
	defer srv.Close()

	c := &ClaudeBackend{APIKey: "k", Model: "m", BaseURL: srv.URL}
	got, err := c.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClaudeBackendComplete(t *testing.T) {
	var gotReq claudeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, claudeAPIVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		io.WriteString(w, `{"content":[{"type":"text","text":"# Caching\n"},{"type":"text","text":"..."}]}`)
	}))
	defer srv.Close()

	c := &ClaudeBackend{APIKey: "test-key", Model: "claude-x", BaseURL: srv.URL, Client: srv.Client()}
	got, err := c.Complete(context.Background(), "Write about caching")
	require.NoError(t, err)

	assert.Equal(t, "# Caching\n...", got)
	assert.Equal(t, "claude-x", gotReq.Model)
	assert.Equal(t, claudeMaxTokens, gotReq.MaxTokens)
	assert.Equal(t, []claudeMessage{{Role: "user", Content: "Write about caching"}}, gotReq.Messages)
}

func TestClaudeBackendErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantPayload string
		errMsg      string
	}{
		{name: "http error", status: http.StatusUnauthorized, body: `{"type":"error","error":{"type":"authentication_error"}}`, wantPayload: "authentication_error", errMsg: "401"},
		{name: "empty content", status: http.StatusOK, body: `{"content":[]}`, wantPayload: `{"content":[]}`, errMsg: "no text content"},
		{name: "missing content", status: http.StatusOK, body: `{"id":"msg_1"}`, wantPayload: "msg_1", errMsg: "no text content"},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantPayload: "<html>", errMsg: "decoding"},
		{name: "tool use only", status: http.StatusOK, body: `{"content":[{"type":"tool_use","id":"t1"}]}`, wantPayload: "tool_use", errMsg: "no text content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := &ClaudeBackend{APIKey: "k", Model: "m", BaseURL: srv.URL}
			_, err := c.Complete(context.Background(), "p")

			var gerr *types.GenerationError
			require.ErrorAs(t, err, &gerr)
			assert.Contains(t, gerr.Payload, tt.wantPayload)
			assert.Contains(t, gerr.Error(), tt.errMsg)
		})
	}
}
