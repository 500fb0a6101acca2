package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(ProviderConfig{})
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = NewProvider(ProviderConfig{Type: ProviderGroq})
	assert.ErrorContains(t, err, "API key")

	_, err = NewProvider(ProviderConfig{Type: "gemini"})
	assert.ErrorContains(t, err, "unknown")

	p, err = NewProvider(ProviderConfig{Type: ProviderDeepSeek, DeepSeekKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "DeepSeek", p.GetProviderName())
	assert.Equal(t, "deepseek-chat", p.(*ChatProvider).Model())
}

func TestChatProvider_GenerateResponse(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Revenue is up."},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	p, err := NewProvider(ProviderConfig{Type: ProviderOpenAI, OpenAIKey: "k", BaseURL: srv.URL, Model: "m"})
	require.NoError(t, err)

	reply, err := p.GenerateResponse(context.Background(), "sys", []Message{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hello"}}, "how is revenue?")
	require.NoError(t, err)
	assert.Equal(t, "Revenue is up.", reply)

	assert.Equal(t, "m", got.Model)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "assistant", got.Messages[2].Role)
	assert.Equal(t, "how is revenue?", got.Messages[3].Content)
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := BuildSystemPrompt(DashboardContext{
		UserName: "Test User",
		Role:     "Manager",
		Overview: "All good",
		Cards:    []string{"Retention up"},
		Metrics:  []string{"Revenue: $2.4M"},
	})
	assert.Contains(t, prompt, "Test User")
	assert.Contains(t, prompt, "=== INSIGHTS ===\n- Retention up")
	assert.Contains(t, prompt, "Revenue: $2.4M")
	assert.NotContains(t, prompt, "HEADLINE")
}
