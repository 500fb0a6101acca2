package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Provider generates a chat reply
type Provider interface {
	GenerateResponse(ctx context.Context, systemPrompt string, history []Message, userMessage string) (string, error)
	GetProviderName() string
}

// Message is one earlier turn of a conversation
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// ProviderType untuk factory
type ProviderType string

const (
	ProviderNone     ProviderType = ""
	ProviderOpenAI   ProviderType = "openai"
	ProviderGroq     ProviderType = "groq"
	ProviderDeepSeek ProviderType = "deepseek"
)

// ProviderConfig untuk create provider
type ProviderConfig struct {
	Type ProviderType

	OpenAIKey   string
	GroqKey     string
	DeepSeekKey string

	Model       string
	Temperature float32
	MaxTokens   int

	// BaseURL overrides the provider endpoint (used by tests)
	BaseURL string
}

var providerDefaults = map[ProviderType]struct {
	name    string
	baseURL string
	model   string
}{
	ProviderOpenAI:   {name: "OpenAI", model: "gpt-4o-mini"},
	ProviderGroq:     {name: "Groq", baseURL: "https://api.groq.com/openai/v1", model: "llama-3.1-8b-instant"},
	ProviderDeepSeek: {name: "DeepSeek", baseURL: "https://api.deepseek.com", model: "deepseek-chat"},
}

// NewProvider returns nil without error for ProviderNone, so callers can
// fall back to canned replies.
func NewProvider(cfg ProviderConfig) (Provider, error) {
	var apiKey string
	switch cfg.Type {
	case ProviderNone:
		return nil, nil
	case ProviderOpenAI:
		apiKey = cfg.OpenAIKey
	case ProviderGroq:
		apiKey = cfg.GroqKey
	case ProviderDeepSeek:
		apiKey = cfg.DeepSeekKey
	default:
		return nil, fmt.Errorf("unknown LLM provider type: %s", cfg.Type)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key for %s is required", cfg.Type)
	}

	d := providerDefaults[cfg.Type]
	config := openai.DefaultConfig(apiKey)
	if d.baseURL != "" {
		config.BaseURL = d.baseURL
	}
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	config.HTTPClient = &http.Client{Timeout: 60 * time.Second}

	model := cfg.Model
	if model == "" {
		model = d.model
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.7
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 512
	}

	return &ChatProvider{
		name:        d.name,
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

// ChatProvider talks to any OpenAI-compatible chat completion API
type ChatProvider struct {
	name        string
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

func (p *ChatProvider) GetProviderName() string {
	return p.name
}

func (p *ChatProvider) Model() string {
	return p.model
}

func (p *ChatProvider) GenerateResponse(ctx context.Context, systemPrompt string, history []Message, userMessage string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userMessage})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%s error: %w", p.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from %s", p.name)
	}

	return resp.Choices[0].Message.Content, nil
}
