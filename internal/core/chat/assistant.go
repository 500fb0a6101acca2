package chat

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/llm"
)

const (
	Greeting  = "Hello! How can I help you with your analytics today?"
	DemoReply = "I'm here to help! This is a demo chatbot. In a real application, this would connect to your backend."

	maxHistory = 20
)

// Message is one line of the chat transcript
type Message struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"` // "user" or "bot"
	Timestamp time.Time `json:"timestamp"`
}

// Assistant answers dashboard questions. Without a provider every question
// gets DemoReply.
type Assistant struct {
	provider llm.Provider
	now      func() time.Time
}

func NewAssistant(provider llm.Provider) *Assistant {
	return &Assistant{provider: provider, now: time.Now}
}

// Transcript is the conversation of one session
type Transcript struct {
	Messages []Message `json:"messages"`
}

// NewTranscript starts a conversation with the greeting
func (a *Assistant) NewTranscript() *Transcript {
	return &Transcript{Messages: []Message{{ID: 1, Text: Greeting, Sender: "bot", Timestamp: a.now()}}}
}

// AddUser appends the trimmed user message to t
func (a *Assistant) AddUser(t *Transcript, text string) Message {
	return t.append(a.now(), strings.TrimSpace(text), "user")
}

// AddReply appends a bot message to t
func (a *Assistant) AddReply(t *Transcript, text string) Message {
	return t.append(a.now(), text, "bot")
}

// Reply asks the provider about text given the earlier turns. It touches no
// transcript, so callers may run it without holding their own locks.
// Provider failures are logged and answered with DemoReply.
func (a *Assistant) Reply(ctx context.Context, dc llm.DashboardContext, history []llm.Message, text string) string {
	if a.provider == nil {
		return DemoReply
	}

	answer, err := a.provider.GenerateResponse(ctx, llm.BuildSystemPrompt(dc), history, text)
	if err != nil {
		log.Warn().Err(err).Str("provider", a.provider.GetProviderName()).Msg("⚠️ Chat provider failed, using demo reply")
		return DemoReply
	}
	if answer = strings.TrimSpace(answer); answer != "" {
		return answer
	}
	return DemoReply
}

func (t *Transcript) append(ts time.Time, text, sender string) Message {
	m := Message{ID: len(t.Messages) + 1, Text: text, Sender: sender, Timestamp: ts}
	t.Messages = append(t.Messages, m)
	return m
}

// History returns the last turns of t in provider form
func (t *Transcript) History() []llm.Message {
	msgs := t.Messages
	if len(msgs) > maxHistory {
		msgs = msgs[len(msgs)-maxHistory:]
	}
	out := make([]llm.Message, 0, len(msgs))
	for _, m := range msgs {
		role := "user"
		if m.Sender == "bot" {
			role = "assistant"
		}
		out = append(out, llm.Message{Role: role, Content: m.Text})
	}
	return out
}
