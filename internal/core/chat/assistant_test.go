package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/llm"
)

type stubProvider struct {
	reply   string
	err     error
	history []llm.Message
	prompt  string
}

func (s *stubProvider) GenerateResponse(_ context.Context, prompt string, history []llm.Message, _ string) (string, error) {
	s.prompt, s.history = prompt, history
	return s.reply, s.err
}

func (s *stubProvider) GetProviderName() string { return "stub" }

func ask(a *Assistant, tr *Transcript, dc llm.DashboardContext, text string) Message {
	history := tr.History()
	user := a.AddUser(tr, text)
	return a.AddReply(tr, a.Reply(context.Background(), dc, history, user.Text))
}

func TestAssistant_Demo(t *testing.T) {
	a := NewAssistant(nil)
	tr := a.NewTranscript()
	require.Len(t, tr.Messages, 1)
	assert.Equal(t, Greeting, tr.Messages[0].Text)

	reply := ask(a, tr, llm.DashboardContext{}, "  hi  ")
	assert.Equal(t, DemoReply, reply.Text)
	require.Len(t, tr.Messages, 3)
	assert.Equal(t, "hi", tr.Messages[1].Text)
	assert.Equal(t, "user", tr.Messages[1].Sender)
	assert.Equal(t, 3, reply.ID)
}

func TestAssistant_Provider(t *testing.T) {
	p := &stubProvider{reply: "Revenue grew 12%."}
	a := NewAssistant(p)
	tr := a.NewTranscript()

	reply := ask(a, tr, llm.DashboardContext{Overview: "ov"}, "revenue?")
	assert.Equal(t, "Revenue grew 12%.", reply.Text)
	assert.Contains(t, p.prompt, "ov")
	require.Len(t, p.history, 1)
	assert.Equal(t, "assistant", p.history[0].Role)
}

func TestAssistant_ProviderError(t *testing.T) {
	a := NewAssistant(&stubProvider{err: errors.New("down")})
	tr := a.NewTranscript()

	reply := ask(a, tr, llm.DashboardContext{}, "x")
	assert.Equal(t, DemoReply, reply.Text)
}

func TestAssistant_ReplyLeavesTranscript(t *testing.T) {
	p := &stubProvider{reply: "  fine  "}
	a := NewAssistant(p)
	tr := a.NewTranscript()

	history := tr.History()
	a.AddUser(tr, " status? ")
	assert.Equal(t, "fine", a.Reply(context.Background(), llm.DashboardContext{}, history, "status?"))
	require.Len(t, tr.Messages, 2)
	assert.Equal(t, "status?", tr.Messages[1].Text)
	require.Len(t, p.history, 1)

	reply := a.AddReply(tr, "fine")
	assert.Equal(t, 3, reply.ID)
	assert.Equal(t, "bot", reply.Sender)
}
