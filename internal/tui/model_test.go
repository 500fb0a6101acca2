package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/auth"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/dashboard"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/insights"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/router"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/session"
)

const payload = `{"date":"2024-05-01","overview":"Spend efficiency improved","headline":"ROI up",
"questions":[{"headline":"Retention climbs","summary":"Repeat buyers up","details":"d1","category":"customer"}],
"metrics":[{"title":"ROAS","value":"4.1x","trend":"up"}]}`

type fetcher struct{ err error }

func (f fetcher) Fetch(_ context.Context, _ string) (*insights.Payload, []byte, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	p, err := insights.DecodePayload([]byte(payload))
	return p, []byte(payload), err
}

func newModel(t *testing.T, f insights.Fetcher) Model {
	t.Helper()
	s, err := dashboard.NewSession(context.Background(), session.NewStore(session.NewMemoryKV(), "tui"), dashboard.Deps{
		Credentials: auth.DemoCredentials(),
		Fetcher:     f,
		Fallback:    insights.StaticDataset(),
	})
	require.NoError(t, err)
	return New(context.Background(), s)
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, cmd := m.Update(k)
		m = run(next.(Model), cmd)
	}
	return m
}

// run executes cmd and feeds back the session messages it produces
func run(m Model, cmd tea.Cmd) Model {
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = run(m, c)
		}
	case roleSelectedMsg, chatReplyMsg:
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func signIn(m Model) Model {
	return press(m,
		typeText("test@gmail.com"), key(tea.KeyTab),
		typeText("test1234"), key(tea.KeyEnter),
	)
}

func TestModel_LoginToDetail(t *testing.T) {
	m := newModel(t, fetcher{})
	assert.Equal(t, router.PageLogin, m.page)
	assert.Contains(t, m.View(), "Welcome back")

	m = signIn(m)
	require.Equal(t, router.PageRoleSelection, m.page)
	assert.Contains(t, m.View(), "Administrator")

	m = press(m, typeText("j"), key(tea.KeyEnter))
	require.Equal(t, router.PageDashboard, m.page)
	view := m.View()
	assert.Contains(t, view, "Manager")
	assert.Contains(t, view, "Retention climbs")
	assert.Contains(t, view, "ROAS")

	// cursor 0 is the headline, 1 the first card
	m = press(m, typeText("j"), key(tea.KeyEnter))
	require.Equal(t, router.PageDetail, m.page)
	content := m.detailContent()
	assert.Contains(t, content, "Retention Rate Trend")
	assert.Contains(t, content, "Retention by Segment")

	m = press(m, key(tea.KeyEsc))
	assert.Equal(t, router.PageDashboard, m.page)

	m = press(m, typeText("l"))
	assert.Equal(t, router.PageLogin, m.page)
}

func TestModel_InvalidLogin(t *testing.T) {
	m := newModel(t, fetcher{})
	m = press(m,
		typeText("test@gmail.com"), key(tea.KeyTab),
		typeText("wrongpass"), key(tea.KeyEnter),
	)
	assert.Equal(t, router.PageLogin, m.page)
	assert.Contains(t, m.View(), "Invalid email or password")
}

func TestModel_RegisterNavigation(t *testing.T) {
	m := newModel(t, fetcher{})
	m = press(m, key(tea.KeyCtrlR))
	require.Equal(t, router.PageRegister, m.page)
	assert.Len(t, m.inputs, 4)

	m = press(m, key(tea.KeyEnter))
	assert.Contains(t, m.View(), "please fill in all fields")

	m = press(m, key(tea.KeyCtrlL))
	assert.Equal(t, router.PageLogin, m.page)
}

func TestModel_FetchFailureStaysOnRoles(t *testing.T) {
	m := newModel(t, fetcher{err: errors.New("connection refused")})
	m = signIn(m)
	m = press(m, key(tea.KeyEnter))

	assert.Equal(t, router.PageRoleSelection, m.page)
	assert.Contains(t, m.View(), "Failed to load insights")
}

func TestModel_Chat(t *testing.T) {
	m := newModel(t, fetcher{})
	m = signIn(m)
	m = press(m, key(tea.KeyEnter))
	require.Equal(t, router.PageDashboard, m.page)

	m = press(m, typeText("c"), typeText("hello"), key(tea.KeyEnter))
	assert.True(t, m.chatOpen)
	assert.False(t, m.chatBusy)
	assert.Len(t, m.session.Transcript(), 3)
	assert.Contains(t, m.View(), "Assistant")

	m = press(m, key(tea.KeyEsc))
	assert.False(t, m.chatOpen)
}

func TestRenderChart(t *testing.T) {
	months := []analytics.Point{{Label: "Jan", Value: 1}, {Label: "Feb", Value: 3}, {Label: "Mar", Value: 2}}

	line := RenderChart("revenue", months, 60)
	assert.Contains(t, line, "Revenue Trend")
	assert.Contains(t, line, "█")
	assert.Contains(t, line, "▁")

	bar := RenderChart("features", months, 60)
	assert.Equal(t, 4, len(strings.Split(bar, "\n")))

	pie := RenderChart("processes", []analytics.Point{{Label: "Automated", Value: 3}, {Label: "Manual", Value: 1}}, 60)
	assert.Contains(t, pie, "Automated 75%")
	assert.Contains(t, pie, "Manual 25%")

	assert.Empty(t, RenderChart("unknown", months, 60))
	assert.Empty(t, RenderChart("revenue", nil, 60))
}

func TestSparklineSinglePoint(t *testing.T) {
	out := sparkline([]analytics.Point{{Label: "Jan", Value: 5}})
	assert.Contains(t, out, "▅▅▅")
}
