package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/auth"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/chat"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/dashboard"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/insights"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/router"
)

type roleSelectedMsg struct{ err error }

type chatReplyMsg struct {
	reply chat.Message
	err   error
}

// Model is the bubbletea model driving one dashboard session
type Model struct {
	ctx     context.Context
	session *dashboard.Session
	styles  Styles

	view dashboard.View
	page router.Page

	inputs []textinput.Model
	focus  int
	cursor int

	spinner  spinner.Model
	viewport viewport.Model

	chatOpen  bool
	chatInput textinput.Model
	chatBusy  bool

	status string
	width  int
	height int
}

func New(ctx context.Context, s *dashboard.Session) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Accent)

	ci := textinput.New()
	ci.Placeholder = "Ask about your insights..."
	ci.CharLimit = 500

	m := Model{
		ctx:       ctx,
		session:   s,
		styles:    DefaultStyles(),
		spinner:   sp,
		viewport:  viewport.New(80, 20),
		chatInput: ci,
		width:     80,
		height:    24,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// refresh reloads the session view and rebuilds page state when the page changed
func (m *Model) refresh() {
	m.view = m.session.View()
	if m.view.Page == m.page {
		return
	}
	m.page = m.view.Page
	m.cursor = 0
	m.focus = 0
	m.inputs = nil

	switch m.page {
	case router.PageLogin:
		m.inputs = []textinput.Model{
			newInput("Email", false),
			newInput("Password", true),
		}
	case router.PageRegister:
		m.inputs = []textinput.Model{
			newInput("Full name", false),
			newInput("Email", false),
			newInput("Password", true),
			newInput("Confirm password", true),
		}
	case router.PageDetail:
		m.viewport.SetContent(m.detailContent())
		m.viewport.GotoTop()
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	if m.page != router.PageDashboard {
		m.chatOpen = false
	}
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 40
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4
		if m.page == router.PageDetail {
			m.viewport.SetContent(m.detailContent())
		}
		return m, nil

	case roleSelectedMsg:
		m.status = ""
		if msg.err != nil {
			m.status = "Failed to load insights: " + msg.err.Error()
		}
		m.refresh()
		return m, nil

	case chatReplyMsg:
		m.chatBusy = false
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.view.Pending && !m.chatBusy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.chatOpen {
			return m.updateChat(msg)
		}
		switch m.page {
		case router.PageLogin, router.PageRegister:
			return m.updateForm(msg)
		case router.PageRoleSelection:
			return m.updateRoles(msg)
		case router.PageDashboard:
			return m.updateDashboard(msg)
		case router.PageDetail:
			return m.updateDetail(msg)
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		m.setFocus(m.focus + 1)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.setFocus(m.focus - 1)
		return m, nil
	case tea.KeyCtrlR:
		m.status = ""
		m.navigate(m.session.ShowRegister)
		return m, nil
	case tea.KeyCtrlL:
		m.status = ""
		m.navigate(m.session.ShowLogin)
		return m, nil
	case tea.KeyEnter:
		m.submitForm()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) {
	n := len(m.inputs)
	m.focus = ((i % n) + n) % n
	for j := range m.inputs {
		if j == m.focus {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m *Model) submitForm() {
	var err error
	if m.page == router.PageLogin {
		_, err = m.session.Login(m.ctx, auth.LoginRequest{
			Email:    m.inputs[0].Value(),
			Password: m.inputs[1].Value(),
		})
	} else {
		_, err = m.session.Register(m.ctx, auth.RegisterRequest{
			Name:            m.inputs[0].Value(),
			Email:           m.inputs[1].Value(),
			Password:        m.inputs[2].Value(),
			ConfirmPassword: m.inputs[3].Value(),
		})
	}
	m.status = ""
	if err != nil {
		m.status = formError(err)
		return
	}
	m.refresh()
}

func formError(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, auth.ErrRegistrationRejected):
		return "Registration failed. Please try again."
	default:
		return strings.TrimPrefix(err.Error(), auth.ErrValidation.Error()+": ")
	}
}

func (m *Model) navigate(fn func() error) {
	if err := fn(); err != nil {
		m.status = err.Error()
		return
	}
	m.refresh()
}

func (m Model) updateRoles(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.view.Pending {
		return m, nil
	}
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.view.Roles)-1 {
			m.cursor++
		}
	case "q":
		return m, tea.Quit
	case "enter":
		if len(m.view.Roles) == 0 {
			return m, nil
		}
		role := string(m.view.Roles[m.cursor].ID)
		m.status = ""
		m.view.Pending = true
		return m, tea.Batch(m.spinner.Tick, m.selectRole(role))
	}
	return m, nil
}

func (m Model) selectRole(role string) tea.Cmd {
	s, ctx := m.session, m.ctx
	return func() tea.Msg {
		_, err := s.SelectRole(ctx, role)
		return roleSelectedMsg{err: err}
	}
}

// items are the selectable entries of the dashboard: the primary headline
// followed by every card.
func (m Model) items() int {
	if m.view.Dashboard == nil {
		return 0
	}
	n := len(m.view.Dashboard.Cards)
	if m.view.Headline != nil {
		n++
	}
	return n
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.items()-1 {
			m.cursor++
		}
	case "enter":
		m.openSelected()
	case "c":
		m.chatOpen = true
		m.chatInput.Focus()
		return m, textinput.Blink
	case "l":
		m.status = ""
		if err := m.session.Logout(m.ctx); err != nil {
			m.status = err.Error()
		}
		m.refresh()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) openSelected() {
	idx := m.cursor
	var err error
	if m.view.Headline != nil {
		if idx == 0 {
			err = m.session.OpenHeadline(m.ctx, m.view.Headline.ID)
		}
		idx--
	}
	if idx >= 0 && idx < len(m.view.Dashboard.Cards) {
		err = m.session.OpenCard(m.ctx, m.view.Dashboard.Cards[idx].ID)
	}
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
	m.refresh()
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "b":
		m.navigate(m.session.Back)
		return m, nil
	case "q":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.chatOpen = false
		m.chatInput.Blur()
		return m, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(m.chatInput.Value())
		if text == "" || m.chatBusy {
			return m, nil
		}
		m.chatInput.Reset()
		m.chatBusy = true
		s, ctx := m.session, m.ctx
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			reply, err := s.Chat(ctx, text)
			return chatReplyMsg{reply: reply, err: err}
		})
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var body string
	switch m.page {
	case router.PageLogin:
		body = m.formView("Welcome back", "Sign in to your dashboard", "enter sign in • tab next field • ctrl+r create account")
	case router.PageRegister:
		body = m.formView("Create account", "Register to get started", "enter register • tab next field • ctrl+l back to sign in")
	case router.PageRoleSelection:
		body = m.rolesView()
	case router.PageDashboard:
		body = m.dashboardView()
		if m.chatOpen {
			body = lipgloss.JoinVertical(lipgloss.Left, body, m.chatView())
		}
	case router.PageDetail:
		body = m.detailView()
	}

	if m.status != "" {
		body += "\n" + m.styles.Error.Render(m.status)
	}
	return body
}

func (m Model) formView(title, subtitle, help string) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Clarity") + "\n\n")
	b.WriteString(m.styles.Subtitle.Render(title) + "\n")
	b.WriteString(m.styles.Muted.Render(subtitle) + "\n\n")
	for _, in := range m.inputs {
		b.WriteString(in.View() + "\n")
	}
	b.WriteString("\n" + m.styles.Help.Render(help))
	return b.String()
}

func (m Model) rolesView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Select your role") + "\n")
	if m.view.User != nil {
		b.WriteString(m.styles.Muted.Render("Signed in as "+m.view.User.Email) + "\n")
	}
	b.WriteString("\n")

	for i, r := range m.view.Roles {
		line := "  " + r.Title
		if i == m.cursor {
			line = m.styles.Selected.Render("▸ " + r.Title)
		}
		b.WriteString(line + "\n")
	}

	if m.view.Pending {
		b.WriteString("\n" + m.spinner.View() + " Loading insights...")
	} else {
		b.WriteString("\n" + m.styles.Help.Render("↑/↓ choose • enter continue • q quit"))
	}
	return b.String()
}

func (m Model) dashboardView() string {
	d := m.view.Dashboard
	if d == nil {
		return ""
	}

	var b strings.Builder
	header := "Clarity"
	if m.view.User != nil {
		header = fmt.Sprintf("Clarity · %s · %s", m.view.User.Name, m.view.RoleTitle)
	}
	b.WriteString(m.styles.Title.Render(header) + "\n")
	if d.Date != "" {
		b.WriteString(m.styles.Muted.Render(d.Date) + "\n")
	}
	if d.Overview != "" {
		b.WriteString(lipgloss.NewStyle().Width(m.width-2).Render(d.Overview) + "\n")
	}
	b.WriteString("\n")

	idx := 0
	if h := m.view.Headline; h != nil {
		title := h.Title
		if m.cursor == idx {
			title = m.styles.Selected.Render("▸ " + title)
		}
		b.WriteString(m.styles.Headline.Render(title+"\n"+m.styles.Muted.Render(h.Summary)) + "\n\n")
		idx++
	}

	b.WriteString(m.styles.Subtitle.Render("Insights") + "\n")
	for _, c := range d.Cards {
		title := c.Title
		if m.cursor == idx {
			title = m.styles.Selected.Render("▸ " + title)
		}
		b.WriteString(m.styles.Card.Render(categoryBadge(c.Category)+"\n"+title+"\n"+m.styles.Muted.Render(c.Description)) + "\n")
		idx++
	}

	if len(d.Metrics) > 0 {
		tiles := make([]string, 0, len(d.Metrics))
		for _, km := range d.Metrics {
			tiles = append(tiles, m.metricTile(km))
		}
		b.WriteString("\n" + lipgloss.JoinHorizontal(lipgloss.Top, tiles...) + "\n")
	}

	b.WriteString("\n" + m.styles.Help.Render("↑/↓ select • enter open • c chat • l logout • q quit"))
	return b.String()
}

func (m Model) metricTile(km insights.KPIMetric) string {
	trend := trendStyle(km.Trend).Render(insights.TrendSymbol(km.Trend) + " " + km.ChangeLabel())
	return m.styles.Tile.Render(m.styles.Muted.Render(km.Title) + "\n" + m.styles.Subtitle.Render(km.Value) + "\n" + trend)
}

func (m Model) detailView() string {
	title := ""
	if m.view.Selection != nil {
		title = m.view.Selection.Title()
	}
	return m.styles.Title.Render(title) + "\n" +
		m.viewport.View() + "\n" +
		m.styles.Help.Render("↑/↓ scroll • esc back • q quit")
}

func (m Model) detailContent() string {
	d := m.view.Detail
	if d == nil {
		return ""
	}
	width := m.width - 2

	var b strings.Builder
	wrap := lipgloss.NewStyle().Width(width)
	b.WriteString(wrap.Render(d.Insights) + "\n\n")

	if len(d.InsightPoints) > 0 {
		b.WriteString(m.styles.Subtitle.Render("Key Insights") + "\n")
		for _, p := range d.InsightPoints {
			b.WriteString(wrap.Render("• "+p) + "\n")
		}
		b.WriteString("\n")
	}

	if len(d.Recommendations) > 0 {
		b.WriteString(m.styles.Subtitle.Render("Recommendations") + "\n")
		for i, r := range d.Recommendations {
			b.WriteString(wrap.Render(fmt.Sprintf("%d. %s", i+1, r)) + "\n")
		}
		b.WriteString("\n")
	}

	if len(d.Metrics) > 0 {
		b.WriteString(m.styles.Subtitle.Render("Key Metrics") + "\n")
		for _, km := range d.Metrics {
			trend := trendStyle(km.Trend).Render(insights.TrendSymbol(km.Trend) + " " + km.ChangeLabel())
			b.WriteString(fmt.Sprintf("%-28s %-10s %s\n", km.Title, km.Value, trend))
		}
		b.WriteString("\n")
	}

	for _, key := range d.ChartData.Keys() {
		if chart := RenderChart(key, d.ChartData[key], width); chart != "" {
			b.WriteString(chart + "\n\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) chatView() string {
	var b strings.Builder
	b.WriteString("\n" + m.styles.Subtitle.Render("Assistant") + "\n")

	messages := m.session.Transcript()
	if len(messages) > 6 {
		messages = messages[len(messages)-6:]
	}
	for _, msg := range messages {
		style := m.styles.Bot
		if msg.Sender == "user" {
			style = m.styles.User
		}
		b.WriteString(style.Render(msg.Sender+": ") + msg.Text + "\n")
	}

	if m.chatBusy {
		b.WriteString(m.spinner.View() + " Thinking...\n")
	}
	b.WriteString(m.chatInput.View() + "\n")
	b.WriteString(m.styles.Help.Render("enter send • esc close"))
	return m.styles.Card.Render(b.String())
}
