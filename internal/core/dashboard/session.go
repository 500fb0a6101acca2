package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/audit"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/auth"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/chat"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/detail"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/export"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/insights"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/llm"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/metrics"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/router"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/session"
)

var (
	ErrSelectionPending = errors.New("role selection already in progress")
	ErrNotFound         = errors.New("not found")
	ErrEmptyMessage     = errors.New("message is empty")
)

// Deps are the collaborators shared by every session
type Deps struct {
	Credentials auth.Credentials
	Fetcher     insights.Fetcher
	Fallback    insights.Dataset
	Assistant   *chat.Assistant
	Recorder    audit.Recorder   // optional
	Observer    metrics.Observer // optional
	Rules       []router.Rule    // optional, router.DefaultRules when nil

	// Synthesizer builds the detail synthesizer for a role. detail.Default when nil.
	Synthesizer func(auth.Role) detail.Synthesizer
}

// Session is the state of one dashboard user: auth state, page, persisted
// insights and chat. All methods are safe for concurrent use; events are
// applied one at a time.
type Session struct {
	mu sync.Mutex

	id         string
	store      *session.Store
	deps       Deps
	auth       *auth.State
	router     *router.Router
	payload    *insights.Payload
	transcript *chat.Transcript
	pending    bool

	// generation changes on every sign-in and sign-out. Work started under an
	// older generation is discarded when it completes.
	generation uint64
}

// NewSession rehydrates the session stored under store's namespace
func NewSession(ctx context.Context, store *session.Store, deps Deps) (*Session, error) {
	if deps.Fetcher == nil {
		return nil, fmt.Errorf("insights fetcher is required")
	}
	if deps.Assistant == nil {
		deps.Assistant = chat.NewAssistant(nil)
	}
	if deps.Synthesizer == nil {
		deps.Synthesizer = detail.Default
	}

	st, err := auth.NewState(ctx, store, deps.Credentials)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:         store.Namespace(),
		store:      store,
		deps:       deps,
		auth:       st,
		router:     router.New(deps.Rules),
		transcript: deps.Assistant.NewTranscript(),
	}
	if err := s.loadPayload(ctx); err != nil {
		return nil, err
	}
	s.sync()

	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

// User returns a copy of the signed-in user, or nil
func (s *Session) User() *auth.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth.User()
}

func (s *Session) loadPayload(ctx context.Context) error {
	raw, ok, err := s.store.LoadRaw(ctx, session.KeyInsights)
	if err != nil {
		return fmt.Errorf("failed to load insights: %w", err)
	}
	if !ok {
		return nil
	}

	p, err := insights.DecodePayload([]byte(raw))
	if err != nil {
		log.Warn().Err(err).Str("session", s.id).Msg("⚠️ Discarding unreadable insights payload")
		return nil
	}
	s.payload = p
	return nil
}

// sync runs the router guards. Callers hold mu.
func (s *Session) sync() {
	s.router.Sync(s.auth)
	s.observer().RecordPage(string(s.router.Page()))
}

func (s *Session) observer() metrics.Observer {
	if s.deps.Observer == nil {
		return (*metrics.Prometheus)(nil)
	}
	return s.deps.Observer
}

func (s *Session) record(ctx context.Context, action, entity, entityID string, meta interface{}) {
	if s.deps.Recorder == nil {
		return
	}
	e := audit.Event{
		SessionID: s.id,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Metadata:  audit.Metadata(meta),
	}
	if u := s.auth.User(); u != nil {
		e.UserEmail = u.Email
		e.Role = string(u.Role)
	}
	s.deps.Recorder.Record(ctx, e)
}

func (s *Session) requirePage(p router.Page) error {
	if s.router.Page() != p {
		return fmt.Errorf("%w: %s is only available on %s", router.ErrInvalidTransition, p, s.router.Page())
	}
	return nil
}

// Login validates the form and signs in with the demo credentials
func (s *Session) Login(ctx context.Context, req auth.LoginRequest) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requirePage(router.PageLogin); err != nil {
		return auth.User{}, err
	}
	if err := auth.ValidateLogin(req); err != nil {
		return auth.User{}, err
	}

	user, err := s.auth.Login(ctx, req.Email, req.Password)
	s.observer().RecordAuth(audit.ActionLogin, err)
	if err != nil {
		s.record(ctx, audit.ActionLoginFailed, "", "", map[string]string{"email": req.Email})
		return auth.User{}, err
	}

	s.generation++
	s.record(ctx, audit.ActionLogin, "", "", nil)
	s.sync()
	return user, nil
}

// Register validates the form and creates the demo account
func (s *Session) Register(ctx context.Context, req auth.RegisterRequest) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requirePage(router.PageRegister); err != nil {
		return auth.User{}, err
	}
	if err := auth.ValidateRegistration(req); err != nil {
		return auth.User{}, err
	}

	user, err := s.auth.Register(ctx, req.Email, req.Password, req.Name)
	s.observer().RecordAuth(audit.ActionRegister, err)
	if err != nil {
		return auth.User{}, err
	}

	s.generation++
	s.record(ctx, audit.ActionRegister, "", "", nil)
	s.sync()
	return user, nil
}

// SelectRole loads the insights for role and, on success, stores them and
// assigns the role. On failure the role and page are unchanged. The fetch
// runs without holding the session lock; a concurrent SelectRole gets
// ErrSelectionPending. A fetch that completes after the user signed out (or
// signed out and in again) is discarded with ErrNoActiveUser.
func (s *Session) SelectRole(ctx context.Context, name string) (auth.User, error) {
	role, err := auth.ParseRole(name)
	if err != nil {
		return auth.User{}, err
	}

	s.mu.Lock()
	switch {
	case s.pending:
		s.mu.Unlock()
		return auth.User{}, ErrSelectionPending
	case !s.auth.HasUser():
		s.mu.Unlock()
		return auth.User{}, auth.ErrNoActiveUser
	}
	if err := s.requirePage(router.PageRoleSelection); err != nil {
		s.mu.Unlock()
		return auth.User{}, err
	}
	s.pending = true
	gen := s.generation
	s.mu.Unlock()

	start := time.Now()
	payload, raw, fetchErr := s.deps.Fetcher.Fetch(ctx, string(role))
	s.observer().RecordFetch(time.Since(start), fetchErr)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		log.Info().Str("session", s.id).Str("role", string(role)).Msg("🗑️ Discarding insights fetched for a previous sign-in")
		return auth.User{}, auth.ErrNoActiveUser
	}
	s.pending = false

	if fetchErr != nil {
		s.observer().RecordAuth(audit.ActionRoleSelected, fetchErr)
		s.record(ctx, audit.ActionFetchFailed, "insights", string(role), map[string]string{"error": fetchErr.Error()})
		log.Warn().Err(fetchErr).Str("session", s.id).Str("role", string(role)).Msg("⚠️ Insights fetch failed")
		return auth.User{}, fetchErr
	}

	if !s.auth.HasUser() || s.router.Page() != router.PageRoleSelection {
		return auth.User{}, auth.ErrNoActiveUser
	}

	if err := s.store.SaveRaw(ctx, session.KeyInsights, string(raw)); err != nil {
		return auth.User{}, fmt.Errorf("failed to persist insights: %w", err)
	}

	user, err := s.auth.SelectRole(ctx, role)
	s.observer().RecordAuth(audit.ActionRoleSelected, err)
	if err != nil {
		if delErr := s.store.Delete(ctx, session.KeyInsights); delErr != nil {
			log.Error().Err(delErr).Str("session", s.id).Msg("❌ Failed to roll back insights")
		}
		return auth.User{}, err
	}
	s.payload = payload
	if err := s.router.RoleSelected(s.auth); err != nil {
		return auth.User{}, err
	}
	s.observer().RecordPage(string(s.router.Page()))

	s.record(ctx, audit.ActionRoleSelected, "insights", string(role), map[string]int{"questions": len(payload.Questions)})
	return user, nil
}

// Logout clears the user and the stored insights
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.auth.HasUser() {
		s.record(ctx, audit.ActionLogout, "", "", nil)
	}
	if err := s.auth.Logout(ctx); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, session.KeyInsights); err != nil {
		return fmt.Errorf("failed to clear insights: %w", err)
	}
	s.payload = nil
	s.pending = false
	s.generation++
	s.transcript = s.deps.Assistant.NewTranscript()
	s.sync()
	return nil
}

func (s *Session) ShowRegister() error {
	return s.navigate(s.router.ShowRegister)
}

func (s *Session) ShowLogin() error {
	return s.navigate(s.router.ShowLogin)
}

// Back leaves the detail page
func (s *Session) Back() error {
	return s.navigate(s.router.Back)
}

func (s *Session) navigate(fn func(router.Auth) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.auth); err != nil {
		return err
	}
	s.observer().RecordPage(string(s.router.Page()))
	return nil
}

// OpenHeadline shows the detail page of the headline with id
func (s *Session) OpenHeadline(ctx context.Context, id string) error {
	return s.open(ctx, detail.KindHeadline, id)
}

// OpenCard shows the detail page of the card with id
func (s *Session) OpenCard(ctx context.Context, id string) error {
	return s.open(ctx, detail.KindCard, id)
}

func (s *Session) open(ctx context.Context, kind detail.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requirePage(router.PageDashboard); err != nil {
		return err
	}

	v := s.dashboardView()
	var sel detail.Selection
	switch kind {
	case detail.KindHeadline:
		h, ok := v.Headline(id)
		if !ok {
			return fmt.Errorf("headline %s: %w", id, ErrNotFound)
		}
		sel = detail.HeadlineSelection(h)
	default:
		c, ok := v.Card(id)
		if !ok {
			return fmt.Errorf("card %s: %w", id, ErrNotFound)
		}
		sel = detail.CardSelection(c)
	}

	role := auth.Role("")
	if u := s.auth.User(); u != nil {
		role = u.Role
	}
	d := s.deps.Synthesizer(role).Synthesize(sel, v.Metrics)

	if err := s.router.Open(s.auth, sel, d); err != nil {
		return err
	}
	s.observer().RecordOpen(string(kind))
	s.observer().RecordPage(string(s.router.Page()))
	s.record(ctx, audit.ActionOpen, string(kind), id, nil)
	return nil
}

// dashboardView normalizes the current payload. Callers hold mu.
func (s *Session) dashboardView() insights.View {
	return insights.Normalize(s.payload, s.deps.Fallback)
}

// Chat sends text to the assistant and returns its reply. The user message
// is visible in the transcript while the provider is answering; the session
// lock is not held during the provider call.
func (s *Session) Chat(ctx context.Context, text string) (chat.Message, error) {
	s.mu.Lock()
	if !s.auth.IsAuthenticated() {
		s.mu.Unlock()
		return chat.Message{}, auth.ErrNoActiveUser
	}
	text = strings.TrimSpace(text)
	if text == "" {
		s.mu.Unlock()
		return chat.Message{}, ErrEmptyMessage
	}

	t := s.transcript
	dc := s.chatContext()
	history := t.History()
	s.deps.Assistant.AddUser(t, text)
	s.mu.Unlock()

	answer := s.deps.Assistant.Reply(ctx, dc, history, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.transcript != t {
		return chat.Message{}, auth.ErrNoActiveUser
	}
	reply := s.deps.Assistant.AddReply(t, answer)
	s.record(ctx, audit.ActionChat, "", "", nil)
	return reply, nil
}

// Transcript returns a copy of the chat so far
func (s *Session) Transcript() []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chat.Message{}, s.transcript.Messages...)
}

func (s *Session) chatContext() llm.DashboardContext {
	u := s.auth.User()
	v := s.dashboardView()

	dc := llm.DashboardContext{Overview: v.Overview}
	if u != nil {
		dc.UserName, dc.Role = u.Name, u.Role.Title()
	}
	if h, ok := v.PrimaryHeadline(); ok {
		dc.Headline = h.Title + ": " + h.Summary
	}
	for _, c := range v.Cards {
		dc.Cards = append(dc.Cards, fmt.Sprintf("[%s] %s", c.Category, c.Title))
	}
	for _, m := range v.Metrics {
		dc.Metrics = append(dc.Metrics, fmt.Sprintf("%s: %s (%s)", m.Title, m.Value, m.Trend))
	}
	return dc
}

// Report lays out the dashboard for export
func (s *Session) Report(ctx context.Context, now time.Time) (*export.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.auth.User()
	if u == nil || !u.HasRole() {
		return nil, auth.ErrNoActiveUser
	}
	s.record(ctx, audit.ActionExport, "", "", nil)
	return export.DashboardReport(s.dashboardView(), u.Name, u.Role.Title(), now), nil
}

// Chart returns the series stored under key in the open detail
func (s *Session) Chart(key string) ([]analytics.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, d := s.router.Selection()
	if d == nil {
		return nil, fmt.Errorf("%w: no detail is open", router.ErrInvalidTransition)
	}
	points, ok := d.ChartData[key]
	if !ok {
		return nil, fmt.Errorf("chart %s: %w", key, ErrNotFound)
	}
	return append([]analytics.Point{}, points...), nil
}
