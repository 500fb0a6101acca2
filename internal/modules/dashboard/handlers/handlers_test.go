package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/audit"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/auth"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/dashboard"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/export"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/insights"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/router"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/session"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/shared/database"
)

const insightsBody = `{"date":"2024-05-01","overview":"Spend efficiency improved","headline":"ROI up",
"questions":[{"headline":"Retention climbs","summary":"s1","details":"d1","category":"customer","overview":"o1"},
{"headline":"Ops automation","summary":"s2","details":"d2","category":"operations","overview":"o2"}],
"metrics":[{"title":"ROAS","value":"4.1x","trend":"up"}]}`

type testServer struct {
	app      *fiber.App
	upstream *httptest.Server
	status   int
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{status: http.StatusOK}
	ts.upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ts.status != http.StatusOK {
			w.WriteHeader(ts.status)
			return
		}
		_, _ = io.WriteString(w, insightsBody)
	}))
	t.Cleanup(ts.upstream.Close)

	db, err := database.Open("sqlite", ":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate(&audit.Event{}))
	auditService := audit.NewService(db.GORM)

	registry, err := dashboard.NewRegistry(16, session.NewMemoryKV(), dashboard.Deps{
		Credentials: auth.DemoCredentials(),
		Fetcher:     insights.NewClient(ts.upstream.URL, 5*time.Second),
		Fallback:    insights.StaticDataset(),
		Recorder:    auditService,
	})
	require.NoError(t, err)

	tokens := auth.NewTokenService("test-secret", time.Hour)
	ts.app = fiber.New()
	RegisterRoutes(ts.app, Routes{
		Sessions: NewSessionHandler(registry, tokens, auditService),
		Insights: NewInsightHandler(export.NewService(), "http://localhost:8080"),
		Activity: NewActivityHandler(auditService),
		Health:   NewHealthHandler(registry, "none"),
		Session:  SessionMiddleware(tokens, registry),
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func (ts *testServer) start(t *testing.T) string {
	t.Helper()
	resp := ts.do(t, http.MethodPost, "/sessions", "", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out SessionResponse
	decode(t, resp, &out)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, router.PageLogin, out.View.Page)
	return out.Token
}

func (ts *testServer) signIn(t *testing.T, token, role string) {
	t.Helper()
	resp := ts.do(t, http.MethodPost, "/auth/login", token, auth.LoginRequest{Email: auth.DemoEmail, Password: "test1234"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = ts.do(t, http.MethodPost, "/role", token, RoleRequest{Role: role})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestSessionMiddleware(t *testing.T) {
	ts := newTestServer(t)

	t.Run("missing header", func(t *testing.T) {
		resp := ts.do(t, http.MethodGet, "/view", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("bad token", func(t *testing.T) {
		resp := ts.do(t, http.MethodGet, "/view", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token", func(t *testing.T) {
		token := ts.start(t)
		resp := ts.do(t, http.MethodGet, "/view", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var v dashboard.View
		decode(t, resp, &v)
		assert.Equal(t, router.PageLogin, v.Page)
	})
}

func TestDashboardFlow(t *testing.T) {
	ts := newTestServer(t)
	token := ts.start(t)

	resp := ts.do(t, http.MethodPost, "/auth/login", token, auth.LoginRequest{Email: "bad", Password: "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/auth/login", token, auth.LoginRequest{Email: auth.DemoEmail, Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	ts.signIn(t, token, "admin")

	resp = ts.do(t, http.MethodGet, "/view", token, nil)
	var v dashboard.View
	decode(t, resp, &v)
	assert.Equal(t, router.PageDashboard, v.Page)
	assert.Equal(t, "Administrator", v.RoleTitle)
	require.NotNil(t, v.Dashboard)
	assert.Len(t, v.Dashboard.Cards, 2)

	resp = ts.do(t, http.MethodPost, "/cards/9/open", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/cards/2/open", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &v)
	assert.Equal(t, router.PageDetail, v.Page)
	require.NotNil(t, v.Detail)
	assert.Equal(t, []string{"efficiency", "processes"}, v.Detail.ChartData.Keys())

	resp = ts.do(t, http.MethodGet, "/charts/processes", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	svg, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(svg), "<svg"))

	resp = ts.do(t, http.MethodGet, "/charts/processes?format=json", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cd analytics.ChartData
	decode(t, resp, &cd)
	assert.Equal(t, analytics.ChartPie, cd.Type)
	assert.Equal(t, "Process Automation Status", cd.Title)
	require.Len(t, cd.Data, 1)
	assert.Len(t, cd.Data[0].Values, len(cd.Labels))
	assert.Len(t, cd.Data[0].Colors, len(cd.Labels))

	resp = ts.do(t, http.MethodGet, "/charts/retention", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/navigate/back", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &v)
	assert.Equal(t, router.PageDashboard, v.Page)

	resp = ts.do(t, http.MethodPost, "/navigate/back", token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &v)
	assert.Equal(t, router.PageLogin, v.Page)
	assert.Nil(t, v.User)
}

func TestSelectRole_FetchFailure(t *testing.T) {
	ts := newTestServer(t)
	token := ts.start(t)

	resp := ts.do(t, http.MethodPost, "/auth/login", token, auth.LoginRequest{Email: auth.DemoEmail, Password: "test1234"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/role", token, RoleRequest{Role: "ceo"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	ts.status = http.StatusInternalServerError
	resp = ts.do(t, http.MethodPost, "/role", token, RoleRequest{Role: "manager"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/view", token, nil)
	var v dashboard.View
	decode(t, resp, &v)
	assert.Equal(t, router.PageRoleSelection, v.Page)
	require.NotNil(t, v.User)
	assert.False(t, v.User.HasRole())
}

func TestExport(t *testing.T) {
	ts := newTestServer(t)
	token := ts.start(t)

	resp := ts.do(t, http.MethodGet, "/export", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	ts.signIn(t, token, "analyst")

	resp = ts.do(t, http.MethodGet, "/export?format=docx", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/export?format=pdf", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".pdf")

	resp = ts.do(t, http.MethodGet, "/export", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
}

func TestChat(t *testing.T) {
	ts := newTestServer(t)
	token := ts.start(t)
	ts.signIn(t, token, "manager")

	resp := ts.do(t, http.MethodPost, "/chat", token, ChatRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/chat", token, ChatRequest{Message: "what changed?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Messages []json.RawMessage `json:"messages"`
	}
	decode(t, resp, &out)
	assert.Len(t, out.Messages, 3)
}

func TestActivity_RequiresAdmin(t *testing.T) {
	ts := newTestServer(t)

	analyst := ts.start(t)
	ts.signIn(t, analyst, "analyst")
	resp := ts.do(t, http.MethodGet, "/activity", analyst, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := ts.start(t)
	ts.signIn(t, admin, "admin")
	resp = ts.do(t, http.MethodGet, "/activity?period=all&limit=5", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report audit.ActivityReport
	decode(t, resp, &report)
	assert.Equal(t, int64(2), report.Actions[audit.ActionSessionStarted])
	assert.Equal(t, int64(2), report.Actions[audit.ActionRoleSelected])
	assert.Len(t, report.Recent, 5)
}

func TestShareQRAndHealth(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/share/qr?size=128", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	png, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	resp = ts.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]interface{}
	decode(t, resp, &health)
	assert.Equal(t, "ok", health["status"])
}
