package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/audit"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/auth"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/dashboard"
)

type SessionHandler struct {
	registry *dashboard.Registry
	tokens   *auth.TokenService
	recorder audit.Recorder
}

func NewSessionHandler(registry *dashboard.Registry, tokens *auth.TokenService, recorder audit.Recorder) *SessionHandler {
	return &SessionHandler{registry: registry, tokens: tokens, recorder: recorder}
}

// SessionResponse is returned when a session is created
type SessionResponse struct {
	Token     string         `json:"token"`
	ExpiresAt string         `json:"expires_at"`
	View      dashboard.View `json:"view"`
}

// RoleRequest selects the dashboard role
type RoleRequest struct {
	Role string `json:"role"`
}

// CreateSession godoc
// @Summary Start a dashboard session
// @Description Creates an anonymous session and returns its bearer token
// @Tags Sessions
// @Produce json
// @Success 201 {object} SessionResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	s, err := h.registry.Create(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	token, expiresAt, err := h.tokens.GenerateSessionToken(s.ID())
	if err != nil {
		return respondError(c, err)
	}

	if h.recorder != nil {
		h.recorder.Record(c.UserContext(), audit.Event{SessionID: s.ID(), Action: audit.ActionSessionStarted})
	}
	log.Info().Str("session", s.ID()).Msg("🆕 Session created")

	return c.Status(fiber.StatusCreated).JSON(SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		View:      s.View(),
	})
}

// GetView godoc
// @Summary Current page
// @Description Returns the page the session is on and everything needed to draw it
// @Tags Sessions
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dashboard.View
// @Failure 401 {object} map[string]interface{}
// @Router /view [get]
func (h *SessionHandler) GetView(c *fiber.Ctx) error {
	return c.JSON(currentSession(c).View())
}

// ShowRegister godoc
// @Summary Go to the register page
// @Tags Navigation
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dashboard.View
// @Failure 409 {object} map[string]interface{}
// @Router /navigate/register [post]
func (h *SessionHandler) ShowRegister(c *fiber.Ctx) error {
	s := currentSession(c)
	if err := s.ShowRegister(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(s.View())
}

// ShowLogin godoc
// @Summary Go to the login page
// @Tags Navigation
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dashboard.View
// @Failure 409 {object} map[string]interface{}
// @Router /navigate/login [post]
func (h *SessionHandler) ShowLogin(c *fiber.Ctx) error {
	s := currentSession(c)
	if err := s.ShowLogin(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(s.View())
}

// Back godoc
// @Summary Leave the detail page
// @Tags Navigation
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dashboard.View
// @Failure 409 {object} map[string]interface{}
// @Router /navigate/back [post]
func (h *SessionHandler) Back(c *fiber.Ctx) error {
	s := currentSession(c)
	if err := s.Back(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(s.View())
}

// Login godoc
// @Summary Sign in
// @Description Validates the form and signs in with the demo account
// @Tags Auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param request body auth.LoginRequest true "Credentials"
// @Success 200 {object} dashboard.View
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/login [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req auth.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	s := currentSession(c)
	if _, err := s.Login(c.UserContext(), req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(s.View())
}

// Register godoc
// @Summary Create an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param request body auth.RegisterRequest true "Registration form"
// @Success 200 {object} dashboard.View
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/register [post]
func (h *SessionHandler) Register(c *fiber.Ctx) error {
	var req auth.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	s := currentSession(c)
	if _, err := s.Register(c.UserContext(), req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(s.View())
}

// Logout godoc
// @Summary Sign out
// @Description Clears the user, the stored insights and the chat
// @Tags Auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dashboard.View
// @Router /auth/logout [post]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	s := currentSession(c)
	if err := s.Logout(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(s.View())
}

// SelectRole godoc
// @Summary Select a role
// @Description Fetches the insights for the role, stores them and opens the dashboard
// @Tags Auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param request body RoleRequest true "Role"
// @Success 200 {object} dashboard.View
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /role [post]
func (h *SessionHandler) SelectRole(c *fiber.Ctx) error {
	var req RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	s := currentSession(c)
	if _, err := s.SelectRole(c.UserContext(), req.Role); err != nil {
		return respondError(c, err)
	}
	return c.JSON(s.View())
}

// OpenHeadline godoc
// @Summary Open a headline
// @Tags Dashboard
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Headline ID"
// @Success 200 {object} dashboard.View
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /headlines/{id}/open [post]
func (h *SessionHandler) OpenHeadline(c *fiber.Ctx) error {
	s := currentSession(c)
	if err := s.OpenHeadline(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(s.View())
}

// OpenCard godoc
// @Summary Open an insight card
// @Tags Dashboard
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Card ID"
// @Success 200 {object} dashboard.View
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /cards/{id}/open [post]
func (h *SessionHandler) OpenCard(c *fiber.Ctx) error {
	s := currentSession(c)
	if err := s.OpenCard(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(s.View())
}
