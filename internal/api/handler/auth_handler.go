package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// LoginAuditQueue accepts login attempts for asynchronous persistence.
// Enqueue must not block; it reports false when the attempt was dropped.
type LoginAuditQueue interface {
	Enqueue(attempt domain.LoginAttempt) bool
}

// AuthHandler exposes the login pipeline over Echo.
type AuthHandler struct {
	controller *LoginController
	audit      LoginAuditQueue
}

// NewAuthHandler builds an AuthHandler. audit may be nil to disable the
// login audit trail.
func NewAuthHandler(controller *LoginController, audit LoginAuditQueue) *AuthHandler {
	return &AuthHandler{controller: controller, audit: audit}
}

type meResponse struct {
	Subject string `json:"sub"`
}

// Login authenticates a user and returns an access token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginBody  true  "Login credentials"
// @Success      200   {object}  TokenBody
// @Failure      400   {object}  ErrorBody
// @Failure      401   {object}  ErrorBody
// @Failure      500   {object}  ErrorBody
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	req := &LoginRequest{}
	// An empty, malformed or null payload leaves Body nil.
	var body *LoginBody
	if err := c.Echo().JSONSerializer.Deserialize(c, &body); err == nil && body != nil {
		req.Body = body
	}

	resp := h.controller.Handle(c.Request().Context(), req)
	h.record(c, req, resp)

	if resp.Body == nil {
		return c.NoContent(resp.StatusCode)
	}
	return c.JSON(resp.StatusCode, resp.Body)
}

// Me returns the subject of the bearer token.
//
// @Summary      Current subject
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  meResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sub, err := ctxSubject(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{Subject: sub})
}

func (h *AuthHandler) record(c echo.Context, req *LoginRequest, resp ResponseEnvelope) {
	if h.audit == nil {
		return
	}
	attempt := domain.LoginAttempt{
		Outcome:    OutcomeOf(resp),
		StatusCode: resp.StatusCode,
		RemoteIP:   c.RealIP(),
		UserAgent:  c.Request().UserAgent(),
		At:         time.Now().UTC(),
	}
	if req.Body != nil {
		attempt.Email = req.Body.Email
	}
	h.audit.Enqueue(attempt)
}
