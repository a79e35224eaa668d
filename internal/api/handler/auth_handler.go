package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/webdesk/identity/internal/api/metrics"
	"github.com/webdesk/identity/internal/core/ports"
)

// AuthHandler serves registration, login and token verification.
//
// Wire contract note: functional failures (bad username, duplicate account,
// wrong password) answer HTTP 200 with an {"error": ...} payload — the
// browser client treats the status line as transport-level only. Only the
// auth middleware emits real 401s.
type AuthHandler struct {
	authService ports.AuthService
	tokens      ports.TokenService
}

func NewAuthHandler(authService ports.AuthService, tokens ports.TokenService) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens}
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type verifyRequest struct {
	Token    string `json:"token" validate:"required"`
	Username string `json:"username"`
}

type verifyResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username,omitempty"`
}

// Register creates a tenant account and returns its first session token.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusOK, map[string]string{"error": err.Error()})
	}

	token, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return c.JSON(http.StatusOK, map[string]string{"error": err.Error()})
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, authResponse{Success: true, Username: req.Username, Token: token})
}

// Login authenticates a tenant and returns a fresh session token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusOK, map[string]string{"error": err.Error()})
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return c.JSON(http.StatusOK, map[string]string{"error": err.Error()})
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, authResponse{Success: true, Username: req.Username, Token: token})
}

// VerifyToken reports whether a token is valid and, when a username is
// supplied, whether the token belongs to it.
func (h *AuthHandler) VerifyToken(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, verifyResponse{Valid: false})
	}

	username, err := h.tokens.Verify(req.Token)
	if err != nil || (req.Username != "" && req.Username != username) {
		return c.JSON(http.StatusOK, verifyResponse{Valid: false})
	}
	return c.JSON(http.StatusOK, verifyResponse{Valid: true, Username: username})
}
