package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/webdesk/identity/internal/api/metrics"
	"github.com/webdesk/identity/internal/core/domain"
	"github.com/webdesk/identity/internal/core/ports"
)

// TerminalHandler serves sandboxed command execution for the browser
// terminal app.
type TerminalHandler struct {
	sandbox ports.SandboxService
}

func NewTerminalHandler(sandbox ports.SandboxService) *TerminalHandler {
	return &TerminalHandler{sandbox: sandbox}
}

type execRequest struct {
	Command string `json:"command" validate:"required"`
}

type execResponse struct {
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Exec runs one command inside the tenant home. Policy rejections and
// command failures answer 200 with an error payload; only a missing or
// invalid token is a real 401 (raised by the auth middleware).
func (h *TerminalHandler) Exec(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req execRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, execResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusOK, execResponse{Error: err.Error()})
	}

	start := time.Now()
	result, err := h.sandbox.Execute(c.Request().Context(), username, req.Command)
	if err != nil {
		var denied *domain.CommandDeniedError
		if errors.As(err, &denied) {
			metrics.CommandsDeniedTotal.Inc()
		} else {
			metrics.CommandsExecutedTotal.WithLabelValues("error").Inc()
		}
		return c.JSON(http.StatusOK, execResponse{Error: err.Error()})
	}

	status := "ok"
	if result.Stderr != "" {
		status = "error"
	}
	metrics.CommandsExecutedTotal.WithLabelValues(status).Inc()
	metrics.CommandDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, execResponse{Output: result.Output, Error: result.Stderr})
}
