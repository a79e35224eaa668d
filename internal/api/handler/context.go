package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/webdesk/identity/internal/api/middleware"
)

// ctxUsername extracts the username injected by the Auth middleware. An
// empty value means the middleware did not run; fail closed with 401.
func ctxUsername(c echo.Context) (string, error) {
	username, _ := c.Get(middleware.UsernameKey).(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, nil
}
