package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/webdesk/identity/internal/api/metrics"
	"github.com/webdesk/identity/internal/core/domain"
	"github.com/webdesk/identity/internal/core/ports"
)

// FilesHandler serves tenant directory listings.
type FilesHandler struct {
	files ports.FilesService
}

func NewFilesHandler(files ports.FilesService) *FilesHandler {
	return &FilesHandler{files: files}
}

// List returns the entries of a directory inside the tenant home. A path
// escaping the home is a 403; a missing or non-directory target is a 200
// with a generic error so filesystem structure is not leaked.
func (h *FilesHandler) List(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	listing, err := h.files.List(c.Request().Context(), username, c.QueryParam("path"))
	if err != nil {
		metrics.ListingsTotal.WithLabelValues("error").Inc()
		if errors.Is(err, domain.ErrAccessDenied) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": domain.ErrAccessDenied.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"error": domain.ErrNotDirectory.Error()})
	}

	metrics.ListingsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, listing)
}
