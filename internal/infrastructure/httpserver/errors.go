package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gitfolio/gitfolio/internal/core/ports"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Detail string `json:"detail"`
}

// respondError maps the error taxonomy onto HTTP status codes.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ports.ErrNotFound), errors.Is(err, ports.ErrInvalidCredentials):
		return c.JSON(http.StatusNotFound, errorResponse{Detail: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{Detail: err.Error()})
	}
}
