package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gitfolio/gitfolio/internal/core/domain/profile"
	"github.com/gitfolio/gitfolio/internal/core/ports"
	"github.com/gitfolio/gitfolio/internal/infrastructure/httpserver/helpers"
)

// getProfile serves the normalized profile. The owner viewing their own
// profile bypasses the cache and uses their own token upstream.
func (s *Server) getProfile(c echo.Context) error {
	username, err := profile.ValidateUsername(c.Param("username"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{Detail: err.Error()})
	}

	token := helpers.GetViewerToken(c)
	isOwner := token != "" && strings.EqualFold(helpers.GetViewerLogin(c), username)

	p, err := s.profileSvc.Resolve(c.Request().Context(), username, ports.ResolveOptions{
		Token:   token,
		IsOwner: isOwner,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

// getAbout serves only the generated about block plus the cache flag.
func (s *Server) getAbout(c echo.Context) error {
	username, err := profile.ValidateUsername(c.Param("username"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: err.Error()})
	}

	p, err := s.profileSvc.Resolve(c.Request().Context(), username, ports.ResolveOptions{})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"about":  p.About,
		"cached": p.Cached,
	})
}
