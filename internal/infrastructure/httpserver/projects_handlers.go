package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gitfolio/gitfolio/internal/core/domain/profile"
	"github.com/gitfolio/gitfolio/internal/infrastructure/httpserver/helpers"
)

// getProjects serves the featured projects payload. The owner's own token is
// forwarded so private repositories can participate in scoring.
func (s *Server) getProjects(c echo.Context) error {
	username, err := profile.ValidateUsername(c.Param("username"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{Detail: err.Error()})
	}

	token := ""
	if viewerToken := helpers.GetViewerToken(c); viewerToken != "" && strings.EqualFold(helpers.GetViewerLogin(c), username) {
		token = viewerToken
	}

	data, err := s.projectsSvc.Projects(c.Request().Context(), username, token)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, data)
}

// getContributions serves the rolling one-year contribution calendar.
func (s *Server) getContributions(c echo.Context) error {
	username, err := profile.ValidateUsername(c.Param("username"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{Detail: err.Error()})
	}

	data, err := s.contributionSvc.Contributions(c.Request().Context(), username)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, data)
}

// getPRsByOrg serves merged pull requests grouped by organization.
func (s *Server) getPRsByOrg(c echo.Context) error {
	username, err := profile.ValidateUsername(c.Param("username"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: err.Error()})
	}

	groups, err := s.pullRequestSvc.PRsByOrg(c.Request().Context(), username)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, groups)
}
