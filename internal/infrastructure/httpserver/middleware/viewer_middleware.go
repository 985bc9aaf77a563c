package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/gitfolio/gitfolio/internal/core/ports"
	"github.com/gitfolio/gitfolio/internal/infrastructure/httpserver/helpers"
)

// ViewerMiddleware resolves an optional GitHub OAuth token into the viewer's
// login. Resolution is strictly best-effort: a missing or invalid token
// leaves the viewer anonymous and never fails the request.
type ViewerMiddleware struct {
	identity ports.IdentityResolver
	logger   *logrus.Logger
}

func NewViewerMiddleware(identity ports.IdentityResolver, logger *logrus.Logger) *ViewerMiddleware {
	return &ViewerMiddleware{identity: identity, logger: logger}
}

// ResolveViewer extracts the bearer token from the Authorization header
// (or the X-GitHub-Token header) and stores the token and resolved login in
// the request context.
func (m *ViewerMiddleware) ResolveViewer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return next(c)
			}

			helpers.SetViewerToken(c, token)

			login, err := m.identity.ResolveViewer(c.Request().Context(), token)
			if err != nil {
				if m.logger != nil {
					m.logger.WithError(err).Debug("viewer: token resolution failed, treating as anonymous")
				}
				return next(c)
			}
			helpers.SetViewerLogin(c, login)

			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[len("bearer "):])
	}
	return strings.TrimSpace(c.Request().Header.Get("X-GitHub-Token"))
}
