package helpers

import (
	"github.com/labstack/echo/v4"
)

type ctxKey string

const (
	keyViewerToken ctxKey = "viewer_token"
	keyViewerLogin ctxKey = "viewer_login"
)

// SetViewerToken stores the viewer's GitHub OAuth token for the request.
func SetViewerToken(c echo.Context, token string) { c.Set(string(keyViewerToken), token) }

// GetViewerToken returns the viewer's token; empty means anonymous.
func GetViewerToken(c echo.Context) string {
	if v, ok := c.Get(string(keyViewerToken)).(string); ok {
		return v
	}
	return ""
}

// SetViewerLogin stores the resolved GitHub login of the viewer.
func SetViewerLogin(c echo.Context, login string) { c.Set(string(keyViewerLogin), login) }

// GetViewerLogin returns the viewer's login; empty means anonymous or
// unresolved.
func GetViewerLogin(c echo.Context) string {
	if v, ok := c.Get(string(keyViewerLogin)).(string); ok {
		return v
	}
	return ""
}
