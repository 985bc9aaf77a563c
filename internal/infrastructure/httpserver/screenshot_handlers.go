package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gitfolio/gitfolio/internal/core/ports"
)

const (
	defaultScreenshotWidth   = 1280
	defaultScreenshotHeight  = 800
	defaultScreenshotQuality = 80
	maxScreenshotWidth       = 3840
	maxScreenshotHeight      = 2160
)

// getScreenshot renders (or serves from cache) a page screenshot. The
// response is the raw image or PDF with an X-Cache header marking hits.
func (s *Server) getScreenshot(c echo.Context) error {
	params, err := parseScreenshotParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: err.Error()})
	}

	result, err := s.screenshotSvc.Capture(c.Request().Context(), *params)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrRenderPermanentFailure):
			return c.JSON(http.StatusGone, errorResponse{Detail: err.Error()})
		case errors.Is(err, ports.ErrRenderUnavailable):
			return c.JSON(http.StatusServiceUnavailable, errorResponse{Detail: err.Error()})
		case errors.Is(err, ports.ErrRenderTimeout):
			return c.JSON(http.StatusRequestTimeout, errorResponse{Detail: err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, errorResponse{Detail: err.Error()})
		}
	}

	cacheState := "MISS"
	if result.Cached {
		cacheState = "HIT"
	}
	c.Response().Header().Set("X-Cache", cacheState)
	c.Response().Header().Set("Cache-Control", "public, max-age=86400, s-maxage=86400")

	return c.Blob(http.StatusOK, result.ContentType, result.Data)
}

func parseScreenshotParams(c echo.Context) (*ports.ScreenshotParams, error) {
	rawURL := c.QueryParam("url")
	if rawURL == "" {
		return nil, errors.New("url parameter is required")
	}
	if u, err := url.Parse(rawURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.New("invalid url format")
	}

	width, err := intQueryParam(c, "width", defaultScreenshotWidth)
	if err != nil {
		return nil, err
	}
	height, err := intQueryParam(c, "height", defaultScreenshotHeight)
	if err != nil {
		return nil, err
	}
	if width < 1 || width > maxScreenshotWidth || height < 1 || height > maxScreenshotHeight {
		return nil, errors.New("width and height must be between 1 and 3840/2160 respectively")
	}

	quality, err := intQueryParam(c, "quality", defaultScreenshotQuality)
	if err != nil {
		return nil, err
	}
	if quality < 1 || quality > 100 {
		return nil, errors.New("quality must be between 1 and 100")
	}

	format := c.QueryParam("format")
	if format == "" {
		format = "png"
	}
	switch format {
	case "png", "jpeg", "pdf":
	default:
		return nil, errors.New("format must be png, jpeg or pdf")
	}

	return &ports.ScreenshotParams{
		URL:      rawURL,
		Width:    width,
		Height:   height,
		FullPage: c.QueryParam("fullPage") == "true",
		Format:   format,
		Quality:  quality,
	}, nil
}

func intQueryParam(c echo.Context, name string, defaultValue int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return value, nil
}
