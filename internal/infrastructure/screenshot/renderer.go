// Package screenshot adapts an external rendering service to the renderer
// port. A configured service is used via its /take endpoint; without one the
// public thum.io image host serves as a free fallback.
package screenshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gitfolio/gitfolio/configs"
	"github.com/gitfolio/gitfolio/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// Renderer implements ports.ScreenshotRenderer over HTTP.
type Renderer struct {
	httpClient *http.Client
	apiURL     string
	timeout    time.Duration
	logger     *logrus.Logger
}

// NewRenderer creates a renderer from configuration.
func NewRenderer(cfg *configs.ScreenshotConfig, logger *logrus.Logger) *Renderer {
	return &Renderer{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		apiURL:     cfg.APIURL,
		timeout:    cfg.RequestTimeout,
		logger:     logger,
	}
}

// Render fetches the screenshot within the hard deadline. Deadline overruns
// surface as ErrRenderTimeout so the handler can answer 408.
func (r *Renderer) Render(ctx context.Context, params ports.ScreenshotParams) ([]byte, string, error) {
	target := r.buildURL(params)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build screenshot request: %w", err)
	}
	req.Header.Set("Accept", contentTypeFor(params.Format))

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, "", ports.ErrRenderTimeout
		}
		return nil, "", fmt.Errorf("screenshot request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{
				"url":    params.URL,
				"status": resp.StatusCode,
			}).Warn("screenshot: renderer returned non-OK status")
		}
		return nil, "", fmt.Errorf("screenshot renderer failed with status %d: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, "", ports.ErrRenderTimeout
		}
		return nil, "", fmt.Errorf("failed to read screenshot body: %w", err)
	}

	return data, contentTypeFor(params.Format), nil
}

func (r *Renderer) buildURL(params ports.ScreenshotParams) string {
	if r.apiURL != "" {
		q := url.Values{}
		q.Set("url", params.URL)
		q.Set("width", strconv.Itoa(params.Width))
		q.Set("height", strconv.Itoa(params.Height))
		q.Set("fullPage", strconv.FormatBool(params.FullPage))
		q.Set("format", params.Format)
		if params.Format == "jpeg" {
			q.Set("quality", strconv.Itoa(params.Quality))
		}
		return r.apiURL + "/take?" + q.Encode()
	}

	// thum.io ignores format, quality and fullPage in this URL structure.
	return fmt.Sprintf("https://image.thum.io/get/width/%d/crop/%d/noanimate/%s", params.Width, params.Height, params.URL)
}

func contentTypeFor(format string) string {
	if format == "pdf" {
		return "application/pdf"
	}
	return "image/" + format
}
