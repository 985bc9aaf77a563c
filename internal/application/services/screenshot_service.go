package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gitfolio/gitfolio/configs"
	"github.com/gitfolio/gitfolio/internal/core/ports"
	"github.com/sirupsen/logrus"
)

const screenshotCachePrefix = "screenshot"

// cachedScreenshot is the persisted form of a rendered screenshot. The
// binary payload is base64 encoded so the record survives JSON transport.
type cachedScreenshot struct {
	Data        string `json:"data"`
	ContentType string `json:"contentType"`
}

// ScreenshotService renders page screenshots with a per-URL failure circuit
// breaker: once a URL fails the configured number of times it is refused
// until its failure record expires.
type ScreenshotService struct {
	renderer     ports.ScreenshotRenderer
	cache        ports.Cache
	cacheTTL     time.Duration
	failureLimit int
	logger       *logrus.Logger
}

// NewScreenshotService creates the screenshot service. renderer may be nil
// when no rendering backend is available.
func NewScreenshotService(renderer ports.ScreenshotRenderer, cache ports.Cache, cfg *configs.Config, logger *logrus.Logger) ports.ScreenshotService {
	return &ScreenshotService{
		renderer:     renderer,
		cache:        cache,
		cacheTTL:     cfg.Screenshot.CacheTTL,
		failureLimit: cfg.Screenshot.FailureLimit,
		logger:       logger,
	}
}

// Capture serves the screenshot from cache or renders it fresh.
func (s *ScreenshotService) Capture(ctx context.Context, params ports.ScreenshotParams) (*ports.ScreenshotResult, error) {
	if s.renderer == nil {
		return nil, ports.ErrRenderUnavailable
	}

	if count := s.cache.FailureCount(ctx, params.URL); count >= s.failureLimit {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"url": params.URL, "failures": count}).Info("screenshot: url is circuit-broken")
		}
		return nil, fmt.Errorf("%w: %d consecutive failures", ports.ErrRenderPermanentFailure, count)
	}

	key := screenshotCacheKey(params)
	if value, ok := s.cache.Get(ctx, key); ok {
		var record cachedScreenshot
		if err := json.Unmarshal(value, &record); err == nil {
			if data, err := base64.StdEncoding.DecodeString(record.Data); err == nil {
				return &ports.ScreenshotResult{Data: data, ContentType: record.ContentType, Cached: true}, nil
			}
		}
	}

	data, contentType, err := s.renderer.Render(ctx, params)
	if err != nil {
		s.cache.RecordFailure(ctx, params.URL)
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"url": params.URL}).WithError(err).Warn("screenshot: render failed")
		}
		return nil, err
	}

	record := cachedScreenshot{Data: base64.StdEncoding.EncodeToString(data), ContentType: contentType}
	if value, err := json.Marshal(record); err == nil {
		s.cache.Set(ctx, key, value, ports.CacheOptions{
			TTL:  s.cacheTTL,
			Tags: []string{screenshotCachePrefix, "url:" + params.URL},
		})
	}

	return &ports.ScreenshotResult{Data: data, ContentType: contentType, Cached: false}, nil
}

func screenshotCacheKey(params ports.ScreenshotParams) string {
	return CacheKey(screenshotCachePrefix,
		params.URL,
		strconv.Itoa(params.Width),
		strconv.Itoa(params.Height),
		strconv.FormatBool(params.FullPage),
		params.Format,
		strconv.Itoa(params.Quality),
	)
}
