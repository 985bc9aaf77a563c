package services

import (
	"context"
	"encoding/json"
	"math/rand"
	"strings"
	"time"

	"github.com/gitfolio/gitfolio/configs"
	"github.com/gitfolio/gitfolio/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// sweepProbability is the chance one Set triggers an async expired-row
// sweep, amortizing cleanup across writes without a background scheduler.
const sweepProbability = 0.01

// failureKeyPrefix namespaces circuit-breaker failure records.
const failureKeyPrefix = "screenshot_failure"

// CacheKey joins a prefix and parts into the canonical colon-separated key.
func CacheKey(prefix string, parts ...string) string {
	return prefix + ":" + strings.Join(parts, ":")
}

// CacheService implements the cache façade over the durable entry store
// with an optional front tier. Reads fail soft and writes are best-effort:
// a broken cache degrades service latency, never correctness.
type CacheService struct {
	store      ports.CacheEntryStore
	front      ports.FrontCache
	enabled    bool
	defaultTTL time.Duration
	failureTTL time.Duration
	logger     *logrus.Logger
}

// NewCacheService creates the cache façade. front may be nil.
func NewCacheService(store ports.CacheEntryStore, front ports.FrontCache, cfg *configs.Config, logger *logrus.Logger) ports.Cache {
	return &CacheService{
		store:      store,
		front:      front,
		enabled:    cfg.Cache.Enabled,
		defaultTTL: cfg.Cache.DefaultTTL,
		failureTTL: cfg.Screenshot.FailureTTL,
		logger:     logger,
	}
}

func (s *CacheService) Enabled() bool {
	return s.enabled
}

// Get reads through the front tier into the durable store. Expired rows are
// treated as misses and lazily deleted.
func (s *CacheService) Get(ctx context.Context, key string) ([]byte, bool) {
	if !s.enabled {
		return nil, false
	}

	if s.front != nil {
		if value, ok, err := s.front.Get(ctx, key); err == nil && ok {
			cacheOpsTotal.WithLabelValues("get", "hit").Inc()
			return value, true
		}
	}

	entry, err := s.store.Get(ctx, key)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Warn("cache: read failed, treating as miss")
		}
		cacheOpsTotal.WithLabelValues("get", "miss").Inc()
		return nil, false
	}
	if entry == nil {
		cacheOpsTotal.WithLabelValues("get", "miss").Inc()
		return nil, false
	}
	if entry.Expired(time.Now()) {
		if err := s.store.Delete(ctx, key); err != nil && s.logger != nil {
			s.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Warn("cache: failed to delete expired entry")
		}
		cacheOpsTotal.WithLabelValues("get", "miss").Inc()
		return nil, false
	}

	if s.front != nil {
		ttl := time.Until(entry.ExpiresAt)
		if err := s.front.Set(ctx, key, entry.Value, ttl); err != nil && s.logger != nil {
			s.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Debug("cache: front tier backfill failed")
		}
	}

	cacheOpsTotal.WithLabelValues("get", "hit").Inc()
	return entry.Value, true
}

// Set writes the durable store first, then the front tier. Roughly one in a
// hundred writes also sweeps expired rows in the background.
func (s *CacheService) Set(ctx context.Context, key string, value []byte, opts ports.CacheOptions) bool {
	if !s.enabled {
		return false
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	expiresAt := time.Now().Add(ttl)

	if err := s.store.Upsert(ctx, key, value, opts.Tags, expiresAt); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Warn("cache: write failed")
		}
		cacheOpsTotal.WithLabelValues("set", "error").Inc()
		return false
	}
	cacheOpsTotal.WithLabelValues("set", "ok").Inc()

	if s.front != nil {
		if err := s.front.Set(ctx, key, value, ttl); err != nil && s.logger != nil {
			s.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Debug("cache: front tier write failed")
		}
	}

	if rand.Float64() < sweepProbability {
		go s.sweep()
	}

	return true
}

// sweep removes globally expired rows, detached from the request context.
func (s *CacheService) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := s.store.DeleteExpired(ctx); err != nil && s.logger != nil {
		s.logger.WithError(err).Warn("cache: expired sweep failed")
	}
}

func (s *CacheService) Delete(ctx context.Context, key string) error {
	if s.front != nil {
		if err := s.front.Delete(ctx, key); err != nil && s.logger != nil {
			s.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Debug("cache: front tier delete failed")
		}
	}
	return s.store.Delete(ctx, key)
}

// DeleteByTag invalidates the durable store first, then evicts the removed
// keys from the front tier so both stay consistent.
func (s *CacheService) DeleteByTag(ctx context.Context, tag string) error {
	keys, err := s.store.DeleteByTag(ctx, tag)
	if err != nil {
		return err
	}
	if s.front != nil {
		for _, key := range keys {
			if err := s.front.Delete(ctx, key); err != nil && s.logger != nil {
				s.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Debug("cache: front tier delete failed")
			}
		}
	}
	return nil
}

// Cached memoizes compute under the key built from keyParts. With the cache
// disabled it calls compute directly.
func (s *CacheService) Cached(ctx context.Context, keyParts []string, opts ports.CacheOptions, compute func(context.Context) ([]byte, error)) ([]byte, bool, error) {
	if len(keyParts) == 0 {
		value, err := compute(ctx)
		return value, false, err
	}
	key := CacheKey(keyParts[0], keyParts[1:]...)

	if value, ok := s.Get(ctx, key); ok {
		return value, true, nil
	}

	value, err := compute(ctx)
	if err != nil {
		return nil, false, err
	}
	s.Set(ctx, key, value, opts)

	return value, false, nil
}

// FailureCount returns the recorded consecutive failure count for resource.
func (s *CacheService) FailureCount(ctx context.Context, resource string) int {
	value, ok := s.Get(ctx, CacheKey(failureKeyPrefix, resource))
	if !ok {
		return 0
	}
	var record ports.FailureRecord
	if err := json.Unmarshal(value, &record); err != nil {
		return 0
	}
	return record.Count
}

// RecordFailure increments the failure counter for resource under the long
// failure TTL so repeated offenders stay circuit-broken.
func (s *CacheService) RecordFailure(ctx context.Context, resource string) {
	record := ports.FailureRecord{Count: s.FailureCount(ctx, resource) + 1, LastFailure: time.Now()}
	value, err := json.Marshal(record)
	if err != nil {
		return
	}
	s.Set(ctx, CacheKey(failureKeyPrefix, resource), value, ports.CacheOptions{
		TTL:  s.failureTTL,
		Tags: []string{failureKeyPrefix, "url:" + resource},
	})
}
