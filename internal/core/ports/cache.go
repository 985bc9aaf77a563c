package ports

import (
	"context"
	"time"
)

// CacheEntry is one row of the tagged key-value cache table.
type CacheEntry struct {
	ID        string    `db:"id"`
	Key       string    `db:"key"`
	Value     []byte    `db:"value"`
	Tags      []string  `db:"-"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Expired reports whether the entry's TTL has elapsed at now.
func (e *CacheEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.After(now)
}

// CacheEntryStore is the durable, tag-indexed store backing the cache
// façade. Upsert semantics: writing an existing key overwrites value, tags
// and expiry.
type CacheEntryStore interface {
	// Get returns the entry for key, or (nil, nil) on a miss. Expiry is not
	// checked here; the façade owns the validity decision.
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Upsert(ctx context.Context, key string, value []byte, tags []string, expiresAt time.Time) error
	Delete(ctx context.Context, key string) error
	// DeleteByTag removes every entry carrying tag and returns the keys it
	// removed so upper tiers can be invalidated too.
	DeleteByTag(ctx context.Context, tag string) ([]string, error)
	// DeleteExpired sweeps all globally expired rows.
	DeleteExpired(ctx context.Context) (int64, error)
}

// FrontCache is an optional fast tier consulted before the entry store.
// Implementations should degrade gracefully (returning an error without
// crashing callers) so the façade can fall through to the durable store.
type FrontCache interface {
	// Get returns the raw bytes for key. ok=false if not found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for key with TTL (0 or negative means no expiration if supported).
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes the key; absence is not an error.
	Delete(ctx context.Context, key string) error
}

// CacheOptions controls one cache write.
type CacheOptions struct {
	// TTL defaults to the configured default when zero.
	TTL time.Duration
	// Tags are non-unique labels enabling bulk invalidation.
	Tags []string
}

// FailureRecord tracks repeated failures of one external resource for
// circuit breaking.
type FailureRecord struct {
	Count       int       `json:"count"`
	LastFailure time.Time `json:"lastFailure"`
}

// Cache is the typed façade used by application services. Reads fail soft:
// any storage error is logged and treated as a miss, never propagated.
// Writes are best-effort: a failed write must not fail the surrounding
// request.
type Cache interface {
	// Enabled reports the global cache switch. When disabled Get always
	// misses and Set always no-ops.
	Enabled() bool
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, opts CacheOptions) bool
	Delete(ctx context.Context, key string) error
	DeleteByTag(ctx context.Context, tag string) error
	// Cached memoizes compute under the key built from keyParts. hit reports
	// whether the returned bytes came from cache.
	Cached(ctx context.Context, keyParts []string, opts CacheOptions, compute func(context.Context) ([]byte, error)) (value []byte, hit bool, err error)
	// FailureCount returns the recorded failure count for resource; zero
	// when no record exists or the record expired.
	FailureCount(ctx context.Context, resource string) int
	// RecordFailure increments the failure counter for resource under a
	// long TTL.
	RecordFailure(ctx context.Context, resource string)
}
