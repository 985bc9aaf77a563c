package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gitfolio/gitfolio/internal/core/ports"
	"github.com/gitfolio/gitfolio/internal/infrastructure/db"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// CacheRepository implements the tagged key-value cache table on Postgres.
// Every write is an idempotent upsert keyed by the unique cache key;
// concurrent writers for the same key are last-write-wins.
type CacheRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewCacheRepository creates a new cache entry store.
func NewCacheRepository(database *db.Database, logger *logrus.Logger) ports.CacheEntryStore {
	return &CacheRepository{
		db:     database,
		logger: logger,
	}
}

// Get retrieves the entry for key. A missing key is (nil, nil), not an error.
func (r *CacheRepository) Get(ctx context.Context, key string) (*ports.CacheEntry, error) {
	var entry ports.CacheEntry
	var tags pq.StringArray
	query := `
		SELECT id, key, value, tags, expires_at, created_at, updated_at
		FROM cache_entries
		WHERE key = $1`

	row := r.db.DB.QueryRowxContext(ctx, query, key)
	err := row.Scan(&entry.ID, &entry.Key, &entry.Value, &tags, &entry.ExpiresAt, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Error("db: failed to get cache entry")
		}
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}
	entry.Tags = tags

	return &entry, nil
}

// Upsert inserts or overwrites the entry for key. On conflict the value,
// tags and expiry are replaced and updated_at is bumped; the original row
// identity and created_at are preserved.
func (r *CacheRepository) Upsert(ctx context.Context, key string, value []byte, tags []string, expiresAt time.Time) error {
	query := `
		INSERT INTO cache_entries (id, key, value, tags, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    tags = EXCLUDED.tags,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = NOW()`

	if tags == nil {
		tags = []string{}
	}
	_, err := r.db.DB.ExecContext(ctx, query, uuid.New(), key, value, pq.Array(tags), expiresAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Error("db: failed to upsert cache entry")
		}
		return fmt.Errorf("failed to upsert cache entry: %w", err)
	}

	return nil
}

// Delete removes the entry for key; absence is not an error.
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM cache_entries WHERE key = $1`

	_, err := r.db.DB.ExecContext(ctx, query, key)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Error("db: failed to delete cache entry")
		}
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}

	return nil
}

// DeleteByTag removes all entries carrying tag and returns the removed keys
// so the front tier can be invalidated as well.
func (r *CacheRepository) DeleteByTag(ctx context.Context, tag string) ([]string, error) {
	query := `DELETE FROM cache_entries WHERE $1 = ANY(tags) RETURNING key`

	var keys []string
	err := r.db.DB.SelectContext(ctx, &keys, query, tag)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"tag": tag}).WithError(err).Error("db: failed to delete cache entries by tag")
		}
		return nil, fmt.Errorf("failed to delete cache entries by tag: %w", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"tag": tag, "removed": len(keys)}).Debug("db: cache entries invalidated by tag")
	}

	return keys, nil
}

// DeleteExpired sweeps every globally expired row.
func (r *CacheRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM cache_entries WHERE expires_at <= NOW()`

	result, err := r.db.DB.ExecContext(ctx, query)
	if err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Error("db: failed to sweep expired cache entries")
		}
		return 0, fmt.Errorf("failed to sweep expired cache entries: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if removed > 0 && r.logger != nil {
		r.logger.WithFields(logrus.Fields{"removed": removed}).Debug("db: expired cache entries swept")
	}

	return removed, nil
}
