package searchcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Get returns the cached response for key, or (nil, nil) when the entry is
// absent or has expired as of now.
func (r *SQLiteRepository) Get(ctx context.Context, key string, now time.Time) ([]byte, error) {
	var response []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT response FROM search_cache
		WHERE query_key = ? AND expires_at > ?
	`, key, now.Unix()).Scan(&response)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get search cache[%s]: %w", key, err)
	}
	return response, nil
}

// Set stores response under key until expiresAt, replacing any previous entry.
func (r *SQLiteRepository) Set(ctx context.Context, key string, response []byte, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO search_cache (query_key, response, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(query_key) DO UPDATE SET
			response = excluded.response,
			expires_at = excluded.expires_at
	`, key, response, expiresAt.Unix())
	if err != nil {
		return fmt.Errorf("set search cache[%s]: %w", key, err)
	}
	return nil
}

// PurgeExpired removes all entries whose expiry is at or before now.
func (r *SQLiteRepository) PurgeExpired(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM search_cache WHERE expires_at <= ?`, now.Unix())
	if err != nil {
		return fmt.Errorf("purge search cache: %w", err)
	}
	return nil
}
