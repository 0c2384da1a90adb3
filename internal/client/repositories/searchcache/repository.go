// Package searchcache persists recent search responses in the local sqlite
// database so that repeating a query within a short window does not hit the
// network again.
package searchcache

import (
	"context"
	"time"

	"github.com/mcom-mall/mallcli/internal/dbx"
)

// Repository is the contract for the short-lived search result cache.
// Entries past their expiry are treated as absent.
type Repository interface {
	Get(ctx context.Context, key string, now time.Time) ([]byte, error)
	Set(ctx context.Context, key string, response []byte, expiresAt time.Time) error
	PurgeExpired(ctx context.Context, now time.Time) error
}

// SQLiteRepository implements Repository over the search_cache table.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}
