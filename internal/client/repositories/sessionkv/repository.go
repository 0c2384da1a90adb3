// Package sessionkv stores the persisted session values (token and user
// profile) as a small key-value table in the local sqlite database.
package sessionkv

import (
	"context"

	"github.com/mcom-mall/mallcli/internal/dbx"
)

// Repository is the key-value contract for persisted session state.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// SQLiteRepository implements Repository over any dbx.DBTX handle, so calls
// can run standalone or inside a transaction.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}
