// Package session holds the client's persisted authentication state: the
// bearer token and the user profile. Both values are written and cleared
// together; a reader never observes one half of a session.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mcom-mall/mallcli/internal/client/models"
	"github.com/mcom-mall/mallcli/internal/client/repositories/sessionkv"
	"github.com/mcom-mall/mallcli/internal/dbx"
)

// Storage keys, kept compatible with the original storefront's client-side
// state so the two values stay recognizable in the database.
const (
	tokenKey = "auth_token"
	userKey  = "user_data"
)

// Store persists the current session across program runs.
//
// Load returns ("", nil, nil) when no session is present. A session where
// only one of the two keys survives (for example after a partial manual edit
// of the database) is treated as absent. A token-only session (the API may
// authenticate without returning a resolvable profile) is stored with an
// explicit null user marker and loads as (token, nil, nil).
type Store interface {
	Save(ctx context.Context, token string, user *models.User) error
	Load(ctx context.Context) (string, *models.User, error)
	Clear(ctx context.Context) error
}

// SQLiteStore implements Store over the session table of the local database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save writes token and user in a single transaction. A nil user is stored
// as JSON null so Load can distinguish "token-only session" from "no
// session".
func (s *SQLiteStore) Save(ctx context.Context, token string, user *models.User) error {
	if token == "" {
		return fmt.Errorf("session save: empty token")
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session save: marshal user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := sessionkv.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, tokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, userKey, data)
	})
}

// Load reads the persisted session. Absent or partial state yields
// ("", nil, nil).
func (s *SQLiteStore) Load(ctx context.Context) (string, *models.User, error) {
	repo := sessionkv.NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, tokenKey)
	if err != nil {
		return "", nil, err
	}
	data, err := repo.Get(ctx, userKey)
	if err != nil {
		return "", nil, err
	}
	if len(token) == 0 || data == nil {
		return "", nil, nil
	}

	var user *models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return "", nil, fmt.Errorf("session load: unmarshal user: %w", err)
	}
	return string(token), user, nil
}

// Clear removes both values unconditionally. Clearing an absent session is
// not an error.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := sessionkv.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, tokenKey); err != nil {
			return err
		}
		return repo.Delete(ctx, userKey)
	})
}
