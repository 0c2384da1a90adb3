package api

import (
	"context"

	"github.com/mcom-mall/mallcli/internal/client/models"
)

// Client is the API surface the rest of the application depends on.
// Auth endpoints return the raw payload undecoded; extraction of the token
// and profile is the auth package's job.
type Client interface {
	SignUp(ctx context.Context, req models.SignUpRequest) (models.RawAuthPayload, error)
	SignIn(ctx context.Context, req models.SignInRequest) (models.RawAuthPayload, error)
	Search(ctx context.Context, query string, page, limit int) (*models.SearchResponse, error)
	Ping(ctx context.Context) error
	Close() error
}
