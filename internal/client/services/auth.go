// Package services contains the application services of the storefront
// client: authentication/session bootstrap and product search.
package services

import (
	"context"

	"github.com/mcom-mall/mallcli/internal/client/api"
	"github.com/mcom-mall/mallcli/internal/client/auth"
	"github.com/mcom-mall/mallcli/internal/client/models"
	"github.com/mcom-mall/mallcli/internal/client/session"
	"github.com/mcom-mall/mallcli/internal/logging"
)

// AuthService drives the sign-up/sign-in flows.
//
// Contract:
//   - SignUp, SignIn: validate input, call the API, normalize the raw
//     payload, and persist the resulting session. The returned user may be
//     nil (token-only success).
//   - Current: the persisted session, or ("", nil, nil) when signed out.
//   - Logout: clear the persisted session.
//   - Ping: check API reachability.
//
// All methods honor context cancellation.
type AuthService interface {
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	Current(ctx context.Context) (string, *models.User, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	api      api.Client
	sessions session.Store
	log      logging.Logger
}

// NewAuthService binds the auth flows to an API client and a session store.
func NewAuthService(apiClient api.Client, sessions session.Store, log logging.Logger) AuthService {
	if log == nil {
		log = logging.NewNop()
	}
	return &authService{api: apiClient, sessions: sessions, log: log}
}

// SignUp registers a new customer account. Validation failures surface
// before any network call.
func (a *authService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.User, error) {
	if req.Role == "" {
		req.Role = "customer"
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	raw, err := a.api.SignUp(ctx, req)
	if err != nil {
		return nil, err
	}
	return a.establishSession(ctx, raw)
}

// SignIn authenticates an existing account.
func (a *authService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	req := models.SignInRequest{Email: email, Password: password}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	raw, err := a.api.SignIn(ctx, req)
	if err != nil {
		return nil, err
	}
	return a.establishSession(ctx, raw)
}

// establishSession normalizes a raw auth payload and persists the session.
func (a *authService) establishSession(ctx context.Context, raw models.RawAuthPayload) (*models.User, error) {
	sess, err := auth.Normalize(raw)
	if err != nil {
		return nil, err
	}

	if err := a.sessions.Save(ctx, sess.Token, sess.User); err != nil {
		return nil, err
	}

	a.log.Info(ctx, "session established", "tokenOnly", sess.User == nil)
	return sess.User, nil
}

func (a *authService) Current(ctx context.Context) (string, *models.User, error) {
	return a.sessions.Load(ctx)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.sessions.Clear(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.api.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.api.Close()
}
