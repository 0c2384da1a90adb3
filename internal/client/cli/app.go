package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mcom-mall/mallcli/internal/client/api"
	"github.com/mcom-mall/mallcli/internal/client/config"
	"github.com/mcom-mall/mallcli/internal/client/repositories/searchcache"
	"github.com/mcom-mall/mallcli/internal/client/services"
	"github.com/mcom-mall/mallcli/internal/client/session"
	"github.com/mcom-mall/mallcli/internal/client/storage"
	"github.com/mcom-mall/mallcli/internal/logging"

	_ "modernc.org/sqlite"
)

// Mode reflects the last known reachability of the API.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// App wires the storefront services to the interactive REPL.
type App struct {
	config        *config.Config
	log           logging.Logger
	authService   services.AuthService
	searchService services.SearchService
	db            *sql.DB
	reader        *bufio.Reader

	mu       sync.Mutex
	userName string
	signedIn bool
	mode     Mode
}

// NewApp opens the local database and builds the full service stack: session
// store, HTTP gateway (with the app subscribed to its auth-expiry signal),
// auth and search services.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init local database: %w", err)
	}

	a := &App{
		config: cfg,
		log:    log,
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		mode:   ModeOnline,
	}

	sessions := session.NewSQLiteStore(db)
	apiClient := api.New(api.Options{
		BaseURL:       cfg.BaseURL,
		Sessions:      sessions,
		OnAuthExpired: a.handleAuthExpired,
		Timeout:       cfg.RequestTimeout,
		Log:           log,
	})

	a.authService = services.NewAuthService(apiClient, sessions, log)
	a.searchService = services.NewSearchService(
		apiClient,
		searchcache.NewSQLiteRepository(db),
		cfg.SearchCacheTTL,
		log,
	)

	// A session persisted by a previous run counts as signed in.
	if token, user, err := sessions.Load(ctx); err == nil && token != "" {
		a.signedIn = true
		if user != nil {
			a.userName = user.Email
		}
	}

	return a, nil
}

// Run starts the REPL and blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	go a.startOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	a.root(ctx)
}

func (a *App) close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		a.log.Warn(ctx, "close api client", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(ctx, "close database", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.signedIn
}

func (a *App) setSignedIn(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.signedIn = true
	a.userName = name
}

func (a *App) setSignedOut() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.signedIn = false
	a.userName = ""
}

// handleAuthExpired is the gateway's AuthExpired subscriber: the transport
// has already cleared the session store; here the UI state catches up and
// the user is pointed back at sign-in.
func (a *App) handleAuthExpired() {
	a.setSignedOut()
	printlnFn("Your session has expired. Please sign in again.")
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

// startOnlineStatusWatcher periodically probes the API and keeps the prompt
// status current.
func (a *App) startOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.authService.Ping(probeCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.mode != "" {
		s += string(a.mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
