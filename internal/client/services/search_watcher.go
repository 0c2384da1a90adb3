package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcom-mall/mallcli/internal/client/models"
	"github.com/mcom-mall/mallcli/internal/logging"
)

// SearchState is the observable state of the current query.
type SearchState int

const (
	// StatePending means a request has been issued and no result arrived yet.
	StatePending SearchState = iota
	// StateFailed means the most recent request ended in an error.
	StateFailed
	// StateSucceeded means results for the most recent query are available.
	StateSucceeded
)

// SearchEvent is one state transition of the watcher, delivered on Events.
type SearchEvent struct {
	State  SearchState
	Query  string
	Result *models.SearchResponse
	Err    error
}

// SearchWatcher is the debounce/cancellation layer between raw user input
// and the SearchService.
//
// Each call to Query restarts the quiet-interval timer; a request is only
// issued once the query has been stable for the debounce interval. Every
// issued request is tagged; when a response for a superseded tag comes back
// it is discarded, so a slow early response can never overwrite a faster
// later one. Superseding a request also cancels it via its context, as does
// Stop.
type SearchWatcher struct {
	svc      SearchService
	debounce time.Duration
	limit    int
	events   chan SearchEvent
	log      logging.Logger

	base context.Context

	mu     sync.Mutex
	timer  *time.Timer
	latest uuid.UUID
	cancel context.CancelFunc
}

// NewSearchWatcher builds a watcher. ctx bounds the lifetime of every
// request the watcher issues; cancelling it (leaving the search screen)
// cancels any outstanding request.
func NewSearchWatcher(ctx context.Context, svc SearchService, debounce time.Duration, limit int, log logging.Logger) *SearchWatcher {
	if log == nil {
		log = logging.NewNop()
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &SearchWatcher{
		svc:      svc,
		debounce: debounce,
		limit:    limit,
		events:   make(chan SearchEvent, 16),
		log:      log,
		base:     ctx,
	}
}

// Events delivers state transitions. Events for stale requests are never
// delivered.
func (w *SearchWatcher) Events() <-chan SearchEvent {
	return w.events
}

// Query registers a new value of the search input and restarts the debounce
// timer.
func (w *SearchWatcher) Query(q string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.fire(q) })
}

// Stop cancels the pending timer and any in-flight request. The watcher
// must not be used afterwards.
func (w *SearchWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.latest = uuid.Nil
}

// fire issues the request for q, superseding any in-flight request.
func (w *SearchWatcher) fire(q string) {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	id := uuid.New()
	w.latest = id

	ctx, cancel := context.WithCancel(w.base)
	w.cancel = cancel
	w.mu.Unlock()

	w.emit(SearchEvent{State: StatePending, Query: q})

	go func() {
		resp, err := w.svc.Search(ctx, q, DefaultPage, w.limit)

		w.mu.Lock()
		stale := w.latest != id
		w.mu.Unlock()
		if stale {
			w.log.Debug(ctx, "discarding stale search response", "query", q)
			return
		}

		if err != nil {
			w.emit(SearchEvent{State: StateFailed, Query: q, Err: err})
			return
		}
		w.emit(SearchEvent{State: StateSucceeded, Query: q, Result: resp})
	}()
}

// emit delivers an event without ever blocking the watcher; if the consumer
// has gone away the event is dropped.
func (w *SearchWatcher) emit(ev SearchEvent) {
	select {
	case w.events <- ev:
	default:
		w.log.Warn(w.base, "search event dropped", "query", ev.Query)
	}
}
