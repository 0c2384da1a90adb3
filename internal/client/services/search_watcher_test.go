package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mcom-mall/mallcli/internal/client/models"
)

// slowSearch lets tests control when each search call completes.
type slowSearch struct {
	mu      sync.Mutex
	calls   []string
	results map[string]*models.SearchResponse
	errs    map[string]error
	delays  map[string]time.Duration
}

func (s *slowSearch) Search(ctx context.Context, query string, page, limit int) (*models.SearchResponse, error) {
	s.mu.Lock()
	s.calls = append(s.calls, query)
	delay := s.delays[query]
	resp := s.results[query]
	err := s.errs[query]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return resp, err
}

func (s *slowSearch) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func collect(t *testing.T, events <-chan SearchEvent, state SearchState, timeout time.Duration) SearchEvent {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case ev := <-events:
			if ev.State == state {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for state %d", state)
		}
	}
}

func TestSearchWatcher_DebounceCollapsesBursts(t *testing.T) {
	svc := &slowSearch{results: map[string]*models.SearchResponse{
		"shoes": oneShoe(),
	}}
	w := NewSearchWatcher(context.Background(), svc, 50*time.Millisecond, 10, nil)
	defer w.Stop()

	// A burst of keystrokes settles on "shoes"; only that query is issued.
	w.Query("s")
	w.Query("sh")
	w.Query("shoes")

	ev := collect(t, w.Events(), StateSucceeded, 2*time.Second)
	require.Equal(t, "shoes", ev.Query)
	require.Len(t, ev.Result.Items, 1)
	require.Equal(t, 1, svc.callCount())
}

func TestSearchWatcher_EmitsPendingBeforeResult(t *testing.T) {
	svc := &slowSearch{results: map[string]*models.SearchResponse{"shoes": oneShoe()}}
	w := NewSearchWatcher(context.Background(), svc, 10*time.Millisecond, 10, nil)
	defer w.Stop()

	w.Query("shoes")

	ev := <-w.Events()
	require.Equal(t, StatePending, ev.State)
	require.Equal(t, "shoes", ev.Query)

	ev = collect(t, w.Events(), StateSucceeded, 2*time.Second)
	require.Equal(t, "shoes", ev.Query)
}

func TestSearchWatcher_FailureEvent(t *testing.T) {
	boom := errors.New("boom")
	svc := &slowSearch{errs: map[string]error{"shoes": boom}}
	w := NewSearchWatcher(context.Background(), svc, 10*time.Millisecond, 10, nil)
	defer w.Stop()

	w.Query("shoes")

	ev := collect(t, w.Events(), StateFailed, 2*time.Second)
	require.ErrorIs(t, ev.Err, boom)
}

func TestSearchWatcher_StaleResponseDiscarded(t *testing.T) {
	// "slow" responds long after "fast"; its result must never surface.
	svc := &slowSearch{
		results: map[string]*models.SearchResponse{
			"slow": {Items: []models.SearchResult{{ID: "stale"}}},
			"fast": {Items: []models.SearchResult{{ID: "fresh"}}},
		},
		delays: map[string]time.Duration{"slow": 300 * time.Millisecond},
	}
	w := NewSearchWatcher(context.Background(), svc, 10*time.Millisecond, 10, nil)
	defer w.Stop()

	w.Query("slow")
	// Wait for the slow request to actually be issued before superseding it.
	require.Eventually(t, func() bool { return svc.callCount() == 1 }, time.Second, 5*time.Millisecond)
	w.Query("fast")

	ev := collect(t, w.Events(), StateSucceeded, 2*time.Second)
	require.Equal(t, "fast", ev.Query)
	require.Equal(t, "fresh", ev.Result.Items[0].ID)

	// The slow response never arrives, even after its delay has elapsed.
	select {
	case ev := <-w.Events():
		require.NotEqual(t, "slow", ev.Query)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestSearchWatcher_StopCancelsInFlight(t *testing.T) {
	svc := &slowSearch{
		results: map[string]*models.SearchResponse{"shoes": oneShoe()},
		delays:  map[string]time.Duration{"shoes": time.Hour},
	}
	w := NewSearchWatcher(context.Background(), svc, time.Millisecond, 10, nil)

	w.Query("shoes")
	require.Eventually(t, func() bool { return svc.callCount() == 1 }, time.Second, time.Millisecond)

	w.Stop()

	// The cancelled request produces no terminal event.
	select {
	case ev := <-w.Events():
		require.Equal(t, StatePending, ev.State)
	case <-time.After(100 * time.Millisecond):
	}
	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event after Stop: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}
