package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mcom-mall/mallcli/internal/client/api"
	"github.com/mcom-mall/mallcli/internal/client/models"
	"github.com/mcom-mall/mallcli/internal/client/services"
)

// SearchOnce runs a single query and prints the first page of results.
func (a *App) SearchOnce(ctx context.Context, query string) error {
	resp, err := a.searchService.Search(ctx, query, services.DefaultPage, a.config.SearchLimit)
	if err != nil {
		printSearchError(err)
		return err
	}
	printResults(query, resp)
	return nil
}

// SearchInteractive enters the live search mode: every entered line becomes
// the new query, requests are debounced behind the configured quiet interval,
// and a superseded in-flight request is cancelled. An empty line leaves the
// mode, cancelling whatever is still outstanding.
func (a *App) SearchInteractive(ctx context.Context) error {
	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	watcher := services.NewSearchWatcher(
		searchCtx,
		a.searchService,
		a.config.SearchDebounce,
		a.config.SearchLimit,
		a.log,
	)
	defer watcher.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case ev := <-watcher.Events():
				renderSearchEvent(ev)
			case <-searchCtx.Done():
				return
			}
		}
	}()

	printlnFn("Live search: type to query, empty line to leave.")
	for {
		line, err := a.reader.ReadString('\n')
		if err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		watcher.Query(line)
	}

	cancel()
	<-done
	return nil
}

func renderSearchEvent(ev services.SearchEvent) {
	switch ev.State {
	case services.StatePending:
		printlnFn(fmt.Sprintf("Searching %q...", ev.Query))
	case services.StateFailed:
		printSearchError(ev.Err)
	case services.StateSucceeded:
		printResults(ev.Query, ev.Result)
	}
}

func printResults(query string, resp *models.SearchResponse) {
	if len(resp.Items) == 0 {
		printlnFn(fmt.Sprintf("No results for %q.", query))
		return
	}

	for _, item := range resp.Items {
		line := fmt.Sprintf("  %-12s %-40s $%.2f", item.ID, item.Title, item.Price)
		if item.Category != "" {
			line += "  [" + item.Category + "]"
		}
		printlnFn(line)
	}
	printlnFn(fmt.Sprintf("Page %d of %d (%d items total)",
		resp.Meta.CurrentPage, resp.Meta.TotalPages, resp.Meta.TotalItems))
}

func printSearchError(err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	if errors.Is(err, api.ErrUnavailable) {
		printlnFn("Cannot reach the server. Please try again.")
		return
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		printlnFn(apiErr.Message)
		return
	}
	printlnFn("error:", err.Error())
}
