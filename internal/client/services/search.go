package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mcom-mall/mallcli/internal/client/api"
	"github.com/mcom-mall/mallcli/internal/client/models"
	"github.com/mcom-mall/mallcli/internal/client/repositories/searchcache"
	"github.com/mcom-mall/mallcli/internal/logging"
)

// Default pagination, matching the search screen of the storefront.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// SearchService answers free-text product queries.
//
// A query that is empty after trimming returns an empty result set without
// touching the network. Identical (query, page, limit) calls within the
// cache TTL are served from the local cache.
type SearchService interface {
	Search(ctx context.Context, query string, page, limit int) (*models.SearchResponse, error)
}

type searchService struct {
	api   api.Client
	cache searchcache.Repository
	ttl   time.Duration
	log   logging.Logger

	// now is a test seam.
	now func() time.Time
}

// NewSearchService builds a SearchService with a cache TTL. A zero ttl
// disables caching.
func NewSearchService(apiClient api.Client, cache searchcache.Repository, ttl time.Duration, log logging.Logger) SearchService {
	if log == nil {
		log = logging.NewNop()
	}
	return &searchService{api: apiClient, cache: cache, ttl: ttl, log: log, now: time.Now}
}

func (s *searchService) Search(ctx context.Context, query string, page, limit int) (*models.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.EmptySearchResponse(), nil
	}

	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	key := cacheKey(query, page, limit)
	if resp := s.fromCache(ctx, key); resp != nil {
		return resp, nil
	}

	resp, err := s.api.Search(ctx, query, page, limit)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, key, resp)
	return resp, nil
}

func (s *searchService) fromCache(ctx context.Context, key string) *models.SearchResponse {
	if s.ttl <= 0 || s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, key, s.now())
	if err != nil {
		s.log.Warn(ctx, "search cache read", "error", err)
		return nil
	}
	if data == nil {
		return nil
	}

	var resp models.SearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		s.log.Warn(ctx, "search cache decode", "error", err)
		return nil
	}
	return &resp
}

func (s *searchService) toCache(ctx context.Context, key string, resp *models.SearchResponse) {
	if s.ttl <= 0 || s.cache == nil {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Warn(ctx, "search cache encode", "error", err)
		return
	}

	now := s.now()
	if err := s.cache.Set(ctx, key, data, now.Add(s.ttl)); err != nil {
		s.log.Warn(ctx, "search cache write", "error", err)
		return
	}
	if err := s.cache.PurgeExpired(ctx, now); err != nil {
		s.log.Warn(ctx, "search cache purge", "error", err)
	}
}

func cacheKey(query string, page, limit int) string {
	return fmt.Sprintf("%s|%d|%d", query, page, limit)
}
