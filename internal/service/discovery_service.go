package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/places-service/internal/config"
	"github.com/spec-kit/places-service/internal/persistence"
	apperrors "github.com/spec-kit/places-service/pkg/util/errorutil"
)

const (
	searchMaxPages      = 3
	nextPageTokenDelay  = 2 * time.Second
	searchCacheKeyShape = "places:search:%s:%s"
)

// SearchResult aggregates text-search pages into one response.
type SearchResult struct {
	Results []json.RawMessage `json:"results"`
	Status  string            `json:"status"`
}

type searchPage struct {
	Results       []json.RawMessage `json:"results"`
	NextPageToken string            `json:"next_page_token"`
	Status        string            `json:"status"`
}

// DiscoveryService proxies the Google Places API with a Redis-backed cache.
type DiscoveryService struct {
	apiKey   string
	baseURL  string
	cacheTTL time.Duration
	client   *http.Client
	cache    *persistence.Redis
	logger   *zap.Logger
}

// NewDiscoveryService builds the proxy. The cache may be nil, in which case
// every search hits the upstream API.
func NewDiscoveryService(cfg config.GoogleConfig, cache *persistence.Redis, logger *zap.Logger) *DiscoveryService {
	return &DiscoveryService{
		apiKey:   cfg.APIKey,
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		cacheTTL: cfg.CacheTTL(),
		client:   &http.Client{Timeout: 15 * time.Second},
		cache:    cache,
		logger:   logger,
	}
}

// SearchByCityAndType runs a "<type> in <city>" text search, following
// next_page_token up to three pages. The upstream requires a short delay
// before a page token becomes valid.
func (s *DiscoveryService) SearchByCityAndType(ctx context.Context, city, placeType string) (*SearchResult, error) {
	if s.apiKey == "" {
		return nil, apperrors.NewDomainError("UPSTREAM_UNAVAILABLE", "places search not configured", http.StatusServiceUnavailable, nil)
	}

	cacheKey := fmt.Sprintf(searchCacheKeyShape, strings.ToLower(city), strings.ToLower(placeType))
	if cached := s.cacheGet(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	result := &SearchResult{Results: []json.RawMessage{}}
	pageToken := ""
	for page := 0; page < searchMaxPages; page++ {
		if pageToken != "" {
			select {
			case <-time.After(nextPageTokenDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		pageResp, err := s.fetchSearchPage(ctx, city, placeType, pageToken)
		if err != nil {
			return nil, err
		}
		result.Results = append(result.Results, pageResp.Results...)
		result.Status = pageResp.Status

		pageToken = pageResp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	s.cacheSet(ctx, cacheKey, result)
	return result, nil
}

// Details fetches the details document for one place.
func (s *DiscoveryService) Details(ctx context.Context, placeID string) (json.RawMessage, error) {
	if s.apiKey == "" {
		return nil, apperrors.NewDomainError("UPSTREAM_UNAVAILABLE", "places search not configured", http.StatusServiceUnavailable, nil)
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("key", s.apiKey)

	body, err := s.get(ctx, s.baseURL+"/details/json?"+params.Encode())
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (s *DiscoveryService) fetchSearchPage(ctx context.Context, city, placeType, pageToken string) (*searchPage, error) {
	params := url.Values{}
	if pageToken != "" {
		params.Set("pagetoken", pageToken)
	} else {
		params.Set("query", placeType+" in "+city)
	}
	params.Set("key", s.apiKey)

	body, err := s.get(ctx, s.baseURL+"/textsearch/json?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var page searchPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode places response: %w", err)
	}
	return &page, nil
}

func (s *DiscoveryService) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places upstream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewDomainError("UPSTREAM_ERROR",
			fmt.Sprintf("places upstream returned %d", resp.StatusCode), http.StatusBadGateway, nil)
	}
	return io.ReadAll(resp.Body)
}

func (s *DiscoveryService) cacheGet(ctx context.Context, key string) *SearchResult {
	if s.cache == nil || s.cache.Client == nil {
		return nil
	}
	raw, err := s.cache.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var result SearchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil
	}
	s.logger.Debug("places cache hit", zap.String("key", key))
	return &result
}

func (s *DiscoveryService) cacheSet(ctx context.Context, key string, result *SearchResult) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("places cache write failed", zap.Error(err))
	}
}
