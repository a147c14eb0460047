package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/places-service/internal/config"
	apperrors "github.com/spec-kit/places-service/pkg/util/errorutil"
)

func newDiscoveryService(baseURL, apiKey string) *DiscoveryService {
	return NewDiscoveryService(config.GoogleConfig{
		APIKey:          apiKey,
		BaseURL:         baseURL,
		CacheTTLMinutes: 15,
	}, nil, zap.NewNop())
}

func TestDiscoverySearchSinglePage(t *testing.T) {
	t.Parallel()

	var gotQuery, gotKey string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/textsearch/json", r.URL.Path)
		gotQuery = r.URL.Query().Get("query")
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"name":"Louvre"},{"name":"Orsay"}],"status":"OK"}`))
	}))
	defer upstream.Close()

	svc := newDiscoveryService(upstream.URL, "k")
	result, err := svc.SearchByCityAndType(context.Background(), "Paris", "museum")
	require.NoError(t, err)

	assert.Equal(t, "museum in Paris", gotQuery)
	assert.Equal(t, "k", gotKey)
	assert.Equal(t, "OK", result.Status)
	assert.Len(t, result.Results, 2)
}

func TestDiscoverySearchWithoutAPIKey(t *testing.T) {
	t.Parallel()
	svc := newDiscoveryService("http://unused", "")

	_, err := svc.SearchByCityAndType(context.Background(), "Paris", "museum")
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.ToDomainError(err).HTTPStatus)

	_, err = svc.Details(context.Background(), "g-123")
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.ToDomainError(err).HTTPStatus)
}

func TestDiscoveryUpstreamFailure(t *testing.T) {
	t.Parallel()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	svc := newDiscoveryService(upstream.URL, "k")
	_, err := svc.SearchByCityAndType(context.Background(), "Paris", "museum")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusBadGateway, domainErr.HTTPStatus)
	assert.Equal(t, "UPSTREAM_ERROR", domainErr.Code)
}

func TestDiscoveryDetails(t *testing.T) {
	t.Parallel()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/details/json", r.URL.Path)
		require.Equal(t, "g-123", r.URL.Query().Get("place_id"))
		_, _ = w.Write([]byte(`{"result":{"name":"Louvre"},"status":"OK"}`))
	}))
	defer upstream.Close()

	svc := newDiscoveryService(upstream.URL, "k")
	raw, err := svc.Details(context.Background(), "g-123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":{"name":"Louvre"},"status":"OK"}`, string(raw))
}

func TestDiscoverySearchContextCancelled(t *testing.T) {
	t.Parallel()
	// first page hands back a token, so the service waits before page two;
	// a cancelled context must cut that wait short
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"name":"Louvre"}],"next_page_token":"tok","status":"OK"}`))
	}))
	defer upstream.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	svc := newDiscoveryService(upstream.URL, "k")
	go func() {
		_, err := svc.SearchByCityAndType(ctx, "Paris", "museum")
		done <- err
	}()

	cancel()
	err := <-done
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
