package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/metrics"
)

var errNotFound = errors.New("not found")

type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func (s *memStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return "", errNotFound
	}
	return v, nil
}

func (s *memStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = string(value.([]byte))
	return nil
}

func (s *memStore) FlushByPattern(ctx context.Context, pattern string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.data))
	s.data = map[string]string{}
	return n, nil
}

func buildIndex() *index.Index {
	b := index.NewBuilder()
	b.MergeDocument("d1", map[string]int{"cat": 1, "sat": 1})
	b.MergeDocument("d2", map[string]int{"cat": 2, "dog": 1})
	return b.Freeze()
}

func newTestHandler(t *testing.T, withCache bool) (*Handler, *metrics.Metrics) {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	exec := executor.New(buildIndex(), 5, m)
	var qc *cache.QueryCache
	if withCache {
		qc = cache.New(&memStore{data: map[string]string{}}, time.Minute,
			func(err error) bool { return errors.Is(err, errNotFound) }, m)
	}
	return New(exec, qc, nil, m), m
}

func serve(h *Handler, method, target string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	h.Routes(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) executor.SearchResult {
	t.Helper()
	var res executor.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestSearch_KeywordParams(t *testing.T) {
	h, _ := newTestHandler(t, false)
	rec := serve(h, http.MethodGet, "/api/v1/search?kw1=Cat&kw2=dog")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decodeResult(t, rec)
	assert.True(t, res.Matched)
	assert.Equal(t, "cat", res.First)
	assert.Equal(t, []string{"d2", "d1"}, res.Documents)
}

func TestSearch_QueryParam(t *testing.T) {
	h, _ := newTestHandler(t, false)
	rec := serve(h, http.MethodGet, "/api/v1/search?q=sat+or+missing")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"d1"}, decodeResult(t, rec).Documents)
}

func TestSearch_NoMatchIsNull(t *testing.T) {
	h, _ := newTestHandler(t, false)
	rec := serve(h, http.MethodGet, "/api/v1/search?kw1=zebra&kw2=yak")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"documents":null`)
	assert.False(t, decodeResult(t, rec).Matched)
}

func TestSearch_BadRequests(t *testing.T) {
	h, _ := newTestHandler(t, false)
	for _, target := range []string{
		"/api/v1/search",
		"/api/v1/search?q=cat+and+dog",
		"/api/v1/search?q=a+b+c",
	} {
		rec := serve(h, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.True(t, strings.Contains(rec.Body.String(), `"error"`), target)
	}
}

func TestSearch_NotReady(t *testing.T) {
	h := New(executor.New(nil, 5, nil), nil, nil, nil)
	rec := serve(h, http.MethodGet, "/api/v1/search?kw1=cat")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSearch_Cache(t *testing.T) {
	h, m := newTestHandler(t, true)
	first := serve(h, http.MethodGet, "/api/v1/search?kw1=cat&kw2=dog")
	second := serve(h, http.MethodGet, "/api/v1/search?kw1=cat&kw2=dog")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, decodeResult(t, first), decodeResult(t, second))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMissesTotal))

	stats := serve(h, http.MethodGet, "/api/v1/cache/stats")
	assert.Contains(t, stats.Body.String(), `"hit_rate":"50.0%"`)

	inv := serve(h, http.MethodDelete, "/api/v1/cache")
	assert.Equal(t, http.StatusOK, inv.Code)
}

func TestCacheEndpoints_Disabled(t *testing.T) {
	h, _ := newTestHandler(t, false)
	assert.JSONEq(t, `{"status":"disabled"}`, serve(h, http.MethodGet, "/api/v1/cache/stats").Body.String())
	assert.Equal(t, http.StatusServiceUnavailable, serve(h, http.MethodDelete, "/api/v1/cache").Code)
}

func TestKeywords(t *testing.T) {
	h, _ := newTestHandler(t, false)
	rec := serve(h, http.MethodGet, "/api/v1/keywords/CAT")
	require.Equal(t, http.StatusOK, rec.Code)

	var entry index.TermEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, "cat", entry.Keyword)
	assert.Equal(t, index.PostingList{{DocID: "d2", Frequency: 2}, {DocID: "d1", Frequency: 1}}, entry.Postings)

	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/api/v1/keywords/zebra").Code)
}
