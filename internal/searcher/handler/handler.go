// Package handler exposes the top-5 query and posting-list inspection over
// HTTP.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/parser"
	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/metrics"
)

type SearchExecutor interface {
	Top5Search(ctx context.Context, kw1, kw2 string) (*executor.SearchResult, error)
	Postings(keyword string) (index.PostingList, bool)
}

type Handler struct {
	executor  SearchExecutor
	cache     *cache.QueryCache
	collector *analytics.Collector
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// New wires the handler. cache, collector and m may each be nil.
func New(exec SearchExecutor, queryCache *cache.QueryCache, collector *analytics.Collector, m *metrics.Metrics) *Handler {
	return &Handler{
		executor:  exec,
		cache:     queryCache,
		collector: collector,
		metrics:   m,
		logger:    slog.Default().With("component", "search-handler"),
	}
}

// Routes registers every endpoint on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/search", h.Search)
	mux.HandleFunc("GET /api/v1/keywords/{keyword}", h.Keywords)
	mux.HandleFunc("GET /api/v1/cache/stats", h.CacheStats)
	mux.HandleFunc("DELETE /api/v1/cache", h.CacheInvalidate)
}

// Search answers GET /api/v1/search?kw1=a&kw2=b or ?q=a+or+b.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	kw1, kw2, err := keywordsFrom(r)
	if err != nil {
		h.writeAppError(w, err)
		return
	}

	var result *executor.SearchResult
	cacheStatus := "disabled"
	cacheHit := false
	if h.cache != nil {
		result, cacheHit, err = h.cache.GetOrCompute(ctx, kw1, kw2, func() (*executor.SearchResult, error) {
			return h.executor.Top5Search(ctx, kw1, kw2)
		})
		cacheStatus = "miss"
		if cacheHit {
			cacheStatus = "hit"
		}
	} else {
		result, err = h.executor.Top5Search(ctx, kw1, kw2)
	}
	if err != nil {
		log.Error("search failed", "first", kw1, "second", kw2, "error", err)
		h.writeAppError(w, err)
		return
	}

	elapsed := time.Since(start)
	if h.metrics != nil {
		h.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(elapsed.Seconds())
	}
	log.Info("search completed",
		"first", result.First,
		"second", result.Second,
		"matched", result.Matched,
		"returned", len(result.Documents),
		"cache", cacheStatus,
		"latency_us", elapsed.Microseconds(),
	)

	eventType := analytics.EventSearch
	if !result.Matched {
		eventType = analytics.EventNoMatch
	}
	h.collector.Track(analytics.SearchEvent{
		Type:      eventType,
		First:     result.First,
		Second:    result.Second,
		Matched:   result.Matched,
		Returned:  len(result.Documents),
		CacheHit:  cacheHit,
		LatencyUs: elapsed.Microseconds(),
		Timestamp: time.Now().UTC(),
		RequestID: logger.RequestID(ctx),
	})

	h.writeJSON(w, http.StatusOK, result)
}

// Keywords returns the posting list for one keyword, highest frequency
// first.
func (h *Handler) Keywords(w http.ResponseWriter, r *http.Request) {
	keyword := strings.ToLower(r.PathValue("keyword"))
	postings, ok := h.executor.Postings(keyword)
	if !ok {
		h.writeError(w, http.StatusNotFound, fmt.Sprintf("keyword %q is not indexed", keyword))
		return
	}
	h.writeJSON(w, http.StatusOK, index.TermEntry{Keyword: keyword, Postings: postings})
}

func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}

	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": fmt.Sprintf("%.1f%%", hitRate),
	})
}

func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}

	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "cache invalidation failed")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func keywordsFrom(r *http.Request) (string, string, error) {
	q := r.URL.Query()
	if raw := q.Get("q"); raw != "" {
		plan, err := parser.Parse(raw)
		if err != nil {
			return "", "", err
		}
		return plan.First, plan.Second, nil
	}
	kw1, kw2 := strings.TrimSpace(q.Get("kw1")), strings.TrimSpace(q.Get("kw2"))
	if kw1 == "" && kw2 == "" {
		return "", "", apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest,
			"query parameter 'q' or 'kw1'/'kw2' is required")
	}
	return kw1, kw2, nil
}

func (h *Handler) writeAppError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatusCode(err)
	message := "search failed"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	} else if status != http.StatusInternalServerError {
		message = err.Error()
	}
	h.writeError(w, status, message)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
