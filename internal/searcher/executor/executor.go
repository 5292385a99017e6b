package executor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/merger"
	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/metrics"
)

// SearchResult is the answer to "first or second". Documents is nil when
// neither keyword is indexed.
type SearchResult struct {
	First     string   `json:"first"`
	Second    string   `json:"second"`
	Matched   bool     `json:"matched"`
	Documents []string `json:"documents"`
}

type Executor struct {
	index   *index.Index
	limit   int
	metrics *metrics.Metrics
	logger  *slog.Logger

	sinkMu sync.Mutex
	sink   io.Writer
}

// New returns an Executor over a frozen index. m may be nil.
func New(ix *index.Index, limit int, m *metrics.Metrics) *Executor {
	if limit <= 0 {
		limit = merger.DefaultLimit
	}
	return &Executor{
		index:   ix,
		limit:   limit,
		metrics: m,
		logger:  slog.Default().With("component", "query-executor"),
	}
}

// SetDiagnostics echoes each matched result as one space-separated line to
// w. Nil disables the echo.
func (e *Executor) SetDiagnostics(w io.Writer) {
	e.sinkMu.Lock()
	defer e.sinkMu.Unlock()
	e.sink = w
}

func (e *Executor) Index() *index.Index {
	return e.index
}

// Top5Search runs the ranked OR query for two keywords.
func (e *Executor) Top5Search(ctx context.Context, kw1, kw2 string) (*SearchResult, error) {
	if e.index == nil {
		e.observe("error", 0)
		return nil, apperrors.New(apperrors.ErrNotReady, http.StatusServiceUnavailable, "index has not been built")
	}
	if err := ctx.Err(); err != nil {
		e.observe("error", 0)
		return nil, fmt.Errorf("searching %q or %q: %w", kw1, kw2, err)
	}
	kw1, kw2 = strings.ToLower(kw1), strings.ToLower(kw2)
	docs, matched := merger.TopK(e.index, kw1, kw2, e.limit)
	result := &SearchResult{
		First:     kw1,
		Second:    kw2,
		Matched:   matched,
		Documents: docs,
	}
	if !matched {
		e.observe("no_match", 0)
		e.logger.Info("query executed", "first", kw1, "second", kw2, "matched", false)
		return result, nil
	}
	e.observe("match", len(docs))
	e.printList(docs)
	e.logger.Info("query executed",
		"first", kw1,
		"second", kw2,
		"matched", true,
		"results", len(docs),
	)
	return result, nil
}

// Postings returns a copy of the posting list for keyword.
func (e *Executor) Postings(keyword string) (index.PostingList, bool) {
	if e.index == nil {
		return nil, false
	}
	return e.index.Postings(strings.ToLower(keyword))
}

func (e *Executor) observe(outcome string, results int) {
	if e.metrics == nil {
		return
	}
	e.metrics.SearchQueriesTotal.WithLabelValues(outcome).Inc()
	if outcome == "match" {
		e.metrics.SearchResultsCount.Observe(float64(results))
	}
}

func (e *Executor) printList(docs []string) {
	e.sinkMu.Lock()
	defer e.sinkMu.Unlock()
	if e.sink == nil {
		return
	}
	if _, err := fmt.Fprintln(e.sink, strings.Join(docs, " ")); err != nil {
		e.logger.Warn("writing diagnostic result failed", "error", err)
	}
}
