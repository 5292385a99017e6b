// Package indexer builds the keyword index from a corpus. Documents are
// scanned in list order, each producing a keyword-to-count map that is
// merged into the index before the next batch is read; once every document
// is merged the index is frozen and handed out read-only.
package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/normalizer"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/metrics"
)

type Engine struct {
	cfg     config.CorpusConfig
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewEngine returns an Engine. m may be nil.
func NewEngine(cfg config.CorpusConfig, m *metrics.Metrics) *Engine {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Engine{
		cfg:     cfg,
		metrics: m,
		logger:  slog.Default().With("component", "indexer"),
	}
}

// Normalizer loads the noise words of src. A source without a noise-word
// list gets normalizer.DefaultNoiseWords.
func (e *Engine) Normalizer(ctx context.Context, src corpus.Source) (*normalizer.Normalizer, error) {
	noise, err := src.NoiseWords(ctx)
	if err != nil {
		return nil, err
	}
	if noise == nil {
		e.logger.Info("no noise-word list configured, using defaults", "count", len(normalizer.DefaultNoiseWords))
		noise = normalizer.DefaultNoiseWords
	}
	return normalizer.New(noise), nil
}

// Build indexes every document of src. Up to cfg.Workers documents are
// scanned concurrently; merges always run one at a time in document-list
// order, so the result does not depend on the worker count. Any load failure
// aborts the whole build.
func (e *Engine) Build(ctx context.Context, src corpus.Source) (*index.Index, error) {
	start := time.Now()
	norm, err := e.Normalizer(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}
	ids, err := src.DocumentIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}
	if err := checkUnique(ids); err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}

	builder := index.NewBuilder()
	if e.metrics != nil {
		builder.OnInsert(func(_ string, _ int, probes []int) {
			e.metrics.InsertionProbes.Observe(float64(len(probes)))
		})
	}

	for lo := 0; lo < len(ids); lo += e.cfg.Workers {
		batch := ids[lo:min(lo+e.cfg.Workers, len(ids))]
		counts := make([]map[string]int, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		for i, id := range batch {
			g.Go(func() error {
				c, err := e.scan(gctx, src, norm, id)
				if err != nil {
					return err
				}
				counts[i] = c
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			e.logger.Error("index build aborted", "error", err, "merged_docs", lo)
			return nil, fmt.Errorf("building index: %w", err)
		}

		for i, id := range batch {
			builder.MergeDocument(id, counts[i])
			if e.metrics != nil {
				e.metrics.DocsIndexedTotal.Inc()
			}
			e.logger.Debug("document merged", "doc_id", id, "keywords", len(counts[i]))
		}
	}

	ix := builder.Freeze()
	stats := ix.Stats()
	elapsed := time.Since(start)
	if e.metrics != nil {
		e.metrics.IndexedKeywords.Set(float64(stats.Keywords))
		e.metrics.IndexBuildDuration.Observe(elapsed.Seconds())
	}
	e.logger.Info("index built",
		"documents", stats.Documents,
		"keywords", stats.Keywords,
		"occurrences", stats.Occurrences,
		"noise_words", norm.NoiseWordCount(),
		"workers", e.cfg.Workers,
		"elapsed", elapsed,
	)
	return ix, nil
}

// LoadKeywords scans a single document and returns one occurrence per
// keyword it contains.
func (e *Engine) LoadKeywords(ctx context.Context, src corpus.Source, norm *normalizer.Normalizer, docID string) (map[string]index.Occurrence, error) {
	counts, err := e.scan(ctx, src, norm, docID)
	if err != nil {
		return nil, err
	}
	occs := make(map[string]index.Occurrence, len(counts))
	for kw, n := range counts {
		occs[kw] = index.Occurrence{DocID: docID, Frequency: n}
	}
	return occs, nil
}

func (e *Engine) scan(ctx context.Context, src corpus.Source, norm *normalizer.Normalizer, docID string) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tokens, err := src.Tokens(ctx, docID)
	if err != nil {
		return nil, err
	}
	return norm.Count(tokens), nil
}

func checkUnique(ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest, "document %s listed more than once", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
