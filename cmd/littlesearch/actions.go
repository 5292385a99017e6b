package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/postgres"
)

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}

// openSource returns the configured corpus and a function releasing it.
func openSource(ctx context.Context, cfg *config.Config) (corpus.Source, func(), error) {
	if cfg.Corpus.Source == config.SourcePostgres {
		client, err := postgres.New(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		return corpus.NewPostgresSource(client), func() { client.Close() }, nil
	}
	return corpus.NewFileSource(cfg.Corpus.DocsFile, cfg.Corpus.NoiseWordsFile), func() {}, nil
}

func buildIndex(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*index.Index, error) {
	src, release, err := openSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer release()
	return indexer.NewEngine(cfg.Corpus, m).Build(ctx, src)
}

// IndexAction builds the index and prints its size. With --doc it also
// prints the keywords loaded from that one document.
func IndexAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	ctx := c.Context
	src, release, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer release()

	engine := indexer.NewEngine(cfg.Corpus, metrics.New(prometheus.NewRegistry()))
	if doc := c.String("doc"); doc != "" {
		norm, err := engine.Normalizer(ctx, src)
		if err != nil {
			return err
		}
		occs, err := engine.LoadKeywords(ctx, src, norm, doc)
		if err != nil {
			return err
		}
		keywords := make([]string, 0, len(occs))
		for kw := range occs {
			keywords = append(keywords, kw)
		}
		sort.Strings(keywords)
		for _, kw := range keywords {
			fmt.Fprintf(c.App.Writer, "%s %s\n", kw, occs[kw])
		}
		return nil
	}

	ix, err := engine.Build(ctx, src)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(ix.Stats())
	if err != nil {
		return fmt.Errorf("marshaling stats: %w", err)
	}
	fmt.Fprint(c.App.Writer, string(out))
	return nil
}

// SearchAction prints the matching documents space-separated on one line,
// or "no match" when neither keyword is indexed.
func SearchAction(c *cli.Context) error {
	if c.NArg() < 1 || c.NArg() > 2 {
		return fmt.Errorf("search takes one or two keywords, got %d", c.NArg())
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	ix, err := buildIndex(c.Context, cfg, nil)
	if err != nil {
		return err
	}
	res, err := executor.New(ix, cfg.Search.MaxResults, nil).Top5Search(c.Context, c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}
	if !res.Matched {
		fmt.Fprintln(c.App.Writer, "no match")
		return nil
	}
	fmt.Fprintln(c.App.Writer, strings.Join(res.Documents, " "))
	return nil
}

// KeywordsAction prints one keyword's posting list as YAML.
func KeywordsAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("keywords takes exactly one keyword")
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	ix, err := buildIndex(c.Context, cfg, nil)
	if err != nil {
		return err
	}
	keyword := strings.ToLower(c.Args().First())
	postings, ok := ix.Postings(keyword)
	if !ok {
		return fmt.Errorf("keyword %q is not indexed", keyword)
	}
	out, err := yaml.Marshal(index.TermEntry{Keyword: keyword, Postings: postings})
	if err != nil {
		return fmt.Errorf("marshaling postings: %w", err)
	}
	fmt.Fprint(c.App.Writer, string(out))
	return nil
}

// ImportAction loads the file corpus named in the config and replaces the
// Postgres corpus with it.
func ImportAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	ctx := c.Context
	files := corpus.NewFileSource(cfg.Corpus.DocsFile, cfg.Corpus.NoiseWordsFile)
	noise, err := files.NoiseWords(ctx)
	if err != nil {
		return err
	}
	docs, err := corpus.ReadAll(ctx, files)
	if err != nil {
		return err
	}

	client, err := postgres.New(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer client.Close()
	if err := corpus.NewPostgresSource(client).Import(ctx, noise, docs); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "imported %d documents and %d noise words\n", len(docs), len(noise))
	return nil
}
