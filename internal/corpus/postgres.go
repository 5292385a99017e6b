package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/postgres"
)

// Schema creates the tables read by PostgresSource.
const Schema = `
CREATE TABLE IF NOT EXISTS noise_words (
	word TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS documents (
	name     TEXT PRIMARY KEY,
	body     TEXT NOT NULL,
	position INTEGER NOT NULL
);`

// PostgresSource reads the corpus from the noise_words and documents tables.
// Documents are listed in ascending position order and tokenised on
// whitespace.
type PostgresSource struct {
	client *postgres.Client
}

func NewPostgresSource(client *postgres.Client) *PostgresSource {
	return &PostgresSource{client: client}
}

func (s *PostgresSource) NoiseWords(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, `SELECT word FROM noise_words`)
}

func (s *PostgresSource) DocumentIDs(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, `SELECT name FROM documents ORDER BY position, name`)
}

func (s *PostgresSource) Tokens(ctx context.Context, docID string) ([]string, error) {
	var body string
	err := s.client.DB.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = $1`, docID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, missingDocument(docID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading document %s: %w", docID, err)
	}
	return strings.Fields(body), nil
}

func (s *PostgresSource) queryStrings(ctx context.Context, query string) ([]string, error) {
	rows, err := s.client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying corpus: %w", err)
	}
	defer rows.Close()
	out := make([]string, 0, 64)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning corpus row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating corpus rows: %w", err)
	}
	return out, nil
}

// Import replaces the stored corpus with noise and docs in one transaction.
// Document positions follow the order of docs.
func (s *PostgresSource) Import(ctx context.Context, noise []string, docs []Document) error {
	return s.client.InTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, Schema); err != nil {
			return fmt.Errorf("creating corpus schema: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `TRUNCATE noise_words, documents`); err != nil {
			return fmt.Errorf("clearing corpus: %w", err)
		}
		for _, w := range noise {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO noise_words (word) VALUES ($1) ON CONFLICT DO NOTHING`, w,
			); err != nil {
				return fmt.Errorf("inserting noise word %q: %w", w, err)
			}
		}
		for i, d := range docs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO documents (name, body, position) VALUES ($1, $2, $3)`,
				d.ID, strings.Join(d.Tokens, " "), i,
			); err != nil {
				return fmt.Errorf("inserting document %s: %w", d.ID, err)
			}
		}
		return nil
	})
}
