// Package corpus supplies the documents and noise words that the indexer
// consumes. A document is identified by an opaque name and yields its raw
// whitespace-separated tokens in order.
package corpus

import "context"

// Source provides noise words, the ordered list of document identifiers and
// the raw tokens of each document.
type Source interface {
	NoiseWords(ctx context.Context) ([]string, error)
	DocumentIDs(ctx context.Context) ([]string, error)
	Tokens(ctx context.Context, docID string) ([]string, error)
}

// Document is a named token sequence, used when copying a corpus between
// sources.
type Document struct {
	ID     string
	Tokens []string
}

// ReadAll loads every document of src in list order.
func ReadAll(ctx context.Context, src Source) ([]Document, error) {
	ids, err := src.DocumentIDs(ctx)
	if err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tokens, err := src.Tokens(ctx, id)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{ID: id, Tokens: tokens})
	}
	return docs, nil
}

// MemorySource is an in-process Source.
type MemorySource struct {
	Noise []string
	Docs  []Document
}

func (m *MemorySource) NoiseWords(ctx context.Context) ([]string, error) {
	return m.Noise, nil
}

func (m *MemorySource) DocumentIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, len(m.Docs))
	for i, d := range m.Docs {
		ids[i] = d.ID
	}
	return ids, nil
}

func (m *MemorySource) Tokens(ctx context.Context, docID string) ([]string, error) {
	for _, d := range m.Docs {
		if d.ID == docID {
			return d.Tokens, nil
		}
	}
	return nil, missingDocument(docID)
}
