package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	docs := writeFile(t, dir, "docs.txt", "d1.txt\nd2.txt\n")
	noise := writeFile(t, dir, "noise.txt", "the\na\n  an\n")
	writeFile(t, dir, "d1.txt", "the cat sat.")
	writeFile(t, dir, "d2.txt", "the cat\n\tran!")

	src := NewFileSource(docs, noise)
	ctx := context.Background()

	words, err := src.NoiseWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "a", "an"}, words)

	ids, err := src.DocumentIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"d1.txt", "d2.txt"}, ids)

	all, err := ReadAll(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, []Document{
		{ID: "d1.txt", Tokens: []string{"the", "cat", "sat."}},
		{ID: "d2.txt", Tokens: []string{"the", "cat", "ran!"}},
	}, all)
}

func TestFileSource_AbsoluteDocumentPath(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	abs := writeFile(t, other, "far.txt", "hello world")
	docs := writeFile(t, dir, "docs.txt", abs)

	tokens, err := NewFileSource(docs, "").Tokens(context.Background(), abs)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "world"}, tokens)
}

func TestFileSource_MissingInput(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	t.Run("docs file", func(t *testing.T) {
		_, err := NewFileSource(filepath.Join(dir, "nope.txt"), "").DocumentIDs(ctx)
		assert.True(t, errors.Is(err, apperrors.ErrMissingInput), "got %v", err)
	})
	t.Run("no docs file configured", func(t *testing.T) {
		_, err := NewFileSource("", "").DocumentIDs(ctx)
		assert.True(t, errors.Is(err, apperrors.ErrMissingInput), "got %v", err)
	})
	t.Run("noise words file", func(t *testing.T) {
		_, err := NewFileSource("", filepath.Join(dir, "noise.txt")).NoiseWords(ctx)
		assert.True(t, errors.Is(err, apperrors.ErrMissingInput), "got %v", err)
	})
	t.Run("document", func(t *testing.T) {
		docs := writeFile(t, dir, "docs.txt", "ghost.txt")
		_, err := ReadAll(ctx, NewFileSource(docs, ""))
		assert.True(t, errors.Is(err, apperrors.ErrMissingInput), "got %v", err)
		assert.Contains(t, err.Error(), "ghost.txt")
	})
}

func TestFileSource_NoNoiseFile(t *testing.T) {
	words, err := NewFileSource("docs.txt", "").NoiseWords(context.Background())
	require.NoError(t, err)
	assert.Nil(t, words)
}

func TestMemorySource(t *testing.T) {
	src := &MemorySource{
		Noise: []string{"the"},
		Docs:  []Document{{ID: "a", Tokens: []string{"x"}}},
	}
	ctx := context.Background()
	tokens, err := src.Tokens(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, tokens)

	_, err = src.Tokens(ctx, "b")
	assert.True(t, errors.Is(err, apperrors.ErrMissingInput))
}
