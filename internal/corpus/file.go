package corpus

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
)

// FileSource reads a docs file listing one document file name per
// whitespace-separated field and a noise-words file with one word per field.
// Relative document names are resolved against the docs file's directory;
// the name as listed is the document identifier.
type FileSource struct {
	DocsFile       string
	NoiseWordsFile string
}

func NewFileSource(docsFile, noiseWordsFile string) *FileSource {
	return &FileSource{DocsFile: docsFile, NoiseWordsFile: noiseWordsFile}
}

// NoiseWords returns nil, nil when no noise-word file is configured.
func (s *FileSource) NoiseWords(ctx context.Context) ([]string, error) {
	if s.NoiseWordsFile == "" {
		return nil, nil
	}
	words, err := readWords(s.NoiseWordsFile)
	if err != nil {
		return nil, fmt.Errorf("loading noise words: %w", err)
	}
	return words, nil
}

func (s *FileSource) DocumentIDs(ctx context.Context) ([]string, error) {
	if s.DocsFile == "" {
		return nil, apperrors.MissingInput("no docs file configured")
	}
	ids, err := readWords(s.DocsFile)
	if err != nil {
		return nil, fmt.Errorf("loading document list: %w", err)
	}
	return ids, nil
}

func (s *FileSource) Tokens(ctx context.Context, docID string) ([]string, error) {
	tokens, err := readWords(s.resolve(docID))
	if err != nil {
		return nil, fmt.Errorf("loading document %s: %w", docID, err)
	}
	return tokens, nil
}

func (s *FileSource) resolve(docID string) string {
	if filepath.IsAbs(docID) {
		return docID
	}
	return filepath.Join(filepath.Dir(s.DocsFile), docID)
}

func readWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.MissingInput("%s does not exist", path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return scanWords(f)
}

func scanWords(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	words := make([]string, 0, 64)
	for sc.Scan() {
		words = append(words, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning words: %w", err)
	}
	return words, nil
}

func missingDocument(docID string) error {
	return apperrors.MissingInput("document %s not found", docID)
}
