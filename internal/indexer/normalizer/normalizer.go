// Package normalizer turns raw whitespace-separated tokens into index
// keywords. A keyword is lower-cased, stripped of trailing sentence
// punctuation, made only of letters and not a noise word.
package normalizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultNoiseWords is used when no noise-word list is configured.
var DefaultNoiseWords = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from",
	"has", "he", "in", "is", "it", "its", "of", "on", "or", "that",
	"the", "to", "was", "were", "will", "with", "this", "but", "they",
	"have", "had", "what", "when", "where", "who", "which", "their",
	"if", "each", "do", "not", "no", "so", "can",
}

// Normalizer maps raw tokens to keywords.
type Normalizer struct {
	noise map[string]struct{}
}

func New(noiseWords []string) *Normalizer {
	noise := make(map[string]struct{}, len(noiseWords))
	for _, w := range noiseWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			noise[w] = struct{}{}
		}
	}
	return &Normalizer{noise: noise}
}

func isTrailingPunct(r rune) bool {
	switch r {
	case '.', ',', '?', ':', ';', '!':
		return true
	}
	return false
}

// Normalize returns the keyword for raw, or false when raw is not a keyword.
// Single-character tokens are rejected before stripping, so "a." still
// yields "a" unless it is a noise word.
func (n *Normalizer) Normalize(raw string) (string, bool) {
	word := strings.ToLower(raw)
	if utf8.RuneCountInString(word) <= 1 {
		return "", false
	}
	for word != "" {
		r, size := utf8.DecodeLastRuneInString(word)
		if unicode.IsLetter(r) {
			break
		}
		if !isTrailingPunct(r) {
			return "", false
		}
		word = word[:len(word)-size]
	}
	if word == "" {
		return "", false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return "", false
		}
	}
	if _, isNoise := n.noise[word]; isNoise {
		return "", false
	}
	return word, true
}

// Count normalises tokens and returns the number of times each keyword
// occurs.
func (n *Normalizer) Count(tokens []string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range tokens {
		if kw, ok := n.Normalize(tok); ok {
			counts[kw]++
		}
	}
	return counts
}

// IsNoise reports whether word is a configured noise word.
func (n *Normalizer) IsNoise(word string) bool {
	_, ok := n.noise[strings.ToLower(word)]
	return ok
}

// NoiseWordCount returns the number of distinct noise words.
func (n *Normalizer) NoiseWordCount() int {
	return len(n.noise)
}
