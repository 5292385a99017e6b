// Package parser turns free-form query text such as "cat or dog" into the
// keyword pair answered by the top-K engine.
package parser

import (
	"net/http"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
)

type QueryPlan struct {
	First    string
	Second   string
	RawQuery string
}

// Keywords returns the non-empty keywords of the plan.
func (p *QueryPlan) Keywords() []string {
	out := make([]string, 0, 2)
	for _, kw := range []string{p.First, p.Second} {
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// Parse accepts one or two keywords, optionally separated by OR. Keywords
// are lower-cased; a lone keyword leaves Second empty, which never matches.
func Parse(query string) (*QueryPlan, error) {
	plan := &QueryPlan{RawQuery: query}
	keywords := make([]string, 0, 2)
	for _, word := range strings.Fields(query) {
		switch strings.ToUpper(word) {
		case "OR":
			continue
		case "AND", "NOT":
			return nil, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest,
				"operator %s is not supported, only OR", strings.ToUpper(word))
		}
		keywords = append(keywords, strings.ToLower(word))
	}
	switch len(keywords) {
	case 0:
		return nil, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "query has no keywords")
	case 1:
		plan.First = keywords[0]
	case 2:
		plan.First, plan.Second = keywords[0], keywords[1]
	default:
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest,
			"query has %d keywords, at most 2 are supported", len(keywords))
	}
	return plan, nil
}
