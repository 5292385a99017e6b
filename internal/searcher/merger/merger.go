// Package merger implements the bounded ranked union of two posting lists
// used to answer "kw1 or kw2" queries.
package merger

import (
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/index"
)

// DefaultLimit is the number of documents a top-K query returns.
const DefaultLimit = 5

// Merge returns up to limit distinct documents drawn from first and second,
// in non-increasing order of the frequency that admitted each one. On equal
// frequencies the first list wins. A document already emitted is skipped; if
// both lists offer the same document at the same step the second list's
// cursor moves past it. Whatever remains of second after first is exhausted
// is appended in its own order. Either list may be nil. A limit below one
// means DefaultLimit.
func Merge(first, second index.PostingList, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}
	r := newResult(limit)
	j := 0
	for i := 0; i < len(first) && !r.full(); i++ {
		a := first[i]
		if j >= len(second) {
			r.add(a.DocID)
			continue
		}
		b := second[j]
		switch {
		case a.Frequency > b.Frequency:
			if r.add(a.DocID) && a.DocID == b.DocID {
				j++
			}
		case a.Frequency == b.Frequency:
			r.add(a.DocID)
			if a.DocID == b.DocID {
				j++
			}
		default:
			for j < len(second) && second[j].Frequency > a.Frequency && !r.full() {
				r.add(second[j].DocID)
				j++
			}
			if !r.full() {
				r.add(a.DocID)
			}
		}
	}
	for ; j < len(second) && !r.full(); j++ {
		r.add(second[j].DocID)
	}
	return r.docs
}

// result is an insertion-ordered set of document IDs with a size cap.
type result struct {
	docs  []string
	seen  map[string]struct{}
	limit int
}

func newResult(limit int) *result {
	return &result{
		docs:  make([]string, 0, limit),
		seen:  make(map[string]struct{}, limit),
		limit: limit,
	}
}

// add appends id unless it is already present and reports whether it did.
func (r *result) add(id string) bool {
	if _, dup := r.seen[id]; dup {
		return false
	}
	r.seen[id] = struct{}{}
	r.docs = append(r.docs, id)
	return true
}

func (r *result) full() bool {
	return len(r.docs) >= r.limit
}
