// Package index holds the keyword index: a map from normalised keyword to a
// frequency-ordered posting list. A Builder owns the index while documents
// are merged; Freeze hands out an immutable Index that any number of
// goroutines may read without locking.
package index

import (
	"fmt"
	"sort"
	"sync"
)

// InsertHook observes every ordered insertion performed by a Builder. It
// receives the keyword, the list length after insertion and the probed
// midpoints.
type InsertHook func(keyword string, size int, probes []int)

// Builder accumulates per-document keyword counts into posting lists.
type Builder struct {
	mu          sync.Mutex
	lists       map[string]PostingList
	docs        map[string]struct{}
	occurrences int
	frozen      bool
	hook        InsertHook
}

func NewBuilder() *Builder {
	return &Builder{
		lists: make(map[string]PostingList, 1000),
		docs:  make(map[string]struct{}),
	}
}

// OnInsert registers a hook called after each ordered insertion.
func (b *Builder) OnInsert(hook InsertHook) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hook = hook
}

// MergeDocument merges the keyword counts of a single document. Each keyword
// new to the index gets a one-entry posting list; otherwise the occurrence is
// appended and moved into place with InsertLast. A document may be merged at
// most once and every count must be positive.
func (b *Builder) MergeDocument(docID string, counts map[string]int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frozen {
		panic("index: merge into frozen index")
	}
	if _, seen := b.docs[docID]; seen {
		panic(fmt.Sprintf("index: document %q merged twice", docID))
	}
	b.docs[docID] = struct{}{}

	for keyword, count := range counts {
		if keyword == "" {
			panic(fmt.Sprintf("index: empty keyword in document %q", docID))
		}
		if count < 1 {
			panic(fmt.Sprintf("index: non-positive frequency %d for %q in document %q", count, keyword, docID))
		}
		occ := Occurrence{DocID: docID, Frequency: count}
		list, exists := b.lists[keyword]
		if !exists {
			b.lists[keyword] = PostingList{occ}
			b.occurrences++
			continue
		}
		list = append(list, occ)
		probes := list.InsertLast()
		b.lists[keyword] = list
		b.occurrences++
		if b.hook != nil {
			b.hook(keyword, len(list), probes)
		}
	}
}

// MergeOccurrences merges a keyword-to-occurrence map for one document, the
// shape produced by scanning a document. All occurrences must name the same
// document.
func (b *Builder) MergeOccurrences(occs map[string]Occurrence) {
	if len(occs) == 0 {
		return
	}
	var docID string
	counts := make(map[string]int, len(occs))
	for keyword, occ := range occs {
		if docID == "" {
			docID = occ.DocID
		} else if occ.DocID != docID {
			panic(fmt.Sprintf("index: occurrences for %q and %q in one merge", docID, occ.DocID))
		}
		counts[keyword] = occ.Frequency
	}
	b.MergeDocument(docID, counts)
}

// Freeze ends the build phase. The Builder rejects further merges and the
// returned Index shares its posting lists.
func (b *Builder) Freeze() *Index {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frozen = true
	return &Index{
		lists: b.lists,
		stats: Stats{
			Keywords:    len(b.lists),
			Documents:   len(b.docs),
			Occurrences: b.occurrences,
		},
	}
}

// Index is the read-only keyword index produced by Builder.Freeze.
type Index struct {
	lists map[string]PostingList
	stats Stats
}

// Lookup returns the posting list for an already normalised keyword. The
// returned slice is shared and must not be modified.
func (ix *Index) Lookup(keyword string) (PostingList, bool) {
	list, ok := ix.lists[keyword]
	return list, ok
}

// Postings returns a copy of the posting list for keyword.
func (ix *Index) Postings(keyword string) (PostingList, bool) {
	list, ok := ix.lists[keyword]
	if !ok {
		return nil, false
	}
	out := make(PostingList, len(list))
	copy(out, list)
	return out, true
}

// Keywords returns all indexed keywords in lexical order.
func (ix *Index) Keywords() []string {
	keywords := make([]string, 0, len(ix.lists))
	for k := range ix.lists {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)
	return keywords
}

// Snapshot returns every keyword with a copy of its posting list, sorted by
// keyword.
func (ix *Index) Snapshot() []TermEntry {
	entries := make([]TermEntry, 0, len(ix.lists))
	for _, k := range ix.Keywords() {
		postings, _ := ix.Postings(k)
		entries = append(entries, TermEntry{Keyword: k, Postings: postings})
	}
	return entries
}

func (ix *Index) Stats() Stats {
	return ix.stats
}
