package index

import (
	"fmt"
	"strings"
)

// Occurrence records how many times a keyword appears in one document.
type Occurrence struct {
	DocID     string `json:"doc_id" yaml:"doc_id"`
	Frequency int    `json:"frequency"`
}

func (o Occurrence) String() string {
	return fmt.Sprintf("(%s,%d)", o.DocID, o.Frequency)
}

// PostingList holds the occurrences of one keyword, ordered by
// non-increasing frequency.
type PostingList []Occurrence

// InsertLast moves the trailing occurrence of pl to its ordered position.
// Entries 0..n-2 must already be in non-increasing frequency order. The
// position is found by binary search; on an exact frequency match the search
// stops and the new entry is placed in front of the probed entry. The probed
// midpoints are returned in order and are empty for lists shorter than two.
func (pl PostingList) InsertLast() []int {
	n := len(pl)
	if n < 2 {
		return nil
	}
	target := pl[n-1].Frequency
	low, high, mid := 0, n-2, 0
	probes := make([]int, 0, 8)

search:
	for low <= high {
		mid = (low + high) / 2
		probes = append(probes, mid)
		switch f := pl[mid].Frequency; {
		case f > target:
			low = mid + 1
		case f < target:
			high = mid - 1
		default:
			break search
		}
	}

	pos := mid
	if pl[mid].Frequency > target {
		pos = mid + 1
	}
	last := pl[n-1]
	copy(pl[pos+1:], pl[pos:n-1])
	pl[pos] = last
	return probes
}

// Sorted reports whether pl is in non-increasing frequency order.
func (pl PostingList) Sorted() bool {
	for i := 1; i < len(pl); i++ {
		if pl[i].Frequency > pl[i-1].Frequency {
			return false
		}
	}
	return true
}

// DocIDs returns the document identifiers of pl in list order.
func (pl PostingList) DocIDs() []string {
	ids := make([]string, len(pl))
	for i, o := range pl {
		ids[i] = o.DocID
	}
	return ids
}

func (pl PostingList) String() string {
	parts := make([]string, len(pl))
	for i, o := range pl {
		parts[i] = o.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// TermEntry pairs a keyword with its posting list.
type TermEntry struct {
	Keyword  string      `json:"keyword"`
	Postings PostingList `json:"postings"`
}

// Stats summarises the contents of an index.
type Stats struct {
	Keywords    int `json:"keywords"`
	Documents   int `json:"documents"`
	Occurrences int `json:"occurrences"`
}
