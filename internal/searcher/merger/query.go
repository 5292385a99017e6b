package merger

import (
	"strings"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/index"
)

// PostingSource is the read side of a keyword index.
type PostingSource interface {
	Lookup(keyword string) (index.PostingList, bool)
}

// TopK answers "kw1 or kw2" against src. Keywords are matched
// case-insensitively. The boolean is false when neither keyword is indexed,
// which is distinct from a match with no documents. When only one keyword is
// indexed its list is returned in order, truncated to limit.
func TopK(src PostingSource, kw1, kw2 string, limit int) ([]string, bool) {
	l1, ok1 := src.Lookup(strings.ToLower(kw1))
	l2, ok2 := src.Lookup(strings.ToLower(kw2))
	if !ok1 && !ok2 {
		return nil, false
	}
	return Merge(l1, l2, limit), true
}
