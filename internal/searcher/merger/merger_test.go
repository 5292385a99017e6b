package merger

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/index"
)

// pl builds a posting list from alternating doc/frequency pairs.
func pl(pairs ...any) index.PostingList {
	out := make(index.PostingList, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, index.Occurrence{DocID: pairs[i].(string), Frequency: pairs[i+1].(int)})
	}
	return out
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name   string
		first  index.PostingList
		second index.PostingList
		want   []string
	}{
		{
			name:  "only first present",
			first: pl("docA", 3, "docB", 1),
			want:  []string{"docA", "docB"},
		},
		{
			name:   "only second present",
			second: pl("docA", 3, "docB", 1),
			want:   []string{"docA", "docB"},
		},
		{
			name:   "tie goes to first keyword",
			first:  pl("docA", 5),
			second: pl("docB", 5),
			want:   []string{"docA", "docB"},
		},
		{
			name:   "shared document emitted once",
			first:  pl("docA", 4),
			second: pl("docA", 4, "docC", 2),
			want:   []string{"docA", "docC"},
		},
		{
			name:   "interleaved by frequency",
			first:  pl("A", 5, "B", 3, "C", 1),
			second: pl("D", 4, "E", 3, "F", 2),
			want:   []string{"A", "D", "B", "E", "F"},
		},
		{
			name:   "equal frequencies keep first list ahead",
			first:  pl("A", 4, "B", 4, "C", 1),
			second: pl("D", 4, "E", 2),
			want:   []string{"A", "B", "D", "E", "C"},
		},
		{
			name:   "second list higher frequencies drain first",
			first:  pl("A", 1),
			second: pl("B", 9, "C", 8, "D", 1),
			want:   []string{"B", "C", "A", "D"},
		},
		{
			name:   "same document with different frequencies",
			first:  pl("A", 3, "B", 1),
			second: pl("B", 5, "A", 2),
			want:   []string{"B", "A"},
		},
		{
			name:   "already emitted document does not advance second",
			first:  pl("A", 3, "B", 2),
			second: pl("B", 4, "C", 1),
			want:   []string{"B", "A", "C"},
		},
		{
			name:   "remaining second entries appended in order",
			first:  pl("A", 9),
			second: pl("B", 8, "A", 2, "C", 1),
			want:   []string{"A", "B", "C"},
		},
		{
			name:   "cap reached from second list tail",
			first:  pl("A", 9),
			second: pl("B", 8, "C", 7, "D", 6, "E", 5, "F", 4, "G", 3),
			want:   []string{"A", "B", "C", "D", "E"},
		},
		{
			name:   "cap holds when first list fills result",
			first:  pl("A", 9, "B", 9, "C", 9, "D", 9, "E", 9),
			second: pl("F", 1),
			want:   []string{"A", "B", "C", "D", "E"},
		},
		{
			name:   "cap reached inside second list catch-up",
			first:  pl("A", 9, "B", 1),
			second: pl("C", 8, "D", 7, "E", 6, "F", 5, "G", 4),
			want:   []string{"A", "C", "D", "E", "F"},
		},
		{
			name:   "single-sided truncated to five",
			first:  pl("A", 7, "B", 6, "C", 5, "D", 4, "E", 3, "F", 2),
			want:   []string{"A", "B", "C", "D", "E"},
		},
		{
			name: "both empty",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.first, tt.second, DefaultLimit)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Merge mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMerge_NonPositiveLimitUsesDefault(t *testing.T) {
	first := pl("A", 7, "B", 6, "C", 5, "D", 4, "E", 3, "F", 2)
	assert.Len(t, Merge(first, nil, 0), DefaultLimit)
	assert.Len(t, Merge(first, nil, -3), DefaultLimit)
	assert.Len(t, Merge(first, nil, 2), 2)
}

func randomList(rng *rand.Rand, prefix string, docs int) index.PostingList {
	out := make(index.PostingList, 0, docs)
	perm := rng.Perm(docs * 2)
	for _, p := range perm[:docs] {
		out = append(out, index.Occurrence{DocID: fmt.Sprintf("%s%d", prefix, p), Frequency: rng.Intn(6) + 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Frequency > out[j].Frequency })
	return out
}

func TestMerge_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for round := 0; round < 300; round++ {
		// Shared prefix so the two lists overlap on some documents.
		first := randomList(rng, "d", rng.Intn(8))
		second := randomList(rng, "d", rng.Intn(8))

		union := make(map[string]struct{})
		for _, o := range first {
			union[o.DocID] = struct{}{}
		}
		for _, o := range second {
			union[o.DocID] = struct{}{}
		}

		full := Merge(first, second, 1000)
		assert.Len(t, full, len(union), "round %d: unbounded merge must cover the union", round)

		got := Merge(first, second, DefaultLimit)
		assert.LessOrEqual(t, len(got), DefaultLimit)
		assert.Equal(t, full[:len(got)], got, "round %d: capped result must be a prefix", round)

		seen := make(map[string]bool)
		for _, id := range got {
			assert.False(t, seen[id], "round %d: duplicate %s", round, id)
			seen[id] = true
			_, inUnion := union[id]
			assert.True(t, inUnion)
		}
	}
}

type fakeIndex map[string]index.PostingList

func (f fakeIndex) Lookup(keyword string) (index.PostingList, bool) {
	l, ok := f[keyword]
	return l, ok
}

func TestTopK(t *testing.T) {
	ix := fakeIndex{
		"cat": pl("d2", 1, "d1", 1),
		"sat": pl("d1", 1),
	}

	docs, ok := TopK(ix, "zzz", "yyy", DefaultLimit)
	assert.False(t, ok)
	assert.Nil(t, docs)

	docs, ok = TopK(ix, "CAT", "zzz", DefaultLimit)
	assert.True(t, ok)
	assert.Equal(t, []string{"d2", "d1"}, docs)

	docs, ok = TopK(ix, "Sat", "cat", DefaultLimit)
	assert.True(t, ok)
	assert.Equal(t, []string{"d1", "d2"}, docs)
}
