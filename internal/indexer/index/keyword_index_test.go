package index

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_MergeCreatesAndOrdersLists(t *testing.T) {
	b := NewBuilder()
	b.MergeDocument("d1", map[string]int{"cat": 1, "sat": 1})
	b.MergeDocument("d2", map[string]int{"cat": 1, "ran": 1})
	ix := b.Freeze()

	cat, ok := ix.Lookup("cat")
	require.True(t, ok)
	want := PostingList{{DocID: "d2", Frequency: 1}, {DocID: "d1", Frequency: 1}}
	if diff := cmp.Diff(want, cat); diff != "" {
		t.Errorf("cat postings mismatch (-want +got):\n%s", diff)
	}

	sat, ok := ix.Lookup("sat")
	require.True(t, ok)
	assert.Equal(t, PostingList{{DocID: "d1", Frequency: 1}}, sat)

	_, ok = ix.Lookup("the")
	assert.False(t, ok)

	assert.Equal(t, []string{"cat", "ran", "sat"}, ix.Keywords())
	assert.Equal(t, Stats{Keywords: 3, Documents: 2, Occurrences: 4}, ix.Stats())
}

func TestBuilder_HigherFrequencyMovesAhead(t *testing.T) {
	b := NewBuilder()
	b.MergeDocument("d1", map[string]int{"go": 1})
	b.MergeDocument("d2", map[string]int{"go": 4})
	b.MergeDocument("d3", map[string]int{"go": 2})
	ix := b.Freeze()

	got, _ := ix.Lookup("go")
	assert.Equal(t, []string{"d2", "d3", "d1"}, got.DocIDs())
}

func TestBuilder_InvariantsUnderRandomMerges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	keywords := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	b := NewBuilder()
	for d := 0; d < 200; d++ {
		counts := make(map[string]int)
		for _, kw := range keywords {
			if rng.Intn(3) == 0 {
				continue
			}
			counts[kw] = rng.Intn(10) + 1
		}
		b.MergeDocument(fmt.Sprintf("doc-%d", d), counts)
	}
	ix := b.Freeze()

	for _, kw := range ix.Keywords() {
		list, _ := ix.Lookup(kw)
		assert.True(t, list.Sorted(), "keyword %s not sorted", kw)
		seen := make(map[string]bool, len(list))
		for _, o := range list {
			assert.False(t, seen[o.DocID], "keyword %s lists %s twice", kw, o.DocID)
			seen[o.DocID] = true
		}
	}
}

func TestBuilder_InsertHook(t *testing.T) {
	b := NewBuilder()
	var calls []int
	b.OnInsert(func(keyword string, size int, probes []int) {
		assert.Equal(t, "cat", keyword)
		calls = append(calls, size)
	})
	b.MergeDocument("d1", map[string]int{"cat": 2})
	b.MergeDocument("d2", map[string]int{"cat": 3})
	b.MergeDocument("d3", map[string]int{"cat": 1})
	assert.Equal(t, []int{2, 3}, calls)
}

func TestBuilder_MergeOccurrences(t *testing.T) {
	b := NewBuilder()
	b.MergeOccurrences(map[string]Occurrence{
		"cat": {DocID: "d1", Frequency: 2},
		"dog": {DocID: "d1", Frequency: 1},
	})
	b.MergeOccurrences(nil)
	ix := b.Freeze()
	assert.Equal(t, Stats{Keywords: 2, Documents: 1, Occurrences: 2}, ix.Stats())

	assert.Panics(t, func() {
		NewBuilder().MergeOccurrences(map[string]Occurrence{
			"cat": {DocID: "d1", Frequency: 1},
			"dog": {DocID: "d2", Frequency: 1},
		})
	})
}

func TestBuilder_ContractViolationsPanic(t *testing.T) {
	t.Run("non-positive frequency", func(t *testing.T) {
		assert.Panics(t, func() {
			NewBuilder().MergeDocument("d1", map[string]int{"cat": 0})
		})
	})
	t.Run("empty keyword", func(t *testing.T) {
		assert.Panics(t, func() {
			NewBuilder().MergeDocument("d1", map[string]int{"": 1})
		})
	})
	t.Run("document merged twice", func(t *testing.T) {
		b := NewBuilder()
		b.MergeDocument("d1", map[string]int{"cat": 1})
		assert.Panics(t, func() {
			b.MergeDocument("d1", map[string]int{"cat": 1})
		})
	})
	t.Run("merge after freeze", func(t *testing.T) {
		b := NewBuilder()
		b.Freeze()
		assert.Panics(t, func() {
			b.MergeDocument("d1", map[string]int{"cat": 1})
		})
	})
}

func TestIndex_PostingsReturnsCopy(t *testing.T) {
	b := NewBuilder()
	b.MergeDocument("d1", map[string]int{"cat": 1})
	ix := b.Freeze()

	cp, ok := ix.Postings("cat")
	require.True(t, ok)
	cp[0].Frequency = 99

	orig, _ := ix.Lookup("cat")
	assert.Equal(t, 1, orig[0].Frequency)

	snap := ix.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "cat", snap[0].Keyword)
}
