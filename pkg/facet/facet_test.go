package facet

import (
	"testing"

	"github.com/Inquir-search/search-engine-sub000/pkg/document"
	"github.com/Inquir-search/search-engine-sub000/pkg/postings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacets_CountsWithinCandidateSet(t *testing.T) {
	arena := postings.NewArena()
	idx := New([]string{"status"}, arena)

	idx.Add("a", document.Doc{"status": "active"})
	idx.Add("b", document.Doc{"status": "active"})
	idx.Add("c", document.Doc{"status": "inactive"})

	candidate := postings.NewSetFromSlice([]uint32{
		arena.GetOrAssign("a"), arena.GetOrAssign("b"),
	})

	facets := idx.Facets(candidate)
	require.Contains(t, facets, "status")
	assert.Equal(t, 2, facets["status"]["active"])
	assert.Equal(t, 0, facets["status"]["inactive"])
}

func TestFacets_NonFacetFieldIgnored(t *testing.T) {
	arena := postings.NewArena()
	idx := New([]string{"status"}, arena)
	idx.Add("a", document.Doc{"status": "active", "name": "hello"})

	candidate := postings.NewSetFromSlice([]uint32{arena.GetOrAssign("a")})
	facets := idx.Facets(candidate)
	_, ok := facets["name"]
	assert.False(t, ok)
}

func TestRemove_ClearsDocFromAllBuckets(t *testing.T) {
	arena := postings.NewArena()
	idx := New([]string{"tag"}, arena)
	idx.Add("a", document.Doc{"tag": []any{"x", "y"}})

	idx.Remove("a")

	candidate := postings.NewSetFromSlice([]uint32{arena.GetOrAssign("a")})
	facets := idx.Facets(candidate)
	assert.Equal(t, 0, facets["tag"]["x"])
	assert.Equal(t, 0, facets["tag"]["y"])
}

func TestTermsAgg_SortsByCountThenLexicographic(t *testing.T) {
	arena := postings.NewArena()
	idx := New([]string{"category"}, arena)
	idx.Add("a", document.Doc{"category": "books"})
	idx.Add("b", document.Doc{"category": "books"})
	idx.Add("c", document.Doc{"category": "art"})
	idx.Add("d", document.Doc{"category": "toys"})

	candidate := postings.NewSetFromSlice([]uint32{
		arena.GetOrAssign("a"), arena.GetOrAssign("b"),
		arena.GetOrAssign("c"), arena.GetOrAssign("d"),
	})

	buckets := idx.TermsAgg(candidate, "category", 10)
	require.Len(t, buckets, 3)
	assert.Equal(t, "books", buckets[0].Value)
	assert.Equal(t, 2, buckets[0].Count)
	// art and toys tie at 1; lexicographic tie-break puts art first.
	assert.Equal(t, "art", buckets[1].Value)
	assert.Equal(t, "toys", buckets[2].Value)
}

func TestTermsAgg_SizeCutoff(t *testing.T) {
	arena := postings.NewArena()
	idx := New([]string{"tag"}, arena)
	idx.Add("a", document.Doc{"tag": "x"})
	idx.Add("b", document.Doc{"tag": "y"})
	idx.Add("c", document.Doc{"tag": "z"})
	candidate := postings.NewSetFromSlice([]uint32{
		arena.GetOrAssign("a"), arena.GetOrAssign("b"), arena.GetOrAssign("c"),
	})

	buckets := idx.TermsAgg(candidate, "tag", 2)
	assert.Len(t, buckets, 2)
}

func TestHistogram_BucketsByFloorDivision(t *testing.T) {
	arena := postings.NewArena()
	docs := map[string]document.Doc{
		"a": {"id": "a", "price": 5.0},
		"b": {"id": "b", "price": 12.0},
		"c": {"id": "c", "price": 19.0},
	}
	store := fakeDocs(docs)
	agg := NewAggregator(arena, store)

	candidate := postings.NewSet()
	for id := range docs {
		candidate.Add(arena.GetOrAssign(id))
	}

	buckets := agg.Histogram(candidate, "price", 10)
	require.Len(t, buckets, 2)
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, 3, total)
}

func TestRange_InclusiveExclusiveBounds(t *testing.T) {
	arena := postings.NewArena()
	docs := map[string]document.Doc{
		"a": {"id": "a", "age": 25.0},
		"b": {"id": "b", "age": 30.0},
		"c": {"id": "c", "age": 35.0},
	}
	store := fakeDocs(docs)
	agg := NewAggregator(arena, store)
	candidate := postings.NewSet()
	for id := range docs {
		candidate.Add(arena.GetOrAssign(id))
	}

	lo, hi := 25.0, 35.0
	buckets := agg.Range(candidate, "age", []RangeSpec{
		{Key: "young", From: &lo, To: &hi},
	})
	require.Len(t, buckets, 1)
	assert.Equal(t, 2, buckets[0].Count) // 25 and 30, 35 excluded
}

type fakeDocs map[string]document.Doc

func (f fakeDocs) Get(id string) (document.Doc, bool) {
	d, ok := f[id]
	return d, ok
}
