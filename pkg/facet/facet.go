// Package facet implements per-field value -> doc-id bucketing for fast
// facet counts and bucket aggregations over a candidate set (spec §4.7).
// Grounded on pkg/postings (this module's own adaptation of the teacher's
// posting_list.go) for the value -> docs sets, and on docstore's
// plain-map-plus-incremental-update shape for the per-field bucket table.
package facet

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/Inquir-search/search-engine-sub000/pkg/document"
	"github.com/Inquir-search/search-engine-sub000/pkg/postings"
)

// Index maintains, for each declared facet field, a value -> set of
// document ordinals bucketing (spec §4.7). Values are stringified before
// bucketing; arrays are flattened to one entry per element.
type Index struct {
	mu     sync.RWMutex
	fields map[string]bool // declared facet field names
	values map[string]map[string]*postings.Set
	arena  *postings.Arena
}

// New creates a facet Index over the declared fields, sharing arena with
// the rest of the engine so ordinals agree with the inverted index.
func New(fields []string, arena *postings.Arena) *Index {
	declared := make(map[string]bool, len(fields))
	for _, f := range fields {
		declared[f] = true
	}
	return &Index{
		fields: declared,
		values: make(map[string]map[string]*postings.Set),
		arena:  arena,
	}
}

// IsFacetField reports whether field is declared for faceting.
func (idx *Index) IsFacetField(field string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.fields[field]
}

// Fields returns the declared facet field names.
func (idx *Index) Fields() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]string, 0, len(idx.fields))
	for f := range idx.fields {
		out = append(out, f)
	}
	return out
}

// Add indexes doc's facet-field values under docID. Non-facet fields are
// ignored; arrays are flattened to one bucket entry per element.
func (idx *Index) Add(docID string, doc document.Doc) {
	idx.mu.RLock()
	declared := idx.fields
	idx.mu.RUnlock()
	if len(declared) == 0 {
		return
	}

	ord := idx.arena.GetOrAssign(docID)
	for _, leaf := range document.Flatten(doc) {
		if !declared[leaf.Path] {
			continue
		}
		idx.bucket(leaf.Path, stringifyValue(leaf.Value)).Add(ord)
	}
}

// Remove removes docID from every bucket it was indexed under.
func (idx *Index) Remove(docID string) {
	ord, ok := idx.arena.Ordinal(docID)
	if !ok {
		return
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	for _, byValue := range idx.values {
		for _, set := range byValue {
			set.Remove(ord)
		}
	}
}

func (idx *Index) bucket(field, value string) *postings.Set {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	byValue, ok := idx.values[field]
	if !ok {
		byValue = make(map[string]*postings.Set)
		idx.values[field] = byValue
	}
	set, ok := byValue[value]
	if !ok {
		set = postings.NewSet()
		byValue[value] = set
	}
	return set
}

// Clear empties every bucket.
func (idx *Index) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.values = make(map[string]map[string]*postings.Set)
}

// Facets computes, for every declared facet field, the per-value count of
// candidate docIds falling in each bucket (spec §4.7 `facets`).
func (idx *Index) Facets(candidate *postings.Set) map[string]map[string]int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make(map[string]map[string]int, len(idx.fields))
	for field := range idx.fields {
		byValue := idx.values[field]
		counts := make(map[string]int, len(byValue))
		for value, set := range byValue {
			n := postings.And(set, candidate).Len()
			if n > 0 {
				counts[value] = n
			}
		}
		out[field] = counts
	}
	return out
}

// Bucket is one value/count pair in a terms aggregation result.
type Bucket struct {
	Value string
	Count int
}

// TermsAgg enumerates field's values over candidate, counts, sorts by
// count descending with lexicographic tie-break, and cuts to size (spec
// §4.7 `termsAgg`). size <= 0 means unlimited.
func (idx *Index) TermsAgg(candidate *postings.Set, field string, size int) []Bucket {
	idx.mu.RLock()
	byValue := idx.values[field]
	counts := make(map[string]int, len(byValue))
	for value, set := range byValue {
		n := postings.And(set, candidate).Len()
		if n > 0 {
			counts[value] = n
		}
	}
	idx.mu.RUnlock()

	buckets := make([]Bucket, 0, len(counts))
	for value, count := range counts {
		buckets = append(buckets, Bucket{Value: value, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Value < buckets[j].Value
	})
	if size > 0 && len(buckets) > size {
		buckets = buckets[:size]
	}
	return buckets
}

func stringifyValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	default:
		return ""
	}
}
