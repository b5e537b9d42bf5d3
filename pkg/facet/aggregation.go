package facet

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Inquir-search/search-engine-sub000/pkg/document"
	"github.com/Inquir-search/search-engine-sub000/pkg/postings"
)

// DocLookup resolves an ordinal-backed candidate set back to document
// bodies, the one piece of state the aggregation engine needs beyond the
// facet buckets themselves — it is satisfied by docstore.Store plus the
// shared arena.
type DocLookup interface {
	Get(id string) (document.Doc, bool)
}

// Aggregator evaluates the bucket aggregations of spec §4.7 over a
// candidate ordinal set, resolving ordinals to documents via docs.
type Aggregator struct {
	Arena *postings.Arena
	Docs  DocLookup
}

// NewAggregator builds an Aggregator sharing arena and docs with the rest
// of the engine.
func NewAggregator(arena *postings.Arena, docs DocLookup) *Aggregator {
	return &Aggregator{Arena: arena, Docs: docs}
}

func (a *Aggregator) candidateDocs(candidate *postings.Set) []document.Doc {
	ords := candidate.ToSlice()
	out := make([]document.Doc, 0, len(ords))
	for _, ord := range ords {
		id, ok := a.Arena.ID(ord)
		if !ok {
			continue
		}
		doc, ok := a.Docs.Get(id)
		if !ok {
			continue
		}
		out = append(out, doc)
	}
	return out
}

func fieldValues(doc document.Doc, field string) []any {
	var out []any
	for _, leaf := range document.Flatten(doc) {
		if leaf.Path == field {
			out = append(out, leaf.Value)
		}
	}
	return out
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Histogram buckets numeric field values at floor(v/interval)*interval
// (spec §4.7 `histogram`). Buckets are returned sorted by key ascending.
func (a *Aggregator) Histogram(candidate *postings.Set, field string, interval float64) []Bucket {
	if interval <= 0 {
		return nil
	}
	counts := make(map[float64]int)
	for _, doc := range a.candidateDocs(candidate) {
		for _, v := range fieldValues(doc, field) {
			fv, ok := asFloat(v)
			if !ok {
				continue
			}
			key := math.Floor(fv/interval) * interval
			counts[key]++
		}
	}
	keys := make([]float64, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	out := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, Bucket{Value: formatHistogramKey(k), Count: counts[k]})
	}
	return out
}

func formatHistogramKey(v float64) string {
	return stringifyValue(v)
}

// DateInterval names a date-histogram truncation granularity.
type DateInterval string

const (
	Day   DateInterval = "day"
	Week  DateInterval = "week"
	Month DateInterval = "month"
	Year  DateInterval = "year"
)

// DateHistogram buckets field's date values by UTC truncation to
// interval (spec §4.7 `dateHistogram`). Buckets are returned sorted by
// key ascending (RFC3339 date strings sort chronologically).
func (a *Aggregator) DateHistogram(candidate *postings.Set, field string, interval DateInterval) []Bucket {
	counts := make(map[string]int)
	for _, doc := range a.candidateDocs(candidate) {
		for _, v := range fieldValues(doc, field) {
			t, ok := asTime(v)
			if !ok {
				continue
			}
			counts[truncateDate(t, interval)]++
		}
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, Bucket{Value: k, Count: counts[k]})
	}
	return out
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed.UTC(), true
		}
		if parsed, err := time.Parse("2006-01-02", t); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

func truncateDate(t time.Time, interval DateInterval) string {
	switch interval {
	case Day:
		return t.Format("2006-01-02")
	case Week:
		offset := int(t.Weekday())
		start := t.AddDate(0, 0, -offset)
		return start.Format("2006-01-02")
	case Month:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	case Year:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	default:
		return t.Format("2006-01-02")
	}
}

// RangeSpec is one bucket boundary for the `range` aggregation: inclusive
// From, exclusive To. A nil bound is open on that side.
type RangeSpec struct {
	Key  string
	From *float64
	To   *float64
}

// RangeBucket is one evaluated range-aggregation bucket.
type RangeBucket struct {
	Key   string
	Count int
}

// Range buckets candidate documents' field values into the given ranges,
// each inclusive on From and exclusive on To (spec §4.7 `range`).
func (a *Aggregator) Range(candidate *postings.Set, field string, ranges []RangeSpec) []RangeBucket {
	docs := a.candidateDocs(candidate)
	out := make([]RangeBucket, len(ranges))
	for i, r := range ranges {
		out[i] = RangeBucket{Key: r.Key}
	}
	for _, doc := range docs {
		for _, v := range fieldValues(doc, field) {
			fv, ok := asFloat(v)
			if !ok {
				continue
			}
			for i, r := range ranges {
				if r.From != nil && fv < *r.From {
					continue
				}
				if r.To != nil && fv >= *r.To {
					continue
				}
				out[i].Count++
			}
		}
	}
	return out
}

// Nested evaluates subAgg over the candidate set restricted to documents
// that have a non-empty value under path (spec §4.7 `nested`).
func (a *Aggregator) Nested(candidate *postings.Set, path string, subAgg func(*postings.Set) any) any {
	restricted := postings.NewSet()
	for _, ord := range candidate.ToSlice() {
		id, ok := a.Arena.ID(ord)
		if !ok {
			continue
		}
		doc, ok := a.Docs.Get(id)
		if !ok {
			continue
		}
		for _, leaf := range document.Flatten(doc) {
			if leaf.Path == path || strings.HasPrefix(leaf.Path, path+".") {
				restricted.Add(ord)
				break
			}
		}
	}
	return subAgg(restricted)
}

// Global ignores the candidate set entirely and evaluates subAgg over
// every document known to the arena (spec §4.7 `global`).
func (a *Aggregator) Global(all *postings.Set, subAgg func(*postings.Set) any) any {
	return subAgg(all)
}

// Filter evaluates subAgg over the candidate set intersected with extra
// (spec §4.7 `filter`).
func (a *Aggregator) Filter(candidate, extra *postings.Set, subAgg func(*postings.Set) any) any {
	return subAgg(postings.And(candidate, extra))
}
