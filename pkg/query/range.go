package query

import (
	"strings"
	"time"

	"github.com/Inquir-search/search-engine-sub000/pkg/document"
	"github.com/Inquir-search/search-engine-sub000/pkg/postings"
)

// evalRange scans the document store (spec §4.9 range): numeric compare
// for numeric values, instant compare for time.Time (date) values, and
// lexicographic (code-unit) compare for strings.
func (e *Executor) evalRange(r RangeClause) *postings.Set {
	var ids []string
	for _, id := range e.Docs.All() {
		doc, ok := e.Docs.Get(id)
		if !ok {
			continue
		}
		if anyLeafInRange(doc, r) {
			ids = append(ids, id)
		}
	}
	return e.idsToSet(ids)
}

func anyLeafInRange(doc document.Doc, r RangeClause) bool {
	for _, leaf := range document.Flatten(doc) {
		if leaf.Path != r.Field {
			continue
		}
		if valueInRange(leaf.Value, r) {
			return true
		}
	}
	return false
}

func valueInRange(v any, r RangeClause) bool {
	if tv, ok := v.(time.Time); ok {
		return timeInRange(tv, r)
	}
	if fv, ok := asFloat(v); ok {
		return numericInRange(fv, r)
	}
	if sv, ok := v.(string); ok {
		return stringInRange(sv, r)
	}
	return false
}

// asTime coerces a range bound to a time.Time: a literal time.Time, or a
// string parsed as RFC3339 or a bare date, matching how dates can be
// ingested (document.Doc allows raw time.Time values or date strings).
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

// timeInRange compares v against r's bounds by instant, matching spec
// §4.9's numeric-compare-for-date-fields rule.
func timeInRange(v time.Time, r RangeClause) bool {
	v = v.UTC()
	if r.GTE != nil {
		if b, ok := asTime(r.GTE); ok && v.Before(b) {
			return false
		}
	}
	if r.GT != nil {
		if b, ok := asTime(r.GT); ok && !v.After(b) {
			return false
		}
	}
	if r.LTE != nil {
		if b, ok := asTime(r.LTE); ok && v.After(b) {
			return false
		}
	}
	if r.LT != nil {
		if b, ok := asTime(r.LT); ok && !v.Before(b) {
			return false
		}
	}
	return true
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

func numericInRange(v float64, r RangeClause) bool {
	if r.GTE != nil {
		if b, ok := asFloat(r.GTE); ok && v < b {
			return false
		}
	}
	if r.GT != nil {
		if b, ok := asFloat(r.GT); ok && v <= b {
			return false
		}
	}
	if r.LTE != nil {
		if b, ok := asFloat(r.LTE); ok && v > b {
			return false
		}
	}
	if r.LT != nil {
		if b, ok := asFloat(r.LT); ok && v >= b {
			return false
		}
	}
	return true
}

func stringInRange(v string, r RangeClause) bool {
	if r.GTE != nil {
		if b, ok := r.GTE.(string); ok && strings.Compare(v, b) < 0 {
			return false
		}
	}
	if r.GT != nil {
		if b, ok := r.GT.(string); ok && strings.Compare(v, b) <= 0 {
			return false
		}
	}
	if r.LTE != nil {
		if b, ok := r.LTE.(string); ok && strings.Compare(v, b) > 0 {
			return false
		}
	}
	if r.LT != nil {
		if b, ok := r.LT.(string); ok && strings.Compare(v, b) >= 0 {
			return false
		}
	}
	return true
}
