package query

import "github.com/Inquir-search/search-engine-sub000/pkg/postings"

// evalBool implements the combinator from spec §4.9:
//   - must non-empty: base = intersection(must)
//   - else should non-empty: base = union(should), subject to minimum_should_match
//   - else: base = empty
//   - subtract union(must_not)
//   - intersect with filter (identical to must, no score contribution)
func (e *Executor) evalBool(b BoolClause) *postings.Set {
	var base *postings.Set

	switch {
	case len(b.Must) > 0:
		sets := e.evalAll(b.Must)
		base = postings.And(sets...)
	case len(b.Should) > 0:
		base = e.evalShould(b.Should, b.MinimumShouldMatch)
	default:
		base = postings.NewSet()
	}

	if len(b.MustNot) > 0 {
		notSets := e.evalAll(b.MustNot)
		excluded := postings.Or(notSets...)
		base = postings.AndNot(base, excluded)
	}

	if len(b.Filter) > 0 {
		filterSets := e.evalAll(b.Filter)
		filterSets = append(filterSets, base)
		base = postings.And(filterSets...)
	}

	return base
}

func (e *Executor) evalAll(qs []Query) []*postings.Set {
	out := make([]*postings.Set, len(qs))
	for i, q := range qs {
		out[i] = e.eval(q)
	}
	return out
}

// evalShould unions should clauses, filtered to documents present in at
// least minimumShouldMatch of them. minimumShouldMatch <= 0 defaults to 1
// (spec §4.9: "default 1 if no must, 0 otherwise" — evalBool only calls
// this when there is no must, so the applicable default here is 1).
func (e *Executor) evalShould(should []Query, minimumShouldMatch int) *postings.Set {
	sets := e.evalAll(should)
	min := minimumShouldMatch
	if min <= 0 {
		min = 1
	}
	if min <= 1 {
		return postings.Or(sets...)
	}

	counts := make(map[uint32]int)
	for _, s := range sets {
		for _, ord := range s.ToSlice() {
			counts[ord]++
		}
	}
	var ords []uint32
	for ord, c := range counts {
		if c >= min {
			ords = append(ords, ord)
		}
	}
	return postings.NewSetFromSlice(ords)
}
