package engine

import (
	"strings"

	"github.com/Inquir-search/search-engine-sub000/pkg/document"
	"github.com/Inquir-search/search-engine-sub000/pkg/facet"
	"github.com/Inquir-search/search-engine-sub000/pkg/postings"
	"github.com/Inquir-search/search-engine-sub000/pkg/query"
	"github.com/Inquir-search/search-engine-sub000/pkg/ranking"
)

// SearchContext carries the per-call options spec §4.11 describes as
// `context`: the match operator for string-query rewriting, pagination,
// and which facets/aggregations to compute.
type SearchContext struct {
	Operator     string // "and" (default) or "or"
	From         int
	Size         int
	Facets       bool
	Aggregations []AggRequest
}

// AggKind names one of the spec §4.7 aggregation operations.
type AggKind string

const (
	AggTerms         AggKind = "terms"
	AggHistogram     AggKind = "histogram"
	AggDateHistogram AggKind = "date_histogram"
	AggRange         AggKind = "range"
	AggNested        AggKind = "nested"
	AggGlobal        AggKind = "global"
	AggFilter        AggKind = "filter"
)

// AggRequest describes one bucket aggregation to compute alongside a
// search, optionally nested under sub-aggregations.
type AggRequest struct {
	Name  string
	Kind  AggKind
	Field string

	Size         int                // terms
	Interval     float64            // histogram
	DateInterval facet.DateInterval // date_histogram
	Ranges       []facet.RangeSpec  // range
	NestedPath   string             // nested
	FilterQuery  *query.Query       // filter

	Sub []AggRequest
}

// AggResult is the evaluated output of one AggRequest: either Buckets
// (terms/histogram/date_histogram/range) or a nested Sub result map
// (nested/global/filter).
type AggResult struct {
	Buckets []facet.Bucket
	Sub     map[string]AggResult
}

// SearchResult is the spec §6 search result contract.
type SearchResult struct {
	Hits         []document.Doc
	Total        int
	From         int
	Size         int
	Facets       map[string]map[string]int
	Aggregations map[string]AggResult
}

// defaultSearchSize is used when context.Size is zero (not explicitly
// set) so search("match_all") still returns a bounded page rather than
// every document.
const defaultSearchSize = 10

// Search evaluates q against indexName and returns the ranked, paginated,
// hydrated result set (spec §4.11 `search`). q may be a query.Query, a
// bare string (rewritten to a multi-field match), or nil/an empty
// query.Query (returns all documents).
func (e *Engine) Search(indexName string, q any, ctx SearchContext) (SearchResult, error) {
	ni, err := e.get(indexName)
	if err != nil {
		return SearchResult{}, err
	}

	tree, fieldTokens := ni.buildQueryTree(q, ctx)

	candidateIDs := ni.executor.Execute(tree)
	candidateSet := postings.NewSet()
	for _, id := range candidateIDs {
		candidateSet.Add(ni.arena.GetOrAssign(id))
	}

	corpus := ni.docs.Stats()
	bodies := make(map[string]document.Doc, len(candidateIDs))
	for _, id := range candidateIDs {
		if doc, ok := ni.docs.Get(id); ok {
			bodies[id] = doc
		}
	}

	ranked := ni.ranker.Rank(candidateIDs, fieldTokens,
		ranking.CorpusStats{TotalDocs: corpus.TotalDocs, AvgDocLength: corpus.AvgDocLength}, bodies)

	size := ctx.Size
	if size == 0 {
		size = defaultSearchSize
	}
	page := ranking.Paginate(ranked, ctx.From, size)

	hits := make([]document.Doc, 0, len(page))
	for _, s := range page {
		doc, ok := bodies[s.DocID]
		if !ok {
			continue
		}
		hit := document.Clone(doc)
		hit["_score"] = s.Score
		hits = append(hits, hit)
	}

	result := SearchResult{
		Hits:  hits,
		Total: len(candidateIDs),
		From:  ctx.From,
		Size:  size,
	}

	if ctx.Facets {
		result.Facets = ni.facets.Facets(candidateSet)
	}
	if len(ctx.Aggregations) > 0 {
		result.Aggregations = ni.evaluateAggs(ctx.Aggregations, candidateSet)
	}

	return result, nil
}

// buildQueryTree resolves the search input to a concrete query.Query,
// per spec §4.11 steps 1-2, and extracts the field-tagged tokens the
// ranking pipeline needs.
func (ni *namedIndex) buildQueryTree(q any, ctx SearchContext) (query.Query, []ranking.TokenField) {
	switch v := q.(type) {
	case nil:
		return query.MatchAll(), nil
	case query.Query:
		if isEmptyQuery(v) {
			return query.MatchAll(), nil
		}
		return v, ranking.ExtractFieldTokens(v)
	case string:
		if v == "" || v == "*" {
			return query.MatchAll(), nil
		}
		tree := ni.rewriteStringQuery(v, ctx.Operator)
		return tree, ranking.ExtractFieldTokens(tree)
	default:
		return query.MatchAll(), nil
	}
}

func isEmptyQuery(q query.Query) bool {
	return q.Kind == ""
}

// rewriteStringQuery implements spec §4.11 step 2: a bare string becomes
// a bool-of-matches over every declared text field, combined with
// should/minimum_should_match=1 so a hit in any field counts. In AND
// mode each field gets one match clause (multi-token AND internally); in
// OR mode each (field, token) pair gets its own match clause, maximizing
// recall.
func (ni *namedIndex) rewriteStringQuery(value, operator string) query.Query {
	fields := ni.textFields()
	if len(fields) == 0 {
		fields = []string{"_all"}
	}

	var should []query.Query
	if strings.EqualFold(operator, "or") {
		words := strings.Fields(value)
		for _, field := range fields {
			for _, w := range words {
				should = append(should, query.Match(field, w))
			}
		}
	} else {
		for _, field := range fields {
			should = append(should, query.Match(field, value))
		}
	}

	return query.Bool(query.BoolClause{Should: should, MinimumShouldMatch: 1})
}

// evaluateAggs evaluates every top-level aggregation request over
// candidate (spec §4.7).
func (ni *namedIndex) evaluateAggs(reqs []AggRequest, candidate *postings.Set) map[string]AggResult {
	out := make(map[string]AggResult, len(reqs))
	for _, req := range reqs {
		out[req.Name] = ni.evaluateAgg(req, candidate)
	}
	return out
}

func (ni *namedIndex) evaluateAgg(req AggRequest, candidate *postings.Set) AggResult {
	switch req.Kind {
	case AggTerms:
		return AggResult{Buckets: ni.facets.TermsAgg(candidate, req.Field, req.Size)}
	case AggHistogram:
		return AggResult{Buckets: ni.aggs.Histogram(candidate, req.Field, req.Interval)}
	case AggDateHistogram:
		return AggResult{Buckets: ni.aggs.DateHistogram(candidate, req.Field, req.DateInterval)}
	case AggRange:
		rangeBuckets := ni.aggs.Range(candidate, req.Field, req.Ranges)
		buckets := make([]facet.Bucket, len(rangeBuckets))
		for i, rb := range rangeBuckets {
			buckets[i] = facet.Bucket{Value: rb.Key, Count: rb.Count}
		}
		return AggResult{Buckets: buckets}
	case AggNested:
		result := ni.aggs.Nested(candidate, req.NestedPath, func(restricted *postings.Set) any {
			return ni.evaluateAggs(req.Sub, restricted)
		})
		return AggResult{Sub: result.(map[string]AggResult)}
	case AggGlobal:
		result := ni.aggs.Global(ni.allDocSet(), func(all *postings.Set) any {
			return ni.evaluateAggs(req.Sub, all)
		})
		return AggResult{Sub: result.(map[string]AggResult)}
	case AggFilter:
		var extra *postings.Set
		if req.FilterQuery != nil {
			ids := ni.executor.Execute(*req.FilterQuery)
			extra = postings.NewSet()
			for _, id := range ids {
				extra.Add(ni.arena.GetOrAssign(id))
			}
		} else {
			extra = candidate
		}
		result := ni.aggs.Filter(candidate, extra, func(filtered *postings.Set) any {
			return ni.evaluateAggs(req.Sub, filtered)
		})
		return AggResult{Sub: result.(map[string]AggResult)}
	default:
		return AggResult{}
	}
}
