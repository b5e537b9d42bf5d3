// Package query defines the query tree node types and the executor that
// evaluates a tree into a set of matching document ids (spec §4.9).
// Grounded on pkg/qgram/query.go's Clause/ClauseType: a small tagged
// struct for a term/phrase distinction, generalized here to the full
// node set the spec requires (match/term/range/prefix/wildcard/fuzzy/
// phrase/geo_distance/exists/bool).
package query

import "github.com/Inquir-search/search-engine-sub000/pkg/geo"

// Kind tags which clause field of a Query is populated.
type Kind string

const (
	KindMatchAll    Kind = "match_all"
	KindMatch       Kind = "match"
	KindTerm        Kind = "term"
	KindRange       Kind = "range"
	KindPrefix      Kind = "prefix"
	KindWildcard    Kind = "wildcard"
	KindFuzzy       Kind = "fuzzy"
	KindPhrase      Kind = "phrase"
	KindGeoDistance Kind = "geo_distance"
	KindExists      Kind = "exists"
	KindBool        Kind = "bool"
)

// Query is one node of a query tree. Only the field matching Kind is
// read by the executor; the rest are ignored, so zero-value Query{} of
// an unrecognized Kind degrades to an empty match (spec §4.9 failure
// semantics: unknown node kind yields the empty set).
type Query struct {
	Kind Kind

	Match       *MatchClause
	Term        *TermClause
	Range       *RangeClause
	Prefix      *PrefixClause
	Wildcard    *WildcardClause
	Fuzzy       *FuzzyClause
	Phrase      *PhraseClause
	GeoDistance *GeoDistanceClause
	Exists      *ExistsClause
	Bool        *BoolClause
}

// MatchAll builds a match_all query node.
func MatchAll() Query { return Query{Kind: KindMatchAll} }

// MatchClause is the `match` node: analyzed, multi-token text match.
type MatchClause struct {
	Field    string
	Value    string
	Operator string // "and" (default) or "or"
}

// Match builds a match query node.
func Match(field, value string) Query {
	return Query{Kind: KindMatch, Match: &MatchClause{Field: field, Value: value}}
}

// TermClause is the `term` node: exact posting lookup.
type TermClause struct {
	Field string
	Value string
}

// Term builds a term query node.
func Term(field, value string) Query {
	return Query{Kind: KindTerm, Term: &TermClause{Field: field, Value: value}}
}

// RangeClause is the `range` node. A nil bound is open on that side.
type RangeClause struct {
	Field string
	GTE   any
	GT    any
	LTE   any
	LT    any
}

// Range builds a range query node.
func Range(r RangeClause) Query { return Query{Kind: KindRange, Range: &r} }

// PrefixClause is the `prefix` node.
type PrefixClause struct {
	Field string
	Value string
}

// Prefix builds a prefix query node.
func Prefix(field, value string) Query {
	return Query{Kind: KindPrefix, Prefix: &PrefixClause{Field: field, Value: value}}
}

// WildcardClause is the `wildcard` node: `*` and `?` glob syntax, or a
// raw regex-reserved pattern scanned against DocumentStore.
type WildcardClause struct {
	Field string
	Value string
}

// Wildcard builds a wildcard query node.
func Wildcard(field, value string) Query {
	return Query{Kind: KindWildcard, Wildcard: &WildcardClause{Field: field, Value: value}}
}

// FuzzyClause is the `fuzzy` node. Fuzziness <= 0 means "use the spec
// default of 2", applied by evalFuzzy; Fuzzy sets it explicitly.
type FuzzyClause struct {
	Field     string
	Value     string
	Fuzziness int
}

// DefaultFuzziness is the spec's default Levenshtein tolerance.
const DefaultFuzziness = 2

// Fuzzy builds a fuzzy query node with the default fuzziness.
func Fuzzy(field, value string) Query {
	return Query{Kind: KindFuzzy, Fuzzy: &FuzzyClause{Field: field, Value: value, Fuzziness: DefaultFuzziness}}
}

// FuzzyWithDistance builds a fuzzy query node with an explicit fuzziness.
func FuzzyWithDistance(field, value string, fuzziness int) Query {
	return Query{Kind: KindFuzzy, Fuzzy: &FuzzyClause{Field: field, Value: value, Fuzziness: fuzziness}}
}

// PhraseClause is the `match_phrase`/`phrase` node.
type PhraseClause struct {
	Field string
	Value string
	Slop  int
}

// Phrase builds a phrase query node with zero slop.
func Phrase(field, value string) Query {
	return Query{Kind: KindPhrase, Phrase: &PhraseClause{Field: field, Value: value}}
}

// PhraseWithSlop builds a phrase query node with the given slop.
func PhraseWithSlop(field, value string, slop int) Query {
	return Query{Kind: KindPhrase, Phrase: &PhraseClause{Field: field, Value: value, Slop: slop}}
}

// GeoDistanceClause is the `geo_distance` node.
type GeoDistanceClause struct {
	Field      string
	Center     geo.Point
	DistanceKM float64
}

// GeoDistance builds a geo_distance query node.
func GeoDistance(field string, center geo.Point, distanceKM float64) Query {
	return Query{Kind: KindGeoDistance, GeoDistance: &GeoDistanceClause{Field: field, Center: center, DistanceKM: distanceKM}}
}

// ExistsClause is the `exists` node.
type ExistsClause struct {
	Field string
}

// Exists builds an exists query node.
func Exists(field string) Query {
	return Query{Kind: KindExists, Exists: &ExistsClause{Field: field}}
}

// BoolClause is the `bool` node.
type BoolClause struct {
	Must               []Query
	Should             []Query
	MustNot            []Query
	Filter             []Query
	MinimumShouldMatch int
}

// Bool builds a bool query node.
func Bool(b BoolClause) Query { return Query{Kind: KindBool, Bool: &b} }
