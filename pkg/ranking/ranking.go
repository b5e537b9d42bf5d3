// Package ranking implements the RankingPipeline (spec §4.10): extract
// query tokens, score candidates, sort, and paginate. Grounded on the
// teacher's pkg/qgram/scorer.go Search pipeline shape (parse -> candidates
// -> verify -> score -> sort -> limit), trimmed to the spec's simpler
// token-sum ranking with no coverage/proximity multipliers.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Inquir-search/search-engine-sub000/pkg/analyzer"
	"github.com/Inquir-search/search-engine-sub000/pkg/document"
	"github.com/Inquir-search/search-engine-sub000/pkg/query"
)

// Scored is one ranked document id.
type Scored struct {
	DocID string
	Score float64
}

// TermStats supplies the per-(field,term) corpus statistics a Scorer
// needs: document frequency and this document's term frequency (document
// length comes from DocLengther). Satisfied by the engine's index.
type TermStats interface {
	DocFreq(key string) int
	TermFrequency(key, docID string) int
}

// Scorer computes a BM25-shaped score for one (field, term, docID)
// occurrence, given this document's length and the corpus average.
type Scorer interface {
	Score(field string, tf, df, totalDocs, docLen int, avgDocLength float64) float64
}

// CorpusStats is the subset of docstore.CorpusStats ranking needs.
type CorpusStats struct {
	TotalDocs    int
	AvgDocLength float64
}

// DocLengther returns a document's indexed token length.
type DocLengther interface {
	Length(id string) int
}

// ExtractQueryTokens recursively collects the string values carried by
// match/term/prefix/wildcard/phrase/match_phrase nodes in q (spec
// §4.10). Bare-string queries go through ExtractQueryTokensFromString.
func ExtractQueryTokens(q query.Query) []string {
	var out []string
	collectTokens(q, &out)
	return out
}

// ExtractQueryTokensFromString tokenizes a bare string query with the
// standard analyzer, per spec §4.10.
func ExtractQueryTokensFromString(s string, an *analyzer.Analyzer) []string {
	tokens := an.Tokenize(s, analyzer.Standard)
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Term
	}
	return out
}

func collectTokens(q query.Query, out *[]string) {
	switch q.Kind {
	case query.KindMatch:
		if q.Match != nil {
			appendWords(out, q.Match.Value)
		}
	case query.KindTerm:
		if q.Term != nil {
			appendWords(out, q.Term.Value)
		}
	case query.KindPrefix:
		if q.Prefix != nil {
			appendWords(out, q.Prefix.Value)
		}
	case query.KindWildcard:
		if q.Wildcard != nil {
			appendWords(out, q.Wildcard.Value)
		}
	case query.KindPhrase:
		if q.Phrase != nil {
			appendWords(out, q.Phrase.Value)
		}
	case query.KindBool:
		if q.Bool != nil {
			for _, child := range q.Bool.Must {
				collectTokens(child, out)
			}
			for _, child := range q.Bool.Should {
				collectTokens(child, out)
			}
			for _, child := range q.Bool.Filter {
				collectTokens(child, out)
			}
			for _, child := range q.Bool.MustNot {
				collectTokens(child, out)
			}
		}
	}
}

func appendWords(out *[]string, value string) {
	for _, w := range strings.Fields(strings.ToLower(value)) {
		*out = append(*out, w)
	}
}

// TokenField pairs a token with the field it came from so Rank can look
// up the right composite posting key. Extracted independently
// of ExtractQueryTokens because the spec's token list is field-agnostic
// text, but BM25 scoring is inherently per-field.
type TokenField struct {
	Field string
	Term  string
}

// ExtractFieldTokens is like ExtractQueryTokens but retains each token's
// source field, which Rank needs to look up per-field document
// frequency and term frequency. Unlike ExtractQueryTokens it skips
// must_not clauses and keeps term/prefix/wildcard values whole instead
// of splitting them into words.
func ExtractFieldTokens(q query.Query) []TokenField {
	var out []TokenField
	collectFieldTokens(q, &out)
	return out
}

func collectFieldTokens(q query.Query, out *[]TokenField) {
	switch q.Kind {
	case query.KindMatch:
		if q.Match != nil {
			for _, w := range strings.Fields(strings.ToLower(q.Match.Value)) {
				*out = append(*out, TokenField{Field: q.Match.Field, Term: w})
			}
		}
	case query.KindTerm:
		if q.Term != nil {
			*out = append(*out, TokenField{Field: q.Term.Field, Term: strings.ToLower(q.Term.Value)})
		}
	case query.KindPrefix:
		if q.Prefix != nil {
			*out = append(*out, TokenField{Field: q.Prefix.Field, Term: strings.ToLower(q.Prefix.Value)})
		}
	case query.KindWildcard:
		if q.Wildcard != nil {
			*out = append(*out, TokenField{Field: q.Wildcard.Field, Term: strings.ToLower(q.Wildcard.Value)})
		}
	case query.KindPhrase:
		if q.Phrase != nil {
			for _, w := range strings.Fields(strings.ToLower(q.Phrase.Value)) {
				*out = append(*out, TokenField{Field: q.Phrase.Field, Term: w})
			}
		}
	case query.KindBool:
		if q.Bool != nil {
			for _, child := range q.Bool.Must {
				collectFieldTokens(child, out)
			}
			for _, child := range q.Bool.Should {
				collectFieldTokens(child, out)
			}
			for _, child := range q.Bool.Filter {
				collectFieldTokens(child, out)
			}
		}
	}
}

// Pipeline wires a Scorer, index stats, and doc lengths into Rank.
type Pipeline struct {
	Scorer Scorer
	Stats  TermStats
	Docs   DocLengther
}

// New builds a ranking Pipeline over the given collaborators.
func New(scorer Scorer, stats TermStats, docs DocLengther) *Pipeline {
	return &Pipeline{Scorer: scorer, Stats: stats, Docs: docs}
}

// Rank scores every candidate doc id against tokens, sums per-token
// scores, and sorts descending, stable for ties (spec §4.10). If every
// score comes out zero and tokens is non-empty, it falls back to a
// simple term-frequency count over a serialized view of the document so
// boolean-matched documents never all collapse to a flat zero ranking.
func (p *Pipeline) Rank(candidateIDs []string, tokens []TokenField, corpus CorpusStats, bodies map[string]document.Doc) []Scored {
	out := make([]Scored, len(candidateIDs))
	allZero := true
	for i, id := range candidateIDs {
		score := 0.0
		for _, tok := range tokens {
			key := tok.Field + ":" + tok.Term
			tf := p.Stats.TermFrequency(key, id)
			if tf == 0 {
				continue
			}
			df := p.Stats.DocFreq(key)
			dl := p.Docs.Length(id)
			score += p.Scorer.Score(tok.Field, tf, df, corpus.TotalDocs, dl, corpus.AvgDocLength)
		}
		if score != 0 {
			allZero = false
		}
		out[i] = Scored{DocID: id, Score: score}
	}

	if allZero && len(tokens) > 0 {
		for i := range out {
			out[i].Score = float64(fallbackScore(out[i].DocID, tokens, bodies))
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// fallbackScore counts term occurrences across a serialized view of the
// document body, clamped to at least 1 (spec §4.10 fallback scoring).
func fallbackScore(docID string, tokens []TokenField, bodies map[string]document.Doc) int {
	doc, ok := bodies[docID]
	if !ok {
		return 1
	}
	serialized := strings.ToLower(serializeDoc(doc))
	count := 0
	for _, tok := range tokens {
		count += strings.Count(serialized, tok.Term)
	}
	if count < 1 {
		return 1
	}
	return count
}

func serializeDoc(doc document.Doc) string {
	var b strings.Builder
	for _, leaf := range document.Flatten(doc) {
		fmt.Fprintf(&b, "%v ", leaf.Value)
	}
	return b.String()
}

// Paginate slices ranked[from:from+size]. A non-positive size, or a from
// beyond the slice, returns an empty (non-nil) slice.
func Paginate(ranked []Scored, from, size int) []Scored {
	if size <= 0 {
		return []Scored{}
	}
	if from < 0 {
		from = 0
	}
	if from >= len(ranked) {
		return []Scored{}
	}
	end := from + size
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[from:end]
}
