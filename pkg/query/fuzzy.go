package query

import (
	"strings"

	"github.com/Inquir-search/search-engine-sub000/pkg/postings"
	"github.com/agnivade/levenshtein"
)

// evalFuzzy implements spec §4.9 fuzzy: enumerate field's index tokens,
// including any whose Levenshtein distance to a lowercased word of value
// is <= fuzziness. Multi-word values are split on whitespace and
// combined by intersection, one word's match set per word (spec §4.9
// tie-break: "multi-word prefix/wildcard/fuzzy combine per-word sets by
// intersection").
func (e *Executor) evalFuzzy(f FuzzyClause) *postings.Set {
	fuzziness := f.Fuzziness
	if fuzziness <= 0 {
		fuzziness = DefaultFuzziness
	}
	words := strings.Fields(strings.ToLower(f.Value))
	if len(words) == 0 {
		return postings.NewSet()
	}
	sets := make([]*postings.Set, len(words))
	for i, w := range words {
		sets[i] = e.wordFuzzySet(f.Field, w, fuzziness)
	}
	return postings.And(sets...)
}

func (e *Executor) wordFuzzySet(field, word string, fuzziness int) *postings.Set {
	terms := e.Index.GetFieldTokens(field)
	var sets []*postings.Set
	for _, term := range terms {
		if levenshtein.ComputeDistance(term, word) <= fuzziness {
			sets = append(sets, e.postingDocSet(e.termKey(field, term)))
		}
	}
	if len(sets) == 0 {
		return postings.NewSet()
	}
	return postings.Or(sets...)
}
