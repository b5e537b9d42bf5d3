package query

import (
	"strings"

	"github.com/Inquir-search/search-engine-sub000/pkg/postings"
)

// evalPrefix implements spec §4.9 prefix: enumerate index tokens for
// field whose term begins with each whitespace-split word of value,
// AND across words.
func (e *Executor) evalPrefix(p PrefixClause) *postings.Set {
	words := strings.Fields(strings.ToLower(p.Value))
	if len(words) == 0 {
		return postings.NewSet()
	}
	sets := make([]*postings.Set, len(words))
	for i, w := range words {
		sets[i] = e.wordPrefixSet(p.Field, w)
	}
	return postings.And(sets...)
}

func (e *Executor) wordPrefixSet(field, word string) *postings.Set {
	terms := e.Index.TermsWithPrefix(field, word)
	if len(terms) == 0 {
		return postings.NewSet()
	}
	sets := make([]*postings.Set, len(terms))
	for i, term := range terms {
		sets[i] = e.postingDocSet(e.termKey(field, term))
	}
	return postings.Or(sets...)
}
