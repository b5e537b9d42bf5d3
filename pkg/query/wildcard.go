package query

import (
	"regexp"
	"strings"

	"github.com/Inquir-search/search-engine-sub000/pkg/document"
	"github.com/Inquir-search/search-engine-sub000/pkg/postings"
)

// regexReserved are the characters that, if present in a wildcard
// pattern beyond `*` and `?`, force a raw-value regex scan instead of
// glob-style token enumeration (spec §4.9).
const regexReserved = `.+()[]{}^$|\`

func hasRegexReserved(pattern string) bool {
	return strings.ContainsAny(pattern, regexReserved)
}

// evalWildcard implements spec §4.9 wildcard: glob enumeration when the
// pattern contains only `*`/`?`/literal text, else a DocumentStore scan
// with the pattern compiled to an anchored, case-insensitive regex.
func (e *Executor) evalWildcard(w WildcardClause) *postings.Set {
	if !hasRegexReserved(w.Value) {
		return e.evalWildcardGlob(w)
	}
	return e.evalWildcardScan(w)
}

// evalWildcardGlob matches one whitespace-split word of the pattern at a
// time against field's index tokens, combining per-word match sets by
// intersection (spec §4.9 tie-break: "multi-word prefix/wildcard/fuzzy
// combine per-word sets by intersection").
func (e *Executor) evalWildcardGlob(w WildcardClause) *postings.Set {
	words := strings.Fields(strings.ToLower(w.Value))
	if len(words) == 0 {
		return postings.NewSet()
	}
	sets := make([]*postings.Set, len(words))
	for i, word := range words {
		sets[i] = e.wordWildcardSet(w.Field, word)
	}
	return postings.And(sets...)
}

func (e *Executor) wordWildcardSet(field, word string) *postings.Set {
	re, err := compileGlob(word)
	if err != nil {
		return postings.NewSet()
	}
	terms := e.Index.GetFieldTokens(field)
	var sets []*postings.Set
	for _, term := range terms {
		if re.MatchString(term) {
			sets = append(sets, e.postingDocSet(e.termKey(field, term)))
		}
	}
	if len(sets) == 0 {
		return postings.NewSet()
	}
	return postings.Or(sets...)
}

func (e *Executor) evalWildcardScan(w WildcardClause) *postings.Set {
	re, err := compileGlob(w.Value)
	if err != nil {
		return postings.NewSet()
	}
	var ids []string
	for _, id := range e.Docs.All() {
		doc, ok := e.Docs.Get(id)
		if !ok {
			continue
		}
		if anyLeafMatchesRegex(doc, w.Field, re) {
			ids = append(ids, id)
		}
	}
	return e.idsToSet(ids)
}

func anyLeafMatchesRegex(doc document.Doc, field string, re *regexp.Regexp) bool {
	for _, leaf := range document.Flatten(doc) {
		if leaf.Path != field {
			continue
		}
		if s, ok := leaf.Value.(string); ok && re.MatchString(s) {
			return true
		}
	}
	return false
}

// compileGlob translates `*` -> `.*` and `?` -> `.`, escaping everything
// else, and anchors the result on both ends, case-insensitively.
func compileGlob(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?i)^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}
