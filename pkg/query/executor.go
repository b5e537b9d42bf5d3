package query

import (
	"strings"

	"github.com/Inquir-search/search-engine-sub000/pkg/analyzer"
	"github.com/Inquir-search/search-engine-sub000/pkg/docstore"
	"github.com/Inquir-search/search-engine-sub000/pkg/document"
	"github.com/Inquir-search/search-engine-sub000/pkg/index"
	"github.com/Inquir-search/search-engine-sub000/pkg/mapping"
	"github.com/Inquir-search/search-engine-sub000/pkg/postings"
	"github.com/Inquir-search/search-engine-sub000/pkg/synonym"
)

// Executor evaluates a Query tree against an index, a document store, and
// a schema, producing a set of matching document ids (spec §4.9). It
// never raises: unknown node kinds and malformed clauses degrade to the
// empty set.
type Executor struct {
	Index    *index.Index
	Docs     *docstore.Store
	Mappings *mapping.Manager
	Analyzer *analyzer.Analyzer
	Synonyms *synonym.Map
	Arena    *postings.Arena
}

// New builds an Executor over the given collaborators.
func New(idx *index.Index, docs *docstore.Store, mappings *mapping.Manager, an *analyzer.Analyzer, syn *synonym.Map, arena *postings.Arena) *Executor {
	return &Executor{Index: idx, Docs: docs, Mappings: mappings, Analyzer: an, Synonyms: syn, Arena: arena}
}

// Execute evaluates q and returns the matching document id set as plain
// strings (the ordinal-backed postings.Set is an internal optimization
// for boolean set algebra, not part of the public contract).
func (e *Executor) Execute(q Query) []string {
	return e.setToIDs(e.eval(q))
}

func (e *Executor) eval(q Query) *postings.Set {
	switch q.Kind {
	case KindMatchAll:
		return e.allDocSet()
	case KindMatch:
		if q.Match == nil || q.Match.Field == "" {
			return postings.NewSet()
		}
		return e.evalMatch(*q.Match)
	case KindTerm:
		if q.Term == nil || q.Term.Field == "" {
			return postings.NewSet()
		}
		return e.evalTerm(*q.Term)
	case KindRange:
		if q.Range == nil || q.Range.Field == "" {
			return postings.NewSet()
		}
		return e.evalRange(*q.Range)
	case KindPrefix:
		if q.Prefix == nil || q.Prefix.Field == "" {
			return postings.NewSet()
		}
		return e.evalPrefix(*q.Prefix)
	case KindWildcard:
		if q.Wildcard == nil || q.Wildcard.Field == "" {
			return postings.NewSet()
		}
		return e.evalWildcard(*q.Wildcard)
	case KindFuzzy:
		if q.Fuzzy == nil || q.Fuzzy.Field == "" {
			return postings.NewSet()
		}
		return e.evalFuzzy(*q.Fuzzy)
	case KindPhrase:
		if q.Phrase == nil || q.Phrase.Field == "" {
			return postings.NewSet()
		}
		return e.evalPhrase(*q.Phrase)
	case KindGeoDistance:
		if q.GeoDistance == nil || q.GeoDistance.Field == "" {
			return postings.NewSet()
		}
		return e.evalGeoDistance(*q.GeoDistance)
	case KindExists:
		if q.Exists == nil || q.Exists.Field == "" {
			return postings.NewSet()
		}
		return e.evalExists(*q.Exists)
	case KindBool:
		if q.Bool == nil {
			return postings.NewSet()
		}
		return e.evalBool(*q.Bool)
	default:
		return postings.NewSet()
	}
}

func (e *Executor) allDocSet() *postings.Set {
	return e.idsToSet(e.Docs.All())
}

func (e *Executor) idsToSet(ids []string) *postings.Set {
	ords := make([]uint32, 0, len(ids))
	for _, id := range ids {
		ords = append(ords, e.Arena.GetOrAssign(id))
	}
	return postings.NewSetFromSlice(ords)
}

func (e *Executor) setToIDs(s *postings.Set) []string {
	ords := s.ToSlice()
	out := make([]string, 0, len(ords))
	for _, ord := range ords {
		if id, ok := e.Arena.ID(ord); ok {
			out = append(out, id)
		}
	}
	return out
}

// analyzerModeFor picks the tokenizer mode for field based on its
// declared mapping, per spec §4.11: keyword fields are still tokenized
// with the standard analyzer "for text-searchability by design".
func (e *Executor) analyzerModeFor(field string) analyzer.Mode {
	if e.Mappings == nil {
		return analyzer.Standard
	}
	f, ok := e.Mappings.Get(field)
	if !ok {
		return analyzer.Standard
	}
	switch f.Type {
	case mapping.TypeEmail:
		return analyzer.Email
	case mapping.TypeURL:
		return analyzer.URL
	case mapping.TypePhone:
		return analyzer.Phone
	default:
		return analyzer.Standard
	}
}

// isKeyword reports whether field is mapped as keyword, for term-node
// exact-value (non-lowercased) lookup.
func (e *Executor) isKeyword(field string) bool {
	if e.Mappings == nil {
		return false
	}
	f, ok := e.Mappings.Get(field)
	return ok && f.Type == mapping.TypeKeyword
}

func (e *Executor) termKey(field, term string) string {
	return field + ":" + term
}

// postingDocSet returns the set of doc ids holding key in the index.
func (e *Executor) postingDocSet(key string) *postings.Set {
	posting := e.Index.GetPosting(key)
	if len(posting) == 0 {
		return postings.NewSet()
	}
	ids := make([]string, 0, len(posting))
	for docID := range posting {
		ids = append(ids, docID)
	}
	return e.idsToSet(ids)
}

func (e *Executor) evalMatch(m MatchClause) *postings.Set {
	mode := e.analyzerModeFor(m.Field)
	tokens := e.Analyzer.Tokenize(m.Value, mode)
	if len(tokens) == 0 {
		// "Empty tokens after stop-word filtering -> matches all docIds."
		return e.allDocSet()
	}

	perToken := make([]*postings.Set, len(tokens))
	for i, tok := range tokens {
		perToken[i] = e.tokenDocSetWithSynonyms(m.Field, tok.Term)
	}

	if len(perToken) == 1 {
		return perToken[0]
	}
	if strings.EqualFold(m.Operator, "or") {
		return postings.Or(perToken...)
	}
	return postings.And(perToken...)
}

func (e *Executor) tokenDocSetWithSynonyms(field, term string) *postings.Set {
	sets := []*postings.Set{e.postingDocSet(e.termKey(field, term))}
	if e.Synonyms != nil {
		for _, syn := range e.Synonyms.Get(term) {
			sets = append(sets, e.postingDocSet(e.termKey(field, syn)))
		}
	}
	if len(sets) == 1 {
		return sets[0]
	}
	return postings.Or(sets...)
}

func (e *Executor) evalTerm(t TermClause) *postings.Set {
	value := t.Value
	if !e.isKeyword(t.Field) {
		value = strings.ToLower(value)
	}
	return e.postingDocSet(e.termKey(t.Field, value))
}

func (e *Executor) evalExists(ex ExistsClause) *postings.Set {
	var ids []string
	for _, id := range e.Docs.All() {
		doc, ok := e.Docs.Get(id)
		if !ok {
			continue
		}
		if fieldExists(doc, ex.Field) {
			ids = append(ids, id)
		}
	}
	return e.idsToSet(ids)
}

func fieldExists(doc document.Doc, field string) bool {
	for _, leaf := range document.Flatten(doc) {
		if leaf.Path == field {
			return true
		}
	}
	return false
}
