package engine

import (
	"strings"
	"sync"
	"time"

	"github.com/Inquir-search/search-engine-sub000/pkg/analyzer"
	"github.com/Inquir-search/search-engine-sub000/pkg/docstore"
	"github.com/Inquir-search/search-engine-sub000/pkg/document"
	"github.com/Inquir-search/search-engine-sub000/pkg/engineerr"
	"github.com/Inquir-search/search-engine-sub000/pkg/facet"
	"github.com/Inquir-search/search-engine-sub000/pkg/index"
	"github.com/Inquir-search/search-engine-sub000/pkg/mapping"
	"github.com/Inquir-search/search-engine-sub000/pkg/postings"
	"github.com/Inquir-search/search-engine-sub000/pkg/query"
	"github.com/Inquir-search/search-engine-sub000/pkg/ranking"
	"github.com/Inquir-search/search-engine-sub000/pkg/scoring"
	"github.com/Inquir-search/search-engine-sub000/pkg/stopword"
	"github.com/Inquir-search/search-engine-sub000/pkg/synonym"
)

// namedIndex bundles one instance of every core component (spec §2
// component 11: "each named index holds one instance of components
// 1-10 plus its corpus statistics").
type namedIndex struct {
	name   string
	config Config

	mu sync.RWMutex // guards createdAt/updatedAt bookkeeping only; components lock themselves

	arena     *postings.Arena
	mappings  *mapping.Manager
	stopwords *stopword.Set
	synonyms  *synonym.Map
	analyzer  *analyzer.Analyzer
	invIndex  *index.Index
	docs      *docstore.Store
	facets    *facet.Index
	aggs      *facet.Aggregator
	scorer    *scoring.Scorer
	executor  *query.Executor
	ranker    *ranking.Pipeline

	createdAt time.Time
	updatedAt time.Time
}

func newNamedIndex(cfg Config) (*namedIndex, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	scorer, err := scoring.NewWithParams(cfg.Scorer.K1OrDefault(), cfg.Scorer.BOrDefault(), cfg.Scorer.FieldBoosts)
	if err != nil {
		return nil, err
	}

	arena := postings.NewArena()
	docs := docstore.New()
	mappings := mapping.New()
	sw := stopword.NewEnglish()
	syn := synonym.New()
	an := analyzer.New(sw)
	inv := index.New(cfg.indexConfig())
	fac := facet.New(cfg.facetFieldUnion(), arena)
	aggs := facet.NewAggregator(arena, docs)

	executor := query.New(inv, docs, mappings, an, syn, arena)
	ranker := ranking.New(scorer, inv, docs)

	now := time.Now()
	return &namedIndex{
		name:      cfg.IndexName,
		config:    cfg,
		arena:     arena,
		mappings:  mappings,
		stopwords: sw,
		synonyms:  syn,
		analyzer:  an,
		invIndex:  inv,
		docs:      docs,
		facets:    fac,
		aggs:      aggs,
		scorer:    scorer,
		executor:  executor,
		ranker:    ranker,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// K1OrDefault and BOrDefault apply the spec defaults when a ScorerConfig
// is left at its zero value (k1==0 and b==0 are not otherwise valid BM25
// tunings a caller would intentionally choose).
func (s ScorerConfig) K1OrDefault() float64 {
	if s.K1 == 0 {
		return scoring.DefaultK1
	}
	return s.K1
}

func (s ScorerConfig) BOrDefault() float64 {
	if s.B == 0 {
		return scoring.DefaultB
	}
	return s.B
}

// analyzerModeForType picks the token-emitting analyzer mode for a
// field's declared type, per spec §4.11 step 4: keyword fields still use
// the standard analyzer "for text-searchability by design"; email/url/
// phone use their own analyzers; numeric/bool/date/geo_point/object are
// not token-indexed at all.
func analyzerModeForType(t mapping.Type) (mode analyzer.Mode, tokenized bool) {
	switch t {
	case mapping.TypeEmail:
		return analyzer.Email, true
	case mapping.TypeURL:
		return analyzer.URL, true
	case mapping.TypePhone:
		return analyzer.Phone, true
	case mapping.TypeText, mapping.TypeKeyword:
		return analyzer.Standard, true
	default:
		return "", false
	}
}

// add runs the spec §4.11 ingest pipeline for one document against this
// named index. The number of tokens indexed is stored as the document's
// length in the docstore.
func (ni *namedIndex) add(doc document.Doc) error {
	id, ok := document.ID(doc)
	if !ok {
		return engineerr.NewValidationError("document missing required id field")
	}

	if ni.docs.Exists(id) {
		ni.delete(id)
	}

	if ni.config.AutoMap {
		ni.mappings.AutoMap(doc)
	} else if ni.config.AutoExtend {
		ni.mappings.AutoExtend(doc)
	}

	if err := ni.mappings.Validate(doc); err != nil {
		return err
	}

	length := 0
	for _, leaf := range document.Flatten(withoutID(doc)) {
		field, ok := ni.mappings.Get(leaf.Path)
		if !ok {
			continue
		}
		mode, tokenized := analyzerModeForType(field.Type)
		if !tokenized {
			continue
		}
		text, ok := leaf.Value.(string)
		if !ok {
			continue
		}
		tokens := ni.analyzer.Tokenize(text, mode)
		for _, tok := range tokens {
			key := leaf.Path + ":" + tok.Term
			ni.invIndex.AddToken(key, id, tok.Position)
		}
		length += len(tokens)
	}

	ni.docs.Put(id, document.Clone(doc), length)
	ni.arena.GetOrAssign(id)
	ni.facets.Add(id, doc)

	if ni.config.Stopwords.Threshold > 0 {
		ni.stopwords.AutoDetect(ni.termDocFreqs(), ni.docs.Count(), ni.config.Stopwords.Threshold)
	}

	ni.mu.Lock()
	ni.updatedAt = time.Now()
	ni.mu.Unlock()

	return nil
}

// termDocFreqs builds bare term -> document-frequency straight from the
// inverted index (spec §4.2 "observed document frequency"), so a term
// repeated many times within one document never inflates its count. The
// per-field counts of a term are summed, so a document holding the term
// in two fields counts twice.
func (ni *namedIndex) termDocFreqs() map[string]int {
	keys := ni.invIndex.GetAllTokens()
	out := make(map[string]int, len(keys))
	for _, key := range keys {
		out[key[strings.IndexByte(key, ':')+1:]] += ni.invIndex.DocFreq(key)
	}
	return out
}

func (ni *namedIndex) delete(id string) {
	if !ni.docs.Exists(id) {
		return
	}
	ni.invIndex.DeleteDocument(id)
	ni.docs.Delete(id)
	ni.facets.Remove(id)
	ni.arena.Remove(id)

	ni.mu.Lock()
	ni.updatedAt = time.Now()
	ni.mu.Unlock()
}

func withoutID(doc document.Doc) document.Doc {
	if _, ok := doc["id"]; !ok {
		return doc
	}
	out := make(document.Doc, len(doc)-1)
	for k, v := range doc {
		if k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}

// allDocSet returns the ordinal set of every document currently stored.
func (ni *namedIndex) allDocSet() *postings.Set {
	s := postings.NewSet()
	for _, id := range ni.docs.All() {
		s.Add(ni.arena.GetOrAssign(id))
	}
	return s
}

// textFields returns every field mapped as TypeText, used to rewrite a
// bare-string query into a bool-of-matches (spec §4.11 step 2).
func (ni *namedIndex) textFields() []string {
	var out []string
	for _, f := range ni.mappings.Fields() {
		field, ok := ni.mappings.Get(f)
		if ok && field.Type == mapping.TypeText {
			out = append(out, f)
		}
	}
	return out
}

