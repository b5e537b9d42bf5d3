package query

import (
	"github.com/Inquir-search/search-engine-sub000/pkg/analyzer"
	"github.com/Inquir-search/search-engine-sub000/pkg/docstore"
	"github.com/Inquir-search/search-engine-sub000/pkg/document"
	"github.com/Inquir-search/search-engine-sub000/pkg/index"
	"github.com/Inquir-search/search-engine-sub000/pkg/mapping"
	"github.com/Inquir-search/search-engine-sub000/pkg/postings"
	"github.com/Inquir-search/search-engine-sub000/pkg/stopword"
	"github.com/Inquir-search/search-engine-sub000/pkg/synonym"
)

// newTestExecutor builds a bare Executor over fresh, empty collaborators,
// for tests that exercise one query node at a time without the full
// ingest pipeline.
func newTestExecutor() *Executor {
	return New(
		index.New(index.DefaultConfig()),
		docstore.New(),
		mapping.New(),
		analyzer.New(stopword.NewEnglish()),
		synonym.New(),
		postings.NewArena(),
	)
}

// indexText tokenizes text with the standard analyzer and records it in
// the inverted index under field, for docID.
func indexText(e *Executor, docID, field, text string) {
	for _, tok := range e.Analyzer.Tokenize(text, analyzer.Standard) {
		e.Index.AddToken(field+":"+tok.Term, docID, tok.Position)
	}
}

// putDoc records doc's body in the document store and assigns it an
// arena ordinal, for nodes that scan DocumentStore directly (range,
// geo_distance, exists, wildcard-as-regex-scan).
func putDoc(e *Executor, id string, doc document.Doc) {
	e.Docs.Put(id, doc, 0)
	e.Arena.GetOrAssign(id)
}
