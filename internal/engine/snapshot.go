package engine

import (
	"github.com/Inquir-search/search-engine-sub000/pkg/document"
	"github.com/Inquir-search/search-engine-sub000/pkg/mapping"
)

// FieldMappingSnapshot is the persisted shape of one field's mapping.
type FieldMappingSnapshot struct {
	Type     string  `json:"type"`
	Analyzer string  `json:"analyzer,omitempty"`
	Boost    float64 `json:"boost,omitempty"`
}

// PostingSnapshot is the persisted shape of one document's entry in a
// posting, matching spec §6's `{frequency, positions[]}`.
type PostingSnapshot struct {
	Frequency int     `json:"frequency"`
	Positions []int32 `json:"positions"`
}

// Snapshot is the engine-agnostic persistence contract of spec §6. It is
// a plain JSON-serializable struct; the persistence collaborator that
// actually writes it to disk is out of scope (spec §1).
type Snapshot struct {
	IndexName     string                                `json:"indexName"`
	Documents     map[string]document.Doc               `json:"documents"`
	DocLengths    map[string]int                        `json:"docLengths"`
	TotalDocs     int                                    `json:"totalDocs"`
	AvgDocLength  float64                                `json:"avgDocLength"`
	Mappings      map[string]FieldMappingSnapshot        `json:"mappings"`
	InvertedIndex map[string]map[string]PostingSnapshot  `json:"invertedIndex"`
	FacetFields   []string                               `json:"facetFields"`
}

// Snapshot dumps indexName's full engine-agnostic state (spec §6).
func (e *Engine) Snapshot(indexName string) (Snapshot, error) {
	ni, err := e.get(indexName)
	if err != nil {
		return Snapshot{}, err
	}

	docIDs := ni.docs.All()
	documents := make(map[string]document.Doc, len(docIDs))
	docLengths := make(map[string]int, len(docIDs))
	for _, id := range docIDs {
		doc, ok := ni.docs.Get(id)
		if !ok {
			continue
		}
		documents[id] = doc
		docLengths[id] = ni.docs.Length(id)
	}

	mappings := make(map[string]FieldMappingSnapshot)
	for _, field := range ni.mappings.Fields() {
		f, ok := ni.mappings.Get(field)
		if !ok {
			continue
		}
		mappings[field] = FieldMappingSnapshot{Type: string(f.Type), Analyzer: f.Analyzer, Boost: f.Boost}
	}

	invIndex := make(map[string]map[string]PostingSnapshot)
	for _, key := range ni.invIndex.GetAllTokens() {
		posting := ni.invIndex.GetPosting(key)
		byDoc := make(map[string]PostingSnapshot, len(posting))
		for docID, p := range posting {
			byDoc[docID] = PostingSnapshot{Frequency: p.TF, Positions: p.Positions}
		}
		invIndex[key] = byDoc
	}

	stats := ni.docs.Stats()
	return Snapshot{
		IndexName:     ni.name,
		Documents:     documents,
		DocLengths:    docLengths,
		TotalDocs:     stats.TotalDocs,
		AvgDocLength:  stats.AvgDocLength,
		Mappings:      mappings,
		InvertedIndex: invIndex,
		FacetFields:   ni.facets.Fields(),
	}, nil
}

// LoadSnapshot reconstructs a named index from snap: shard assignments
// are recomputed as a pure function of each docID (spec §5 "shard
// function purity"), and facet indexes are rebuilt from the restored
// documents rather than persisted directly, per spec §6 ("on load,
// engine reconstructs ... facet indexes from the restored documents").
func (e *Engine) LoadSnapshot(snap Snapshot) error {
	e.mu.Lock()
	if err := e.checkAlive(); err != nil {
		e.mu.Unlock()
		return err
	}
	e.mu.Unlock()

	cfg := DefaultConfig()
	cfg.IndexName = snap.IndexName
	cfg.FacetFields = snap.FacetFields

	ni, err := newNamedIndex(cfg)
	if err != nil {
		return err
	}

	for field, fm := range snap.Mappings {
		ni.mappings.Set(field, mapping.Field{Type: mapping.Type(fm.Type), Analyzer: fm.Analyzer, Boost: fm.Boost})
	}

	for id, doc := range snap.Documents {
		length := snap.DocLengths[id]
		ni.docs.Put(id, document.Clone(doc), length)
		ni.arena.GetOrAssign(id)
		ni.facets.Add(id, doc)
	}

	for key, byDoc := range snap.InvertedIndex {
		for docID, p := range byDoc {
			for _, pos := range p.Positions {
				ni.invIndex.AddToken(key, docID, int(pos))
			}
		}
	}

	e.mu.Lock()
	e.indexes[snap.IndexName] = ni
	e.mu.Unlock()
	return nil
}
