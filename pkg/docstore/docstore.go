// Package docstore implements the id -> document body store and the
// corpus statistics BM25 scoring depends on (spec §4.6, §3 "Corpus
// stats"). Grounded on the teacher's pkg/qgram/indexer.go: the same
// incrementally-maintained running sums for total document count and
// average length, updated on every put/delete rather than recomputed from
// scratch.
package docstore

import (
	"sync"

	"github.com/Inquir-search/search-engine-sub000/pkg/document"
)

// Store holds document bodies and their indexed token lengths.
type Store struct {
	mu         sync.RWMutex
	docs       map[string]document.Doc
	docLengths map[string]int

	totalLen int64
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		docs:       make(map[string]document.Doc),
		docLengths: make(map[string]int),
	}
}

// Put stores doc under id, with its indexed token length. Overwrites any
// existing entry for id (callers are expected to have already removed the
// old postings — see spec.md §3 lifecycle: add-on-existing-id deletes
// first).
func (s *Store) Put(id string, doc document.Doc, length int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.docLengths[id]; ok {
		s.totalLen -= int64(old)
	}
	s.docs[id] = doc
	s.docLengths[id] = length
	s.totalLen += int64(length)
}

// Get returns the document body for id.
func (s *Store) Get(id string) (document.Doc, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[id]
	return d, ok
}

// Delete removes id and its length accounting.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.docLengths[id]; ok {
		s.totalLen -= int64(l)
		delete(s.docLengths, id)
	}
	delete(s.docs, id)
}

// Exists reports whether id is present.
func (s *Store) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[id]
	return ok
}

// Count returns the number of stored documents.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Clear empties the store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string]document.Doc)
	s.docLengths = make(map[string]int)
	s.totalLen = 0
}

// Length returns the indexed token length recorded for id.
func (s *Store) Length(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docLengths[id]
}

// All returns every stored id. Order is unspecified.
func (s *Store) All() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.docs))
	for id := range s.docs {
		out = append(out, id)
	}
	return out
}

// CorpusStats is a snapshot of the aggregate statistics BM25 needs.
type CorpusStats struct {
	TotalDocs    int
	AvgDocLength float64
}

// Stats computes the current corpus statistics. avgDocLength's denominator
// is clamped to 1 to guard against division by zero (spec §7).
func (s *Store) Stats() CorpusStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.docs)
	denom := n
	if denom < 1 {
		denom = 1
	}
	return CorpusStats{
		TotalDocs:    n,
		AvgDocLength: float64(s.totalLen) / float64(denom),
	}
}
