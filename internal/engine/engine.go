package engine

import (
	"log"
	"sync"

	"github.com/Inquir-search/search-engine-sub000/pkg/engineerr"
)

// Engine is the SearchEngine facade (spec §4.11): it owns a set of named
// indexes and exposes lifecycle/index-management operations over them.
// No process-wide singletons live here beyond this struct itself (spec
// §9 "global state -> per-index bundle") — every algorithmic component
// belongs to exactly one namedIndex.
type Engine struct {
	mu       sync.RWMutex
	indexes  map[string]*namedIndex
	logger   *log.Logger
	shutdown bool
}

// New creates an Engine with no indexes yet declared.
func New(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(log.Writer(), "", 0)
	}
	return &Engine{indexes: make(map[string]*namedIndex), logger: logger}
}

func (e *Engine) checkAlive() error {
	if e.shutdown {
		return engineerr.NewStateError("engine is shut down")
	}
	return nil
}

// CreateIndex declares a new named index from cfg. Returns ConfigError if
// cfg's scorer parameters or shard count are invalid.
func (e *Engine) CreateIndex(cfg Config) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkAlive(); err != nil {
		return err
	}
	if cfg.IndexName == "" {
		cfg.IndexName = "default"
	}
	if _, exists := e.indexes[cfg.IndexName]; exists {
		return nil // idempotent: creating an existing index is a no-op
	}
	ni, err := newNamedIndex(cfg)
	if err != nil {
		return err
	}
	e.indexes[cfg.IndexName] = ni
	e.logger.Printf("engine: index %q created", cfg.IndexName)
	return nil
}

// EnsureIndex creates indexName with DefaultConfig if it does not yet
// exist (spec §4.11 `ensureIndex`).
func (e *Engine) EnsureIndex(indexName string) error {
	cfg := DefaultConfig()
	cfg.IndexName = indexName
	return e.CreateIndex(cfg)
}

// DeleteIndex removes a named index entirely.
func (e *Engine) DeleteIndex(indexName string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkAlive(); err != nil {
		return err
	}
	if _, ok := e.indexes[indexName]; !ok {
		return engineerr.NewNotFoundError(indexName)
	}
	delete(e.indexes, indexName)
	e.logger.Printf("engine: index %q deleted", indexName)
	return nil
}

// ListIndices returns every declared index name.
func (e *Engine) ListIndices() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, 0, len(e.indexes))
	for name := range e.indexes {
		out = append(out, name)
	}
	return out
}

func (e *Engine) get(indexName string) (*namedIndex, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if err := e.checkAlive(); err != nil {
		return nil, err
	}
	ni, ok := e.indexes[indexName]
	if !ok {
		return nil, engineerr.NewNotFoundError(indexName)
	}
	return ni, nil
}

// Add runs the ingest pipeline for doc against indexName (spec §4.11).
func (e *Engine) Add(indexName string, doc map[string]any) error {
	ni, err := e.get(indexName)
	if err != nil {
		return err
	}
	return ni.add(doc)
}

// Delete removes docID from indexName, if present.
func (e *Engine) Delete(indexName, docID string) error {
	ni, err := e.get(indexName)
	if err != nil {
		return err
	}
	ni.delete(docID)
	return nil
}

// Flush is a no-op hook for the out-of-scope persistence collaborator
// (spec §1): the core holds nothing that needs flushing on its own, but
// the facade still exposes the call so a caller's dispatcher can trigger
// a snapshot write without knowing whether one is actually pending.
func (e *Engine) Flush(indexName string) error {
	_, err := e.get(indexName)
	return err
}

// Initialize is a lifecycle no-op matching spec §4.11's operation list;
// indexes are ready to use as soon as CreateIndex/EnsureIndex returns.
func (e *Engine) Initialize() error {
	return e.checkAlive()
}

// Clean removes every named index, returning the engine to its freshly
// constructed state.
func (e *Engine) Clean() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkAlive(); err != nil {
		return err
	}
	e.indexes = make(map[string]*namedIndex)
	return nil
}

// Shutdown marks the engine as stopped; every subsequent operation that
// returns an error raises StateError (spec §7). ListIndices still answers.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shutdown = true
	return nil
}

// GetStats returns index-level statistics (spec §4.11 `getStats`).
type Stats struct {
	IndexName    string
	TotalDocs    int
	AvgDocLength float64
	FieldCount   int
}

// GetStats reports indexName's corpus statistics.
func (e *Engine) GetStats(indexName string) (Stats, error) {
	ni, err := e.get(indexName)
	if err != nil {
		return Stats{}, err
	}
	cs := ni.docs.Stats()
	return Stats{
		IndexName:    indexName,
		TotalDocs:    cs.TotalDocs,
		AvgDocLength: cs.AvgDocLength,
		FieldCount:   len(ni.mappings.Fields()),
	}, nil
}

// GetFacets computes facet counts over every document currently in
// indexName (an unfiltered facet call; Search computes facets scoped to
// a query's candidate set).
func (e *Engine) GetFacets(indexName string) (map[string]map[string]int, error) {
	ni, err := e.get(indexName)
	if err != nil {
		return nil, err
	}
	return ni.facets.Facets(ni.allDocSet()), nil
}
