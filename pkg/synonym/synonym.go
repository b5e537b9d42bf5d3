// Package synonym implements the query-time synonym expansion table
// (spec §4.3).
package synonym

import (
	"strings"
	"sync"
)

// Map is a lowercase term -> set-of-synonym-terms lookup table. Lookups are
// exact; absence returns the empty set (no expansion).
type Map struct {
	mu    sync.RWMutex
	terms map[string]map[string]struct{}
}

// New creates an empty synonym map.
func New() *Map {
	return &Map{terms: make(map[string]map[string]struct{})}
}

// Add registers synonyms for term. Both term and each synonym are
// lowercased before storage.
func (m *Map) Add(term string, synonyms ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(term)
	set, ok := m.terms[key]
	if !ok {
		set = make(map[string]struct{})
		m.terms[key] = set
	}
	for _, syn := range synonyms {
		set[strings.ToLower(syn)] = struct{}{}
	}
}

// Get returns the set of synonyms registered for term (lowercase key). A
// nil/absent entry returns an empty, non-nil slice.
func (m *Map) Get(term string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.terms[strings.ToLower(term)]
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(set))
	for syn := range set {
		out = append(out, syn)
	}
	return out
}
