// Package stopword implements a case-insensitive stopword set with
// document-frequency-based auto-detection (spec §4.2).
package stopword

import (
	"strings"
	"sync"

	"github.com/orsinium-labs/stopwords"
)

// Set is a case-insensitive collection of stopwords. It layers a mutable
// overlay (added/removed terms) on top of an optional baseline language
// list, so Contains treats a term added with Add exactly like a baseline
// term, and Remove hides either kind: after NewEnglish().Remove("the"),
// Contains("the") is false, just as on New().
type Set struct {
	mu      sync.RWMutex
	base    stopwords.Stopwords
	extra   map[string]struct{}
	removed map[string]struct{}
}

// New creates an empty stopword set with no baseline language list.
func New() *Set {
	return &Set{
		extra:   make(map[string]struct{}),
		removed: make(map[string]struct{}),
	}
}

// NewEnglish creates a stopword set seeded with the English baseline list.
func NewEnglish() *Set {
	s := New()
	s.base = stopwords.English
	return s
}

// Contains reports whether term (case-insensitively) is a stopword.
func (s *Set) Contains(term string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t := strings.ToLower(term)
	if _, gone := s.removed[t]; gone {
		return false
	}
	if _, ok := s.extra[t]; ok {
		return true
	}
	return s.base.Contains(t)
}

// Add inserts term into the set.
func (s *Set) Add(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := strings.ToLower(term)
	delete(s.removed, t)
	s.extra[t] = struct{}{}
}

// Remove deletes term from the set, if present, including baseline terms.
func (s *Set) Remove(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := strings.ToLower(term)
	delete(s.extra, t)
	s.removed[t] = struct{}{}
}

// Len returns the number of explicitly-added stopwords (baseline-list size
// is not enumerable through the underlying library and is not counted).
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.extra)
}

// AutoDetect adds every term whose observed document frequency, divided by
// totalDocs, meets or exceeds threshold. termDocFreqs maps term -> number of
// documents it appears in, using current global counts as of the call.
func (s *Set) AutoDetect(termDocFreqs map[string]int, totalDocs int, threshold float64) {
	if totalDocs <= 0 || threshold <= 0 {
		return
	}
	for term, df := range termDocFreqs {
		if float64(df)/float64(totalDocs) >= threshold {
			s.Add(term)
		}
	}
}
