package index

import "sync"

// shard holds postings for the subset of documents whose id hashes to it
// (spec §4.5). Each shard guards its own postings map so readers of other
// shards are never blocked by a mutation here.
type shard struct {
	mu       sync.RWMutex
	postings map[string]map[string]*postingEntry // compositeKey -> docID -> entry
	docKeys  map[string]map[string]struct{}      // docID -> set of compositeKeys held here
}

func newShard() *shard {
	return &shard{
		postings: make(map[string]map[string]*postingEntry),
		docKeys:  make(map[string]map[string]struct{}),
	}
}

func (s *shard) addToken(key, docID string, position int32, threshold int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byDoc, ok := s.postings[key]
	if !ok {
		byDoc = make(map[string]*postingEntry)
		s.postings[key] = byDoc
	}
	entry, ok := byDoc[docID]
	if !ok {
		entry = newPostingEntry()
		byDoc[docID] = entry
	}
	entry.addPosition(position, threshold)

	keys, ok := s.docKeys[docID]
	if !ok {
		keys = make(map[string]struct{})
		s.docKeys[docID] = keys
	}
	keys[key] = struct{}{}
}

func (s *shard) getPosting(key string) map[string]postingSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byDoc, ok := s.postings[key]
	if !ok {
		return nil
	}
	out := make(map[string]postingSnapshot, len(byDoc))
	for docID, e := range byDoc {
		out[docID] = postingSnapshot{TF: e.frequency(), Positions: e.decode()}
	}
	return out
}

func (s *shard) termFrequency(key, docID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byDoc, ok := s.postings[key]
	if !ok {
		return 0
	}
	e, ok := byDoc[docID]
	if !ok {
		return 0
	}
	return e.frequency()
}

func (s *shard) getPositions(key, docID string) []int32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byDoc, ok := s.postings[key]
	if !ok {
		return nil
	}
	e, ok := byDoc[docID]
	if !ok {
		return nil
	}
	return e.decode()
}

func (s *shard) docFreq(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.postings[key])
}

func (s *shard) deleteDocument(docID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys, ok := s.docKeys[docID]
	if !ok {
		return
	}
	for key := range keys {
		byDoc := s.postings[key]
		delete(byDoc, docID)
		if len(byDoc) == 0 {
			delete(s.postings, key)
		}
	}
	delete(s.docKeys, docID)
}

func (s *shard) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postings = make(map[string]map[string]*postingEntry)
	s.docKeys = make(map[string]map[string]struct{})
}

func (s *shard) allKeys(out map[string]struct{}) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for key := range s.postings {
		out[key] = struct{}{}
	}
}

func (s *shard) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docKeys)
}

// postingSnapshot is the caller-facing view of a posting entry.
type postingSnapshot struct {
	TF        int
	Positions []int32
}
