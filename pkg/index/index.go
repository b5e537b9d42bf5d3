// Package index implements the sharded inverted index (spec §4.5): a
// composite field:term key mapping to per-document term frequency and
// position lists, spread across N shards keyed by a pure hash of the
// document id so concurrent readers of unrelated shards never contend.
// Grounded on the teacher's pkg/qgram/indexer.go (QGramIndex's
// GramPostings/Documents bookkeeping, generalized from character q-grams
// to whole tokens) and pkg/qgram/compressed_postings.go's DocIDMapper
// shape, which pkg/postings.Arena already reimplements for set algebra;
// this package owns position-level bookkeeping instead.
package index

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Config controls shard count and position-compression threshold.
type Config struct {
	NumShards         int
	PositionThreshold int
}

// DefaultConfig returns the spec's defaults: 8 shards, threshold 32.
func DefaultConfig() Config {
	return Config{NumShards: 8, PositionThreshold: DefaultPositionThreshold}
}

// Posting is the caller-facing view of one document's entry for a key.
type Posting struct {
	TF        int
	Positions []int32
}

// Index is the sharded inverted index.
type Index struct {
	mu        sync.RWMutex // guards the shards slice itself, swapped whole by Rebalance
	shards    []*shard
	numShards int
	threshold int

	termMu        sync.RWMutex
	fieldTerms    map[string][]string        // field -> sorted term list
	termSet       map[string]map[string]bool // field -> term -> present
	lastRebalance time.Time
}

// New builds an Index from cfg, applying the spec's defaults for any
// zero-valued field (NumShards<1 becomes 1, the single-shard fast path;
// PositionThreshold<=0 becomes DefaultPositionThreshold).
func New(cfg Config) *Index {
	n := cfg.NumShards
	if n < 1 {
		n = 1
	}
	th := cfg.PositionThreshold
	if th <= 0 {
		th = DefaultPositionThreshold
	}
	shards := make([]*shard, n)
	for i := range shards {
		shards[i] = newShard()
	}
	return &Index{
		shards:     shards,
		numShards:  n,
		threshold:  th,
		fieldTerms: make(map[string][]string),
		termSet:    make(map[string]map[string]bool),
	}
}

func (idx *Index) shardFor(docID string) *shard {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if idx.numShards == 1 {
		return idx.shards[0]
	}
	return idx.shards[stringHash(docID)%uint32(idx.numShards)]
}

func (idx *Index) snapshotShards() []*shard {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]*shard, len(idx.shards))
	copy(out, idx.shards)
	return out
}

func splitKey(key string) (field, term string) {
	i := strings.IndexByte(key, ':')
	if i < 0 {
		return "", key
	}
	return key[:i], key[i+1:]
}

// AddToken records one occurrence of key (a composite "field:term") at
// position in docID. A repeated position for the same (key, docID) is a
// no-op (spec §4.5 failure modes: no partial writes).
func (idx *Index) AddToken(key, docID string, position int) {
	idx.shardFor(docID).addToken(key, docID, int32(position), idx.threshold)

	field, term := splitKey(key)
	idx.registerTerm(field, term)
}

func (idx *Index) registerTerm(field, term string) {
	idx.termMu.Lock()
	defer idx.termMu.Unlock()
	seen, ok := idx.termSet[field]
	if !ok {
		seen = make(map[string]bool)
		idx.termSet[field] = seen
	}
	if seen[term] {
		return
	}
	seen[term] = true

	terms := idx.fieldTerms[field]
	i := sort.SearchStrings(terms, term)
	terms = append(terms, "")
	copy(terms[i+1:], terms[i:])
	terms[i] = term
	idx.fieldTerms[field] = terms
}

// GetPosting fans out across all shards and merges the per-document
// postings for key.
func (idx *Index) GetPosting(key string) map[string]Posting {
	out := make(map[string]Posting)
	for _, s := range idx.snapshotShards() {
		for docID, snap := range s.getPosting(key) {
			out[docID] = Posting{TF: snap.TF, Positions: snap.Positions}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// GetPositions returns the sorted positions of key in docID.
func (idx *Index) GetPositions(key, docID string) []int32 {
	return idx.shardFor(docID).getPositions(key, docID)
}

// TermFrequency returns the number of distinct positions of key in docID.
func (idx *Index) TermFrequency(key, docID string) int {
	return idx.shardFor(docID).termFrequency(key, docID)
}

// DocFreq returns the number of documents containing key, across shards.
func (idx *Index) DocFreq(key string) int {
	total := 0
	for _, s := range idx.snapshotShards() {
		total += s.docFreq(key)
	}
	return total
}

// DeleteDocument removes every posting for docID from its shard. Term
// dictionary entries are left in place: spec §4.5 does not require
// pruning the term dictionary on delete, and doing so would require a
// full scan of every other document's tokens to know whether the term
// is still otherwise present.
func (idx *Index) DeleteDocument(docID string) {
	idx.shardFor(docID).deleteDocument(docID)
}

// Clear empties every shard and the term dictionary.
func (idx *Index) Clear() {
	for _, s := range idx.snapshotShards() {
		s.clear()
	}
	idx.termMu.Lock()
	idx.fieldTerms = make(map[string][]string)
	idx.termSet = make(map[string]map[string]bool)
	idx.termMu.Unlock()
}

// GetAllTokens returns every composite field:term key present in the
// index. Order is unspecified.
func (idx *Index) GetAllTokens() []string {
	set := make(map[string]struct{})
	for _, s := range idx.snapshotShards() {
		s.allKeys(set)
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

// GetFieldTokens returns field's terms, lexicographically sorted.
func (idx *Index) GetFieldTokens(field string) []string {
	idx.termMu.RLock()
	defer idx.termMu.RUnlock()
	terms := idx.fieldTerms[field]
	out := make([]string, len(terms))
	copy(out, terms)
	return out
}

// TermsWithPrefix returns field's terms beginning with prefix, in
// lexicographic order, via binary search over the sorted term
// dictionary (spec §4.9 prefix / non-regex wildcard support).
func (idx *Index) TermsWithPrefix(field, prefix string) []string {
	idx.termMu.RLock()
	terms := idx.fieldTerms[field]
	idx.termMu.RUnlock()

	lo := sort.SearchStrings(terms, prefix)
	var out []string
	for i := lo; i < len(terms) && strings.HasPrefix(terms[i], prefix); i++ {
		out = append(out, terms[i])
	}
	return out
}

// ShardSizes returns the number of documents held in each shard, in
// shard order — used by Rebalance to decide whether redistribution is
// warranted.
func (idx *Index) ShardSizes() []int {
	shards := idx.snapshotShards()
	out := make([]int, len(shards))
	for i, s := range shards {
		out[i] = s.size()
	}
	return out
}

// LastRebalance reports when Rebalance last ran, the zero time if never.
func (idx *Index) LastRebalance() time.Time {
	idx.termMu.RLock()
	defer idx.termMu.RUnlock()
	return idx.lastRebalance
}

// NeedsRebalance reports whether the max/min shard-size ratio exceeds 2,
// the trigger condition from spec §4.5. A single-shard index never needs
// rebalancing.
func (idx *Index) NeedsRebalance() bool {
	sizes := idx.ShardSizes()
	if len(sizes) <= 1 {
		return false
	}
	min, max := sizes[0], sizes[0]
	for _, n := range sizes[1:] {
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	if min == 0 {
		return max > 0
	}
	return max > 2*min
}

// Rebalance redistributes every document's postings across shards in
// round-robin order, independent of stringHash, and records the time it
// ran. It builds the new shard set off to the side and swaps it in under
// idx.mu so concurrent readers observe either the complete pre- or
// complete post-rebalance layout, never a partial one (spec §4.5,
// "invisible to concurrent reads' results").
func (idx *Index) Rebalance() {
	oldShards := idx.snapshotShards()
	n := len(oldShards)

	type docEntry struct {
		docID string
		keys  map[string]map[string]*postingEntry // key -> per-doc entry (singleton map keyed by docID)
	}
	perDoc := make(map[string]*docEntry)

	for _, s := range oldShards {
		s.mu.RLock()
		for docID, keys := range s.docKeys {
			d, ok := perDoc[docID]
			if !ok {
				d = &docEntry{docID: docID, keys: make(map[string]map[string]*postingEntry)}
				perDoc[docID] = d
			}
			for key := range keys {
				d.keys[key] = s.postings[key]
			}
		}
		s.mu.RUnlock()
	}

	docIDs := make([]string, 0, len(perDoc))
	for id := range perDoc {
		docIDs = append(docIDs, id)
	}
	sort.Strings(docIDs)

	newShards := make([]*shard, n)
	for i := range newShards {
		newShards[i] = newShard()
	}

	for i, docID := range docIDs {
		target := newShards[i%n]
		d := perDoc[docID]
		target.mu.Lock()
		keySet := make(map[string]struct{}, len(d.keys))
		for key, byDoc := range d.keys {
			entry := byDoc[docID]
			byDocNew, ok := target.postings[key]
			if !ok {
				byDocNew = make(map[string]*postingEntry)
				target.postings[key] = byDocNew
			}
			byDocNew[docID] = entry
			keySet[key] = struct{}{}
		}
		target.docKeys[docID] = keySet
		target.mu.Unlock()
	}

	idx.mu.Lock()
	idx.shards = newShards
	idx.mu.Unlock()

	idx.termMu.Lock()
	idx.lastRebalance = time.Now()
	idx.termMu.Unlock()
}
