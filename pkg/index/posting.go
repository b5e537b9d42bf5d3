package index

import "sort"

// DefaultPositionThreshold is the position-list length above which a
// posting entry switches to delta-encoded storage (spec §4.5).
const DefaultPositionThreshold = 32

// postingEntry tracks one (key, docID) pair's term frequency and sorted,
// deduplicated positions. Positions are stored delta-encoded (first
// absolute, rest differences) once the list grows past threshold;
// decode() always hands back the absolute form.
type postingEntry struct {
	positions  []int32
	compressed bool
}

func newPostingEntry() *postingEntry {
	return &postingEntry{}
}

// addPosition inserts pos if absent (duplicates are no-ops, per spec
// failure-mode note), keeping positions sorted ascending. Returns whether
// a new position was actually inserted.
func (p *postingEntry) addPosition(pos int32, threshold int) bool {
	abs := p.decode()
	i := sort.Search(len(abs), func(i int) bool { return abs[i] >= pos })
	if i < len(abs) && abs[i] == pos {
		return false
	}
	abs = append(abs, 0)
	copy(abs[i+1:], abs[i:])
	abs[i] = pos
	p.encode(abs, threshold)
	return true
}

// frequency is the number of distinct positions recorded.
func (p *postingEntry) frequency() int {
	if !p.compressed {
		return len(p.positions)
	}
	if len(p.positions) == 0 {
		return 0
	}
	return len(p.positions)
}

// decode returns the absolute, sorted position list.
func (p *postingEntry) decode() []int32 {
	if !p.compressed {
		out := make([]int32, len(p.positions))
		copy(out, p.positions)
		return out
	}
	out := make([]int32, len(p.positions))
	var running int32
	for i, d := range p.positions {
		if i == 0 {
			running = d
		} else {
			running += d
		}
		out[i] = running
	}
	return out
}

// encode stores abs (already sorted+deduped), switching to delta
// encoding once it exceeds threshold.
func (p *postingEntry) encode(abs []int32, threshold int) {
	if len(abs) <= threshold {
		p.positions = abs
		p.compressed = false
		return
	}
	deltas := make([]int32, len(abs))
	var prev int32
	for i, v := range abs {
		if i == 0 {
			deltas[i] = v
		} else {
			deltas[i] = v - prev
		}
		prev = v
	}
	p.positions = deltas
	p.compressed = true
}
