// Package postings implements the doc-id set abstraction used by the
// query executor's set algebra over inverted-index postings and by the
// facet index's value buckets: a
// thresholded dual-mode representation that promotes from a cache-friendly
// sorted slice to a SIMD-capable roaring bitmap once document frequency
// crosses DefaultBitmapThreshold. Adapted from the teacher's
// pkg/qgram/posting_list.go, generalized from "gram -> docs" to "any set
// of docs".
package postings

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// DefaultBitmapThreshold is the cardinality at which a Set promotes from a
// sorted slice to a roaring bitmap.
const DefaultBitmapThreshold = 256

// Set is a sorted set of uint32 document ordinals, stored as either a
// slice (small sets) or a roaring bitmap (large sets).
type Set struct {
	small []uint32 // sorted, deduplicated; nil once promoted
	large *roaring.Bitmap
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{}
}

// NewSetFromSlice builds a Set from an unsorted, possibly duplicated slice
// of ordinals.
func NewSetFromSlice(ords []uint32) *Set {
	s := NewSet()
	for _, o := range ords {
		s.Add(o)
	}
	return s
}

func (s *Set) isLarge() bool { return s.large != nil }

// Add inserts ord into the set, promoting to a bitmap if the slice
// representation crosses DefaultBitmapThreshold.
func (s *Set) Add(ord uint32) {
	if s.isLarge() {
		s.large.Add(ord)
		return
	}
	idx := sort.Search(len(s.small), func(i int) bool { return s.small[i] >= ord })
	if idx < len(s.small) && s.small[idx] == ord {
		return
	}
	s.small = append(s.small, 0)
	copy(s.small[idx+1:], s.small[idx:])
	s.small[idx] = ord

	if len(s.small) >= DefaultBitmapThreshold {
		s.promote()
	}
}

func (s *Set) promote() {
	bm := roaring.New()
	bm.AddMany(s.small)
	s.large = bm
	s.small = nil
}

// Remove deletes ord from the set, if present.
func (s *Set) Remove(ord uint32) {
	if s.isLarge() {
		s.large.Remove(ord)
		return
	}
	idx := sort.Search(len(s.small), func(i int) bool { return s.small[i] >= ord })
	if idx < len(s.small) && s.small[idx] == ord {
		s.small = append(s.small[:idx], s.small[idx+1:]...)
	}
}

// Contains reports whether ord is a member.
func (s *Set) Contains(ord uint32) bool {
	if s.isLarge() {
		return s.large.Contains(ord)
	}
	idx := sort.Search(len(s.small), func(i int) bool { return s.small[i] >= ord })
	return idx < len(s.small) && s.small[idx] == ord
}

// Len returns the cardinality of the set.
func (s *Set) Len() int {
	if s.isLarge() {
		return int(s.large.GetCardinality())
	}
	return len(s.small)
}

// ToSlice returns the sorted ordinals as a fresh slice.
func (s *Set) ToSlice() []uint32 {
	if s.isLarge() {
		return s.large.ToArray()
	}
	out := make([]uint32, len(s.small))
	copy(out, s.small)
	return out
}

func (s *Set) bitmap() *roaring.Bitmap {
	if s.isLarge() {
		return s.large
	}
	bm := roaring.New()
	bm.AddMany(s.small)
	return bm
}

// And returns the intersection of s and other. Neither input is mutated.
func And(sets ...*Set) *Set {
	if len(sets) == 0 {
		return NewSet()
	}
	result := sets[0].bitmap().Clone()
	for _, s := range sets[1:] {
		result.And(s.bitmap())
	}
	return &Set{large: result}
}

// Or returns the union of sets. No input is mutated.
func Or(sets ...*Set) *Set {
	if len(sets) == 0 {
		return NewSet()
	}
	result := sets[0].bitmap().Clone()
	for _, s := range sets[1:] {
		result.Or(s.bitmap())
	}
	return &Set{large: result}
}

// AndNot returns a minus the union of subtract.
func AndNot(a *Set, subtract ...*Set) *Set {
	result := a.bitmap().Clone()
	for _, s := range subtract {
		result.AndNot(s.bitmap())
	}
	return &Set{large: result}
}
