package index

// stringHash computes the 32-bit multiplicative string hash used to assign
// a document to a shard (spec §4.5): h = (h<<5) - h + codepoint, folded to
// its absolute value.
func stringHash(s string) uint32 {
	var h int32
	for _, r := range s {
		h = (h << 5) - h + r
	}
	if h < 0 {
		h = -h
	}
	return uint32(h)
}
