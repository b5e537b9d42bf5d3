package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToken_FrequencyAndPositions(t *testing.T) {
	idx := New(DefaultConfig())
	idx.AddToken("title:fox", "doc1", 0)
	idx.AddToken("title:fox", "doc1", 5)
	idx.AddToken("title:fox", "doc1", 5) // duplicate position, no-op

	assert.Equal(t, 2, idx.TermFrequency("title:fox", "doc1"))
	assert.Equal(t, []int32{0, 5}, idx.GetPositions("title:fox", "doc1"))
	assert.Equal(t, 1, idx.DocFreq("title:fox"))
}

func TestGetPosting_MergesAcrossShards(t *testing.T) {
	idx := New(Config{NumShards: 8, PositionThreshold: DefaultPositionThreshold})
	idx.AddToken("body:quick", "a", 0)
	idx.AddToken("body:quick", "b", 1)
	idx.AddToken("body:quick", "c", 2)

	posting := idx.GetPosting("body:quick")
	require.Len(t, posting, 3)
	assert.Equal(t, 1, posting["a"].TF)
	assert.Equal(t, []int32{1}, posting["b"].Positions)
}

func TestSingleShardFastPath(t *testing.T) {
	idx := New(Config{NumShards: 1})
	idx.AddToken("f:x", "doc1", 0)
	assert.Equal(t, 1, idx.DocFreq("f:x"))
}

func TestDeleteDocument_RemovesAllItsPostings(t *testing.T) {
	idx := New(DefaultConfig())
	idx.AddToken("f:x", "doc1", 0)
	idx.AddToken("f:y", "doc1", 1)
	idx.AddToken("f:x", "doc2", 0)

	idx.DeleteDocument("doc1")

	assert.Equal(t, 1, idx.DocFreq("f:x"))
	assert.Equal(t, 0, idx.DocFreq("f:y"))
	_, present := idx.GetPosting("f:x")["doc1"]
	assert.False(t, present)
}

func TestClear(t *testing.T) {
	idx := New(DefaultConfig())
	idx.AddToken("f:x", "doc1", 0)
	idx.Clear()
	assert.Equal(t, 0, idx.DocFreq("f:x"))
	assert.Empty(t, idx.GetAllTokens())
}

func TestPositionCompressionThresholdRoundTrips(t *testing.T) {
	idx := New(Config{NumShards: 1, PositionThreshold: 4})
	for i := int32(0); i < 20; i++ {
		idx.AddToken("f:x", "doc1", int(i))
	}
	positions := idx.GetPositions("f:x", "doc1")
	require.Len(t, positions, 20)
	for i, p := range positions {
		assert.Equal(t, int32(i), p)
	}
}

func TestGetFieldTokensAndPrefix(t *testing.T) {
	idx := New(DefaultConfig())
	idx.AddToken("title:apple", "doc1", 0)
	idx.AddToken("title:application", "doc1", 1)
	idx.AddToken("title:banana", "doc1", 2)

	assert.Equal(t, []string{"apple", "application", "banana"}, idx.GetFieldTokens("title"))
	assert.Equal(t, []string{"apple", "application"}, idx.TermsWithPrefix("title", "app"))
	assert.Empty(t, idx.TermsWithPrefix("title", "zzz"))
}

func TestRebalance_PreservesAllPostings(t *testing.T) {
	idx := New(Config{NumShards: 4, PositionThreshold: DefaultPositionThreshold})
	for i := 0; i < 50; i++ {
		docID := string(rune('a' + i%26))
		idx.AddToken("f:term", docID+string(rune(i)), i)
	}
	before := idx.GetAllTokens()

	idx.Rebalance()

	after := idx.GetAllTokens()
	assert.ElementsMatch(t, before, after)
	assert.False(t, idx.LastRebalance().IsZero())
}

func TestNeedsRebalance(t *testing.T) {
	idx := New(Config{NumShards: 2})
	assert.False(t, idx.NeedsRebalance())

	for i := 0; i < 10; i++ {
		idx.AddToken("f:x", "shard0doc", i) // all land wherever stringHash puts them
	}
	// One document in one shard and none in the other is an imbalance.
	assert.True(t, idx.NeedsRebalance())
}

func TestStringHash_Deterministic(t *testing.T) {
	assert.Equal(t, stringHash("doc1"), stringHash("doc1"))
	assert.NotEqual(t, stringHash("doc1"), stringHash("doc2"))
}
