package docstore

import (
	"testing"

	"github.com/Inquir-search/search-engine-sub000/pkg/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutGetDeleteExists(t *testing.T) {
	s := New()
	doc := document.Doc{"id": "1", "name": "hello"}
	s.Put("1", doc, 3)

	got, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, doc, got)
	assert.True(t, s.Exists("1"))
	assert.Equal(t, 1, s.Count())

	s.Delete("1")
	assert.False(t, s.Exists("1"))
	assert.Equal(t, 0, s.Count())
}

func TestStore_StatsConsistency(t *testing.T) {
	s := New()
	s.Put("a", document.Doc{"id": "a"}, 3)
	s.Put("b", document.Doc{"id": "b"}, 5)

	stats := s.Stats()
	assert.Equal(t, 2, stats.TotalDocs)
	assert.InDelta(t, 4.0, stats.AvgDocLength, 1e-9)

	s.Delete("a")
	stats = s.Stats()
	assert.Equal(t, 1, stats.TotalDocs)
	assert.InDelta(t, 5.0, stats.AvgDocLength, 1e-9)
}

func TestStore_StatsEmptyClampsToOne(t *testing.T) {
	s := New()
	stats := s.Stats()
	assert.Equal(t, 0, stats.TotalDocs)
	assert.Equal(t, 0.0, stats.AvgDocLength)
}

func TestStore_PutOverwriteUpdatesLength(t *testing.T) {
	s := New()
	s.Put("1", document.Doc{"id": "1"}, 10)
	s.Put("1", document.Doc{"id": "1"}, 2)
	assert.Equal(t, 2, s.Length("1"))
	assert.InDelta(t, 2.0, s.Stats().AvgDocLength, 1e-9)
}

func TestStore_Clear(t *testing.T) {
	s := New()
	s.Put("1", document.Doc{"id": "1"}, 10)
	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, 0.0, s.Stats().AvgDocLength)
}
