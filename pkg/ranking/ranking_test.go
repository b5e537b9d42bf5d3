package ranking

import (
	"testing"

	"github.com/Inquir-search/search-engine-sub000/pkg/document"
	"github.com/Inquir-search/search-engine-sub000/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractQueryTokens_Match(t *testing.T) {
	q := query.Match("name", "hello world")
	tokens := ExtractQueryTokens(q)
	assert.ElementsMatch(t, []string{"hello", "world"}, tokens)
}

func TestExtractQueryTokens_BoolRecurses(t *testing.T) {
	q := query.Bool(query.BoolClause{
		Must:   []query.Query{query.Term("status", "active")},
		Should: []query.Query{query.Match("name", "fox")},
	})
	tokens := ExtractQueryTokens(q)
	assert.ElementsMatch(t, []string{"active", "fox"}, tokens)
}

type fakeStats struct {
	df map[string]int
	tf map[string]int
}

func (f fakeStats) DocFreq(key string) int { return f.df[key] }
func (f fakeStats) TermFrequency(key, docID string) int {
	return f.tf[key+"|"+docID]
}

type fakeLengths map[string]int

func (f fakeLengths) Length(id string) int { return f[id] }

type fakeScorer struct{}

func (fakeScorer) Score(field string, tf, df, totalDocs, docLen int, avgDocLength float64) float64 {
	if df == 0 || tf == 0 {
		return 0
	}
	return float64(tf) / float64(df)
}

func TestRank_SortsDescendingByScore(t *testing.T) {
	stats := fakeStats{
		df: map[string]int{"name:hello": 2},
		tf: map[string]int{
			"name:hello|a": 2,
			"name:hello|b": 1,
		},
	}
	lengths := fakeLengths{"a": 3, "b": 1}
	p := New(fakeScorer{}, stats, lengths)

	tokens := []TokenField{{Field: "name", Term: "hello"}}
	ranked := p.Rank([]string{"a", "b", "c"}, tokens, CorpusStats{TotalDocs: 3, AvgDocLength: 2}, nil)

	require.Len(t, ranked, 3)
	assert.Equal(t, "a", ranked[0].DocID)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
	assert.Equal(t, "c", ranked[2].DocID)
	assert.Equal(t, 0.0, ranked[2].Score)
}

func TestRank_FallbackWhenAllZero(t *testing.T) {
	stats := fakeStats{df: map[string]int{}, tf: map[string]int{}}
	lengths := fakeLengths{}
	p := New(fakeScorer{}, stats, lengths)

	bodies := map[string]document.Doc{
		"a": {"id": "a", "status": "active"},
		"b": {"id": "b", "status": "inactive"},
	}
	tokens := []TokenField{{Field: "status", Term: "active"}}
	ranked := p.Rank([]string{"a", "b"}, tokens, CorpusStats{TotalDocs: 2, AvgDocLength: 1}, bodies)

	for _, r := range ranked {
		assert.GreaterOrEqual(t, r.Score, 1.0)
	}
}

func TestPaginate(t *testing.T) {
	ranked := []Scored{{DocID: "a"}, {DocID: "b"}, {DocID: "c"}}
	assert.Equal(t, []Scored{{DocID: "b"}, {DocID: "c"}}, Paginate(ranked, 1, 10))
	assert.Empty(t, Paginate(ranked, 0, 0))
	assert.Empty(t, Paginate(ranked, 0, -1))
	assert.Empty(t, Paginate(ranked, 10, 5))
}
