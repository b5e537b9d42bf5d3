package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// S7 — Phrase with slop (spec.md §8): doc 1 "quick brown fox", doc 2
// "quick red fox"; match_phrase{content, "quick fox", slop:1} matches
// both, since "fox" sits one position further than the zero-slop
// expectation in both documents.
func TestEvalPhrase_S7Scenario(t *testing.T) {
	e := newTestExecutor()
	indexText(e, "1", "content", "quick brown fox")
	indexText(e, "2", "content", "quick red fox")

	got := e.Execute(PhraseWithSlop("content", "quick fox", 1))
	assert.ElementsMatch(t, []string{"1", "2"}, got)
}

func TestEvalPhrase_ZeroSlopRequiresAdjacency(t *testing.T) {
	e := newTestExecutor()
	indexText(e, "1", "content", "quick brown fox")
	indexText(e, "2", "content", "quick fox")

	got := e.Execute(Phrase("content", "quick fox"))
	assert.ElementsMatch(t, []string{"2"}, got)
}

func TestEvalPhrase_MissingTokenExcludesDoc(t *testing.T) {
	e := newTestExecutor()
	indexText(e, "1", "content", "quick brown fox")

	got := e.Execute(Phrase("content", "quick elephant"))
	assert.Empty(t, got)
}
