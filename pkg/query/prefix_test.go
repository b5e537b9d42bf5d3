package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvalPrefix_SingleWord(t *testing.T) {
	e := newTestExecutor()
	indexText(e, "1", "name", "apple")
	indexText(e, "2", "name", "application")
	indexText(e, "3", "name", "banana")

	got := e.Execute(Prefix("name", "app"))
	assert.ElementsMatch(t, []string{"1", "2"}, got)
}

func TestEvalPrefix_MultiWordIntersects(t *testing.T) {
	e := newTestExecutor()
	indexText(e, "1", "name", "quick fox")
	indexText(e, "2", "name", "quick dog")

	got := e.Execute(Prefix("name", "qui fo"))
	assert.ElementsMatch(t, []string{"1"}, got)
}

func TestEvalPrefix_NoMatch(t *testing.T) {
	e := newTestExecutor()
	indexText(e, "1", "name", "banana")

	got := e.Execute(Prefix("name", "app"))
	assert.Empty(t, got)
}
