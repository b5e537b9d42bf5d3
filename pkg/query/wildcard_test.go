package query

import (
	"testing"

	"github.com/Inquir-search/search-engine-sub000/pkg/document"
	"github.com/stretchr/testify/assert"
)

// S8 — Wildcard (spec.md §8): names apple, application, banana; wildcard
// {name, "app*"} matches apple-doc and application-doc.
func TestEvalWildcard_S8Scenario(t *testing.T) {
	e := newTestExecutor()
	indexText(e, "apple-doc", "name", "apple")
	indexText(e, "application-doc", "name", "application")
	indexText(e, "banana-doc", "name", "banana")

	got := e.Execute(Wildcard("name", "app*"))
	assert.ElementsMatch(t, []string{"apple-doc", "application-doc"}, got)
}

func TestEvalWildcard_MultiWordIntersects(t *testing.T) {
	e := newTestExecutor()
	indexText(e, "1", "name", "quick fox")
	indexText(e, "2", "name", "quick dog")

	got := e.Execute(Wildcard("name", "qu* f*"))
	assert.ElementsMatch(t, []string{"1"}, got)
}

func TestEvalWildcard_RegexReservedScansRawValue(t *testing.T) {
	e := newTestExecutor()
	putDoc(e, "1", document.Doc{"id": "1", "ip": "192.168.1.1"})
	putDoc(e, "2", document.Doc{"id": "2", "ip": "10.0.0.1"})

	// The literal dots force a raw DocumentStore scan instead of token
	// enumeration (spec §4.9): compileGlob escapes them, so the whole
	// field value must match the anchored "192.168.*" pattern.
	got := e.Execute(Wildcard("ip", "192.168.*"))
	assert.ElementsMatch(t, []string{"1"}, got)
}

func TestEvalWildcard_QuestionMarkSingleChar(t *testing.T) {
	e := newTestExecutor()
	indexText(e, "1", "code", "cat")
	indexText(e, "2", "code", "car")
	indexText(e, "3", "code", "cart")

	got := e.Execute(Wildcard("code", "ca?"))
	assert.ElementsMatch(t, []string{"1", "2"}, got)
}
