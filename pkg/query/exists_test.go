package query

import (
	"testing"

	"github.com/Inquir-search/search-engine-sub000/pkg/document"
	"github.com/stretchr/testify/assert"
)

func TestEvalExists_OnlyDocsWithFieldPresent(t *testing.T) {
	e := newTestExecutor()
	putDoc(e, "1", document.Doc{"id": "1", "email": "a@example.com"})
	putDoc(e, "2", document.Doc{"id": "2", "name": "no email here"})
	putDoc(e, "3", document.Doc{"id": "3", "email": nil})

	got := e.Execute(Exists("email"))
	assert.ElementsMatch(t, []string{"1"}, got)
}
