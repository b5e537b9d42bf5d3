package query

import (
	"testing"

	"github.com/Inquir-search/search-engine-sub000/pkg/document"
	"github.com/Inquir-search/search-engine-sub000/pkg/geo"
	"github.com/stretchr/testify/assert"
)

// S6 — Geo distance (spec.md §8): docs 1 and 3 sit essentially on top of
// the query center (doc 3 differs by 0.0001 degrees longitude, well
// under 1km), doc 2 is across the continent.
func TestEvalGeoDistance_S6Scenario(t *testing.T) {
	e := newTestExecutor()
	putDoc(e, "1", document.Doc{"id": "1", "loc": []any{40.7128, -74.0060}})
	putDoc(e, "2", document.Doc{"id": "2", "loc": []any{34.0522, -118.2437}})
	putDoc(e, "3", document.Doc{"id": "3", "loc": []any{40.7128, -74.0061}})

	q := GeoDistance("loc", geo.Point{Lat: 40.7128, Lon: -74.0060}, 1)
	got := e.Execute(q)
	assert.ElementsMatch(t, []string{"1", "3"}, got)
}

func TestEvalGeoDistance_InvalidCoordinatesExcluded(t *testing.T) {
	e := newTestExecutor()
	putDoc(e, "1", document.Doc{"id": "1", "loc": []any{999.0, -74.0060}})

	q := GeoDistance("loc", geo.Point{Lat: 40.7128, Lon: -74.0060}, 100000)
	got := e.Execute(q)
	assert.Empty(t, got)
}
