package query

import (
	"github.com/Inquir-search/search-engine-sub000/pkg/document"
	"github.com/Inquir-search/search-engine-sub000/pkg/geo"
	"github.com/Inquir-search/search-engine-sub000/pkg/postings"
)

// evalGeoDistance implements spec §4.9 geo_distance: scan the document
// store, including any document with a valid coordinate within distance
// (km, Haversine) of the query's center.
func (e *Executor) evalGeoDistance(g GeoDistanceClause) *postings.Set {
	var ids []string
	for _, id := range e.Docs.All() {
		doc, ok := e.Docs.Get(id)
		if !ok {
			continue
		}
		if docWithinDistance(doc, g) {
			ids = append(ids, id)
		}
	}
	return e.idsToSet(ids)
}

func docWithinDistance(doc document.Doc, g GeoDistanceClause) bool {
	for _, leaf := range document.Flatten(doc) {
		if leaf.Path != g.Field {
			continue
		}
		gp, ok := leaf.Value.(document.GeoPoint)
		if !ok {
			continue
		}
		point := geo.Point{Lat: gp.Lat, Lon: gp.Lon}
		if !point.Valid() {
			continue
		}
		if geo.HaversineKM(g.Center, point) <= g.DistanceKM {
			return true
		}
	}
	return false
}
