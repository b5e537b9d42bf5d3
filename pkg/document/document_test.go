package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	d := Doc{"id": "abc", "name": "x"}
	id, ok := ID(d)
	assert.True(t, ok)
	assert.Equal(t, "abc", id)

	_, ok = ID(Doc{"name": "no id"})
	assert.False(t, ok)
}

func TestClone_DeepCopiesNested(t *testing.T) {
	d := Doc{"id": "1", "addr": Doc{"city": "NYC"}, "tags": []any{"a", "b"}}
	c := Clone(d)
	c["addr"].(Doc)["city"] = "LA"
	c["tags"].([]any)[0] = "z"

	assert.Equal(t, "NYC", d["addr"].(Doc)["city"])
	assert.Equal(t, "a", d["tags"].([]any)[0])
}

func TestFlatten_NestedObjectDottedPaths(t *testing.T) {
	d := Doc{
		"id": "1",
		"address": Doc{
			"city":    "NYC",
			"country": "US",
		},
	}
	flat := Flatten(d)
	paths := map[string]any{}
	for _, f := range flat {
		paths[f.Path] = f.Value
	}
	assert.Equal(t, "1", paths["id"])
	assert.Equal(t, "NYC", paths["address.city"])
	assert.Equal(t, "US", paths["address.country"])
}

func TestFlatten_GeoPointObjectIsTerminal(t *testing.T) {
	d := Doc{"loc": Doc{"lat": 40.7128, "lon": -74.0060}}
	flat := Flatten(d)
	assert.Len(t, flat, 1)
	gp, ok := flat[0].Value.(GeoPoint)
	assert.True(t, ok)
	assert.InDelta(t, 40.7128, gp.Lat, 1e-9)
}

func TestFlatten_GeoPointArrayPairIsTerminal(t *testing.T) {
	d := Doc{"loc": []any{40.7128, -74.0060}}
	flat := Flatten(d)
	assert.Len(t, flat, 1)
	gp, ok := flat[0].Value.(GeoPoint)
	assert.True(t, ok)
	assert.InDelta(t, -74.0060, gp.Lon, 1e-9)
}

func TestFlatten_ArrayOfPrimitivesMultipleLeaves(t *testing.T) {
	d := Doc{"tags": []any{"x", "y", "z"}}
	flat := Flatten(d)
	assert.Len(t, flat, 3)
}

func TestFlatten_NullSkipped(t *testing.T) {
	d := Doc{"missing": nil}
	assert.Empty(t, Flatten(d))
}
