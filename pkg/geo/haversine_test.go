package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKM_SamePoint(t *testing.T) {
	p := Point{Lat: 40.7128, Lon: -74.0060}
	assert.InDelta(t, 0.0, HaversineKM(p, p), 1e-9)
}

func TestHaversineKM_NYCtoLA(t *testing.T) {
	nyc := Point{Lat: 40.7128, Lon: -74.0060}
	la := Point{Lat: 34.0522, Lon: -118.2437}
	d := HaversineKM(nyc, la)
	// Known approximate great-circle distance NYC-LA is ~3936km.
	assert.InDelta(t, 3936, d, 50)
}

func TestHaversineKM_S6Scenario(t *testing.T) {
	center := Point{Lat: 40.7128, Lon: -74.0060}
	near := Point{Lat: 40.7128, Lon: -74.0061}
	assert.Less(t, HaversineKM(center, near), 1.0)
}

func TestPoint_Valid(t *testing.T) {
	assert.True(t, Point{Lat: 90, Lon: 180}.Valid())
	assert.True(t, Point{Lat: -90, Lon: -180}.Valid())
	assert.False(t, Point{Lat: 91, Lon: 0}.Valid())
	assert.False(t, Point{Lat: 0, Lon: 181}.Valid())
}
