package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_Symmetry(t *testing.T) {
	pairs := [][2]GeoPoint{
		{{Latitude: 18.4861, Longitude: -69.9312}, {Latitude: 18.5001, Longitude: -69.9886}},
		{{Latitude: -33.8688, Longitude: 151.2093}, {Latitude: 51.5074, Longitude: -0.1278}},
		{{Latitude: 0, Longitude: 0}, {Latitude: 0, Longitude: 180}},
	}

	for _, p := range pairs {
		ab := Distance(p[0], p[1])
		ba := Distance(p[1], p[0])
		assert.InDelta(t, ab, ba, 1e-9)
	}
}

func TestDistance_ZeroForSamePoint(t *testing.T) {
	p := GeoPoint{Latitude: 18.4861, Longitude: -69.9312}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistance_KnownValue(t *testing.T) {
	// One degree of latitude at the equator is roughly 111.19 km for a
	// 6371 km sphere.
	a := GeoPoint{Latitude: 0, Longitude: 0}
	b := GeoPoint{Latitude: 1, Longitude: 0}
	d := Distance(a, b)
	assert.InDelta(t, 111195, d, 50)
}

func TestDistance_ShortRange(t *testing.T) {
	// About 100 m north of the reference point.
	a := GeoPoint{Latitude: 18.486100, Longitude: -69.931200}
	b := GeoPoint{Latitude: 18.486100 + 100.0/111195.0, Longitude: -69.931200}
	d := Distance(a, b)
	assert.InDelta(t, 100, d, 0.5)
	assert.False(t, math.IsNaN(d))
}
