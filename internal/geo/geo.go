// Package geo provides the great-circle distance primitives every
// location check and trip computation in this backend is built on.
package geo

import "math"

const earthRadiusMeters = 6371000

// GeoPoint is an immutable WGS-84 coordinate pair, passed by value.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// Distance returns the Haversine great-circle distance between a and b in
// meters. Symmetric; zero when a == b.
func Distance(a, b GeoPoint) float64 {
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Latitude))*math.Cos(toRad(b.Latitude))*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
