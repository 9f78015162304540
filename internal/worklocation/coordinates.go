package worklocation

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/armandonoel2022/srcapp-sub001/internal/geo"
)

// The store keeps centers as "(lat,lng)" point-pair strings. Parens and
// surrounding whitespace are optional because older rows were saved
// without them.
var coordPattern = regexp.MustCompile(`^\s*\(?\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*\)?\s*$`)

// ParseCoordinates extracts the center point from a stored point-pair
// string. A parse failure means the row is corrupt upstream.
func ParseCoordinates(s string) (geo.GeoPoint, error) {
	m := coordPattern.FindStringSubmatch(s)
	if m == nil {
		return geo.GeoPoint{}, fmt.Errorf("malformed coordinate string %q", s)
	}

	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return geo.GeoPoint{}, fmt.Errorf("malformed latitude in %q: %w", s, err)
	}
	lng, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return geo.GeoPoint{}, fmt.Errorf("malformed longitude in %q: %w", s, err)
	}

	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return geo.GeoPoint{}, fmt.Errorf("coordinate out of range in %q", s)
	}

	return geo.GeoPoint{Latitude: lat, Longitude: lng}, nil
}

// FormatCoordinates renders a point in the stored "(lat,lng)" form.
func FormatCoordinates(p geo.GeoPoint) string {
	return fmt.Sprintf("(%s,%s)",
		strconv.FormatFloat(p.Latitude, 'f', -1, 64),
		strconv.FormatFloat(p.Longitude, 'f', -1, 64),
	)
}
