package routing

import (
	"errors"
	"math"
	"strings"

	"github.com/armandonoel2022/srcapp-sub001/internal/geo"
)

// Encoded polylines pack coordinate deltas as signed varints at 1e-5
// precision, five bits per character offset by 63. This is the format the
// routing provider returns for matched and directions geometries.
const polylineScale = 1e5

var errTruncatedPolyline = errors.New("truncated polyline")

// DecodePolyline expands an encoded polyline into coordinate pairs.
func DecodePolyline(encoded string) ([]geo.GeoPoint, error) {
	var points []geo.GeoPoint
	var lat, lng int64
	idx := 0

	for idx < len(encoded) {
		dLat, n, err := decodeSignedVarint(encoded[idx:])
		if err != nil {
			return nil, err
		}
		idx += n

		dLng, n, err := decodeSignedVarint(encoded[idx:])
		if err != nil {
			return nil, err
		}
		idx += n

		lat += dLat
		lng += dLng
		points = append(points, geo.GeoPoint{
			Latitude:  float64(lat) / polylineScale,
			Longitude: float64(lng) / polylineScale,
		})
	}

	return points, nil
}

// EncodePolyline is the inverse of DecodePolyline. It exists so the codec
// can be verified round-trip without any HTTP traffic.
func EncodePolyline(points []geo.GeoPoint) string {
	var sb strings.Builder
	var prevLat, prevLng int64

	for _, p := range points {
		lat := int64(math.Round(p.Latitude * polylineScale))
		lng := int64(math.Round(p.Longitude * polylineScale))

		encodeSignedVarint(&sb, lat-prevLat)
		encodeSignedVarint(&sb, lng-prevLng)

		prevLat = lat
		prevLng = lng
	}

	return sb.String()
}

// decodeSignedVarint reads one zigzag-encoded value and reports how many
// bytes it consumed.
func decodeSignedVarint(s string) (int64, int, error) {
	var result int64
	var shift uint
	idx := 0

	for {
		if idx >= len(s) {
			return 0, 0, errTruncatedPolyline
		}
		b := int64(s[idx]) - 63
		idx++

		result |= (b & 0x1f) << shift
		shift += 5

		if b < 0x20 {
			break
		}
	}

	// Lowest bit carries the sign.
	if result&1 != 0 {
		return ^(result >> 1), idx, nil
	}
	return result >> 1, idx, nil
}

func encodeSignedVarint(sb *strings.Builder, v int64) {
	u := v << 1
	if v < 0 {
		u = ^u
	}

	for u >= 0x20 {
		sb.WriteByte(byte((0x20 | (u & 0x1f)) + 63))
		u >>= 5
	}
	sb.WriteByte(byte(u + 63))
}
