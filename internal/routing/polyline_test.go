package routing

import (
	"math"
	"testing"

	"github.com/armandonoel2022/srcapp-sub001/internal/geo"

	"github.com/stretchr/testify/assert"
)

func TestPolylineRoundTrip(t *testing.T) {
	points := []geo.GeoPoint{
		{Latitude: 18.48605, Longitude: -69.93121},
		{Latitude: 18.48712, Longitude: -69.93040},
		{Latitude: 18.49001, Longitude: -69.92855},
		{Latitude: -33.86882, Longitude: 151.20930},
	}

	decoded, err := DecodePolyline(EncodePolyline(points))
	assert.NoError(t, err)
	assert.Len(t, decoded, len(points))

	for i := range points {
		assert.InDelta(t, points[i].Latitude, decoded[i].Latitude, 1e-5)
		assert.InDelta(t, points[i].Longitude, decoded[i].Longitude, 1e-5)
	}
}

func TestDecodePolyline_KnownValue(t *testing.T) {
	// Reference trace from the polyline format documentation.
	decoded, err := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	assert.NoError(t, err)
	assert.Len(t, decoded, 3)

	want := []geo.GeoPoint{
		{Latitude: 38.5, Longitude: -120.2},
		{Latitude: 40.7, Longitude: -120.95},
		{Latitude: 43.252, Longitude: -126.453},
	}
	for i := range want {
		assert.True(t, math.Abs(want[i].Latitude-decoded[i].Latitude) < 1e-5)
		assert.True(t, math.Abs(want[i].Longitude-decoded[i].Longitude) < 1e-5)
	}
}

func TestDecodePolyline_Truncated(t *testing.T) {
	_, err := DecodePolyline("_p~iF")
	assert.ErrorIs(t, err, errTruncatedPolyline)
}

func TestDecodePolyline_Empty(t *testing.T) {
	decoded, err := DecodePolyline("")
	assert.NoError(t, err)
	assert.Empty(t, decoded)
}
