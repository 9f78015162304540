package worklocation

import (
	"testing"

	"github.com/armandonoel2022/srcapp-sub001/internal/geo"

	"github.com/stretchr/testify/assert"
)

func TestParseCoordinates(t *testing.T) {
	cases := []struct {
		in      string
		want    geo.GeoPoint
		wantErr bool
	}{
		{"(18.4861,-69.9312)", geo.GeoPoint{Latitude: 18.4861, Longitude: -69.9312}, false},
		{"18.4861,-69.9312", geo.GeoPoint{Latitude: 18.4861, Longitude: -69.9312}, false},
		{"( 18.4861 , -69.9312 )", geo.GeoPoint{Latitude: 18.4861, Longitude: -69.9312}, false},
		{"(-90,180)", geo.GeoPoint{Latitude: -90, Longitude: 180}, false},
		{"", geo.GeoPoint{}, true},
		{"not-a-point", geo.GeoPoint{}, true},
		{"(18.4861)", geo.GeoPoint{}, true},
		{"(91,0)", geo.GeoPoint{}, true},
		{"(0,181)", geo.GeoPoint{}, true},
	}

	for _, tc := range cases {
		got, err := ParseCoordinates(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		assert.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestFormatCoordinates_RoundTrip(t *testing.T) {
	p := geo.GeoPoint{Latitude: 18.4861, Longitude: -69.9312}
	got, err := ParseCoordinates(FormatCoordinates(p))
	assert.NoError(t, err)
	assert.Equal(t, p, got)
}
