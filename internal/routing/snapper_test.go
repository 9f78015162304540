package routing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/armandonoel2022/srcapp-sub001/internal/geo"

	"github.com/stretchr/testify/assert"
)

func tracePoints(n int) []geo.GeoPoint {
	points := make([]geo.GeoPoint, n)
	for i := range points {
		points[i] = geo.GeoPoint{
			Latitude:  18.48 + float64(i)*0.0001,
			Longitude: -69.93 + float64(i)*0.0001,
		}
	}
	return points
}

func geometryResponse(points []geo.GeoPoint) string {
	body, _ := json.Marshal(map[string]any{
		"routes": []map[string]string{{"geometry": EncodePolyline(points)}},
	})
	return string(body)
}

func TestReduceKeyPoints(t *testing.T) {
	points := tracePoints(137)
	reduced := reduceKeyPoints(points, maxKeyPoints)

	assert.Len(t, reduced, maxKeyPoints)
	assert.Equal(t, points[0], reduced[0])
	assert.Equal(t, points[len(points)-1], reduced[len(reduced)-1])

	// Short traces pass through untouched.
	short := tracePoints(7)
	assert.Equal(t, short, reduceKeyPoints(short, maxKeyPoints))
}

func TestSnap_MatchSuccess(t *testing.T) {
	snapped := tracePoints(4)
	var gotRadiuses []float64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/match/v1/driving"))
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))

		var req routeRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotRadiuses = req.Radiuses

		// Provider expects (lng, lat) order.
		assert.InDelta(t, -69.93, req.Coordinates[0][0], 1e-9)
		assert.InDelta(t, 18.48, req.Coordinates[0][1], 1e-9)

		w.Write([]byte(geometryResponse(snapped)))
	}))
	defer server.Close()

	s := NewSnapper(server.Client(), server.URL, "test-key")
	route := s.Snap(context.Background(), tracePoints(6))

	assert.Len(t, route, len(snapped))
	for _, radius := range gotRadiuses {
		assert.Equal(t, float64(matchRadiusM), radius)
	}
}

func TestSnap_FallsBackToDirections(t *testing.T) {
	snapped := tracePoints(3)
	var matchCalls, directionsCalls int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/match/v1/driving") {
			matchCalls++
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		directionsCalls++
		w.Write([]byte(geometryResponse(snapped)))
	}))
	defer server.Close()

	s := NewSnapper(server.Client(), server.URL, "test-key")
	route := s.Snap(context.Background(), tracePoints(6))

	assert.Equal(t, 1, matchCalls)
	assert.Equal(t, 1, directionsCalls)
	assert.Len(t, route, len(snapped))
}

func TestSnap_AllChunksFailReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	s := NewSnapper(server.Client(), server.URL, "test-key")
	assert.Empty(t, s.Snap(context.Background(), tracePoints(6)))
}

func TestSnap_MissingCredentials(t *testing.T) {
	s := NewSnapper(nil, "http://unused", "")
	assert.Empty(t, s.Snap(context.Background(), tracePoints(6)))
}

func TestSnap_TooFewPoints(t *testing.T) {
	s := NewSnapper(nil, "http://unused", "test-key")
	assert.Empty(t, s.Snap(context.Background(), tracePoints(1)))
}
