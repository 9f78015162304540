package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func kinds(waypoints []Waypoint) []string {
	out := make([]string, len(waypoints))
	for i, wp := range waypoints {
		out[i] = wp.Kind
	}
	return out
}

func TestExtractWaypoints_StartStopEnd(t *testing.T) {
	// Three consecutive slow points in the middle: one stop at the run
	// midpoint, index 2.
	waypoints := ExtractWaypoints(historyWithSpeeds([]float64{10, 1, 1, 1, 10}))

	assert.Equal(t, []string{WaypointStart, WaypointStop, WaypointEnd}, kinds(waypoints))
	assert.Equal(t, 0, waypoints[0].Index)
	assert.Equal(t, 2, waypoints[1].Index)
	assert.Equal(t, 4, waypoints[2].Index)
}

func TestExtractWaypoints_SingleSlowPointIsNotAStop(t *testing.T) {
	waypoints := ExtractWaypoints(historyWithSpeeds([]float64{10, 1, 10, 10}))
	assert.Equal(t, []string{WaypointStart, WaypointEnd}, kinds(waypoints))
}

func TestExtractWaypoints_StopRunEndingAtTraceEnd(t *testing.T) {
	waypoints := ExtractWaypoints(historyWithSpeeds([]float64{10, 10, 1, 1}))
	assert.Equal(t, []string{WaypointStart, WaypointStop, WaypointEnd}, kinds(waypoints))
	assert.Equal(t, 3, waypoints[2].Index)
}

func TestExtractWaypoints_TooShort(t *testing.T) {
	assert.Empty(t, ExtractWaypoints(nil))
	assert.Empty(t, ExtractWaypoints(historyWithSpeeds([]float64{10})))
}

func TestExtractWaypoints_MultipleStops(t *testing.T) {
	waypoints := ExtractWaypoints(historyWithSpeeds([]float64{10, 1, 1, 10, 2, 2, 2, 10}))
	assert.Equal(t, []string{WaypointStart, WaypointStop, WaypointStop, WaypointEnd}, kinds(waypoints))
	assert.Equal(t, 1, waypoints[1].Index)
	assert.Equal(t, 5, waypoints[2].Index)
}
