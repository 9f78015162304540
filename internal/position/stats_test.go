package position

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func historyWithSpeeds(speeds []float64) []HistoryPoint {
	base := time.Date(2026, 8, 27, 8, 0, 0, 0, time.UTC)
	points := make([]HistoryPoint, len(speeds))
	for i, speed := range speeds {
		points[i] = HistoryPoint{
			Latitude:   18.48 + float64(i)*0.001,
			Longitude:  -69.93,
			SpeedKmh:   speed,
			DeviceTime: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return points
}

func TestComputeStatistics_NeedsTwoPoints(t *testing.T) {
	assert.Nil(t, ComputeStatistics(nil))
	assert.Nil(t, ComputeStatistics(historyWithSpeeds([]float64{10})))
}

func TestComputeStatistics_StopRunsCountedOnce(t *testing.T) {
	// Two slow runs: [2 1] and [2]. Consecutive slow points are one stop.
	stats := ComputeStatistics(historyWithSpeeds([]float64{10, 2, 1, 10, 2, 10}))
	assert.NotNil(t, stats)
	assert.Equal(t, 2, stats.StopCount)
}

func TestComputeStatistics_SpeedAggregates(t *testing.T) {
	stats := ComputeStatistics(historyWithSpeeds([]float64{10, 0, 20, 0, 30}))
	assert.NotNil(t, stats)

	// Zero-speed points are excluded from the average but a vehicle parked
	// the whole time still yields a zero average, not NaN.
	assert.Equal(t, 20.0, stats.AvgSpeedKmh)
	assert.Equal(t, 30.0, stats.MaxSpeedKmh)

	parked := ComputeStatistics(historyWithSpeeds([]float64{0, 0, 0}))
	assert.NotNil(t, parked)
	assert.Equal(t, 0.0, parked.AvgSpeedKmh)
}

func TestComputeStatistics_DurationAndDistance(t *testing.T) {
	stats := ComputeStatistics(historyWithSpeeds([]float64{10, 10, 10}))
	assert.NotNil(t, stats)

	assert.Equal(t, int64(120), stats.DurationSeconds)
	assert.Equal(t, "2m", stats.DurationFormatted)

	// Two hops of 0.001 degrees latitude, roughly 111 m each, kept at
	// two decimals so short patrols do not collapse to 100 m steps.
	assert.InDelta(t, 0.22, stats.DistanceKm, 0.005)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45m", formatDuration(45*time.Minute))
	assert.Equal(t, "2h 05m", formatDuration(2*time.Hour+5*time.Minute))
}
