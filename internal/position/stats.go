package position

import (
	"fmt"
	"math"
	"time"

	"github.com/armandonoel2022/srcapp-sub001/internal/geo"
)

// Below this speed the vehicle is considered stationary for the trip
// statistics header.
const stopSpeedThresholdKmh = 5.0

// ComputeStatistics summarizes a downsampled trace. It needs at least two
// points to say anything meaningful and returns nil otherwise.
func ComputeStatistics(history []HistoryPoint) *TripStatistics {
	if len(history) < 2 {
		return nil
	}

	duration := history[len(history)-1].DeviceTime.Sub(history[0].DeviceTime)

	var distanceM float64
	for i := 1; i < len(history); i++ {
		distanceM += geo.Distance(history[i-1].Point(), history[i].Point())
	}

	var speedSum, maxSpeed float64
	var movingCount int
	for _, p := range history {
		if p.SpeedKmh > 0 {
			speedSum += p.SpeedKmh
			movingCount++
		}
		if p.SpeedKmh > maxSpeed {
			maxSpeed = p.SpeedKmh
		}
	}
	var avgSpeed float64
	if movingCount > 0 {
		avgSpeed = speedSum / float64(movingCount)
	}

	// A stop is one contiguous run of slow points, however long.
	var stopCount int
	inStop := false
	for _, p := range history {
		if p.SpeedKmh < stopSpeedThresholdKmh {
			if !inStop {
				stopCount++
				inStop = true
			}
		} else {
			inStop = false
		}
	}

	return &TripStatistics{
		DurationSeconds:   int64(duration.Seconds()),
		DurationFormatted: formatDuration(duration),
		DistanceKm:        math.Round(distanceM/10) / 100,
		AvgSpeedKmh:       math.Round(avgSpeed*10) / 10,
		MaxSpeedKmh:       maxSpeed,
		StopCount:         stopCount,
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
