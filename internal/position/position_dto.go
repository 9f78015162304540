package position

import (
	"time"

	"github.com/armandonoel2022/srcapp-sub001/internal/geo"
)

// HistoryPoint is one downsampled trace point as the history viewer consumes
// it: speed already converted to km/h, ordered oldest first.
type HistoryPoint struct {
	ID         string    `json:"id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	SpeedKmh   float64   `json:"speed_kmh"`
	Address    string    `json:"address,omitempty"`
	DeviceTime time.Time `json:"device_time"`
}

func (p HistoryPoint) Point() geo.GeoPoint {
	return geo.GeoPoint{Latitude: p.Latitude, Longitude: p.Longitude}
}

// TripStatistics summarizes one day's trace for the header of the history
// screen.
type TripStatistics struct {
	DurationSeconds   int64   `json:"duration_seconds"`
	DurationFormatted string  `json:"duration_formatted"`
	DistanceKm        float64 `json:"distance_km"`
	AvgSpeedKmh       float64 `json:"avg_speed_kmh"`
	MaxSpeedKmh       float64 `json:"max_speed_kmh"`
	StopCount         int     `json:"stop_count"`
}

const (
	WaypointStart = "START"
	WaypointStop  = "STOP"
	WaypointEnd   = "END"
)

// Waypoint marks a notable point of the trace: trip start, trip end, or a
// significant stop in between.
type Waypoint struct {
	Kind       string    `json:"kind"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	DeviceTime time.Time `json:"device_time"`
	Index      int       `json:"index"`
}

type HistoryResponse struct {
	DeviceID   string          `json:"device_id"`
	Points     []HistoryPoint  `json:"points"`
	Statistics *TripStatistics `json:"statistics,omitempty"`
	Waypoints  []Waypoint      `json:"waypoints"`
	Route      []geo.GeoPoint  `json:"route,omitempty"`
}

// IngestPositionRequest is the MQTT payload shape trackers publish on
// /trackers/{device_id}/position.
type IngestPositionRequest struct {
	DeviceID   string    `json:"device_id" binding:"required"`
	Latitude   float64   `json:"latitude" binding:"min=-90,max=90"`
	Longitude  float64   `json:"longitude" binding:"min=-180,max=180"`
	SpeedKnots float64   `json:"speed_knots" binding:"min=0"`
	Address    string    `json:"address"`
	DeviceTime time.Time `json:"device_time" binding:"required"`
}
