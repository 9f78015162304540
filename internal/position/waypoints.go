package position

// Threshold for waypoint extraction. Deliberately lower than the statistics
// stop threshold: a marker on the map should only appear where the vehicle
// really idled, not at every slowdown counted in the header.
const waypointStopThresholdKmh = 3.0

// A stop run must span at least this many consecutive points to earn a
// marker.
const minStopRunPoints = 2

// ExtractWaypoints derives the Start/Stop/End markers for the trace. Start
// and End are always present for a trace of two or more points; a Stop is
// emitted at the midpoint of each run of minStopRunPoints or more
// consecutive slow points.
func ExtractWaypoints(history []HistoryPoint) []Waypoint {
	if len(history) < 2 {
		return []Waypoint{}
	}

	waypoints := []Waypoint{waypointAt(history, 0, WaypointStart)}

	runStart := -1
	flush := func(end int) {
		if runStart >= 0 && end-runStart >= minStopRunPoints {
			waypoints = append(waypoints, waypointAt(history, (runStart+end-1)/2, WaypointStop))
		}
		runStart = -1
	}

	for i, p := range history {
		if p.SpeedKmh < waypointStopThresholdKmh {
			if runStart < 0 {
				runStart = i
			}
		} else {
			flush(i)
		}
	}
	flush(len(history))

	return append(waypoints, waypointAt(history, len(history)-1, WaypointEnd))
}

func waypointAt(history []HistoryPoint, idx int, kind string) Waypoint {
	p := history[idx]
	return Waypoint{
		Kind:       kind,
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		DeviceTime: p.DeviceTime,
		Index:      idx,
	}
}
