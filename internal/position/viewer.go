package position

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/armandonoel2022/srcapp-sub001/internal/geo"

	"go.uber.org/zap"
)

// RouteSnapper adjusts a raw trace onto road geometry. Implemented by
// routing.Snapper; best effort, an empty result means "render the raw trace".
type RouteSnapper interface {
	Snap(ctx context.Context, points []geo.GeoPoint) []geo.GeoPoint
}

// AddressResolver resolves coordinates to street addresses in order.
// Implemented by geocode.Client; best effort, empty strings stay empty.
type AddressResolver interface {
	ReverseBatch(ctx context.Context, points []geo.GeoPoint) []string
}

// Viewer ties one playback session together: it fetches history, derives
// statistics and waypoints, snaps the route, and feeds the animator. Each
// Load gets a monotonically increasing token; a fetch that finishes after a
// newer Load started is discarded instead of overwriting the newer state.
type Viewer struct {
	service  Service
	snapper  RouteSnapper
	resolver AddressResolver
	animator *Animator
	latest   atomic.Uint64
	logger   *zap.Logger
}

func NewViewer(service Service, snapper RouteSnapper, resolver AddressResolver, onChange func(index int, point HistoryPoint)) *Viewer {
	return &Viewer{
		service:  service,
		snapper:  snapper,
		resolver: resolver,
		animator: NewAnimator(onChange),
		logger:   zap.L().Named("position.viewer"),
	}
}

func (v *Viewer) Animator() *Animator {
	return v.animator
}

// Load fetches and assembles the history view for the device and date
// window. When a newer Load has been issued in the meantime the stale result
// is returned to the caller but never applied to the animator.
func (v *Viewer) Load(ctx context.Context, deviceID string, startDate, endDate time.Time, minInterval time.Duration) (*HistoryResponse, error) {
	token := v.latest.Add(1)

	points, err := v.service.FetchHistory(ctx, deviceID, startDate, endDate, minInterval)
	if err != nil {
		return nil, err
	}

	resp := BuildHistoryResponse(ctx, deviceID, points, v.snapper, v.resolver)

	if v.latest.Load() != token {
		v.logger.Debug("stale history load discarded",
			zap.String("device_id", deviceID),
			zap.Uint64("token", token),
		)
		return resp, nil
	}

	v.animator.SetSequence(points)
	return resp, nil
}

func (v *Viewer) Close() {
	v.animator.Close()
}

// BuildHistoryResponse derives the full view (statistics, waypoints, snapped
// route, resolved addresses) from a downsampled trace. Snapping is skipped
// for traces too short to describe a route.
func BuildHistoryResponse(ctx context.Context, deviceID string, points []HistoryPoint, snapper RouteSnapper, resolver AddressResolver) *HistoryResponse {
	fillMissingAddresses(ctx, points, resolver)

	resp := &HistoryResponse{
		DeviceID:   deviceID,
		Points:     points,
		Statistics: ComputeStatistics(points),
		Waypoints:  ExtractWaypoints(points),
	}

	if snapper != nil && len(points) >= 2 {
		raw := make([]geo.GeoPoint, len(points))
		for i, p := range points {
			raw[i] = p.Point()
		}
		resp.Route = snapper.Snap(ctx, raw)
	}

	return resp
}

// fillMissingAddresses resolves only the points the tracker reported
// without an address. The resolver paces the lookups itself.
func fillMissingAddresses(ctx context.Context, points []HistoryPoint, resolver AddressResolver) {
	if resolver == nil {
		return
	}

	var missing []int
	for i, p := range points {
		if p.Address == "" {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return
	}

	coords := make([]geo.GeoPoint, len(missing))
	for j, i := range missing {
		coords[j] = points[i].Point()
	}

	addresses := resolver.ReverseBatch(ctx, coords)
	for j, i := range missing {
		if j < len(addresses) {
			points[i].Address = addresses[j]
		}
	}
}
