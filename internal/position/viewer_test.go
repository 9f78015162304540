package position

import (
	"context"
	"testing"
	"time"

	"github.com/armandonoel2022/srcapp-sub001/internal/geo"

	"github.com/stretchr/testify/assert"
)

type scriptedService struct {
	fetch func(ctx context.Context, deviceID string) ([]HistoryPoint, error)
}

func (s *scriptedService) FetchHistory(ctx context.Context, deviceID string, startDate, endDate time.Time, minInterval time.Duration) ([]HistoryPoint, error) {
	return s.fetch(ctx, deviceID)
}

func (s *scriptedService) Ingest(ctx context.Context, req IngestPositionRequest) error {
	return nil
}

type fakeSnapper struct {
	route []geo.GeoPoint
	calls int
}

func (f *fakeSnapper) Snap(ctx context.Context, points []geo.GeoPoint) []geo.GeoPoint {
	f.calls++
	return f.route
}

func TestViewer_LoadFeedsAnimator(t *testing.T) {
	points := historyWithSpeeds([]float64{10, 10, 10})
	svc := &scriptedService{fetch: func(ctx context.Context, deviceID string) ([]HistoryPoint, error) {
		return points, nil
	}}
	snapper := &fakeSnapper{route: []geo.GeoPoint{{Latitude: 18.48, Longitude: -69.93}}}

	v := NewViewer(svc, snapper, nil, nil)
	defer v.Close()

	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	resp, err := v.Load(context.Background(), "tracker-01", day, day, time.Minute)
	assert.NoError(t, err)

	assert.Len(t, resp.Points, 3)
	assert.NotNil(t, resp.Statistics)
	assert.Len(t, resp.Route, 1)
	assert.Equal(t, 1, snapper.calls)
	assert.Equal(t, PlaybackIdle, v.Animator().State())
	assert.Equal(t, 0, v.Animator().Index())
}

func TestViewer_StaleLoadIsNotApplied(t *testing.T) {
	first := historyWithSpeeds([]float64{10, 10, 10, 10, 10, 10, 10, 10})
	second := historyWithSpeeds([]float64{10, 10})

	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	var v *Viewer

	// The first fetch triggers a complete second load before it returns,
	// making the first result stale by the time it is applied.
	call := 0
	svc := &scriptedService{}
	svc.fetch = func(ctx context.Context, deviceID string) ([]HistoryPoint, error) {
		call++
		if call == 1 {
			_, err := v.Load(ctx, deviceID, day, day, time.Minute)
			assert.NoError(t, err)
			return first, nil
		}
		return second, nil
	}

	v = NewViewer(svc, nil, nil, nil)
	defer v.Close()

	resp, err := v.Load(context.Background(), "tracker-01", day, day, time.Minute)
	assert.NoError(t, err)

	// The stale result still reaches the caller,
	assert.Len(t, resp.Points, len(first))

	// but the animator keeps the newer, shorter sequence.
	v.Animator().Seek(100)
	assert.Equal(t, len(second)-1, v.Animator().Index())
}

func TestBuildHistoryResponse_SkipsSnapperForShortTrace(t *testing.T) {
	snapper := &fakeSnapper{}
	resp := BuildHistoryResponse(context.Background(), "tracker-01", historyWithSpeeds([]float64{10}), snapper, nil)

	assert.Equal(t, 0, snapper.calls)
	assert.Nil(t, resp.Route)
	assert.Nil(t, resp.Statistics)
	assert.Empty(t, resp.Waypoints)
}

type fakeResolver struct {
	addresses []string
	got       []geo.GeoPoint
}

func (f *fakeResolver) ReverseBatch(ctx context.Context, points []geo.GeoPoint) []string {
	f.got = points
	return f.addresses
}

func TestBuildHistoryResponse_ResolvesOnlyMissingAddresses(t *testing.T) {
	points := historyWithSpeeds([]float64{10, 10, 10})
	points[1].Address = "Calle El Conde 105"

	resolver := &fakeResolver{addresses: []string{"Av. Independencia 12", "Av. Duarte 301"}}
	resp := BuildHistoryResponse(context.Background(), "tracker-01", points, nil, resolver)

	// Only the two blank points go to the resolver; the reported address
	// stays untouched.
	assert.Len(t, resolver.got, 2)
	assert.Equal(t, "Av. Independencia 12", resp.Points[0].Address)
	assert.Equal(t, "Calle El Conde 105", resp.Points[1].Address)
	assert.Equal(t, "Av. Duarte 301", resp.Points[2].Address)
}
