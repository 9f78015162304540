package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/armandonoel2022/srcapp-sub001/internal/geo"

	"go.uber.org/zap"
)

const (
	// The map-matching provider rejects large inputs, so traces are thinned
	// to key points before submission.
	maxKeyPoints = 10

	// Per-request coordinate limit of the provider.
	maxChunkSize = 50

	// The directions fallback only accepts short sequences.
	maxDirectionsPoints = 25

	// Search radius around each point for map matching.
	matchRadiusM = 50
)

// Snapper adjusts raw GPS traces onto road geometry through the external
// routing provider. Snapping is a best-effort enhancement of the history
// viewer: every failure path returns an empty route and the caller keeps
// rendering the raw trace.
type Snapper struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

func NewSnapper(client *http.Client, baseURL, apiKey string) *Snapper {
	if client == nil {
		client = http.DefaultClient
	}
	return &Snapper{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  zap.L().Named("routing.snapper"),
	}
}

// Snap returns the road-snapped geometry for the given trace, or an empty
// slice when the provider is unavailable, unconfigured, or rejects every
// chunk.
func (s *Snapper) Snap(ctx context.Context, points []geo.GeoPoint) []geo.GeoPoint {
	if len(points) < 2 {
		return nil
	}
	if s.apiKey == "" {
		// Missing credentials are a configuration gap, not a reason to
		// break the viewer.
		s.logger.Warn("routing credentials unavailable, skipping route snapping")
		return nil
	}

	keyPoints := reduceKeyPoints(points, maxKeyPoints)

	var route []geo.GeoPoint
	for _, chunk := range chunkPoints(keyPoints, maxChunkSize) {
		geometry, err := s.matchChunk(ctx, chunk)
		if err != nil && len(chunk) <= maxDirectionsPoints {
			s.logger.Debug("map matching failed, retrying via directions", zap.Error(err))
			geometry, err = s.directionsChunk(ctx, chunk)
		}
		if err != nil {
			s.logger.Warn("route snapping chunk failed", zap.Int("chunk_size", len(chunk)), zap.Error(err))
			continue
		}

		decoded, err := DecodePolyline(geometry)
		if err != nil {
			s.logger.Warn("route geometry decode failed", zap.Error(err))
			continue
		}
		route = append(route, decoded...)
	}

	return route
}

type routeRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
	Radiuses    []float64    `json:"radiuses,omitempty"`
}

type routeResponse struct {
	Routes []struct {
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

func (s *Snapper) matchChunk(ctx context.Context, chunk []geo.GeoPoint) (string, error) {
	req := routeRequest{
		Coordinates: toLngLat(chunk),
		Radiuses:    make([]float64, len(chunk)),
	}
	for i := range req.Radiuses {
		req.Radiuses[i] = matchRadiusM
	}
	return s.post(ctx, s.baseURL+"/match/v1/driving", req)
}

func (s *Snapper) directionsChunk(ctx context.Context, chunk []geo.GeoPoint) (string, error) {
	return s.post(ctx, s.baseURL+"/directions/v1/driving", routeRequest{
		Coordinates: toLngLat(chunk),
	})
}

func (s *Snapper) post(ctx context.Context, url string, payload routeRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("routing provider returned %d", resp.StatusCode)
	}

	var decoded routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if len(decoded.Routes) == 0 || decoded.Routes[0].Geometry == "" {
		return "", fmt.Errorf("routing provider returned no geometry")
	}

	return decoded.Routes[0].Geometry, nil
}

// reduceKeyPoints thins a trace to at most max points by uniform stride,
// always preserving the first and last point.
func reduceKeyPoints(points []geo.GeoPoint, max int) []geo.GeoPoint {
	if len(points) <= max {
		return points
	}

	out := make([]geo.GeoPoint, 0, max)
	step := float64(len(points)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		idx := int(float64(i)*step + 0.5)
		if idx > len(points)-1 {
			idx = len(points) - 1
		}
		out = append(out, points[idx])
	}
	out[len(out)-1] = points[len(points)-1]
	return out
}

func chunkPoints(points []geo.GeoPoint, size int) [][]geo.GeoPoint {
	var chunks [][]geo.GeoPoint
	for start := 0; start < len(points); start += size {
		end := start + size
		if end > len(points) {
			end = len(points)
		}
		chunks = append(chunks, points[start:end])
	}
	return chunks
}

// toLngLat converts to the provider's (longitude, latitude) order.
func toLngLat(points []geo.GeoPoint) [][2]float64 {
	out := make([][2]float64, len(points))
	for i, p := range points {
		out[i] = [2]float64{p.Longitude, p.Latitude}
	}
	return out
}
