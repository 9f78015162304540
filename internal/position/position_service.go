package position

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
)

const (
	// Raw rows fetched from storage before downsampling.
	rawFetchLimit = 500

	// Points handed to the viewer after downsampling. The map widget
	// degrades badly beyond this.
	maxHistoryPoints = 100

	knotsToKmh = 1.852
)

//go:generate mockgen -source=position_service.go -destination=mock/position_service_mock.go -package=mock
type Service interface {
	FetchHistory(ctx context.Context, deviceID string, startDate, endDate time.Time, minInterval time.Duration) ([]HistoryPoint, error)
	Ingest(ctx context.Context, req IngestPositionRequest) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo:   repo,
		logger: zap.L().Named("position.service"),
	}
}

// FetchHistory loads the device trace for the date window, thins it to at
// most one point per minInterval, and converts speeds to km/h. A day with no
// rows yields an empty slice, not an error.
func (s *service) FetchHistory(ctx context.Context, deviceID string, startDate, endDate time.Time, minInterval time.Duration) ([]HistoryPoint, error) {
	from := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	to := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 23, 59, 59, 0, endDate.Location())

	rows, err := s.repo.FetchRange(ctx, deviceID, from, to, rawFetchLimit)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []HistoryPoint{}, nil
	}

	points := downsample(rows, minInterval)
	if len(points) > maxHistoryPoints {
		points = points[:maxHistoryPoints]
	}

	s.logger.Debug("history fetched",
		zap.String("device_id", deviceID),
		zap.Int("raw", len(rows)),
		zap.Int("kept", len(points)),
	)
	return points, nil
}

func (s *service) Ingest(ctx context.Context, req IngestPositionRequest) error {
	return s.repo.Create(ctx, &Position{
		DeviceID:   req.DeviceID,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		SpeedKnots: req.SpeedKnots,
		Address:    req.Address,
		DeviceTime: req.DeviceTime.UTC(),
	})
}

// downsample keeps the first point and every later point at least minInterval
// after the last kept one. Rows are assumed ordered oldest first.
func downsample(rows []Position, minInterval time.Duration) []HistoryPoint {
	points := make([]HistoryPoint, 0, len(rows))
	var lastKept time.Time

	for i, row := range rows {
		if i > 0 && row.DeviceTime.Sub(lastKept) < minInterval {
			continue
		}
		lastKept = row.DeviceTime
		points = append(points, HistoryPoint{
			ID:         row.ID.String(),
			Latitude:   row.Latitude,
			Longitude:  row.Longitude,
			SpeedKmh:   knotsToKmhRounded(row.SpeedKnots),
			Address:    row.Address,
			DeviceTime: row.DeviceTime,
		})
	}
	return points
}

func knotsToKmhRounded(knots float64) float64 {
	return math.Round(knots*knotsToKmh*10) / 10
}
