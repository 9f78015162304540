package worklocation

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/armandonoel2022/srcapp-sub001/internal/geo"
	"github.com/armandonoel2022/srcapp-sub001/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// displayFallbackRadiusM is the oversized tolerance used only by the
// nearest-location display lookup. It never authorizes a punch; the
// authorization path is Validate and nothing else.
const displayFallbackRadiusM = 1000

// ValidationResult is the outcome of checking a punch position against one
// configured work location. Configuration problems (unknown name,
// malformed stored coordinates) are reported here with DistanceM = -1 and
// a message that distinguishes them from a plain out-of-radius result.
type ValidationResult struct {
	Valid     bool    `json:"valid"`
	DistanceM float64 `json:"distance_m"`
	Message   string  `json:"message"`
}

// DisplayProximity is the informational nearest-location answer shown on
// the punch screen. It is a distinct type so the display path can never be
// wired into punch authorization by accident.
type DisplayProximity struct {
	Name           string  `json:"name"`
	DistanceM      float64 `json:"distance_m"`
	RadiusM        float64 `json:"radius_m"`
	WithinFallback bool    `json:"within_fallback"`
}

//go:generate mockgen -source=worklocation_service.go -destination=mock/worklocation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateWorkLocationRequest) (WorkLocationResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateWorkLocationRequest) (WorkLocationResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	GetAll(ctx context.Context, companyID string) ([]WorkLocationResponse, error)

	// Validate checks current against the named active location. This is
	// the only check allowed to gate a punch.
	Validate(ctx context.Context, companyID, name string, current geo.GeoPoint) (ValidationResult, error)

	// NearestForDisplay scans all active locations and reports the closest
	// one with a relaxed tolerance, for informational display only.
	NearestForDisplay(ctx context.Context, companyID string, current geo.GeoPoint) (*DisplayProximity, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo:   repo,
		logger: zap.L().Named("worklocation.service"),
	}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateWorkLocationRequest) (WorkLocationResponse, error) {
	if req.ToleranceRadiusM <= 0 {
		return WorkLocationResponse{}, apperror.New(apperror.CodeInvalidInput, "tolerance radius must be positive", 400)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	wl := &WorkLocation{
		ID:               uuid.New(),
		CompanyID:        uuid.MustParse(companyID),
		Name:             req.Name,
		Coordinates:      FormatCoordinates(geo.GeoPoint{Latitude: req.Latitude, Longitude: req.Longitude}),
		ToleranceRadiusM: req.ToleranceRadiusM,
		Active:           active,
	}

	if err := s.repo.Create(ctx, wl); err != nil {
		return WorkLocationResponse{}, err
	}
	return mapToResponse(*wl), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateWorkLocationRequest) (WorkLocationResponse, error) {
	wl, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkLocationResponse{}, apperror.ErrNotFound
		}
		return WorkLocationResponse{}, err
	}

	if req.Name != nil {
		wl.Name = *req.Name
	}
	if req.ToleranceRadiusM != nil {
		if *req.ToleranceRadiusM <= 0 {
			return WorkLocationResponse{}, apperror.New(apperror.CodeInvalidInput, "tolerance radius must be positive", 400)
		}
		wl.ToleranceRadiusM = *req.ToleranceRadiusM
	}
	if req.Latitude != nil || req.Longitude != nil {
		center, cerr := ParseCoordinates(wl.Coordinates)
		if cerr != nil {
			center = geo.GeoPoint{}
		}
		if req.Latitude != nil {
			center.Latitude = *req.Latitude
		}
		if req.Longitude != nil {
			center.Longitude = *req.Longitude
		}
		wl.Coordinates = FormatCoordinates(center)
	}
	if req.Active != nil {
		wl.Active = *req.Active
	}

	if err := s.repo.Update(ctx, wl); err != nil {
		return WorkLocationResponse{}, err
	}
	return mapToResponse(*wl), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	return s.repo.Delete(ctx, companyID, id)
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]WorkLocationResponse, error) {
	rows, err := s.repo.FindAll(ctx, companyID)
	if err != nil {
		return nil, err
	}
	res := make([]WorkLocationResponse, len(rows))
	for i, wl := range rows {
		res[i] = mapToResponse(wl)
	}
	return res, nil
}

func (s *service) Validate(ctx context.Context, companyID, name string, current geo.GeoPoint) (ValidationResult, error) {
	wl, err := s.repo.FindActiveByName(ctx, companyID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ValidationResult{
				Valid:     false,
				DistanceM: -1,
				Message:   fmt.Sprintf("work location %q is not configured; contact your administrator", name),
			}, nil
		}
		return ValidationResult{}, err
	}

	center, err := ParseCoordinates(wl.Coordinates)
	if err != nil {
		s.logger.Warn("stored coordinates malformed",
			zap.String("work_location", name),
			zap.String("coordinates", wl.Coordinates),
			zap.Error(err),
		)
		return ValidationResult{
			Valid:     false,
			DistanceM: -1,
			Message:   fmt.Sprintf("work location %q has invalid stored coordinates; contact your administrator", name),
		}, nil
	}

	dist := geo.Distance(current, center)
	if dist <= wl.ToleranceRadiusM {
		return ValidationResult{
			Valid:     true,
			DistanceM: dist,
			Message:   fmt.Sprintf("within %s (%.0f m from center)", name, dist),
		}, nil
	}

	return ValidationResult{
		Valid:     false,
		DistanceM: dist,
		Message:   fmt.Sprintf("outside %s: %.0f m from center, allowed %.0f m", name, dist, wl.ToleranceRadiusM),
	}, nil
}

func (s *service) NearestForDisplay(ctx context.Context, companyID string, current geo.GeoPoint) (*DisplayProximity, error) {
	rows, err := s.repo.FindAllActive(ctx, companyID)
	if err != nil {
		return nil, err
	}

	var nearest *DisplayProximity
	best := math.MaxFloat64

	for _, wl := range rows {
		center, cerr := ParseCoordinates(wl.Coordinates)
		if cerr != nil {
			// Corrupt rows are skipped here; Validate is where they
			// surface to the user.
			s.logger.Warn("skipping work location with malformed coordinates",
				zap.String("work_location", wl.Name))
			continue
		}

		dist := geo.Distance(current, center)
		if dist < best {
			best = dist
			fallback := math.Max(wl.ToleranceRadiusM, displayFallbackRadiusM)
			nearest = &DisplayProximity{
				Name:           wl.Name,
				DistanceM:      dist,
				RadiusM:        wl.ToleranceRadiusM,
				WithinFallback: dist <= fallback,
			}
		}
	}

	return nearest, nil
}

func mapToResponse(wl WorkLocation) WorkLocationResponse {
	resp := WorkLocationResponse{
		ID:               wl.ID.String(),
		Name:             wl.Name,
		ToleranceRadiusM: wl.ToleranceRadiusM,
		Active:           wl.Active,
	}
	if center, err := ParseCoordinates(wl.Coordinates); err == nil {
		resp.Latitude = center.Latitude
		resp.Longitude = center.Longitude
	}
	return resp
}
