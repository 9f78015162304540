package punch

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/armandonoel2022/srcapp-sub001/internal/events"
	"github.com/armandonoel2022/srcapp-sub001/internal/geo"
	"github.com/armandonoel2022/srcapp-sub001/internal/messaging/kafka"
	"github.com/armandonoel2022/srcapp-sub001/internal/shared/apperror"
	"github.com/armandonoel2022/srcapp-sub001/internal/shared/contextutil"
	"github.com/armandonoel2022/srcapp-sub001/internal/worklocation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

//go:generate mockgen -source=punch_service.go -destination=mock/punch_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, companyID, employeeID string, req RegisterPunchRequest) (PunchResponse, error)
	GetDay(ctx context.Context, companyID, employeeID string, date time.Time) (DayResponse, error)
	GetRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]PunchResponse, error)
	GetAllForCompany(ctx context.Context, companyID string, from, to time.Time) ([]PunchResponse, error)
	Compliance(ctx context.Context, companyID string, from, to time.Time) ([]ComplianceRow, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	locations worklocation.Service
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, locations worklocation.Service, outbox kafka.OutboxRepository) Service {
	return &service{
		db:        db,
		repo:      repo,
		locations: locations,
		outbox:    outbox,
		logger:    zap.L().Named("punch.service"),
	}
}

// Register validates the GPS evidence against the designated work location,
// resolves any shift left open on the previous day, and appends the punch.
// The outbox event is written in the same transaction.
func (s *service) Register(ctx context.Context, companyID, employeeID string, req RegisterPunchRequest) (PunchResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	current := geo.GeoPoint{Latitude: req.Latitude, Longitude: req.Longitude}
	validation, err := s.locations.Validate(ctx, companyID, req.WorkLocation, current)
	if err != nil {
		return PunchResponse{}, err
	}
	if !validation.Valid {
		if validation.DistanceM < 0 {
			// Unknown location or corrupt stored coordinates.
			return PunchResponse{}, apperror.New(apperror.CodeMisconfigured, validation.Message, 422)
		}
		s.logger.Info("punch rejected outside radius",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
			zap.String("work_location", req.WorkLocation),
			zap.Float64("distance_m", validation.DistanceM),
		)
		return PunchResponse{}, apperror.New(apperror.CodeInvalidState, validation.Message, 422)
	}

	todayRecords, err := s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil {
		return PunchResponse{}, err
	}
	state := StateForDay(todayRecords)

	switch req.Kind {
	case KindEntrada:
		if state != StateNoEntry {
			return PunchResponse{}, apperror.New(apperror.CodeConflict, "entrada already registered for today", 409)
		}
	case KindSalida:
		if state == StateNoEntry {
			return PunchResponse{}, apperror.New(apperror.CodeInvalidState, "no entrada registered for today", 422)
		}
		if state == StateComplete {
			return PunchResponse{}, apperror.New(apperror.CodeConflict, "salida already registered for today", 409)
		}
	}

	// Starting a new day's entrada with yesterday's shift still open must
	// be confirmed: either auto-close it with now or cancel this punch.
	var pendingEntrada *Punch
	if req.Kind == KindEntrada {
		yesterday := today.AddDate(0, 0, -1)
		prevRecords, err := s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, yesterday)
		if err != nil {
			return PunchResponse{}, err
		}
		pendingEntrada = UnmatchedEntrada(prevRecords)
		if pendingEntrada != nil && !req.ClosePrevious {
			return PunchResponse{}, apperror.New(
				apperror.CodePendingExit,
				"previous day has an entrada without salida; confirm to auto-register the missing salida or cancel",
				409,
			)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PunchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	autoClosed := false
	if pendingEntrada != nil {
		closing := &Punch{
			ID:           uuid.New(),
			CompanyID:    uuid.MustParse(companyID),
			EmployeeID:   uuid.MustParse(employeeID),
			PunchDate:    pendingEntrada.PunchDate,
			Kind:         KindSalida,
			PunchedAt:    now,
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
			WorkLocation: req.WorkLocation,
			DistanceM:    validation.DistanceM,
			AutoClosed:   true,
		}
		if err := qtx.Create(ctx, closing); err != nil {
			return PunchResponse{}, classifyCreateError(err)
		}
		autoClosed = true
	}

	row := &Punch{
		ID:           uuid.New(),
		CompanyID:    uuid.MustParse(companyID),
		EmployeeID:   uuid.MustParse(employeeID),
		PunchDate:    today,
		Kind:         req.Kind,
		PunchedAt:    now,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		PhotoRef:     req.PhotoRef,
		WorkLocation: req.WorkLocation,
		DistanceM:    validation.DistanceM,
	}
	if err := qtx.Create(ctx, row); err != nil {
		return PunchResponse{}, classifyCreateError(err)
	}

	if s.outbox != nil {
		payload, err := json.Marshal(events.PunchRegisteredEvent{
			EventType:    "punch.registered",
			PunchID:      row.ID.String(),
			EmployeeID:   employeeID,
			CompanyID:    companyID,
			Kind:         row.Kind,
			PunchDate:    row.PunchDate.Format("2006-01-02"),
			WorkLocation: row.WorkLocation,
			AutoClosed:   autoClosed,
			OccurredAt:   now,
		})
		if err != nil {
			return PunchResponse{}, err
		}
		event := kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     rid,
			AggregateType: "punch",
			AggregateID:   row.ID.String(),
			EventType:     "punch.registered",
			Topic:         events.PunchLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			return PunchResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return PunchResponse{}, err
	}

	resp := mapToResponse(*row)
	resp.AutoClosedPrevious = autoClosed
	return resp, nil
}

func (s *service) GetDay(ctx context.Context, companyID, employeeID string, date time.Time) (DayResponse, error) {
	records, err := s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, date)
	if err != nil {
		return DayResponse{}, err
	}

	resp := DayResponse{
		Date:    date.Format("2006-01-02"),
		State:   string(StateForDay(records)),
		Punches: make([]PunchResponse, len(records)),
	}
	for i, p := range records {
		resp.Punches[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]PunchResponse, error) {
	records, err := s.repo.FindByEmployeeAndRange(ctx, companyID, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	res := make([]PunchResponse, len(records))
	for i, p := range records {
		res[i] = mapToResponse(p)
	}
	return res, nil
}

// GetAllForCompany backs the supervision screen: every employee's punches
// in the window, newest first.
func (s *service) GetAllForCompany(ctx context.Context, companyID string, from, to time.Time) ([]PunchResponse, error) {
	records, err := s.repo.FindAllByCompany(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	res := make([]PunchResponse, len(records))
	for i, p := range records {
		res[i] = mapToResponse(p)
	}
	return res, nil
}

func (s *service) Compliance(ctx context.Context, companyID string, from, to time.Time) ([]ComplianceRow, error) {
	return s.repo.ComplianceSummary(ctx, companyID, from, to)
}

func classifyCreateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperror.Wrap(err, apperror.CodeConflict, "punch already registered for this day", 409)
	}
	return err
}

func mapToResponse(p Punch) PunchResponse {
	return PunchResponse{
		ID:           p.ID.String(),
		EmployeeID:   p.EmployeeID.String(),
		PunchDate:    p.PunchDate.Format("2006-01-02"),
		Kind:         p.Kind,
		PunchedAt:    p.PunchedAt.Format(time.RFC3339),
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		PhotoRef:     p.PhotoRef,
		WorkLocation: p.WorkLocation,
		DistanceM:    p.DistanceM,
	}
}
