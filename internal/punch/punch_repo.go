package punch

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=punch_repo.go -destination=mock/punch_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Punch) error
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) ([]Punch, error)
	FindByEmployeeAndRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Punch, error)
	FindAllByCompany(ctx context.Context, companyID string, from, to time.Time) ([]Punch, error)
	ComplianceSummary(ctx context.Context, companyID string, from, to time.Time) ([]ComplianceRow, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, p *Punch) error {
	if r.tx != nil {
		query := `
            INSERT INTO punches (
                id, company_id, employee_id, punch_date, kind, punched_at,
                latitude, longitude, photo_ref, work_location, distance_m, auto_closed
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        `
		_, err := r.tx.ExecContext(ctx, query,
			p.ID, p.CompanyID, p.EmployeeID, p.PunchDate.Format("2006-01-02"), p.Kind, p.PunchedAt,
			p.Latitude, p.Longitude, p.PhotoRef, p.WorkLocation, p.DistanceM, p.AutoClosed,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) ([]Punch, error) {
	var rows []Punch
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("punch_date = ?", date.Format("2006-01-02")).
		Order("punched_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployeeAndRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Punch, error) {
	var rows []Punch
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("punch_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("punch_date ASC, punched_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, from, to time.Time) ([]Punch, error) {
	var rows []Punch
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("punch_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("punch_date DESC, punched_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ComplianceSummary(ctx context.Context, companyID string, from, to time.Time) ([]ComplianceRow, error) {
	var result []ComplianceRow

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			employee_id::text                                            AS employee_id,
			to_char(punch_date, 'YYYY-MM-DD')                            AS punch_date,
			COUNT(*) FILTER (WHERE kind = 'ENTRADA')                     AS entradas,
			COUNT(*) FILTER (WHERE kind = 'SALIDA')                      AS salidas,
			COUNT(*) FILTER (WHERE kind = 'ENTRADA') > 0
				AND COUNT(*) FILTER (WHERE kind = 'SALIDA') > 0          AS complete
		FROM punches
		WHERE company_id = ?
			AND punch_date BETWEEN ? AND ?
		GROUP BY employee_id, punch_date
		ORDER BY punch_date ASC, employee_id ASC
	`, companyID, from.Format("2006-01-02"), to.Format("2006-01-02")).Scan(&result).Error

	return result, err
}
