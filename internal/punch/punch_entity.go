package punch

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindEntrada = "ENTRADA"
	KindSalida  = "SALIDA"
)

// Punch is one entrada or salida record. Rows are append-only: the mobile
// client creates them at punch time with photo and GPS evidence and nothing
// ever mutates them afterwards.
type Punch struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID   uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_punch_employee_date_kind,priority:1"`
	PunchDate    time.Time `gorm:"column:punch_date;type:date;not null;uniqueIndex:uq_punch_employee_date_kind,priority:2"`
	Kind         string    `gorm:"column:kind;type:varchar(10);not null;uniqueIndex:uq_punch_employee_date_kind,priority:3"`
	PunchedAt    time.Time `gorm:"column:punched_at;type:timestamptz;not null"`
	Latitude     float64   `gorm:"column:latitude;not null"`
	Longitude    float64   `gorm:"column:longitude;not null"`
	PhotoRef     *string   `gorm:"column:photo_ref;type:varchar(255)"`
	WorkLocation string    `gorm:"column:work_location;type:varchar(120);not null"`
	DistanceM    float64   `gorm:"column:distance_m;not null"`
	AutoClosed   bool      `gorm:"column:auto_closed;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (Punch) TableName() string {
	return "punches"
}
