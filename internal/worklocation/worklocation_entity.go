package worklocation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkLocation is an administrator-configured geofence an employee's punch
// must fall within. Coordinates is the legacy point-pair string
// "(lat,lng)" exactly as the upstream store persists it; it is parsed on
// every read and a row that fails to parse is a configuration error, not a
// geometry error.
type WorkLocation struct {
	ID               uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID        uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	Name             string         `gorm:"column:name;type:varchar(120);not null;index"`
	Coordinates      string         `gorm:"column:coordinates;type:varchar(80);not null"`
	ToleranceRadiusM float64        `gorm:"column:tolerance_radius_m;not null"`
	Active           bool           `gorm:"column:active;not null;default:true"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (WorkLocation) TableName() string {
	return "work_locations"
}
