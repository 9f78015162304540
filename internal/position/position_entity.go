package position

import (
	"time"

	"github.com/google/uuid"
)

// Position is one raw tracker report as delivered over MQTT. Speeds arrive
// in knots because that is what the tracker firmware emits; conversion to
// km/h happens in the history view, never in storage.
type Position struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	DeviceID   string    `gorm:"column:device_id;type:varchar(64);not null;index:idx_position_device_time,priority:1"`
	Latitude   float64   `gorm:"column:latitude;not null"`
	Longitude  float64   `gorm:"column:longitude;not null"`
	SpeedKnots float64   `gorm:"column:speed_knots;not null"`
	Address    string    `gorm:"column:address;type:text"`
	DeviceTime time.Time `gorm:"column:device_time;type:timestamptz;not null;index:idx_position_device_time,priority:2"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (Position) TableName() string {
	return "positions"
}
