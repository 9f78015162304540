package position

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=position_repo.go -destination=mock/position_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, p *Position) error
	FetchRange(ctx context.Context, deviceID string, from, to time.Time, limit int) ([]Position, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Position) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FetchRange(ctx context.Context, deviceID string, from, to time.Time, limit int) ([]Position, error) {
	var rows []Position
	err := r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Where("device_time BETWEEN ? AND ?", from, to).
		Order("device_time ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
