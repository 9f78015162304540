package worklocation

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=worklocation_repo.go -destination=mock/worklocation_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, wl *WorkLocation) error
	Update(ctx context.Context, wl *WorkLocation) error
	Delete(ctx context.Context, companyID, id string) error
	FindByID(ctx context.Context, companyID, id string) (*WorkLocation, error)
	FindActiveByName(ctx context.Context, companyID, name string) (*WorkLocation, error)
	FindAllActive(ctx context.Context, companyID string) ([]WorkLocation, error)
	FindAll(ctx context.Context, companyID string) ([]WorkLocation, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, wl *WorkLocation) error {
	return r.db.WithContext(ctx).Create(wl).Error
}

func (r *repository) Update(ctx context.Context, wl *WorkLocation) error {
	return r.db.WithContext(ctx).Save(wl).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&WorkLocation{}, "id = ?", id).Error
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*WorkLocation, error) {
	var wl WorkLocation
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&wl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &wl, nil
}

func (r *repository) FindActiveByName(ctx context.Context, companyID, name string) (*WorkLocation, error) {
	var wl WorkLocation
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("name = ?", name).
		Where("active = ?", true).
		First(&wl).Error
	if err != nil {
		return nil, err
	}
	return &wl, nil
}

func (r *repository) FindAllActive(ctx context.Context, companyID string) ([]WorkLocation, error) {
	var rows []WorkLocation
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("active = ?", true).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context, companyID string) ([]WorkLocation, error) {
	var rows []WorkLocation
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}
