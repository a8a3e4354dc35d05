package repository

import (
	"jobsdoor_backend/internal/model"

	"gorm.io/gorm"
)

type LeadRepository struct {
	DB *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(lead *model.Lead) error {
	return r.DB.Create(lead).Error
}

func (r *LeadRepository) List(page, limit int) ([]model.Lead, int64, error) {
	var leads []model.Lead
	var total int64

	query := r.DB.Model(&model.Lead{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&leads).Error
	return leads, total, err
}
