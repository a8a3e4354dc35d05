package repository

import (
	"jobsdoor_backend/internal/model"

	"gorm.io/gorm"
)

type ConsultancyRepository struct {
	DB *gorm.DB
}

func NewConsultancyRepository(db *gorm.DB) *ConsultancyRepository {
	return &ConsultancyRepository{DB: db}
}

func (r *ConsultancyRepository) AddRemark(remark *model.ConsultancyRemark) error {
	return r.DB.Create(remark).Error
}

func (r *ConsultancyRepository) ListRemarks(userEmail string) ([]model.ConsultancyRemark, error) {
	var remarks []model.ConsultancyRemark
	err := r.DB.Where("user_email = ?", userEmail).Order("created_at desc").Find(&remarks).Error
	return remarks, err
}
