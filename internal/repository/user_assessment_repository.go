package repository

import (
	"errors"
	"time"

	"jobsdoor_backend/internal/model"
	"jobsdoor_backend/internal/util"

	"gorm.io/gorm"
)

type AttemptFilters struct {
	UserID string
	Status model.AttemptStatus
	Page   int
	Limit  int
}

// UserAssessmentRepository is the session store for attempts. FindByID returns
// (nil, nil) when no attempt exists under id. Update is a compare-and-swap on
// the attempt's Version and fails with util.ErrAttemptConflict when a
// concurrent writer got there first.
type UserAssessmentRepository interface {
	Create(a *model.UserAssessment) error
	FindByID(id string) (*model.UserAssessment, error)
	Update(a *model.UserAssessment) error
	List(filters AttemptFilters) ([]model.UserAssessment, int64, error)
}

type userAssessmentRepository struct {
	db *gorm.DB
}

func NewUserAssessmentRepository(db *gorm.DB) UserAssessmentRepository {
	return &userAssessmentRepository{db: db}
}

func (r *userAssessmentRepository) Create(a *model.UserAssessment) error {
	return r.db.Create(a).Error
}

func (r *userAssessmentRepository) FindByID(id string) (*model.UserAssessment, error) {
	var a model.UserAssessment
	err := r.db.First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *userAssessmentRepository) Update(a *model.UserAssessment) error {
	res := r.db.Model(&model.UserAssessment{}).
		Where("id = ? AND version = ?", a.ID, a.Version).
		Updates(map[string]interface{}{
			"status":       a.Status,
			"answers":      a.Answers,
			"score":        a.Score,
			"passed":       a.Passed,
			"completed_at": a.CompletedAt,
			"version":      a.Version + 1,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrAttemptConflict
	}
	a.Version++
	return nil
}

func (r *userAssessmentRepository) List(filters AttemptFilters) ([]model.UserAssessment, int64, error) {
	var as []model.UserAssessment
	var total int64

	query := r.db.Model(&model.UserAssessment{}).Where("user_id = ?", filters.UserID)
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filters.Page - 1) * filters.Limit
	err := query.Order("created_at desc").Offset(offset).Limit(filters.Limit).Find(&as).Error
	return as, total, err
}
