package repository

import (
	"errors"
	"jobsdoor_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentFilters struct {
	Category   string
	Difficulty model.Difficulty
	IsActive   *bool
	CreatedBy  string
	Page       int
	Limit      int
}

// AssessmentRepository is the read-write store for assessment definitions.
// FindByID returns (nil, nil) when no definition exists under id.
type AssessmentRepository interface {
	Create(a *model.Assessment) error
	FindByID(id string) (*model.Assessment, error)
	List(filters AssessmentFilters) ([]model.Assessment, int64, error)
	Update(a *model.Assessment) error
	Delete(id string) error
	Count() (int64, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(a *model.Assessment) error {
	return r.db.Create(a).Error
}

func (r *assessmentRepository) FindByID(id string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` asc, created_at asc")
	}).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assessmentRepository) List(filters AssessmentFilters) ([]model.Assessment, int64, error) {
	var as []model.Assessment
	var total int64

	query := r.db.Model(&model.Assessment{})
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Difficulty != "" {
		query = query.Where("difficulty = ?", filters.Difficulty)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}
	if filters.CreatedBy != "" {
		query = query.Where("created_by = ?", filters.CreatedBy)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filters.Page - 1) * filters.Limit
	err := query.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` asc, created_at asc")
	}).Order("created_at desc").Offset(offset).Limit(filters.Limit).Find(&as).Error
	return as, total, err
}

// Update persists the definition and replaces its question set. Save only
// upserts associations, so rows dropped from a.Questions are deleted first.
func (r *assessmentRepository) Update(a *model.Assessment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.AssessmentQuestion{}, "assessment_id = ?", a.ID).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(a).Error
	})
}

func (r *assessmentRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.AssessmentQuestion{}, "assessment_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Assessment{}, "id = ?", id).Error
	})
}

func (r *assessmentRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&model.Assessment{}).Count(&n).Error
	return n, err
}
