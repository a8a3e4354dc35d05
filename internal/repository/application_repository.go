package repository

import (
	"errors"
	"jobsdoor_backend/internal/model"

	"gorm.io/gorm"
)

type ApplicationRepository struct {
	DB *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

func (r *ApplicationRepository) Create(app *model.JobApplication) error {
	return r.DB.Create(app).Error
}

func (r *ApplicationRepository) FindByID(id string) (*model.JobApplication, error) {
	var app model.JobApplication
	err := r.DB.First(&app, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// FindByJobAndEmail returns nil without error when no application exists.
func (r *ApplicationRepository) FindByJobAndEmail(jobID, applicantEmail string) (*model.JobApplication, error) {
	var app model.JobApplication
	err := r.DB.Where("job_id = ? AND applicant_email = ?", jobID, applicantEmail).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) ListByJob(jobID string, page, limit int) ([]model.JobApplication, int64, error) {
	return r.list(r.DB.Where("job_id = ?", jobID), page, limit)
}

func (r *ApplicationRepository) ListByUser(applicantEmail string, page, limit int) ([]model.JobApplication, int64, error) {
	return r.list(r.DB.Where("applicant_email = ?", applicantEmail), page, limit)
}

func (r *ApplicationRepository) ListByCompany(companyEmail string, page, limit int) ([]model.JobApplication, int64, error) {
	query := r.DB.
		Joins("JOIN jobs ON jobs.id = job_applications.job_id").
		Where("jobs.company_email = ?", companyEmail)
	return r.list(query, page, limit)
}

func (r *ApplicationRepository) list(query *gorm.DB, page, limit int) ([]model.JobApplication, int64, error) {
	var apps []model.JobApplication
	var total int64

	query = query.Model(&model.JobApplication{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("job_applications.created_at desc").Offset(offset).Limit(limit).Find(&apps).Error
	return apps, total, err
}

func (r *ApplicationRepository) Update(app *model.JobApplication) error {
	return r.DB.Save(app).Error
}

func (r *ApplicationRepository) Delete(id string) error {
	return r.DB.Delete(&model.JobApplication{}, "id = ?", id).Error
}

func (r *ApplicationRepository) Count() (int64, error) {
	var n int64
	err := r.DB.Model(&model.JobApplication{}).Count(&n).Error
	return n, err
}

func (r *ApplicationRepository) CountByStatus() (map[model.ApplicationStatus]int64, error) {
	type row struct {
		Status model.ApplicationStatus
		Total  int64
	}
	var rows []row
	err := r.DB.Model(&model.JobApplication{}).Select("status, count(*) as total").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[model.ApplicationStatus]int64{
		model.ApplicationPending:     0,
		model.ApplicationReviewed:    0,
		model.ApplicationShortlisted: 0,
		model.ApplicationRejected:    0,
		model.ApplicationHired:       0,
	}
	for _, rw := range rows {
		counts[rw.Status] = rw.Total
	}
	return counts, nil
}

func (r *ApplicationRepository) Recent(limit int) ([]model.JobApplication, error) {
	var apps []model.JobApplication
	err := r.DB.Order("created_at desc").Limit(limit).Find(&apps).Error
	return apps, err
}
