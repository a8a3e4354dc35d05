package repository

import (
	"jobsdoor_backend/internal/model"

	"gorm.io/gorm"
)

type JobRepository struct {
	DB *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{DB: db}
}

func (r *JobRepository) Create(job *model.Job) error {
	return r.DB.Create(job).Error
}

func (r *JobRepository) FindByID(id string) (*model.Job, error) {
	var job model.Job
	err := r.DB.First(&job, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

type JobFilters struct {
	Query    string
	Location string
	Type     model.JobType
	Company  string
	IsActive *bool
	Page     int
	Limit    int
}

func (r *JobRepository) List(filters JobFilters) ([]model.Job, int64, error) {
	var jobs []model.Job
	var total int64

	query := r.DB.Model(&model.Job{})
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.Company != "" {
		query = query.Where("company = ?", filters.Company)
	}
	if filters.Location != "" {
		query = query.Where("location = ?", filters.Location)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.Where(
			"title LIKE ? OR company LIKE ? OR location LIKE ? OR description LIKE ?",
			like, like, like, like,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filters.Page - 1) * filters.Limit
	err := query.Order("created_at desc").Offset(offset).Limit(filters.Limit).Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepository) ListByCompany(companyEmail string) ([]model.Job, error) {
	var jobs []model.Job
	err := r.DB.Where("company_email = ?", companyEmail).Order("created_at desc").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) Update(job *model.Job) error {
	return r.DB.Save(job).Error
}

func (r *JobRepository) Delete(id string) error {
	return r.DB.Delete(&model.Job{}, "id = ?", id).Error
}

// AddToApplicantCount shifts the counter by delta, clamped at zero.
func (r *JobRepository) AddToApplicantCount(id string, delta int) error {
	return r.DB.Model(&model.Job{}).Where("id = ?", id).
		Update("applicant_count", gorm.Expr("GREATEST(applicant_count + ?, 0)", delta)).Error
}

func (r *JobRepository) Count() (int64, error) {
	var n int64
	err := r.DB.Model(&model.Job{}).Count(&n).Error
	return n, err
}

func (r *JobRepository) CountActive() (int64, error) {
	var n int64
	err := r.DB.Model(&model.Job{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}

func (r *JobRepository) CountByType() (map[model.JobType]int64, error) {
	type row struct {
		Type  model.JobType
		Total int64
	}
	var rows []row
	err := r.DB.Model(&model.Job{}).Select("type, count(*) as total").Group("type").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[model.JobType]int64{
		model.FullTime:   0,
		model.PartTime:   0,
		model.Contract:   0,
		model.Internship: 0,
		model.Government: 0,
	}
	for _, rw := range rows {
		counts[rw.Type] = rw.Total
	}
	return counts, nil
}

func (r *JobRepository) SumApplicantCounts() (int64, error) {
	var sum int64
	err := r.DB.Model(&model.Job{}).Select("COALESCE(SUM(applicant_count), 0)").Scan(&sum).Error
	return sum, err
}

func (r *JobRepository) Recent(limit int) ([]model.Job, error) {
	var jobs []model.Job
	err := r.DB.Order("created_at desc").Limit(limit).Find(&jobs).Error
	return jobs, err
}
