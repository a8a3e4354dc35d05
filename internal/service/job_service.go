package service

import (
	"encoding/json"
	"errors"
	"time"

	"jobsdoor_backend/internal/model"
	"jobsdoor_backend/internal/repository"
	"jobsdoor_backend/internal/util"

	"gorm.io/gorm"
)

type JobService struct {
	JobRepo *repository.JobRepository
}

func NewJobService(jobRepo *repository.JobRepository) *JobService {
	return &JobService{JobRepo: jobRepo}
}

type CreateJobRequest struct {
	Title                    string        `json:"title" binding:"required"`
	Company                  string        `json:"company" binding:"required"`
	Location                 string        `json:"location" binding:"required"`
	Type                     model.JobType `json:"type" binding:"required,oneof=full-time part-time contract internship government"`
	Salary                   string        `json:"salary"`
	Stipend                  string        `json:"stipend"`
	Description              string        `json:"description" binding:"required"`
	Requirements             []string      `json:"requirements" binding:"required"`
	Benefits                 []string      `json:"benefits"`
	LastDate                 string        `json:"last_date"`
	MinimumAge               int           `json:"minimum_age"`
	MaximumAge               int           `json:"maximum_age"`
	QualificationEligibility string        `json:"qualification_eligibility" binding:"required"`
	JobLink                  string        `json:"job_link"`
}

func (s *JobService) CreateJob(req CreateJobRequest, createdBy, companyEmail string) (*model.Job, error) {
	requirements, _ := json.Marshal(req.Requirements)
	benefits, _ := json.Marshal(req.Benefits)

	job := &model.Job{
		Title:                    req.Title,
		Company:                  req.Company,
		CompanyEmail:             companyEmail,
		Location:                 req.Location,
		Type:                     req.Type,
		Salary:                   req.Salary,
		Stipend:                  req.Stipend,
		Description:              req.Description,
		Requirements:             requirements,
		Benefits:                 benefits,
		PostDate:                 time.Now().Format("2006_01_02"),
		LastDate:                 req.LastDate,
		MinimumAge:               req.MinimumAge,
		MaximumAge:               req.MaximumAge,
		QualificationEligibility: req.QualificationEligibility,
		JobLink:                  req.JobLink,
		IsActive:                 true,
		CreatedBy:                createdBy,
	}

	if err := s.JobRepo.Create(job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) GetJob(id string) (*model.Job, error) {
	job, err := s.JobRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrJobNotFound
	}
	return job, err
}

type UpdateJobRequest struct {
	Title                    *string        `json:"title"`
	Company                  *string        `json:"company"`
	Location                 *string        `json:"location"`
	Type                     *model.JobType `json:"type" binding:"omitempty,oneof=full-time part-time contract internship government"`
	Salary                   *string        `json:"salary"`
	Stipend                  *string        `json:"stipend"`
	Description              *string        `json:"description"`
	Requirements             []string       `json:"requirements"`
	Benefits                 []string       `json:"benefits"`
	LastDate                 *string        `json:"last_date"`
	MinimumAge               *int           `json:"minimum_age"`
	MaximumAge               *int           `json:"maximum_age"`
	QualificationEligibility *string        `json:"qualification_eligibility"`
	JobLink                  *string        `json:"job_link"`
	IsActive                 *bool          `json:"isActive"`
}

func (s *JobService) UpdateJob(id string, req UpdateJobRequest) (*model.Job, error) {
	job, err := s.GetJob(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Company != nil {
		job.Company = *req.Company
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Type != nil {
		job.Type = *req.Type
	}
	if req.Salary != nil {
		job.Salary = *req.Salary
	}
	if req.Stipend != nil {
		job.Stipend = *req.Stipend
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements, _ = json.Marshal(req.Requirements)
	}
	if req.Benefits != nil {
		job.Benefits, _ = json.Marshal(req.Benefits)
	}
	if req.LastDate != nil {
		job.LastDate = *req.LastDate
	}
	if req.MinimumAge != nil {
		job.MinimumAge = *req.MinimumAge
	}
	if req.MaximumAge != nil {
		job.MaximumAge = *req.MaximumAge
	}
	if req.QualificationEligibility != nil {
		job.QualificationEligibility = *req.QualificationEligibility
	}
	if req.JobLink != nil {
		job.JobLink = *req.JobLink
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}

	if err := s.JobRepo.Update(job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) DeleteJob(id string) error {
	if _, err := s.GetJob(id); err != nil {
		return err
	}
	return s.JobRepo.Delete(id)
}

func (s *JobService) ListJobs(filters repository.JobFilters) ([]model.Job, int64, error) {
	return s.JobRepo.List(filters)
}

// ListActiveJobs is the public listing; it never exposes inactive postings.
func (s *JobService) ListActiveJobs(filters repository.JobFilters) ([]model.Job, int64, error) {
	active := true
	filters.IsActive = &active
	return s.JobRepo.List(filters)
}

func (s *JobService) ListJobsByCompany(companyEmail string) ([]model.Job, error) {
	return s.JobRepo.ListByCompany(companyEmail)
}

func (s *JobService) UpdateApplicantCount(jobID string, delta int) error {
	if _, err := s.GetJob(jobID); err != nil {
		return err
	}
	return s.JobRepo.AddToApplicantCount(jobID, delta)
}

type JobStats struct {
	TotalJobs         int64                   `json:"totalJobs"`
	ActiveJobs        int64                   `json:"activeJobs"`
	TotalApplications int64                   `json:"totalApplications"`
	JobsByType        map[model.JobType]int64 `json:"jobsByType"`
	RecentJobs        []model.Job             `json:"recentJobs"`
}

func (s *JobService) Stats() (*JobStats, error) {
	total, err := s.JobRepo.Count()
	if err != nil {
		return nil, err
	}
	active, err := s.JobRepo.CountActive()
	if err != nil {
		return nil, err
	}
	applications, err := s.JobRepo.SumApplicantCounts()
	if err != nil {
		return nil, err
	}
	byType, err := s.JobRepo.CountByType()
	if err != nil {
		return nil, err
	}
	recent, err := s.JobRepo.Recent(5)
	if err != nil {
		return nil, err
	}

	return &JobStats{
		TotalJobs:         total,
		ActiveJobs:        active,
		TotalApplications: applications,
		JobsByType:        byType,
		RecentJobs:        recent,
	}, nil
}
