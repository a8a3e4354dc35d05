package service

import (
	"errors"
	"time"

	"jobsdoor_backend/internal/model"
	"jobsdoor_backend/internal/repository"
	"jobsdoor_backend/internal/util"

	"gorm.io/gorm"
)

type ApplicationService struct {
	AppRepo *repository.ApplicationRepository
	JobSvc  *JobService
}

func NewApplicationService(appRepo *repository.ApplicationRepository, jobSvc *JobService) *ApplicationService {
	return &ApplicationService{
		AppRepo: appRepo,
		JobSvc:  jobSvc,
	}
}

type CreateApplicationRequest struct {
	JobID       string `json:"jobId" binding:"required"`
	CoverLetter string `json:"coverLetter"`
}

// Apply files an application for user against the job. The job must exist and
// be active, and a user may apply to a given job at most once. The applicant's
// name and CV are snapshotted onto the application.
func (s *ApplicationService) Apply(req CreateApplicationRequest, user *model.User) (*model.JobApplication, error) {
	job, err := s.JobSvc.GetJob(req.JobID)
	if err != nil {
		return nil, err
	}
	if !job.IsActive {
		return nil, util.ErrJobInactive
	}

	existing, err := s.AppRepo.FindByJobAndEmail(req.JobID, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrAlreadyApplied
	}

	app := &model.JobApplication{
		JobID:          req.JobID,
		ApplicantEmail: user.Email,
		ApplicantName:  user.FullName(),
		Status:         model.ApplicationPending,
		CV:             user.CV,
		CoverLetter:    req.CoverLetter,
	}

	if err := s.AppRepo.Create(app); err != nil {
		return nil, err
	}

	if err := s.JobSvc.UpdateApplicantCount(req.JobID, 1); err != nil {
		return nil, err
	}

	return app, nil
}

func (s *ApplicationService) GetApplication(id string) (*model.JobApplication, error) {
	app, err := s.AppRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrApplicationNotFound
	}
	return app, err
}

type UpdateStatusRequest struct {
	Status model.ApplicationStatus `json:"status" binding:"required,oneof=pending reviewed shortlisted rejected hired"`
	Notes  string                  `json:"notes"`
}

func (s *ApplicationService) UpdateStatus(id string, req UpdateStatusRequest, reviewedBy string) (*model.JobApplication, error) {
	app, err := s.GetApplication(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	app.Status = req.Status
	app.ReviewedAt = &now
	app.ReviewedBy = reviewedBy
	if req.Notes != "" {
		app.Notes = req.Notes
	}

	if err := s.AppRepo.Update(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) ListForJob(jobID string, page, limit int) ([]model.JobApplication, int64, error) {
	return s.AppRepo.ListByJob(jobID, page, limit)
}

func (s *ApplicationService) ListForUser(applicantEmail string, page, limit int) ([]model.JobApplication, int64, error) {
	return s.AppRepo.ListByUser(applicantEmail, page, limit)
}

func (s *ApplicationService) ListForCompany(companyEmail string, page, limit int) ([]model.JobApplication, int64, error) {
	return s.AppRepo.ListByCompany(companyEmail, page, limit)
}

func (s *ApplicationService) DeleteApplication(id string) error {
	app, err := s.GetApplication(id)
	if err != nil {
		return err
	}

	if err := s.AppRepo.Delete(id); err != nil {
		return err
	}

	// Job may already be gone; the count only matters while it exists.
	_ = s.JobSvc.UpdateApplicantCount(app.JobID, -1)
	return nil
}

type ApplicationStats struct {
	TotalApplications  int64                             `json:"totalApplications"`
	ByStatus           map[model.ApplicationStatus]int64 `json:"byStatus"`
	RecentApplications []model.JobApplication            `json:"recentApplications"`
}

func (s *ApplicationService) Stats() (*ApplicationStats, error) {
	total, err := s.AppRepo.Count()
	if err != nil {
		return nil, err
	}
	byStatus, err := s.AppRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	recent, err := s.AppRepo.Recent(5)
	if err != nil {
		return nil, err
	}

	return &ApplicationStats{
		TotalApplications:  total,
		ByStatus:           byStatus,
		RecentApplications: recent,
	}, nil
}
