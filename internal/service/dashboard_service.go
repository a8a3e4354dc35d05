package service

import (
	"jobsdoor_backend/internal/model"
	"jobsdoor_backend/internal/repository"
)

// DashboardStats is the aggregate snapshot served to the admin dashboard.
type DashboardStats struct {
	Users struct {
		Total  int64                    `json:"total"`
		ByRole map[model.UserRole]int64 `json:"byRole"`
		Recent []model.User             `json:"recent"`
	} `json:"users"`
	Jobs struct {
		Total  int64                   `json:"total"`
		Active int64                   `json:"active"`
		ByType map[model.JobType]int64 `json:"byType"`
		Recent []model.Job             `json:"recent"`
	} `json:"jobs"`
	Applications struct {
		Total    int64                             `json:"total"`
		ByStatus map[model.ApplicationStatus]int64 `json:"byStatus"`
		Recent   []model.JobApplication            `json:"recent"`
	} `json:"applications"`
	Assessments struct {
		Total int64 `json:"total"`
	} `json:"assessments"`
}

type DashboardService struct {
	Users        *repository.UserRepository
	Jobs         *repository.JobRepository
	Applications *repository.ApplicationRepository
	Assessments  repository.AssessmentRepository
}

func NewDashboardService(users *repository.UserRepository, jobs *repository.JobRepository, applications *repository.ApplicationRepository, assessments repository.AssessmentRepository) *DashboardService {
	return &DashboardService{
		Users:        users,
		Jobs:         jobs,
		Applications: applications,
		Assessments:  assessments,
	}
}

const recentLimit = 5

// Stats collects totals across every domain. The queries run sequentially;
// the dashboard is an admin page and the counts are cheap.
func (s *DashboardService) Stats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.Users.Total, err = s.Users.Count(); err != nil {
		return nil, err
	}
	stats.Users.ByRole = make(map[model.UserRole]int64, 4)
	for _, role := range []model.UserRole{model.Candidate, model.Employer, model.Admin, model.MasterAdmin} {
		n, err := s.Users.CountByRole(role)
		if err != nil {
			return nil, err
		}
		stats.Users.ByRole[role] = n
	}
	if stats.Users.Recent, err = s.Users.Recent(recentLimit); err != nil {
		return nil, err
	}

	if stats.Jobs.Total, err = s.Jobs.Count(); err != nil {
		return nil, err
	}
	if stats.Jobs.Active, err = s.Jobs.CountActive(); err != nil {
		return nil, err
	}
	if stats.Jobs.ByType, err = s.Jobs.CountByType(); err != nil {
		return nil, err
	}
	if stats.Jobs.Recent, err = s.Jobs.Recent(recentLimit); err != nil {
		return nil, err
	}

	if stats.Applications.Total, err = s.Applications.Count(); err != nil {
		return nil, err
	}
	if stats.Applications.ByStatus, err = s.Applications.CountByStatus(); err != nil {
		return nil, err
	}
	if stats.Applications.Recent, err = s.Applications.Recent(recentLimit); err != nil {
		return nil, err
	}

	if stats.Assessments.Total, err = s.Assessments.Count(); err != nil {
		return nil, err
	}

	return stats, nil
}
