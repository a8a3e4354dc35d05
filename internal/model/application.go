package model

import "time"

type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationReviewed    ApplicationStatus = "reviewed"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationHired       ApplicationStatus = "hired"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationReviewed, ApplicationShortlisted, ApplicationRejected, ApplicationHired:
		return true
	}
	return false
}

// JobApplication records one candidate's application to one job. The applicant
// name and CV are snapshotted at apply time.
// swagger:model JobApplication
type JobApplication struct {
	UUIDBase
	JobID          string            `gorm:"size:36;index;not null" json:"jobId"`
	ApplicantEmail string            `gorm:"size:100;index;not null" json:"applicantEmail"`
	ApplicantName  string            `gorm:"size:200" json:"applicantName"`
	Status         ApplicationStatus `gorm:"size:20;default:'pending'" json:"status"`
	CV             string            `gorm:"size:255" json:"cv,omitempty"`
	CoverLetter    string            `gorm:"type:text" json:"coverLetter,omitempty"`
	ReviewedAt     *time.Time        `json:"reviewedAt,omitempty"`
	ReviewedBy     string            `gorm:"size:100" json:"reviewedBy,omitempty"`
	Notes          string            `gorm:"type:text" json:"notes,omitempty"`
}

func (JobApplication) TableName() string {
	return "job_applications"
}
