package model

import "encoding/json"

type JobType string

const (
	FullTime   JobType = "full-time"
	PartTime   JobType = "part-time"
	Contract   JobType = "contract"
	Internship JobType = "internship"
	Government JobType = "government"
)

func (t JobType) Valid() bool {
	switch t {
	case FullTime, PartTime, Contract, Internship, Government:
		return true
	}
	return false
}

// swagger:model Job
type Job struct {
	UUIDBase
	Title                    string          `gorm:"size:255;not null" json:"title"`
	Company                  string          `gorm:"size:255;not null" json:"company"`
	CompanyEmail             string          `gorm:"size:100;index" json:"companyEmail"`
	Location                 string          `gorm:"size:255" json:"location"`
	Type                     JobType         `gorm:"size:20;default:'full-time'" json:"type"`
	Salary                   string          `gorm:"size:100" json:"salary,omitempty"`
	Stipend                  string          `gorm:"size:100" json:"stipend,omitempty"`
	Description              string          `gorm:"type:text" json:"description"`
	Requirements             json.RawMessage `gorm:"type:json" json:"requirements"`
	Benefits                 json.RawMessage `gorm:"type:json" json:"benefits,omitempty"`
	PostDate                 string          `gorm:"size:20" json:"post_date"`
	LastDate                 string          `gorm:"size:20" json:"last_date,omitempty"`
	MinimumAge               int             `gorm:"default:0" json:"minimum_age,omitempty"`
	MaximumAge               int             `gorm:"default:0" json:"maximum_age,omitempty"`
	QualificationEligibility string          `gorm:"size:255" json:"qualification_eligibility"`
	JobLink                  string          `gorm:"size:255" json:"job_link,omitempty"`
	IsActive                 bool            `gorm:"default:true" json:"isActive"`
	ApplicantCount           int             `gorm:"default:0" json:"applicantCount"`
	CreatedBy                string          `gorm:"size:36;index" json:"createdBy"`
}

func (Job) TableName() string {
	return "jobs"
}
