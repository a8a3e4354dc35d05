package model

import (
	"encoding/json"
	"time"
)

type UserRole string

const (
	Candidate   UserRole = "candidate"
	Employer    UserRole = "employer"
	Admin       UserRole = "admin"
	MasterAdmin UserRole = "master_admin"
)

// Valid reports whether r is one of the declared roles. Role checks go through
// this closed set instead of comparing raw strings per route.
func (r UserRole) Valid() bool {
	switch r {
	case Candidate, Employer, Admin, MasterAdmin:
		return true
	}
	return false
}

// IsAdmin treats master_admin as a superset of admin.
func (r UserRole) IsAdmin() bool {
	return r == Admin || r == MasterAdmin
}

// swagger:model User
type User struct {
	UUIDBase
	Email         string    `gorm:"size:100;unique;not null" json:"email"`
	Password      string    `gorm:"size:100;not null" json:"-"`
	FirstName     string    `gorm:"size:100;not null" json:"firstName"`
	LastName      string    `gorm:"size:100" json:"lastName,omitempty"`
	PhoneNo       string    `gorm:"size:20" json:"phoneNo,omitempty"`
	DOB           string    `gorm:"size:20" json:"dob,omitempty"`
	Gender        string    `gorm:"size:10" json:"gender,omitempty"`
	Image         string    `gorm:"size:255" json:"image,omitempty"`
	CV            string    `gorm:"size:255" json:"cv,omitempty"`
	CompanyLogo   string    `gorm:"size:255" json:"companyLogo,omitempty"`
	Role          UserRole  `gorm:"type:enum('candidate','employer','admin','master_admin');default:'candidate'" json:"role"`
	EmailVerified bool      `gorm:"default:false" json:"emailVerified"`
	LastLogin     time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Lead is the marketing record written alongside every registration.
type Lead struct {
	BaseModel
	FullName    string          `gorm:"size:200;not null" json:"full_name"`
	PhoneNumber string          `gorm:"size:20" json:"phonenumber"`
	Email       string          `gorm:"size:100;index" json:"email"`
	ApplyingFor json.RawMessage `gorm:"type:json" json:"applying_for,omitempty"`
	CreatedBy   string          `gorm:"size:100" json:"created_by"`
}

func (Lead) TableName() string {
	return "leads"
}

type ConsultancyRemark struct {
	BaseModel
	UserEmail string `gorm:"size:100;index;not null" json:"userEmail"`
	Remark    string `gorm:"type:text;not null" json:"remark"`
	AddedBy   string `gorm:"size:100" json:"addedBy"`
}

func (ConsultancyRemark) TableName() string {
	return "consultancy_remarks"
}
