package model

import (
	"encoding/json"
	"time"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
	// AttemptAbandoned is a declared status with no code path producing it:
	// a timed-out attempt stays in_progress until the caller submits it.
	AttemptAbandoned AttemptStatus = "abandoned"
)

// UserAssessment is one user's attempt at one assessment. TimeLimit is copied
// from the definition at start time so later edits to the definition do not
// affect an attempt already underway. Answers holds an encoded
// []AttemptAnswer, keyed by question id with last write winning.
// swagger:model UserAssessment
type UserAssessment struct {
	UUIDBase
	AssessmentID string          `gorm:"size:36;index;not null" json:"assessmentId"`
	UserID       string          `gorm:"size:36;index;not null" json:"userId"`
	Status       AttemptStatus   `gorm:"size:20;default:'in_progress'" json:"status"`
	StartedAt    time.Time       `json:"startedAt"`
	CompletedAt  *time.Time      `json:"completedAt,omitempty"`
	TimeLimit    int             `gorm:"default:0" json:"timeLimit"` // minutes, snapshotted
	Answers      json.RawMessage `gorm:"type:json" json:"answers"`
	Score        int             `gorm:"default:0" json:"score"`
	Passed       bool            `gorm:"default:false" json:"passed"`
	// Version guards the read-modify-write cycle on this document; every
	// update is a compare-and-swap against it.
	Version int `gorm:"default:0" json:"-"`
}

func (UserAssessment) TableName() string {
	return "user_assessments"
}

// AttemptAnswer is embedded in UserAssessment.Answers; it is not addressable
// outside its parent attempt.
type AttemptAnswer struct {
	QuestionID string          `json:"questionId"`
	Answer     json.RawMessage `json:"answer"`
	AnsweredAt time.Time       `json:"answeredAt"`
}

// swagger:model AssessmentResult
type AssessmentResult struct {
	Score          int       `json:"score"`
	Passed         bool      `json:"passed"`
	CorrectAnswers int       `json:"correctAnswers"`
	TotalQuestions int       `json:"totalQuestions"`
	AssessmentID   string    `json:"assessmentId"`
	CompletedAt    time.Time `json:"completedAt"`
}
