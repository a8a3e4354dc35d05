package model

import "encoding/json"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	MultipleSelect QuestionType = "multiple_select"
	TrueFalse      QuestionType = "true_false"
	FreeText       QuestionType = "text"
)

// Assessment is the authored definition of a skill test. It is owned by an
// admin and never mutated by a running attempt; attempts snapshot what they
// need at start time.
// swagger:model Assessment
type Assessment struct {
	UUIDBase
	Title        string               `gorm:"size:255;not null" json:"title"`
	Description  string               `gorm:"type:text" json:"description"`
	Category     string               `gorm:"size:100;index" json:"category"`
	Difficulty   Difficulty           `gorm:"size:10;index" json:"difficulty"`
	TimeLimit    int                  `gorm:"default:0" json:"timeLimit"`    // minutes
	PassingScore int                  `gorm:"default:0" json:"passingScore"` // percentage, 1-100
	IsActive     bool                 `gorm:"default:true" json:"isActive"`
	Tags         json.RawMessage      `gorm:"type:json" json:"tags,omitempty"`
	CreatedBy    string               `gorm:"size:36;index" json:"createdBy"`
	Questions    []AssessmentQuestion `gorm:"foreignKey:AssessmentID" json:"questions,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// swagger:model AssessmentQuestion
type AssessmentQuestion struct {
	UUIDBase
	AssessmentID string          `gorm:"size:36;index;not null" json:"assessmentId"`
	Type         QuestionType    `gorm:"size:20;not null" json:"type"`
	Question     string          `gorm:"type:text;not null" json:"question"`
	Options      json.RawMessage `gorm:"type:json" json:"options,omitempty"`
	// CorrectAnswer holds a JSON string for multiple_choice/true_false and a
	// JSON string array for multiple_select.
	CorrectAnswer json.RawMessage `gorm:"type:json" json:"correctAnswer,omitempty"`
	Explanation   string          `gorm:"type:text" json:"explanation,omitempty"`
	Points        int             `gorm:"default:1" json:"points"`
	Order         int             `gorm:"default:0" json:"order"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}
