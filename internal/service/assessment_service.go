package service

import (
	"encoding/json"
	"math"
	"sort"
	"time"

	"jobsdoor_backend/internal/model"
	"jobsdoor_backend/internal/repository"
	"jobsdoor_backend/internal/util"
)

// AssessmentService owns assessment definitions and the lifecycle of a user's
// attempt: starting, recording answers under the time limit, and scoring on
// submission. Attempts move in_progress -> completed exactly once; a completed
// attempt is immutable.
type AssessmentService struct {
	Definitions repository.AssessmentRepository
	Attempts    repository.UserAssessmentRepository

	now func() time.Time
}

func NewAssessmentService(definitions repository.AssessmentRepository, attempts repository.UserAssessmentRepository) *AssessmentService {
	return &AssessmentService{
		Definitions: definitions,
		Attempts:    attempts,
		now:         time.Now,
	}
}

type QuestionRequest struct {
	Type          model.QuestionType `json:"type" binding:"required"`
	Question      string             `json:"question" binding:"required"`
	Options       []string           `json:"options"`
	CorrectAnswer json.RawMessage    `json:"correctAnswer"`
	Explanation   string             `json:"explanation"`
	Points        int                `json:"points"`
}

type CreateAssessmentRequest struct {
	Title        string            `json:"title" binding:"required"`
	Description  string            `json:"description"`
	Category     string            `json:"category" binding:"required"`
	Difficulty   model.Difficulty  `json:"difficulty" binding:"required,oneof=easy medium hard"`
	TimeLimit    int               `json:"timeLimit" binding:"required,min=1"`
	PassingScore int               `json:"passingScore" binding:"required,min=1,max=100"`
	Questions    []QuestionRequest `json:"questions" binding:"required"`
	IsActive     *bool             `json:"isActive"`
	Tags         []string          `json:"tags"`
}

func (s *AssessmentService) CreateAssessment(req CreateAssessmentRequest, creatorID string) (*model.Assessment, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	tags, _ := json.Marshal(req.Tags)

	a := &model.Assessment{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Difficulty:   req.Difficulty,
		TimeLimit:    req.TimeLimit,
		PassingScore: req.PassingScore,
		IsActive:     isActive,
		Tags:         tags,
		CreatedBy:    creatorID,
	}

	a.Questions = make([]model.AssessmentQuestion, len(req.Questions))
	for i, q := range req.Questions {
		points := q.Points
		if points < 1 {
			points = 1
		}
		options, _ := json.Marshal(q.Options)
		a.Questions[i] = model.AssessmentQuestion{
			Type:          q.Type,
			Question:      q.Question,
			Options:       options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Points:        points,
			Order:         i,
		}
	}

	if err := s.Definitions.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) GetAssessment(id string) (*model.Assessment, error) {
	a, err := s.Definitions.FindByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, util.ErrAssessmentNotFound
	}
	return a, nil
}

func (s *AssessmentService) ListAssessments(filters repository.AssessmentFilters) ([]model.Assessment, int64, error) {
	return s.Definitions.List(filters)
}

type UpdateAssessmentRequest struct {
	Title        *string           `json:"title"`
	Description  *string           `json:"description"`
	Category     *string           `json:"category"`
	Difficulty   *model.Difficulty `json:"difficulty"`
	TimeLimit    *int              `json:"timeLimit"`
	PassingScore *int              `json:"passingScore"`
	Questions    []QuestionRequest `json:"questions"`
	IsActive     *bool             `json:"isActive"`
	Tags         []string          `json:"tags"`
}

func (s *AssessmentService) UpdateAssessment(id string, req UpdateAssessmentRequest) (*model.Assessment, error) {
	a, err := s.GetAssessment(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.Category != nil {
		a.Category = *req.Category
	}
	if req.Difficulty != nil {
		a.Difficulty = *req.Difficulty
	}
	if req.TimeLimit != nil {
		a.TimeLimit = *req.TimeLimit
	}
	if req.PassingScore != nil {
		a.PassingScore = *req.PassingScore
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	if req.Tags != nil {
		a.Tags, _ = json.Marshal(req.Tags)
	}
	if req.Questions != nil {
		questions := make([]model.AssessmentQuestion, len(req.Questions))
		for i, q := range req.Questions {
			points := q.Points
			if points < 1 {
				points = 1
			}
			options, _ := json.Marshal(q.Options)
			questions[i] = model.AssessmentQuestion{
				AssessmentID:  a.ID,
				Type:          q.Type,
				Question:      q.Question,
				Options:       options,
				CorrectAnswer: q.CorrectAnswer,
				Explanation:   q.Explanation,
				Points:        points,
				Order:         i,
			}
		}
		a.Questions = questions
	}

	if err := s.Definitions.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) DeleteAssessment(id string) error {
	if _, err := s.GetAssessment(id); err != nil {
		return err
	}
	return s.Definitions.Delete(id)
}

// CandidateQuestion is the question shape served to test takers: no correct
// answer and no explanation.
type CandidateQuestion struct {
	ID       string             `json:"id"`
	Type     model.QuestionType `json:"type"`
	Question string             `json:"question"`
	Options  json.RawMessage    `json:"options,omitempty"`
	Points   int                `json:"points"`
	Order    int                `json:"order"`
}

type CandidateAssessment struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Category     string              `json:"category"`
	Difficulty   model.Difficulty    `json:"difficulty"`
	TimeLimit    int                 `json:"timeLimit"`
	PassingScore int                 `json:"passingScore"`
	Tags         json.RawMessage     `json:"tags,omitempty"`
	Questions    []CandidateQuestion `json:"questions"`
}

func CandidateView(a *model.Assessment) *CandidateAssessment {
	view := &CandidateAssessment{
		ID:           a.ID,
		Title:        a.Title,
		Description:  a.Description,
		Category:     a.Category,
		Difficulty:   a.Difficulty,
		TimeLimit:    a.TimeLimit,
		PassingScore: a.PassingScore,
		Tags:         a.Tags,
		Questions:    make([]CandidateQuestion, len(a.Questions)),
	}
	for i, q := range a.Questions {
		view.Questions[i] = CandidateQuestion{
			ID:       q.ID,
			Type:     q.Type,
			Question: q.Question,
			Options:  q.Options,
			Points:   q.Points,
			Order:    q.Order,
		}
	}
	return view
}

// StartAssessment creates a fresh in_progress attempt for the user. The
// definition's time limit is snapshotted onto the attempt. Nothing prevents a
// user from holding several concurrent attempts at the same definition.
func (s *AssessmentService) StartAssessment(assessmentID, userID string) (*model.UserAssessment, error) {
	a, err := s.Definitions.FindByID(assessmentID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, util.ErrAssessmentNotFound
	}
	if !a.IsActive {
		return nil, util.ErrAssessmentInactive
	}

	attempt := &model.UserAssessment{
		AssessmentID: assessmentID,
		UserID:       userID,
		Status:       model.AttemptInProgress,
		StartedAt:    s.now(),
		TimeLimit:    a.TimeLimit,
		Answers:      json.RawMessage("[]"),
		Score:        0,
		Passed:       false,
	}

	if err := s.Attempts.Create(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// SubmitAnswer records answer for questionID on the attempt, replacing any
// earlier answer to the same question. A submission past the time limit is
// rejected without touching the attempt; the attempt stays in_progress and
// the caller is expected to finalize it.
func (s *AssessmentService) SubmitAnswer(attemptID, questionID string, answer json.RawMessage) (*model.UserAssessment, error) {
	attempt, err := s.Attempts.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.Status != model.AttemptInProgress {
		return nil, util.ErrAttemptNotInProgress
	}

	elapsed := s.now().Sub(attempt.StartedAt)
	if elapsed > time.Duration(attempt.TimeLimit)*time.Minute {
		return nil, util.ErrTimeLimitExceeded
	}

	answers, err := decodeAnswers(attempt.Answers)
	if err != nil {
		return nil, err
	}

	entry := model.AttemptAnswer{
		QuestionID: questionID,
		Answer:     answer,
		AnsweredAt: s.now(),
	}

	replaced := false
	for i := range answers {
		if answers[i].QuestionID == questionID {
			answers[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		answers = append(answers, entry)
	}

	attempt.Answers, err = json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	if err := s.Attempts.Update(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// SubmitAssessment scores the attempt against its definition and transitions
// it to completed. The transition is terminal.
func (s *AssessmentService) SubmitAssessment(attemptID string) (*model.AssessmentResult, error) {
	attempt, err := s.Attempts.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.Status != model.AttemptInProgress {
		return nil, util.ErrAttemptNotInProgress
	}

	a, err := s.Definitions.FindByID(attempt.AssessmentID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, util.ErrAssessmentNotFound
	}

	answers, err := decodeAnswers(attempt.Answers)
	if err != nil {
		return nil, err
	}

	result := scoreAttempt(a, answers)
	now := s.now()

	attempt.Status = model.AttemptCompleted
	attempt.Score = result.Score
	attempt.Passed = result.Passed
	attempt.CompletedAt = &now

	if err := s.Attempts.Update(attempt); err != nil {
		return nil, err
	}

	result.AssessmentID = attempt.AssessmentID
	result.CompletedAt = now
	return result, nil
}

func (s *AssessmentService) GetUserAssessment(id string) (*model.UserAssessment, error) {
	attempt, err := s.Attempts.FindByID(id)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, util.ErrAttemptNotFound
	}
	return attempt, nil
}

func (s *AssessmentService) ListUserAssessments(filters repository.AttemptFilters) ([]model.UserAssessment, int64, error) {
	return s.Attempts.List(filters)
}

func decodeAnswers(raw json.RawMessage) ([]model.AttemptAnswer, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var answers []model.AttemptAnswer
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

// scoreAttempt walks every question in the definition; unanswered questions
// count toward the total but never toward the correct count. The score is an
// integer percentage with ordinary rounding.
func scoreAttempt(a *model.Assessment, answers []model.AttemptAnswer) *model.AssessmentResult {
	byQuestion := make(map[string]model.AttemptAnswer, len(answers))
	for _, ans := range answers {
		byQuestion[ans.QuestionID] = ans
	}

	correct := 0
	total := len(a.Questions)
	for i := range a.Questions {
		q := &a.Questions[i]
		if ans, ok := byQuestion[q.ID]; ok && answerIsCorrect(q, ans.Answer) {
			correct++
		}
	}

	score := 0
	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
	}

	return &model.AssessmentResult{
		Score:          score,
		Passed:         score >= a.PassingScore,
		CorrectAnswers: correct,
		TotalQuestions: total,
	}
}

// answerIsCorrect compares a submitted answer against the question's correct
// answer. Multi-select comparison is order-independent but not deduplicated:
// sorted copies must match element for element. Free-text questions have no
// evaluator and always score incorrect.
func answerIsCorrect(q *model.AssessmentQuestion, answer json.RawMessage) bool {
	switch q.Type {
	case model.MultipleChoice, model.TrueFalse:
		var got, want string
		if json.Unmarshal(answer, &got) != nil {
			return false
		}
		if json.Unmarshal(q.CorrectAnswer, &want) != nil {
			return false
		}
		return got == want
	case model.MultipleSelect:
		var got, want []string
		if json.Unmarshal(answer, &got) != nil {
			return false
		}
		if json.Unmarshal(q.CorrectAnswer, &want) != nil {
			return false
		}
		return equalSorted(got, want)
	default:
		return false
	}
}

func equalSorted(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
