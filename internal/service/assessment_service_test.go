package service

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"jobsdoor_backend/internal/model"
	"jobsdoor_backend/internal/repository"
	"jobsdoor_backend/internal/util"
)

type fakeAssessmentStore struct {
	items map[string]*model.Assessment
}

func newFakeAssessmentStore() *fakeAssessmentStore {
	return &fakeAssessmentStore{items: make(map[string]*model.Assessment)}
}

func (s *fakeAssessmentStore) Create(a *model.Assessment) error {
	if a.ID == "" {
		a.ID = model.GenerateUUID()
	}
	for i := range a.Questions {
		if a.Questions[i].ID == "" {
			a.Questions[i].ID = model.GenerateUUID()
		}
	}
	cp := *a
	s.items[a.ID] = &cp
	return nil
}

func (s *fakeAssessmentStore) FindByID(id string) (*model.Assessment, error) {
	a, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (s *fakeAssessmentStore) List(filters repository.AssessmentFilters) ([]model.Assessment, int64, error) {
	var out []model.Assessment
	for _, a := range s.items {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (s *fakeAssessmentStore) Update(a *model.Assessment) error {
	cp := *a
	s.items[a.ID] = &cp
	return nil
}

func (s *fakeAssessmentStore) Delete(id string) error {
	delete(s.items, id)
	return nil
}

func (s *fakeAssessmentStore) Count() (int64, error) {
	return int64(len(s.items)), nil
}

type fakeAttemptStore struct {
	items map[string]*model.UserAssessment
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{items: make(map[string]*model.UserAssessment)}
}

func (s *fakeAttemptStore) Create(a *model.UserAssessment) error {
	if a.ID == "" {
		a.ID = model.GenerateUUID()
	}
	cp := *a
	s.items[a.ID] = &cp
	return nil
}

func (s *fakeAttemptStore) FindByID(id string) (*model.UserAssessment, error) {
	a, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (s *fakeAttemptStore) Update(a *model.UserAssessment) error {
	stored, ok := s.items[a.ID]
	if !ok || stored.Version != a.Version {
		return util.ErrAttemptConflict
	}
	cp := *a
	cp.Version++
	s.items[a.ID] = &cp
	a.Version++
	return nil
}

func (s *fakeAttemptStore) List(filters repository.AttemptFilters) ([]model.UserAssessment, int64, error) {
	var out []model.UserAssessment
	for _, a := range s.items {
		if filters.UserID != "" && a.UserID != filters.UserID {
			continue
		}
		if filters.Status != "" && a.Status != filters.Status {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func newTestService(t *testing.T) (*AssessmentService, *fakeAttemptStore, *time.Time) {
	t.Helper()
	current := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := NewAssessmentService(newFakeAssessmentStore(), newFakeAttemptStore())
	svc.now = func() time.Time { return current }
	return svc, svc.Attempts.(*fakeAttemptStore), &current
}

func rawString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

func rawStrings(ss ...string) json.RawMessage {
	b, _ := json.Marshal(ss)
	return b
}

func createDefinition(t *testing.T, svc *AssessmentService, questions []QuestionRequest, passingScore int) *model.Assessment {
	t.Helper()
	a, err := svc.CreateAssessment(CreateAssessmentRequest{
		Title:        "Go Fundamentals",
		Category:     "programming",
		Difficulty:   model.DifficultyMedium,
		TimeLimit:    30,
		PassingScore: passingScore,
		Questions:    questions,
	}, "admin-1")
	if err != nil {
		t.Fatalf("CreateAssessment: %v", err)
	}
	return a
}

func singleChoiceQuestions(n int) []QuestionRequest {
	qs := make([]QuestionRequest, n)
	for i := range qs {
		qs[i] = QuestionRequest{
			Type:          model.MultipleChoice,
			Question:      "pick a",
			Options:       []string{"a", "b"},
			CorrectAnswer: rawString("a"),
		}
	}
	return qs
}

func TestStartAssessmentUnknownDefinition(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.StartAssessment("missing", "user-1")
	if !errors.Is(err, util.ErrAssessmentNotFound) {
		t.Fatalf("err = %v, want ErrAssessmentNotFound", err)
	}
}

func TestStartAssessmentInactiveDefinition(t *testing.T) {
	svc, _, _ := newTestService(t)
	a := createDefinition(t, svc, singleChoiceQuestions(1), 50)

	inactive := false
	if _, err := svc.UpdateAssessment(a.ID, UpdateAssessmentRequest{IsActive: &inactive}); err != nil {
		t.Fatalf("UpdateAssessment: %v", err)
	}

	_, err := svc.StartAssessment(a.ID, "user-1")
	if !errors.Is(err, util.ErrAssessmentInactive) {
		t.Fatalf("err = %v, want ErrAssessmentInactive", err)
	}
}

func TestStartAssessmentSnapshotsTimeLimit(t *testing.T) {
	svc, _, now := newTestService(t)
	a := createDefinition(t, svc, singleChoiceQuestions(1), 50)

	attempt, err := svc.StartAssessment(a.ID, "user-1")
	if err != nil {
		t.Fatalf("StartAssessment: %v", err)
	}

	if attempt.Status != model.AttemptInProgress {
		t.Errorf("status = %q, want %q", attempt.Status, model.AttemptInProgress)
	}
	if attempt.TimeLimit != 30 {
		t.Errorf("time limit = %d, want 30", attempt.TimeLimit)
	}
	if !attempt.StartedAt.Equal(*now) {
		t.Errorf("started at = %v, want %v", attempt.StartedAt, *now)
	}

	// shortening the definition later must not affect the running attempt
	shorter := 5
	if _, err := svc.UpdateAssessment(a.ID, UpdateAssessmentRequest{TimeLimit: &shorter}); err != nil {
		t.Fatalf("UpdateAssessment: %v", err)
	}
	*now = now.Add(20 * time.Minute)
	if _, err := svc.SubmitAnswer(attempt.ID, a.Questions[0].ID, rawString("a")); err != nil {
		t.Fatalf("SubmitAnswer after definition edit: %v", err)
	}
}

func TestSubmitAnswerReplacesEarlierAnswer(t *testing.T) {
	svc, _, _ := newTestService(t)
	a := createDefinition(t, svc, singleChoiceQuestions(2), 50)

	attempt, err := svc.StartAssessment(a.ID, "user-1")
	if err != nil {
		t.Fatalf("StartAssessment: %v", err)
	}

	q0, q1 := a.Questions[0].ID, a.Questions[1].ID
	if _, err := svc.SubmitAnswer(attempt.ID, q0, rawString("b")); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if _, err := svc.SubmitAnswer(attempt.ID, q1, rawString("a")); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	updated, err := svc.SubmitAnswer(attempt.ID, q0, rawString("a"))
	if err != nil {
		t.Fatalf("SubmitAnswer replace: %v", err)
	}

	answers, err := decodeAnswers(updated.Answers)
	if err != nil {
		t.Fatalf("decodeAnswers: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("len(answers) = %d, want 2", len(answers))
	}
	var got string
	for _, ans := range answers {
		if ans.QuestionID == q0 {
			json.Unmarshal(ans.Answer, &got)
		}
	}
	if got != "a" {
		t.Errorf("answer for first question = %q, want replaced value \"a\"", got)
	}
}

func TestSubmitAnswerAfterTimeLimit(t *testing.T) {
	svc, attempts, now := newTestService(t)
	a := createDefinition(t, svc, singleChoiceQuestions(1), 50)

	attempt, err := svc.StartAssessment(a.ID, "user-1")
	if err != nil {
		t.Fatalf("StartAssessment: %v", err)
	}

	*now = now.Add(31 * time.Minute)

	_, err = svc.SubmitAnswer(attempt.ID, a.Questions[0].ID, rawString("a"))
	if !errors.Is(err, util.ErrTimeLimitExceeded) {
		t.Fatalf("err = %v, want ErrTimeLimitExceeded", err)
	}

	// rejection leaves the attempt untouched and in progress
	stored, _ := attempts.FindByID(attempt.ID)
	if stored.Status != model.AttemptInProgress {
		t.Errorf("status = %q, want in_progress", stored.Status)
	}
	if string(stored.Answers) != "[]" {
		t.Errorf("answers = %s, want unchanged []", stored.Answers)
	}
}

func TestSubmitAnswerExactlyAtTimeLimit(t *testing.T) {
	svc, _, now := newTestService(t)
	a := createDefinition(t, svc, singleChoiceQuestions(1), 50)

	attempt, err := svc.StartAssessment(a.ID, "user-1")
	if err != nil {
		t.Fatalf("StartAssessment: %v", err)
	}

	*now = now.Add(30 * time.Minute)

	if _, err := svc.SubmitAnswer(attempt.ID, a.Questions[0].ID, rawString("a")); err != nil {
		t.Fatalf("submission at the boundary should be accepted, got %v", err)
	}
}

func TestSubmitAnswerOnCompletedAttempt(t *testing.T) {
	svc, _, _ := newTestService(t)
	a := createDefinition(t, svc, singleChoiceQuestions(1), 50)

	attempt, _ := svc.StartAssessment(a.ID, "user-1")
	if _, err := svc.SubmitAssessment(attempt.ID); err != nil {
		t.Fatalf("SubmitAssessment: %v", err)
	}

	_, err := svc.SubmitAnswer(attempt.ID, a.Questions[0].ID, rawString("a"))
	if !errors.Is(err, util.ErrAttemptNotInProgress) {
		t.Fatalf("err = %v, want ErrAttemptNotInProgress", err)
	}
}

func TestUpdateAssessmentReplacesQuestions(t *testing.T) {
	svc, _, _ := newTestService(t)
	a := createDefinition(t, svc, singleChoiceQuestions(2), 50)

	updated, err := svc.UpdateAssessment(a.ID, UpdateAssessmentRequest{
		Questions: []QuestionRequest{{
			Type:          model.TrueFalse,
			Question:      "go has generics",
			CorrectAnswer: rawString("true"),
		}},
	})
	if err != nil {
		t.Fatalf("UpdateAssessment: %v", err)
	}
	if len(updated.Questions) != 1 {
		t.Fatalf("len(updated.Questions) = %d, want 1", len(updated.Questions))
	}

	stored, err := svc.GetAssessment(a.ID)
	if err != nil {
		t.Fatalf("GetAssessment: %v", err)
	}
	if len(stored.Questions) != 1 {
		t.Fatalf("after replacing the question set, len(stored.Questions) = %d, want 1", len(stored.Questions))
	}
	if stored.Questions[0].Question != "go has generics" {
		t.Errorf("question = %q, want the replacement question", stored.Questions[0].Question)
	}

	// Attempts started after the edit score against the replaced set only.
	attempt, err := svc.StartAssessment(a.ID, "user-1")
	if err != nil {
		t.Fatalf("StartAssessment: %v", err)
	}
	if _, err := svc.SubmitAnswer(attempt.ID, stored.Questions[0].ID, rawString("true")); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	result, err := svc.SubmitAssessment(attempt.ID)
	if err != nil {
		t.Fatalf("SubmitAssessment: %v", err)
	}
	if result.Score != 100 || result.TotalQuestions != 1 {
		t.Errorf("score = %d over %d questions, want 100 over 1", result.Score, result.TotalQuestions)
	}
}

func TestSubmitAssessmentScoring(t *testing.T) {
	questions := []QuestionRequest{
		{Type: model.MultipleChoice, Question: "q1", Options: []string{"a", "b"}, CorrectAnswer: rawString("a")},
		{Type: model.TrueFalse, Question: "q2", CorrectAnswer: rawString("true")},
		{Type: model.MultipleSelect, Question: "q3", Options: []string{"x", "y", "z"}, CorrectAnswer: rawStrings("x", "z")},
	}

	tests := []struct {
		name        string
		answers     []json.RawMessage // indexed by question, nil = unanswered
		wantScore   int
		wantCorrect int
		wantPassed  bool
	}{
		{
			name:        "all correct",
			answers:     []json.RawMessage{rawString("a"), rawString("true"), rawStrings("x", "z")},
			wantScore:   100,
			wantCorrect: 3,
			wantPassed:  true,
		},
		{
			name:        "multi-select order independent",
			answers:     []json.RawMessage{rawString("a"), rawString("true"), rawStrings("z", "x")},
			wantScore:   100,
			wantCorrect: 3,
			wantPassed:  true,
		},
		{
			// Sorting the selections does not collapse duplicates, so a
			// repeated option never matches the correct set.
			name:        "multi-select duplicates score incorrect",
			answers:     []json.RawMessage{rawString("a"), rawString("true"), rawStrings("x", "z", "z")},
			wantScore:   67,
			wantCorrect: 2,
			wantPassed:  true,
		},
		{
			name:        "one of three rounds to 33",
			answers:     []json.RawMessage{rawString("a"), rawString("false"), rawStrings("x")},
			wantScore:   33,
			wantCorrect: 1,
			wantPassed:  false,
		},
		{
			name:        "two of three rounds to 67",
			answers:     []json.RawMessage{rawString("a"), rawString("true"), rawStrings("x", "y")},
			wantScore:   67,
			wantCorrect: 2,
			wantPassed:  true,
		},
		{
			name:        "unanswered questions count toward total",
			answers:     []json.RawMessage{rawString("a"), nil, nil},
			wantScore:   33,
			wantCorrect: 1,
			wantPassed:  false,
		},
		{
			name:        "nothing answered",
			answers:     []json.RawMessage{nil, nil, nil},
			wantScore:   0,
			wantCorrect: 0,
			wantPassed:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t)
			a := createDefinition(t, svc, questions, 60)

			attempt, err := svc.StartAssessment(a.ID, "user-1")
			if err != nil {
				t.Fatalf("StartAssessment: %v", err)
			}

			for i, ans := range tt.answers {
				if ans == nil {
					continue
				}
				if _, err := svc.SubmitAnswer(attempt.ID, a.Questions[i].ID, ans); err != nil {
					t.Fatalf("SubmitAnswer(q%d): %v", i, err)
				}
			}

			result, err := svc.SubmitAssessment(attempt.ID)
			if err != nil {
				t.Fatalf("SubmitAssessment: %v", err)
			}

			if result.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", result.Score, tt.wantScore)
			}
			if result.CorrectAnswers != tt.wantCorrect {
				t.Errorf("correct = %d, want %d", result.CorrectAnswers, tt.wantCorrect)
			}
			if result.Passed != tt.wantPassed {
				t.Errorf("passed = %t, want %t", result.Passed, tt.wantPassed)
			}
			if result.TotalQuestions != len(questions) {
				t.Errorf("total = %d, want %d", result.TotalQuestions, len(questions))
			}
		})
	}
}

func TestFreeTextNeverScores(t *testing.T) {
	svc, _, _ := newTestService(t)
	a := createDefinition(t, svc, []QuestionRequest{
		{Type: model.FreeText, Question: "describe goroutines", CorrectAnswer: rawString("anything")},
	}, 50)

	attempt, _ := svc.StartAssessment(a.ID, "user-1")
	if _, err := svc.SubmitAnswer(attempt.ID, a.Questions[0].ID, rawString("anything")); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	result, err := svc.SubmitAssessment(attempt.ID)
	if err != nil {
		t.Fatalf("SubmitAssessment: %v", err)
	}
	if result.Score != 0 || result.CorrectAnswers != 0 {
		t.Errorf("free-text scored: score=%d correct=%d, want 0/0", result.Score, result.CorrectAnswers)
	}
}

func TestPassExactlyAtPassingScore(t *testing.T) {
	svc, _, _ := newTestService(t)
	// one of two correct gives 50, exactly the passing score
	a := createDefinition(t, svc, singleChoiceQuestions(2), 50)

	attempt, _ := svc.StartAssessment(a.ID, "user-1")
	if _, err := svc.SubmitAnswer(attempt.ID, a.Questions[0].ID, rawString("a")); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	result, err := svc.SubmitAssessment(attempt.ID)
	if err != nil {
		t.Fatalf("SubmitAssessment: %v", err)
	}
	if result.Score != 50 || !result.Passed {
		t.Errorf("score=%d passed=%t, want 50/true", result.Score, result.Passed)
	}
}

func TestSubmitAssessmentIsTerminal(t *testing.T) {
	svc, attempts, now := newTestService(t)
	a := createDefinition(t, svc, singleChoiceQuestions(1), 50)

	attempt, _ := svc.StartAssessment(a.ID, "user-1")
	result, err := svc.SubmitAssessment(attempt.ID)
	if err != nil {
		t.Fatalf("SubmitAssessment: %v", err)
	}
	if !result.CompletedAt.Equal(*now) {
		t.Errorf("completed at = %v, want %v", result.CompletedAt, *now)
	}

	stored, _ := attempts.FindByID(attempt.ID)
	if stored.Status != model.AttemptCompleted {
		t.Errorf("status = %q, want completed", stored.Status)
	}

	if _, err := svc.SubmitAssessment(attempt.ID); !errors.Is(err, util.ErrAttemptNotInProgress) {
		t.Fatalf("second submit err = %v, want ErrAttemptNotInProgress", err)
	}
}

func TestSubmitAssessmentAllowedAfterTimeLimit(t *testing.T) {
	// answers past the limit are rejected, but finalizing a timed-out
	// attempt still works and scores whatever was recorded in time
	svc, _, now := newTestService(t)
	a := createDefinition(t, svc, singleChoiceQuestions(1), 50)

	attempt, _ := svc.StartAssessment(a.ID, "user-1")
	if _, err := svc.SubmitAnswer(attempt.ID, a.Questions[0].ID, rawString("a")); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	*now = now.Add(2 * time.Hour)

	result, err := svc.SubmitAssessment(attempt.ID)
	if err != nil {
		t.Fatalf("SubmitAssessment: %v", err)
	}
	if result.Score != 100 {
		t.Errorf("score = %d, want 100", result.Score)
	}
}

func TestConcurrentUpdateConflict(t *testing.T) {
	svc, attempts, _ := newTestService(t)
	a := createDefinition(t, svc, singleChoiceQuestions(1), 50)

	attempt, _ := svc.StartAssessment(a.ID, "user-1")

	// a concurrent writer bumps the stored version between read and write
	stale, _ := attempts.FindByID(attempt.ID)
	if err := attempts.Update(stale); err != nil {
		t.Fatalf("priming update: %v", err)
	}

	err := attempts.Update(attempt)
	if !errors.Is(err, util.ErrAttemptConflict) {
		t.Fatalf("err = %v, want ErrAttemptConflict", err)
	}
}

func TestCandidateViewHidesAnswers(t *testing.T) {
	svc, _, _ := newTestService(t)
	a := createDefinition(t, svc, []QuestionRequest{
		{Type: model.MultipleChoice, Question: "q", Options: []string{"a", "b"}, CorrectAnswer: rawString("a"), Explanation: "because"},
	}, 50)

	view := CandidateView(a)
	encoded, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal view: %v", err)
	}
	for _, leaked := range []string{"correctAnswer", "explanation", "because"} {
		if strings.Contains(string(encoded), leaked) {
			t.Errorf("candidate view leaks %q: %s", leaked, encoded)
		}
	}
	if len(view.Questions) != 1 {
		t.Fatalf("len(questions) = %d, want 1", len(view.Questions))
	}
}
