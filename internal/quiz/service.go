package quiz

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Recorder is the audit sink; it may be nil when auditing is off.
type Recorder interface {
	Append(ctx context.Context, typ, key string, data interface{}) error
}

// Service enforces the submission lifecycle:
// unsubmitted -> submitted -> (auto_scored | pending_manual) -> finalized.
// There is no path back once finalized.
type Service struct {
	store  Store
	events Recorder

	NowFunc func() time.Time // mockable
}

func NewService(store Store, events Recorder) *Service {
	return &Service{store: store, events: events, NowFunc: time.Now}
}

// Submit records (or overwrites) a student's answers and auto-scores
// them when possible. It rejects submissions outside the quiz window
// and any attempt to overwrite a finalized submission.
func (s *Service) Submit(ctx context.Context, quizID, studentID string, answers map[string]interface{}) (Submission, error) {
	q, err := s.store.GetQuizFull(ctx, quizID)
	if err != nil {
		return Submission{}, err
	}

	now := s.NowFunc().Unix()
	if q.StartTime != nil && now < *q.StartTime {
		return Submission{}, ErrNotOpen
	}
	if q.EndTime != 0 && now > q.EndTime {
		return Submission{}, ErrExpired
	}

	prev, err := s.store.GetSubmission(ctx, quizID, studentID)
	switch {
	case err == nil:
		if prev.Finalized {
			return Submission{}, ErrFinalized
		}
	case errors.Is(err, ErrSubmissionNotFound):
		// first submission
	default:
		return Submission{}, err
	}

	if answers == nil {
		answers = map[string]interface{}{}
	}
	res := Grade(q.Scale, q.Questions, answers)
	sub := Submission{
		ID:          uuid.NewString(),
		QuizID:      quizID,
		StudentID:   studentID,
		Answers:     answers,
		Score:       res.Score,
		SubmittedAt: now,
	}
	saved, err := s.store.UpsertSubmission(ctx, sub)
	if err != nil {
		return Submission{}, err
	}
	s.record(ctx, "submission.received", quizID+"/"+studentID, map[string]interface{}{
		"quiz_id":    quizID,
		"student_id": studentID,
		"auto_score": res.Score,
		"has_open":   res.HasOpen,
	})
	return saved, nil
}

// GradeManually lets a grader set or overwrite the score. It always
// finalizes: the student-facing update path is closed afterwards.
func (s *Service) GradeManually(ctx context.Context, quizID, studentID string, score float64, comment string) (Submission, error) {
	sub, err := s.store.FinalizeGrade(ctx, quizID, studentID, score, comment)
	if err != nil {
		return Submission{}, err
	}
	s.record(ctx, "submission.graded", quizID+"/"+studentID, map[string]interface{}{
		"quiz_id":    quizID,
		"student_id": studentID,
		"score":      score,
	})
	return sub, nil
}

func (s *Service) record(ctx context.Context, typ, key string, data interface{}) {
	if s.events == nil {
		return
	}
	_ = s.events.Append(ctx, typ, key, data)
}
