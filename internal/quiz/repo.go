package quiz

import (
	"context"
	"errors"
)

var (
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrNotOpen / ErrExpired are the time-window rejections.
	ErrNotOpen = errors.New("quiz is not open yet")
	ErrExpired = errors.New("quiz window has expired")

	// ErrFinalized guards graded submissions from student overwrites.
	ErrFinalized = errors.New("submission is finalized")
)

type Store interface {
	// PutQuiz inserts or replaces by id.
	PutQuiz(ctx context.Context, q Quiz) error
	// GetQuiz is the student-safe read: answer keys stripped.
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	// GetQuizFull keeps answer keys, for grading and teacher views.
	GetQuizFull(ctx context.Context, id string) (Quiz, error)
	ListQuizzes(ctx context.Context) ([]Quiz, error)

	// UpsertSubmission inserts or replaces by (quiz_id, student_id);
	// a resubmission before the deadline overwrites, never duplicates.
	UpsertSubmission(ctx context.Context, sub Submission) (Submission, error)
	GetSubmission(ctx context.Context, quizID, studentID string) (Submission, error)
	ListSubmissions(ctx context.Context, quizID string) ([]Submission, error)

	// FinalizeGrade sets the score unconditionally, marks the
	// submission finalized and stamps corrected_at.
	FinalizeGrade(ctx context.Context, quizID, studentID string, score float64, comment string) (Submission, error)
}
