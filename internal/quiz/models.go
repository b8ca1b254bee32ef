package quiz

import (
	"fmt"
	"math"
	"strconv"
)

type QuestionType string

const (
	QTypeSingleChoice QuestionType = "single_choice"
	QTypeBoolean      QuestionType = "boolean"
	QTypeOpen         QuestionType = "open"
)

// Question keeps the loosely-typed fields (points, correct answers) as
// interface{} so a single malformed field in stored JSON degrades per
// question instead of discarding the whole quiz.
type Question struct {
	Type          QuestionType `json:"type"`
	Prompt        string       `json:"prompt,omitempty"`
	Options       []string     `json:"options,omitempty"`
	Points        interface{}  `json:"points,omitempty"`
	CorrectOption interface{}  `json:"correct_option,omitempty"`
	CorrectBool   interface{}  `json:"correct_boolean,omitempty"`
}

// PointsOrDefault coerces the stored point value; missing or
// non-numeric points count as 1.
func (q Question) PointsOrDefault() float64 {
	switch v := q.Points.(type) {
	case float64:
		if v > 0 {
			return v
		}
	case int:
		if v > 0 {
			return float64(v)
		}
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return 1
}

type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Scale     float64    `json:"scale"`
	Questions []Question `json:"questions"`
	StartTime *int64     `json:"start_time,omitempty"` // unix seconds; optional
	EndTime   int64      `json:"end_time"`             // unix seconds; mandatory
	CreatedBy string     `json:"created_by,omitempty"`
	CreatedAt int64      `json:"created_at,omitempty"`
}

type Submission struct {
	ID          string                 `json:"id"`
	QuizID      string                 `json:"quiz_id"`
	StudentID   string                 `json:"student_id"`
	Answers     map[string]interface{} `json:"answers"` // question index (string) -> answer
	Score       *float64               `json:"score"`   // nil until auto-scored or manually graded
	SubmittedAt int64                  `json:"submitted_at"`
	Finalized   bool                   `json:"finalized"`
	CorrectedAt *int64                 `json:"corrected_at,omitempty"`
	Comment     string                 `json:"comment,omitempty"`
}

// ValidationError is a recoverable, user-facing input error.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// Validate enforces the creation-time contract: known question types,
// positive points, answer keys on auto-gradable questions, and a points
// sum equal to the scale. Mismatches are errors, never silently fixed.
func (q Quiz) Validate() error {
	if q.Title == "" {
		return ValidationError("title is required")
	}
	if q.Scale <= 0 {
		return ValidationError("scale must be positive")
	}
	if q.EndTime == 0 {
		return ValidationError("end_time is required")
	}
	if q.StartTime != nil && *q.StartTime >= q.EndTime {
		return ValidationError("start_time must be before end_time")
	}
	var sum float64
	for i, question := range q.Questions {
		// stored legacy data is read leniently, but new quizzes must
		// carry numeric positive points
		switch v := question.Points.(type) {
		case nil:
		case float64:
			if v <= 0 {
				return ValidationError(fmt.Sprintf("question %d: points must be positive", i))
			}
		case int:
			if v <= 0 {
				return ValidationError(fmt.Sprintf("question %d: points must be positive", i))
			}
		default:
			return ValidationError(fmt.Sprintf("question %d: points must be a number", i))
		}
		switch question.Type {
		case QTypeSingleChoice:
			if question.CorrectOption == nil {
				return ValidationError(fmt.Sprintf("question %d: correct_option is required", i))
			}
		case QTypeBoolean:
			if question.CorrectBool == nil {
				return ValidationError(fmt.Sprintf("question %d: correct_boolean is required", i))
			}
		case QTypeOpen:
			// graded manually
		default:
			return ValidationError(fmt.Sprintf("question %d: unknown type %q", i, question.Type))
		}
		pts := question.PointsOrDefault()
		sum += pts
	}
	if len(q.Questions) > 0 && math.Abs(sum-q.Scale) > 1e-9 {
		return ValidationError(fmt.Sprintf("question points sum to %g, scale is %g", sum, q.Scale))
	}
	return nil
}

// StripAnswerKeys returns a student-safe copy with correct answers
// removed.
func (q Quiz) StripAnswerKeys() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		question.CorrectOption = nil
		question.CorrectBool = nil
		out.Questions[i] = question
	}
	return out
}
