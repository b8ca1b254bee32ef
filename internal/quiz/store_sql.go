package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) PutQuiz(ctx context.Context, q Quiz) error {
	qj, err := EncodeQuestions(q.Scale, q.Questions)
	if err != nil {
		return err
	}
	createdAt := q.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().Unix()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quizzes (id,title,questions_json,start_time,end_time,created_by,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, questions_json=EXCLUDED.questions_json,
		  start_time=EXCLUDED.start_time, end_time=EXCLUDED.end_time`,
		q.ID, q.Title, string(qj), q.StartTime, q.EndTime, q.CreatedBy, createdAt)
	return err
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	q, err := s.GetQuizFull(ctx, id)
	if err != nil {
		return Quiz{}, err
	}
	return q.StripAnswerKeys(), nil
}

func (s *SQLStore) GetQuizFull(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,title,questions_json,start_time,end_time,created_by,created_at FROM quizzes WHERE id=$1`, id)
	return scanQuiz(row.Scan)
}

func (s *SQLStore) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,title,questions_json,start_time,end_time,created_by,created_at FROM quizzes ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Quiz
	for rows.Next() {
		q, err := scanQuiz(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func scanQuiz(scan func(dest ...interface{}) error) (Quiz, error) {
	var q Quiz
	var qjson string
	if err := scan(&q.ID, &q.Title, &qjson, &q.StartTime, &q.EndTime, &q.CreatedBy, &q.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrQuizNotFound
		}
		return Quiz{}, err
	}
	// lenient read: a corrupt container means an empty question list
	q.Scale, q.Questions = ParseQuestions([]byte(qjson))
	return q, nil
}

func (s *SQLStore) UpsertSubmission(ctx context.Context, sub Submission) (Submission, error) {
	aj, err := json.Marshal(sub.Answers)
	if err != nil {
		return Submission{}, err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO submissions (id,quiz_id,student_id,answers_json,score,submitted_at,finalized,corrected_at,comment)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (quiz_id,student_id) DO UPDATE SET
		  answers_json=EXCLUDED.answers_json, score=EXCLUDED.score, submitted_at=EXCLUDED.submitted_at`,
		sub.ID, sub.QuizID, sub.StudentID, string(aj), sub.Score, sub.SubmittedAt, sub.Finalized, sub.CorrectedAt, sub.Comment)
	if err != nil {
		return Submission{}, err
	}
	return s.GetSubmission(ctx, sub.QuizID, sub.StudentID)
}

func (s *SQLStore) GetSubmission(ctx context.Context, quizID, studentID string) (Submission, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,quiz_id,student_id,answers_json,score,submitted_at,finalized,corrected_at,comment
		FROM submissions WHERE quiz_id=$1 AND student_id=$2`, quizID, studentID)
	return scanSubmission(row.Scan)
}

func (s *SQLStore) ListSubmissions(ctx context.Context, quizID string) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,quiz_id,student_id,answers_json,score,submitted_at,finalized,corrected_at,comment
		FROM submissions WHERE quiz_id=$1 ORDER BY submitted_at DESC`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Submission
	for rows.Next() {
		sub, err := scanSubmission(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (s *SQLStore) FinalizeGrade(ctx context.Context, quizID, studentID string, score float64, comment string) (Submission, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE submissions SET score=$1, finalized=TRUE, corrected_at=$2, comment=$3
		WHERE quiz_id=$4 AND student_id=$5`,
		score, time.Now().Unix(), comment, quizID, studentID)
	if err != nil {
		return Submission{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Submission{}, err
	}
	if n == 0 {
		return Submission{}, ErrSubmissionNotFound
	}
	return s.GetSubmission(ctx, quizID, studentID)
}

func scanSubmission(scan func(dest ...interface{}) error) (Submission, error) {
	var sub Submission
	var ajson string
	if err := scan(&sub.ID, &sub.QuizID, &sub.StudentID, &ajson, &sub.Score, &sub.SubmittedAt, &sub.Finalized, &sub.CorrectedAt, &sub.Comment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Submission{}, ErrSubmissionNotFound
		}
		return Submission{}, err
	}
	if err := json.Unmarshal([]byte(ajson), &sub.Answers); err != nil {
		sub.Answers = map[string]interface{}{}
	}
	return sub, nil
}
