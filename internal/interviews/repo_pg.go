package interviews

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements InterviewsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new interview.
func (r *PGRepo) Create(ctx context.Context, iv Interview) error {
	const query = `
INSERT INTO interviews (id, user_id, resume_id, title, status, started_at, ended_at, duration_minutes, overall_score, overall_feedback, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.DB.ExecContext(
		ctx,
		query,
		iv.ID,
		iv.UserID,
		iv.ResumeID,
		iv.Title,
		iv.Status,
		iv.StartedAt,
		iv.EndedAt,
		iv.DurationMinutes,
		iv.OverallScore,
		iv.OverallFeedback,
		iv.CreatedAt,
	)
	return err
}

// GetByID fetches an interview by ID.
func (r *PGRepo) GetByID(ctx context.Context, interviewID string) (Interview, error) {
	const query = `
SELECT id, user_id, resume_id, title, status, started_at, ended_at, duration_minutes, overall_score, overall_feedback, created_at
FROM interviews
WHERE id = $1
LIMIT 1`
	var iv Interview
	var startedAt, endedAt sql.NullTime
	var duration sql.NullInt64
	var score sql.NullFloat64
	var feedback sql.NullString
	err := r.DB.QueryRowContext(ctx, query, interviewID).Scan(
		&iv.ID,
		&iv.UserID,
		&iv.ResumeID,
		&iv.Title,
		&iv.Status,
		&startedAt,
		&endedAt,
		&duration,
		&score,
		&feedback,
		&iv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Interview{}, ErrNotFound
		}
		return Interview{}, err
	}
	if startedAt.Valid {
		iv.StartedAt = &startedAt.Time
	}
	if endedAt.Valid {
		iv.EndedAt = &endedAt.Time
	}
	if duration.Valid {
		iv.DurationMinutes = &duration.Int64
	}
	if score.Valid {
		iv.OverallScore = &score.Float64
	}
	if feedback.Valid {
		iv.OverallFeedback = &feedback.String
	}
	return iv, nil
}

// ListByUser lists interviews ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Interview, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, resume_id, title, status, started_at, ended_at, duration_minutes, overall_score, overall_feedback, created_at
FROM interviews
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Interview
	for rows.Next() {
		var iv Interview
		var startedAt, endedAt sql.NullTime
		var duration sql.NullInt64
		var score sql.NullFloat64
		var feedback sql.NullString
		if err := rows.Scan(
			&iv.ID,
			&iv.UserID,
			&iv.ResumeID,
			&iv.Title,
			&iv.Status,
			&startedAt,
			&endedAt,
			&duration,
			&score,
			&feedback,
			&iv.CreatedAt,
		); err != nil {
			return nil, err
		}
		if startedAt.Valid {
			iv.StartedAt = &startedAt.Time
		}
		if endedAt.Valid {
			iv.EndedAt = &endedAt.Time
		}
		if duration.Valid {
			iv.DurationMinutes = &duration.Int64
		}
		if score.Valid {
			iv.OverallScore = &score.Float64
		}
		if feedback.Valid {
			iv.OverallFeedback = &feedback.String
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

// Update writes the full interview row.
func (r *PGRepo) Update(ctx context.Context, iv Interview) error {
	const query = `
UPDATE interviews
SET status = $1, started_at = $2, ended_at = $3, duration_minutes = $4, overall_score = $5, overall_feedback = $6
WHERE id = $7`
	res, err := r.DB.ExecContext(
		ctx,
		query,
		iv.Status,
		iv.StartedAt,
		iv.EndedAt,
		iv.DurationMinutes,
		iv.OverallScore,
		iv.OverallFeedback,
		iv.ID,
	)
	if err != nil {
		return err
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertAnswer stores the answer, replacing an earlier answer to the same question.
func (r *PGRepo) UpsertAnswer(ctx context.Context, ans Answer) error {
	const query = `
INSERT INTO answers (id, interview_id, question_id, answer_text, audio_file_path, duration_seconds, score, feedback, strengths, improvements, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (interview_id, question_id) DO UPDATE SET
  answer_text = EXCLUDED.answer_text,
  audio_file_path = EXCLUDED.audio_file_path,
  duration_seconds = EXCLUDED.duration_seconds,
  score = EXCLUDED.score,
  feedback = EXCLUDED.feedback,
  strengths = EXCLUDED.strengths,
  improvements = EXCLUDED.improvements,
  created_at = EXCLUDED.created_at`
	_, err := r.DB.ExecContext(
		ctx,
		query,
		ans.ID,
		ans.InterviewID,
		ans.QuestionID,
		ans.AnswerText,
		nullableString(ans.AudioPath),
		ans.Duration,
		ans.Score,
		nullableString(ans.Feedback),
		nullableString(ans.Strengths),
		nullableString(ans.Improvements),
		ans.CreatedAt,
	)
	return err
}

// AnswersByInterview returns answers in submission order.
func (r *PGRepo) AnswersByInterview(ctx context.Context, interviewID string) ([]Answer, error) {
	const query = `
SELECT id, interview_id, question_id, answer_text, audio_file_path, duration_seconds, score, feedback, strengths, improvements, created_at
FROM answers
WHERE interview_id = $1
ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, interviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Answer
	for rows.Next() {
		var ans Answer
		var audioPath sql.NullString
		var duration sql.NullInt32
		var score sql.NullFloat64
		var feedback, strengths, improvements sql.NullString
		if err := rows.Scan(
			&ans.ID,
			&ans.InterviewID,
			&ans.QuestionID,
			&ans.AnswerText,
			&audioPath,
			&duration,
			&score,
			&feedback,
			&strengths,
			&improvements,
			&ans.CreatedAt,
		); err != nil {
			return nil, err
		}
		if audioPath.Valid {
			ans.AudioPath = audioPath.String
		}
		if duration.Valid {
			seconds := int(duration.Int32)
			ans.Duration = &seconds
		}
		if score.Valid {
			ans.Score = &score.Float64
		}
		if feedback.Valid {
			ans.Feedback = feedback.String
		}
		if strengths.Valid {
			ans.Strengths = strengths.String
		}
		if improvements.Valid {
			ans.Improvements = improvements.String
		}
		out = append(out, ans)
	}
	return out, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ InterviewsRepo = (*PGRepo)(nil)
