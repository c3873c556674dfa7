package resumes

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements ResumesRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (id, user_id, file_name, file_key, mime_type, raw_text, profile_json, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(
		ctx,
		query,
		resume.ID,
		resume.UserID,
		resume.FileName,
		resume.FileKey,
		resume.MimeType,
		resume.RawText,
		resume.ProfileJSON,
		resume.CreatedAt,
	)
	return err
}

// GetByID fetches a resume by ID.
func (r *PGRepo) GetByID(ctx context.Context, resumeID string) (Resume, error) {
	const query = `
SELECT id, user_id, file_name, file_key, mime_type, raw_text, profile_json, created_at
FROM resumes
WHERE id = $1
LIMIT 1`
	var resume Resume
	err := r.DB.QueryRowContext(ctx, query, resumeID).Scan(
		&resume.ID,
		&resume.UserID,
		&resume.FileName,
		&resume.FileKey,
		&resume.MimeType,
		&resume.RawText,
		&resume.ProfileJSON,
		&resume.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

// ListByUser lists resumes ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
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
SELECT id, user_id, file_name, file_key, mime_type, raw_text, profile_json, created_at
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		var resume Resume
		if err := rows.Scan(
			&resume.ID,
			&resume.UserID,
			&resume.FileName,
			&resume.FileKey,
			&resume.MimeType,
			&resume.RawText,
			&resume.ProfileJSON,
			&resume.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// CreateQuestions inserts a generated question batch in one transaction.
func (r *PGRepo) CreateQuestions(ctx context.Context, questions []Question) error {
	if len(questions) == 0 {
		return nil
	}
	const query = `
INSERT INTO questions (id, resume_id, position, question_type, difficulty, text, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, q := range questions {
		if _, err := tx.ExecContext(ctx, query, q.ID, q.ResumeID, q.Position, q.Type, q.Difficulty, q.Text, q.CreatedAt); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// QuestionsByResume returns questions in their generated order.
func (r *PGRepo) QuestionsByResume(ctx context.Context, resumeID string) ([]Question, error) {
	const query = `
SELECT id, resume_id, position, question_type, difficulty, text, created_at
FROM questions
WHERE resume_id = $1
ORDER BY position ASC`

	rows, err := r.DB.QueryContext(ctx, query, resumeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.ResumeID, &q.Position, &q.Type, &q.Difficulty, &q.Text, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// GetQuestion fetches a single question by ID.
func (r *PGRepo) GetQuestion(ctx context.Context, questionID string) (Question, error) {
	const query = `
SELECT id, resume_id, position, question_type, difficulty, text, created_at
FROM questions
WHERE id = $1
LIMIT 1`
	var q Question
	err := r.DB.QueryRowContext(ctx, query, questionID).Scan(
		&q.ID,
		&q.ResumeID,
		&q.Position,
		&q.Type,
		&q.Difficulty,
		&q.Text,
		&q.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Question{}, ErrQuestionNotFound
		}
		return Question{}, err
	}
	return q, nil
}

var _ ResumesRepo = (*PGRepo)(nil)
