package interviews

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreatePersistsLifecycleFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	iv := Interview{
		ID:        "iv-1",
		UserID:    "user-1",
		ResumeID:  "resume-1",
		Title:     "Backend screen",
		Status:    StatusCreated,
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO interviews").
		WithArgs(
			iv.ID,
			iv.UserID,
			iv.ResumeID,
			iv.Title,
			iv.Status,
			nil, // started_at
			nil, // ended_at
			nil, // duration_minutes
			nil, // overall_score
			nil, // overall_feedback
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), iv); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDMapsNullableColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "resume_id", "title", "status", "started_at", "ended_at", "duration_minutes", "overall_score", "overall_feedback", "created_at",
	}).AddRow("iv-1", "user-1", "resume-1", "Backend screen", StatusCompleted, now, now, int64(12), 7.0, "report text", now)

	mock.ExpectQuery("SELECT id, user_id, resume_id, title, status").
		WithArgs("iv-1").
		WillReturnRows(rows)

	iv, err := repo.GetByID(context.Background(), "iv-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if iv.OverallScore == nil || *iv.OverallScore != 7.0 {
		t.Fatalf("overall score not mapped: %v", iv.OverallScore)
	}
	if iv.DurationMinutes == nil || *iv.DurationMinutes != 12 {
		t.Fatalf("duration not mapped: %v", iv.DurationMinutes)
	}
	if iv.OverallFeedback == nil || *iv.OverallFeedback != "report text" {
		t.Fatalf("feedback not mapped: %v", iv.OverallFeedback)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT id, user_id, resume_id, title, status").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE interviews").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(context.Background(), Interview{ID: "missing", Status: StatusCancelled}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpsertAnswerNullsEmptyFeedback(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	ans := Answer{
		ID:          "ans-1",
		InterviewID: "iv-1",
		QuestionID:  "q-1",
		AnswerText:  "my answer",
		CreatedAt:   time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO answers").
		WithArgs(
			ans.ID,
			ans.InterviewID,
			ans.QuestionID,
			ans.AnswerText,
			nil, // audio_file_path
			nil, // duration_seconds
			nil, // score
			nil, // feedback
			nil, // strengths
			nil, // improvements
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.UpsertAnswer(context.Background(), ans); err != nil {
		t.Fatalf("UpsertAnswer: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
