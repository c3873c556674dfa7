package resumes

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"interviewiq-backend/internal/extract"
	"interviewiq-backend/internal/llm"
	"interviewiq-backend/internal/shared/metrics"
	"interviewiq-backend/internal/shared/storage/object"
	"interviewiq-backend/internal/shared/telemetry"
	"interviewiq-backend/internal/users"
)

// Service runs the resume intake pipeline: store, extract, structure, generate questions.
type Service struct {
	Store object.ObjectStore
	Repo  ResumesRepo
	Users users.Repo
	LLM   llm.Client
}

// Upload ingests a resume file for a user. Question generation is best effort:
// a resume whose questions could not be generated is still stored.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Resume, []Question, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(fileName) == "" {
		return Resume{}, nil, ErrInvalidInput
	}

	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Resume{}, nil, ErrUserNotFound
		}
		return Resume{}, nil, err
	}

	fileKey, _, mimeType, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return Resume{}, nil, err
	}

	rawText, err := extract.ExtractText(ctx, s.Store, fileKey, mimeType, fileName)
	if err != nil {
		return Resume{}, nil, err
	}

	resume := Resume{
		ID:        uuid.NewString(),
		UserID:    userID,
		FileName:  fileName,
		FileKey:   fileKey,
		MimeType:  mimeType,
		RawText:   rawText,
		CreatedAt: time.Now().UTC(),
	}

	profileJSON, err := s.structureProfile(ctx, rawText)
	if err != nil {
		telemetry.Error("resume.profile_failed", map[string]any{
			"resume_id": resume.ID,
			"err":       err.Error(),
		})
	} else {
		resume.ProfileJSON = profileJSON
	}

	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, nil, err
	}
	metrics.IncResumeProcessed()

	questions, err := s.generateQuestions(ctx, resume)
	if err != nil {
		metrics.IncQuestionGenFailed()
		telemetry.Error("resume.question_gen_failed", map[string]any{
			"resume_id": resume.ID,
			"err":       err.Error(),
		})
		return resume, nil, nil
	}
	if err := s.Repo.CreateQuestions(ctx, questions); err != nil {
		return Resume{}, nil, err
	}

	telemetry.Info("resume.processed", map[string]any{
		"resume_id":      resume.ID,
		"user_id":        userID,
		"question_count": len(questions),
	})
	return resume, questions, nil
}

// structureProfile asks the model to reorganize raw resume text into profile JSON.
// The model output is stored verbatim after fence stripping.
func (s *Service) structureProfile(ctx context.Context, rawText string) (string, error) {
	raw, err := s.LLM.Complete(ctx, llm.BuildResumeProfilePrompt(rawText))
	if err != nil {
		return "", err
	}
	return llm.CleanJSON(raw), nil
}

// generateQuestions produces the interview question set for a resume.
// The structured profile feeds the prompt; raw text is the fallback when
// structuring failed.
func (s *Service) generateQuestions(ctx context.Context, resume Resume) ([]Question, error) {
	source := resume.ProfileJSON
	if source == "" {
		source = resume.RawText
	}

	raw, err := s.LLM.Complete(ctx, llm.BuildQuestionPrompt(source))
	if err != nil {
		return nil, err
	}
	generated, err := llm.ParseQuestionList(raw)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	questions := make([]Question, 0, len(generated))
	for i, g := range generated {
		questions = append(questions, Question{
			ID:         uuid.NewString(),
			ResumeID:   resume.ID,
			Position:   i + 1,
			Type:       strings.ToUpper(strings.TrimSpace(g.QuestionType)),
			Difficulty: strings.ToUpper(strings.TrimSpace(g.DifficultyLevel)),
			Text:       g.QuestionText,
			CreatedAt:  now,
		})
	}
	return questions, nil
}

// Get returns a resume with its questions.
func (s *Service) Get(ctx context.Context, resumeID string) (Resume, []Question, error) {
	if strings.TrimSpace(resumeID) == "" {
		return Resume{}, nil, ErrInvalidInput
	}
	resume, err := s.Repo.GetByID(ctx, resumeID)
	if err != nil {
		return Resume{}, nil, err
	}
	questions, err := s.Repo.QuestionsByResume(ctx, resumeID)
	if err != nil {
		return Resume{}, nil, err
	}
	return resume, questions, nil
}

// List returns resumes for a user, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}
