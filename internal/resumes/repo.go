package resumes

import "context"

// ResumesRepo defines persistence for resumes and their generated questions.
type ResumesRepo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, resumeID string) (Resume, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error)
	CreateQuestions(ctx context.Context, questions []Question) error
	QuestionsByResume(ctx context.Context, resumeID string) ([]Question, error)
	GetQuestion(ctx context.Context, questionID string) (Question, error)
}
