package interviews

import "context"

// InterviewsRepo defines persistence for interviews and their answers.
type InterviewsRepo interface {
	Create(ctx context.Context, iv Interview) error
	GetByID(ctx context.Context, interviewID string) (Interview, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Interview, error)
	Update(ctx context.Context, iv Interview) error
	UpsertAnswer(ctx context.Context, ans Answer) error
	AnswersByInterview(ctx context.Context, interviewID string) ([]Answer, error)
}
