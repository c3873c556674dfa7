package interviews

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of InterviewsRepo.
type MemoryRepo struct {
	mu         sync.RWMutex
	interviews map[string]Interview
	answers    map[string][]Answer // interviewId -> answers
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		interviews: make(map[string]Interview),
		answers:    make(map[string][]Answer),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, iv Interview) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interviews[iv.ID] = iv
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, interviewID string) (Interview, error) {
	if err := ctx.Err(); err != nil {
		return Interview{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	iv, ok := r.interviews[interviewID]
	if !ok {
		return Interview{}, ErrNotFound
	}
	return iv, nil
}

// ListByUser returns interviews for a user, newest first, honoring limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Interview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	var out []Interview
	for _, iv := range r.interviews {
		if iv.UserID == userID {
			out = append(out, iv)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []Interview{}, nil
	}
	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

func (r *MemoryRepo) Update(ctx context.Context, iv Interview) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.interviews[iv.ID]; !ok {
		return ErrNotFound
	}
	r.interviews[iv.ID] = iv
	return nil
}

// UpsertAnswer stores the answer, replacing an earlier answer to the same question.
func (r *MemoryRepo) UpsertAnswer(ctx context.Context, ans Answer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	answers := r.answers[ans.InterviewID]
	for i := range answers {
		if answers[i].QuestionID == ans.QuestionID {
			ans.ID = answers[i].ID
			answers[i] = ans
			r.answers[ans.InterviewID] = answers
			return nil
		}
	}
	r.answers[ans.InterviewID] = append(answers, ans)
	return nil
}

// AnswersByInterview returns answers in submission order.
func (r *MemoryRepo) AnswersByInterview(ctx context.Context, interviewID string) ([]Answer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	answers := r.answers[interviewID]
	out := make([]Answer, len(answers))
	copy(out, answers)
	return out, nil
}

var _ InterviewsRepo = (*MemoryRepo)(nil)
