package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of ResumesRepo.
type MemoryRepo struct {
	mu        sync.RWMutex
	resumes   map[string]Resume
	questions map[string][]Question // resumeId -> questions
	byQID     map[string]Question
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		resumes:   make(map[string]Resume),
		questions: make(map[string][]Question),
		byQID:     make(map[string]Question),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumes[resume.ID] = resume
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.resumes[resumeID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

// ListByUser returns resumes for a user, newest first, honoring limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
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
	var out []Resume
	for _, resume := range r.resumes {
		if resume.UserID == userID {
			out = append(out, resume)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []Resume{}, nil
	}
	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

func (r *MemoryRepo) CreateQuestions(ctx context.Context, questions []Question) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range questions {
		r.questions[q.ResumeID] = append(r.questions[q.ResumeID], q)
		r.byQID[q.ID] = q
	}
	return nil
}

// QuestionsByResume returns questions in their generated order.
func (r *MemoryRepo) QuestionsByResume(ctx context.Context, resumeID string) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	qs := r.questions[resumeID]
	out := make([]Question, len(qs))
	copy(out, qs)
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *MemoryRepo) GetQuestion(ctx context.Context, questionID string) (Question, error) {
	if err := ctx.Err(); err != nil {
		return Question{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.byQID[questionID]
	if !ok {
		return Question{}, ErrQuestionNotFound
	}
	return q, nil
}

var _ ResumesRepo = (*MemoryRepo)(nil)
