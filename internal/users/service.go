package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates a user record that owns resumes and interviews.
func (s *Service) Register(ctx context.Context, email, name string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return User{}, errors.New("a valid email is required")
	}

	user := User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}
