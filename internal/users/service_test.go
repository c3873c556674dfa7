package users

import (
	"context"
	"errors"
	"testing"
)

func TestRegister_NormalizesEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	user, err := svc.Register(ctx, "  Candidate@Example.COM ", " Jamie ")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "candidate@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Name != "Jamie" {
		t.Fatalf("name not trimmed: %q", user.Name)
	}
	if user.ID == "" || user.CreatedAt.IsZero() {
		t.Fatalf("missing id or timestamp: %+v", user)
	}

	got, err := svc.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != user.Email {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestRegister_RejectsInvalidEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Register(context.Background(), "not-an-email", ""); err == nil {
		t.Fatal("expected error for invalid email")
	}
	if _, err := svc.Register(context.Background(), "", ""); err == nil {
		t.Fatal("expected error for empty email")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "dup@example.com", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "DUP@example.com", ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
