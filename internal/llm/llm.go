package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers behind a single text completion call.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrUnavailable is returned when no provider is configured.
var ErrUnavailable = errors.New("LLM provider unavailable")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Complete returns ErrUnavailable.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrUnavailable
}
