package interviews

import (
	"context"
	"errors"
	"testing"
)

type fixedLLM struct {
	response string
	err      error
}

func (f fixedLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

func TestEvaluate_ParsesFeedback(t *testing.T) {
	e := &Evaluator{LLM: fixedLLM{response: "```json\n{\"score\": 7.5, \"feedback\": \"good\", \"strengths\": \"depth\", \"improvements\": \"examples\"}\n```"}}

	fb, err := e.Evaluate(context.Background(), "What is a mutex?", "A lock.")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if fb.Score == nil || *fb.Score != 7.5 {
		t.Fatalf("unexpected score: %v", fb.Score)
	}
	if fb.Feedback != "good" || fb.Strengths != "depth" {
		t.Fatalf("unexpected feedback: %+v", fb)
	}
}

func TestEvaluate_ProviderError(t *testing.T) {
	e := &Evaluator{LLM: fixedLLM{err: errors.New("timeout")}}
	if _, err := e.Evaluate(context.Background(), "Q", "A"); err == nil {
		t.Fatal("expected error")
	}
}

func TestEvaluate_MalformedOutput(t *testing.T) {
	e := &Evaluator{LLM: fixedLLM{response: "I would rate this a solid 7 out of 10."}}
	if _, err := e.Evaluate(context.Background(), "Q", "A"); err == nil {
		t.Fatal("expected parse error for prose output")
	}
}
