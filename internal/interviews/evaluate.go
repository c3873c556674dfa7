package interviews

import (
	"context"

	"interviewiq-backend/internal/llm"
	"interviewiq-backend/internal/shared/metrics"
)

// Evaluator scores a single answer against its question via the LLM.
type Evaluator struct {
	LLM llm.Client
}

// Evaluate asks the model for feedback on one answer. A parse failure or
// provider error counts as a failed evaluation.
func (e *Evaluator) Evaluate(ctx context.Context, questionText, answerText string) (llm.AnswerFeedback, error) {
	start := metrics.NowMillis()
	defer func() {
		metrics.ObserveEvaluationDurationMs(metrics.NowMillis() - start)
	}()

	raw, err := e.LLM.Complete(ctx, llm.BuildFeedbackPrompt(questionText, answerText))
	if err != nil {
		metrics.IncEvaluationFailed()
		return llm.AnswerFeedback{}, err
	}
	fb, err := llm.ParseAnswerFeedback(raw)
	if err != nil {
		metrics.IncEvaluationFailed()
		return llm.AnswerFeedback{}, err
	}
	metrics.IncEvaluationCompleted()
	return fb, nil
}
