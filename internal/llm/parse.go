package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GeneratedQuestion is one question parsed from the model's question output.
type GeneratedQuestion struct {
	QuestionText    string `json:"questionText"`
	QuestionType    string `json:"questionType"`
	DifficultyLevel string `json:"difficultyLevel"`
}

// AnswerFeedback is the model's evaluation of a single answer.
type AnswerFeedback struct {
	Score        *float64 `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    string   `json:"strengths"`
	Improvements string   `json:"improvements"`
}

// CleanJSON strips markdown code fences models sometimes wrap JSON in.
func CleanJSON(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// ParseQuestionList decodes a question array from raw model output.
// Unknown fields such as targetSkill are ignored.
func ParseQuestionList(raw string) ([]GeneratedQuestion, error) {
	cleaned := CleanJSON(raw)
	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, fmt.Errorf("parse question list: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("parse question list: empty array")
	}
	for i, q := range questions {
		if strings.TrimSpace(q.QuestionText) == "" {
			return nil, fmt.Errorf("parse question list: question %d has no text", i+1)
		}
	}
	return questions, nil
}

// ParseAnswerFeedback decodes a feedback object from raw model output.
// The score field is required and clamped to [0, 10].
func ParseAnswerFeedback(raw string) (AnswerFeedback, error) {
	cleaned := CleanJSON(raw)
	var fb AnswerFeedback
	if err := json.Unmarshal([]byte(cleaned), &fb); err != nil {
		return AnswerFeedback{}, fmt.Errorf("parse answer feedback: %w", err)
	}
	if fb.Score == nil {
		return AnswerFeedback{}, fmt.Errorf("parse answer feedback: missing score")
	}
	if *fb.Score < 0 {
		*fb.Score = 0
	}
	if *fb.Score > 10 {
		*fb.Score = 10
	}
	return fb, nil
}
