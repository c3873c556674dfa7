package interviews

import "time"

// Interview lifecycle states.
const (
	StatusCreated    = "CREATED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// Interview is one mock interview session against a resume's question set.
type Interview struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	ResumeID        string     `json:"resumeId"`
	Title           string     `json:"title"`
	Status          string     `json:"status"`
	StartedAt       *time.Time `json:"startedAt,omitempty"`
	EndedAt         *time.Time `json:"endedAt,omitempty"`
	DurationMinutes *int64     `json:"totalDuration,omitempty"`
	OverallScore    *float64   `json:"overallScore,omitempty"`
	OverallFeedback *string    `json:"overallFeedback,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// Answer is a candidate response to one question, with its evaluation when available.
// Score is nil when evaluation failed or has not run.
type Answer struct {
	ID           string    `json:"id"`
	InterviewID  string    `json:"interviewId"`
	QuestionID   string    `json:"questionId"`
	AnswerText   string    `json:"answerText"`
	AudioPath    string    `json:"audioFilePath,omitempty"`
	Duration     *int      `json:"duration,omitempty"`
	Score        *float64  `json:"score,omitempty"`
	Feedback     string    `json:"feedback,omitempty"`
	Strengths    string    `json:"strengths,omitempty"`
	Improvements string    `json:"improvements,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsTerminal reports whether the interview can no longer change.
func (iv Interview) IsTerminal() bool {
	return iv.Status == StatusCompleted || iv.Status == StatusCancelled
}
