package resumes

import "time"

// Resume is an uploaded resume with its extracted text and structured profile.
type Resume struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	FileName    string    `json:"fileName"`
	FileKey     string    `json:"-"`
	MimeType    string    `json:"mimeType"`
	RawText     string    `json:"-"`
	ProfileJSON string    `json:"profile,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Question is one generated interview question tied to a resume.
type Question struct {
	ID         string    `json:"id"`
	ResumeID   string    `json:"resumeId"`
	Position   int       `json:"position"`
	Type       string    `json:"questionType"`
	Difficulty string    `json:"difficultyLevel"`
	Text       string    `json:"questionText"`
	CreatedAt  time.Time `json:"createdAt"`
}

const (
	QuestionTypeTechnical  = "TECHNICAL"
	QuestionTypeExperience = "EXPERIENCE"
	QuestionTypeBehavioral = "BEHAVIORAL"
)
