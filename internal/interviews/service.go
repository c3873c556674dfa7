package interviews

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"interviewiq-backend/internal/llm"
	"interviewiq-backend/internal/resumes"
	"interviewiq-backend/internal/shared/metrics"
	"interviewiq-backend/internal/shared/telemetry"
	"interviewiq-backend/internal/users"
)

// narrativeUnavailable stands in for the report when the model call fails.
// The numeric score is always computed locally and is never affected.
const narrativeUnavailable = "AI service temporarily unavailable. Please try again later."

// Service owns the interview lifecycle and end-of-interview aggregation.
type Service struct {
	Repo    InterviewsRepo
	Resumes resumes.ResumesRepo
	Users   users.Repo
	Eval    *Evaluator
	LLM     llm.Client
}

// View is an interview together with its question set and submitted answers.
type View struct {
	Interview Interview          `json:"interview"`
	Questions []resumes.Question `json:"questions"`
	Answers   []Answer           `json:"answers"`
}

// Create opens a new interview in CREATED state. The user and resume are
// validated up front, and the resume must belong to the user.
func (s *Service) Create(ctx context.Context, userID, resumeID, title string) (Interview, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(resumeID) == "" {
		return Interview{}, ErrInvalidInput
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Interview{}, ErrInvalidInput
	}

	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Interview{}, users.ErrNotFound
		}
		return Interview{}, err
	}
	resume, err := s.Resumes.GetByID(ctx, resumeID)
	if err != nil {
		return Interview{}, err
	}
	if resume.UserID != userID {
		return Interview{}, resumes.ErrNotFound
	}

	iv := Interview{
		ID:        uuid.NewString(),
		UserID:    userID,
		ResumeID:  resumeID,
		Title:     title,
		Status:    StatusCreated,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, iv); err != nil {
		return Interview{}, err
	}

	telemetry.Info("interview.created", map[string]any{
		"interview_id": iv.ID,
		"user_id":      userID,
		"resume_id":    resumeID,
	})
	return iv, nil
}

// Start moves a CREATED interview to IN_PROGRESS and stamps the start time.
// A second Start is rejected rather than treated as a no-op.
func (s *Service) Start(ctx context.Context, interviewID string) (Interview, error) {
	iv, err := s.Repo.GetByID(ctx, interviewID)
	if err != nil {
		return Interview{}, err
	}
	switch iv.Status {
	case StatusCreated:
	case StatusInProgress:
		return Interview{}, ErrAlreadyStarted
	default:
		return Interview{}, ErrInterviewFinished
	}

	now := time.Now().UTC()
	iv.Status = StatusInProgress
	iv.StartedAt = &now
	if err := s.Repo.Update(ctx, iv); err != nil {
		return Interview{}, err
	}
	return iv, nil
}

// Submission is the payload for one answer. AudioPath and Duration are
// optional client-reported metadata and are stored as given.
type Submission struct {
	QuestionID string
	AnswerText string
	AudioPath  string
	Duration   *int
}

// SubmitAnswer records an answer to one of the interview's questions and
// evaluates it. Evaluation failure is soft: the answer is persisted unscored.
func (s *Service) SubmitAnswer(ctx context.Context, interviewID string, sub Submission) (Answer, error) {
	questionID, answerText := sub.QuestionID, sub.AnswerText
	if strings.TrimSpace(questionID) == "" || strings.TrimSpace(answerText) == "" {
		return Answer{}, ErrInvalidInput
	}

	iv, err := s.Repo.GetByID(ctx, interviewID)
	if err != nil {
		return Answer{}, err
	}
	switch iv.Status {
	case StatusInProgress:
	case StatusCreated:
		return Answer{}, ErrNotStarted
	default:
		return Answer{}, ErrInterviewFinished
	}

	question, err := s.Resumes.GetQuestion(ctx, questionID)
	if err != nil {
		return Answer{}, err
	}
	if question.ResumeID != iv.ResumeID {
		return Answer{}, ErrQuestionMismatch
	}

	ans := Answer{
		ID:          uuid.NewString(),
		InterviewID: interviewID,
		QuestionID:  questionID,
		AnswerText:  answerText,
		AudioPath:   strings.TrimSpace(sub.AudioPath),
		Duration:    sub.Duration,
		CreatedAt:   time.Now().UTC(),
	}

	fb, evalErr := s.Eval.Evaluate(ctx, question.Text, answerText)
	if evalErr != nil {
		telemetry.Error("answer.evaluation_failed", map[string]any{
			"interview_id": interviewID,
			"question_id":  questionID,
			"err":          evalErr.Error(),
		})
	} else {
		ans.Score = fb.Score
		ans.Feedback = fb.Feedback
		ans.Strengths = fb.Strengths
		ans.Improvements = fb.Improvements
	}

	if err := s.Repo.UpsertAnswer(ctx, ans); err != nil {
		return Answer{}, err
	}
	return ans, nil
}

// End completes an IN_PROGRESS interview: it computes the overall score as the
// mean of answer scores (unscored answers count as zero), stamps the duration
// in whole minutes, and asks the model for a narrative report. Narrative
// failure degrades to a placeholder without touching the score.
func (s *Service) End(ctx context.Context, interviewID string) (Interview, error) {
	iv, err := s.Repo.GetByID(ctx, interviewID)
	if err != nil {
		return Interview{}, err
	}
	switch iv.Status {
	case StatusInProgress:
	case StatusCreated:
		return Interview{}, ErrNotStarted
	default:
		return Interview{}, ErrInterviewFinished
	}

	answers, err := s.Repo.AnswersByInterview(ctx, interviewID)
	if err != nil {
		return Interview{}, err
	}

	now := time.Now().UTC()
	iv.Status = StatusCompleted
	iv.EndedAt = &now
	if iv.StartedAt != nil {
		minutes := int64(now.Sub(*iv.StartedAt).Minutes())
		iv.DurationMinutes = &minutes
	}

	if len(answers) > 0 {
		score := meanScore(answers)
		iv.OverallScore = &score

		narrative, narrErr := s.buildNarrative(ctx, answers)
		if narrErr != nil {
			metrics.IncNarrativeFailed()
			telemetry.Error("interview.narrative_failed", map[string]any{
				"interview_id": interviewID,
				"err":          narrErr.Error(),
			})
			narrative = narrativeUnavailable
		}
		iv.OverallFeedback = &narrative
	}

	if err := s.Repo.Update(ctx, iv); err != nil {
		return Interview{}, err
	}
	metrics.IncInterviewCompleted()

	telemetry.Info("interview.completed", map[string]any{
		"interview_id": interviewID,
		"answer_count": len(answers),
	})
	return iv, nil
}

// Cancel moves a non-terminal interview to CANCELLED.
func (s *Service) Cancel(ctx context.Context, interviewID string) (Interview, error) {
	iv, err := s.Repo.GetByID(ctx, interviewID)
	if err != nil {
		return Interview{}, err
	}
	if iv.IsTerminal() {
		return Interview{}, ErrInterviewFinished
	}

	iv.Status = StatusCancelled
	if err := s.Repo.Update(ctx, iv); err != nil {
		return Interview{}, err
	}
	return iv, nil
}

// Get returns the interview with its questions and answers.
func (s *Service) Get(ctx context.Context, interviewID string) (View, error) {
	iv, err := s.Repo.GetByID(ctx, interviewID)
	if err != nil {
		return View{}, err
	}
	questions, err := s.Resumes.QuestionsByResume(ctx, iv.ResumeID)
	if err != nil {
		return View{}, err
	}
	answers, err := s.Repo.AnswersByInterview(ctx, interviewID)
	if err != nil {
		return View{}, err
	}
	return View{Interview: iv, Questions: questions, Answers: answers}, nil
}

// List returns interviews for a user, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Interview, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// meanScore averages answer scores, counting unscored answers as zero.
func meanScore(answers []Answer) float64 {
	var sum float64
	for _, ans := range answers {
		if ans.Score != nil {
			sum += *ans.Score
		}
	}
	return sum / float64(len(answers))
}

func (s *Service) buildNarrative(ctx context.Context, answers []Answer) (string, error) {
	pairs := make([]llm.QAPair, 0, len(answers))
	for _, ans := range answers {
		question, err := s.Resumes.GetQuestion(ctx, ans.QuestionID)
		if err != nil {
			return "", err
		}
		pairs = append(pairs, llm.QAPair{Question: question.Text, Answer: ans.AnswerText})
	}
	return s.LLM.Complete(ctx, llm.BuildReportPrompt(pairs))
}
