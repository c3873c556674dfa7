package llm

import (
	"fmt"
	"strings"

	_ "embed"
)

var (
	//go:embed prompts/resume_profile.txt
	resumeProfilePrompt string
	//go:embed prompts/question_gen.txt
	questionGenPrompt string
	//go:embed prompts/answer_feedback.txt
	answerFeedbackPrompt string
	//go:embed prompts/overall_report.txt
	overallReportPrompt string
)

// QAPair is one question with the answer the candidate gave to it.
type QAPair struct {
	Question string
	Answer   string
}

// BuildResumeProfilePrompt returns the prompt that structures raw resume text into JSON.
func BuildResumeProfilePrompt(resumeText string) string {
	return strings.NewReplacer("{{RESUME_TEXT}}", resumeText).Replace(resumeProfilePrompt)
}

// BuildQuestionPrompt returns the prompt that generates interview questions from a profile.
func BuildQuestionPrompt(profileJSON string) string {
	return strings.NewReplacer("{{PROFILE_JSON}}", profileJSON).Replace(questionGenPrompt)
}

// BuildFeedbackPrompt returns the prompt that scores a single answer.
func BuildFeedbackPrompt(questionText, answerText string) string {
	return strings.NewReplacer(
		"{{QUESTION}}", questionText,
		"{{ANSWER}}", answerText,
	).Replace(answerFeedbackPrompt)
}

// BuildReportPrompt returns the prompt that produces the end-of-interview narrative report.
func BuildReportPrompt(pairs []QAPair) string {
	var transcript strings.Builder
	for i, p := range pairs {
		fmt.Fprintf(&transcript, "QUESTION %d: %s\nANSWER %d: %s\n---\n", i+1, p.Question, i+1, p.Answer)
	}
	return strings.NewReplacer("{{TRANSCRIPT}}", transcript.String()).Replace(overallReportPrompt)
}
