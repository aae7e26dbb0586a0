package ai

import (
	"fmt"
	"strings"
)

const baseInterviewerPrompt = "You are a friendly assistant."

const resumeExpertPrompt = "You are a resume expert. Extract important key points."

// interviewerPrompt builds the system instruction for one interview turn,
// folding in the candidate's resume summary when available.
func interviewerPrompt(resumeSummary string) string {
	resumeSummary = strings.TrimSpace(resumeSummary)
	if resumeSummary == "" {
		return baseInterviewerPrompt
	}

	return fmt.Sprintf(`%s

You are conducting a mock job interview. Candidate resume summary:
%s

Ask questions and give feedback grounded in the candidate's background.`,
		baseInterviewerPrompt, resumeSummary)
}
