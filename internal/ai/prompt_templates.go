package ai

import (
	"fmt"
	"strings"
)

// PromptTemplates contains the prompts sent to the text-generation API
var PromptTemplates = struct {
	ProposalSummary string
	Ping            string
}{
	ProposalSummary: `Summarize this DAO proposal in 2-3 simple sentences:

Title: %s

Description: %s

Make it easy to understand for non-technical users.`,
	Ping: "Hello",
}

// maxPromptBodyRunes bounds how much of a proposal body goes into a prompt
const maxPromptBodyRunes = 800

// BuildSummaryPrompt creates the proposal summary prompt
func BuildSummaryPrompt(title, body string) string {
	return fmt.Sprintf(PromptTemplates.ProposalSummary,
		strings.TrimSpace(title),
		truncateRunes(body, maxPromptBodyRunes))
}
