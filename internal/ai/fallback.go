package ai

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// UnavailableSummary is returned for every proposal when no text-generation
// credential is configured.
const UnavailableSummary = "AI summary unavailable - text generation API key not configured. Please check the original proposal for details."

const (
	fallbackMinBodyRunes = 50
	fallbackExcerptRunes = 150
)

// FallbackSummary builds a deterministic summary from the proposal itself.
// Both the summarizer and the request orchestrator use it.
func FallbackSummary(title, body string) string {
	if utf8.RuneCountInString(strings.TrimSpace(body)) > fallbackMinBodyRunes {
		return fmt.Sprintf("This proposal '%s' involves: %s...", title, truncateRunes(body, fallbackExcerptRunes))
	}
	return fmt.Sprintf("Governance proposal: %s. Please check the full proposal details for more information.", title)
}

// truncateRunes cuts s to at most max runes
func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
