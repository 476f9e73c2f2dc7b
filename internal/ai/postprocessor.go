package ai

import (
	"errors"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ErrEmptySummary is returned when nothing usable is left after cleaning.
var ErrEmptySummary = errors.New("summary is empty after cleaning")

var controlChars = regexp.MustCompile(`[\x00-\x1F\x7F]`)

// PostProcessor cleans model output before it is shown to users
type PostProcessor struct {
	policy    *bluemonday.Policy
	maxLength int
}

func NewPostProcessor() *PostProcessor {
	return &PostProcessor{
		policy:    bluemonday.StrictPolicy(),
		maxLength: 600,
	}
}

// CleanSummary strips markup and control characters, normalizes
// whitespace and caps the length.
func (p *PostProcessor) CleanSummary(s string) (string, error) {
	s = p.policy.Sanitize(s)
	s = html.UnescapeString(s)
	s = controlChars.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Trim(s, "`")
	s = strings.TrimSpace(s)

	if s == "" {
		return "", ErrEmptySummary
	}

	if len([]rune(s)) > p.maxLength {
		s = truncateRunes(s, p.maxLength-3) + "..."
	}
	return s, nil
}
